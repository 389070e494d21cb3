package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestExitCode(t *testing.T) {
	if got := ExitCode(nil); got != ExitOK {
		t.Errorf("nil = %d, want %d", got, ExitOK)
	}
	wrapped := fmt.Errorf("build: %w", ErrNoCards)
	if got := ExitCode(wrapped); got != ExitNoCards {
		t.Errorf("no cards = %d, want %d", got, ExitNoCards)
	}
	missing := fmt.Errorf("build: %w: txt_export", ErrInputDirMissing)
	if got := ExitCode(missing); got != ExitInputMissing {
		t.Errorf("missing dir = %d, want %d", got, ExitInputMissing)
	}
	if got := ExitCode(errors.New("boom")); got != ExitFailure {
		t.Errorf("other = %d, want %d", got, ExitFailure)
	}
}

func TestExitCode_ConfigurationErrorsDistinct(t *testing.T) {
	if ExitCode(ErrNoCards) == ExitCode(ErrInputDirMissing) {
		t.Error("missing input and zero cards should exit with different statuses")
	}
}
