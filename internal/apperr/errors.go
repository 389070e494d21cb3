package apperr

import "errors"

var (
	ErrInputDirMissing = errors.New("input directory missing")
	ErrNoCards         = errors.New("no cards found")
	ErrInvalidVersion  = errors.New("invalid version")
	ErrUnknownBump     = errors.New("unknown bump type")
)

// Process exit statuses.
const (
	ExitOK           = 0
	ExitFailure      = 1
	ExitInputMissing = 1
	ExitNoCards      = 2
)

// ExitCode maps an error returned by a command to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrNoCards):
		return ExitNoCards
	case errors.Is(err, ErrInputDirMissing):
		return ExitInputMissing
	default:
		return ExitFailure
	}
}
