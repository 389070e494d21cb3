package version

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/starford/deckbuild/internal/apperr"
	"github.com/starford/deckbuild/internal/storage"
)

func tempStore(t *testing.T) *storage.FS {
	t.Helper()
	fs, err := storage.NewFS(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return fs
}

func TestParse(t *testing.T) {
	v, err := Parse(" 1.2.3\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if v != (Version{1, 2, 3}) || v.String() != "1.2.3" {
		t.Errorf("v = %+v", v)
	}
	for _, bad := range []string{"", "1.2", "1.2.x", "1.-2.3", "1.2.3.4"} {
		if _, err := Parse(bad); !errors.Is(err, apperr.ErrInvalidVersion) {
			t.Errorf("Parse(%q) err = %v, want ErrInvalidVersion", bad, err)
		}
	}
}

func TestBump(t *testing.T) {
	v := Version{1, 4, 7}
	cases := map[string]Version{
		Patch: {1, 4, 8},
		Minor: {1, 5, 0},
		Major: {2, 0, 0},
	}
	for kind, want := range cases {
		got, err := v.Bump(kind)
		if err != nil || got != want {
			t.Errorf("Bump(%s) = %v, %v; want %v", kind, got, err, want)
		}
	}
	if _, err := v.Bump("huge"); !errors.Is(err, apperr.ErrUnknownBump) {
		t.Errorf("err = %v, want ErrUnknownBump", err)
	}
}

func TestRead_MissingFileFallsBack(t *testing.T) {
	got, err := Read(tempStore(t), "VERSION")
	if err != nil || got != Fallback {
		t.Errorf("Read = %q, %v; want %q", got, err, Fallback)
	}
}

func TestReadRequired(t *testing.T) {
	s := tempStore(t)
	if _, err := ReadRequired(s, "VERSION"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: err = %v, want os.ErrNotExist", err)
	}
	_ = s.Write("VERSION", []byte("  \n"))
	if _, err := ReadRequired(s, "VERSION"); !errors.Is(err, apperr.ErrInvalidVersion) {
		t.Errorf("empty file: err = %v, want ErrInvalidVersion", err)
	}
	_ = s.Write("VERSION", []byte("1.4.2\n"))
	v, err := ReadRequired(s, "VERSION")
	if err != nil || v.String() != "1.4.2" {
		t.Errorf("ReadRequired = %s, %v", v, err)
	}
}

func TestBumpFile(t *testing.T) {
	s := tempStore(t)
	_ = s.Write("VERSION", []byte("0.3.9\n"))
	v, err := BumpFile(s, "VERSION", Minor)
	if err != nil {
		t.Fatalf("BumpFile: %v", err)
	}
	if v.String() != "0.4.0" {
		t.Errorf("v = %s", v)
	}
	got, _ := Read(s, "VERSION")
	if got != "0.4.0" {
		t.Errorf("persisted = %q", got)
	}
}

func TestBuildSuffix(t *testing.T) {
	now := time.Date(2026, 10, 14, 9, 5, 0, 0, time.UTC)
	env := map[string]string{}
	getenv := func(k string) string { return env[k] }

	if got := BuildSuffix(getenv, now); got != "20261014-0905" {
		t.Errorf("timestamp suffix = %q", got)
	}
	env["BUILD_NUMBER"] = "17"
	if got := BuildSuffix(getenv, now); got != "build17" {
		t.Errorf("BUILD_NUMBER suffix = %q", got)
	}
	env["GITHUB_RUN_NUMBER"] = "42"
	if got := BuildSuffix(getenv, now); got != "build42" {
		t.Errorf("GITHUB_RUN_NUMBER should win, got %q", got)
	}
}

func TestArtifactName(t *testing.T) {
	if got := ArtifactName("os_theory", "1.2.0", "build7"); got != "os_theory-v1.2.0+build7.apkg" {
		t.Errorf("ArtifactName = %q", got)
	}
}
