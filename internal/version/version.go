// Package version reads, bumps, and persists the project's semantic version
// and derives the build suffix stamped into artifact names.
package version

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/starford/deckbuild/internal/apperr"
	"github.com/starford/deckbuild/internal/storage"
)

// Fallback is used when no version file exists.
const Fallback = "0.0.0"

// Bump kinds.
const (
	Patch = "patch"
	Minor = "minor"
	Major = "major"
)

// Version is a MAJOR.MINOR.PATCH triple.
type Version struct {
	Major, Minor, Patch int
}

// Parse parses "MAJOR.MINOR.PATCH".
func Parse(s string) (Version, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("%w: %q", apperr.ErrInvalidVersion, s)
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("%w: %q", apperr.ErrInvalidVersion, s)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Bump returns v incremented by kind. Lower components reset to zero.
func (v Version) Bump(kind string) (Version, error) {
	switch kind {
	case Patch:
		v.Patch++
	case Minor:
		v.Minor, v.Patch = v.Minor+1, 0
	case Major:
		v.Major, v.Minor, v.Patch = v.Major+1, 0, 0
	default:
		return Version{}, fmt.Errorf("%w: %q", apperr.ErrUnknownBump, kind)
	}
	return v, nil
}

// Read returns the trimmed contents of the version file at path, or
// Fallback when the file does not exist.
func Read(store storage.Provider, path string) (string, error) {
	data, err := store.Read(path)
	if errors.Is(err, os.ErrNotExist) {
		return Fallback, nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// ReadRequired parses the version file at path. Unlike Read there is no
// fallback: a missing, empty, or malformed file is an error.
func ReadRequired(store storage.Provider, path string) (Version, error) {
	data, err := store.Read(path)
	if err != nil {
		return Version{}, err
	}
	return Parse(string(data))
}

// Write persists v to the version file at path.
func Write(store storage.Provider, path string, v Version) error {
	return store.Write(path, []byte(v.String()))
}

// BumpFile reads the version at path, bumps it by kind, and writes it back.
func BumpFile(store storage.Provider, path, kind string) (Version, error) {
	raw, err := Read(store, path)
	if err != nil {
		return Version{}, err
	}
	cur, err := Parse(raw)
	if err != nil {
		return Version{}, err
	}
	next, err := cur.Bump(kind)
	if err != nil {
		return Version{}, err
	}
	if err := Write(store, path, next); err != nil {
		return Version{}, err
	}
	return next, nil
}

// BuildSuffix returns "build<N>" from the CI run number, or a timestamp
// when neither GITHUB_RUN_NUMBER nor BUILD_NUMBER is set.
func BuildSuffix(getenv func(string) string, now time.Time) string {
	for _, key := range []string{"GITHUB_RUN_NUMBER", "BUILD_NUMBER"} {
		if run := strings.TrimSpace(getenv(key)); run != "" {
			return "build" + run
		}
	}
	return now.Format("20060102-1504")
}

// ArtifactName returns "<base>-v<version>+<suffix>.apkg".
func ArtifactName(base, version, suffix string) string {
	return fmt.Sprintf("%s-v%s+%s.apkg", base, version, suffix)
}
