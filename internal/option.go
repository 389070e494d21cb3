package internal

import (
	"io"
	"time"

	"github.com/starford/deckbuild/internal/release"
)

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config *Config
	stdout io.Writer
	stderr io.Writer
	getenv func(string) string
	now    func() time.Time
	runner release.Runner
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithOutput sets where reports and logs are written.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(a *application) {
		a.stdout = stdout
		a.stderr = stderr
	}
}

// WithEnv sets the environment lookup used for build numbering.
func WithEnv(getenv func(string) string) Option {
	return func(a *application) {
		a.getenv = getenv
	}
}

// WithClock sets the time source for build suffixes and package timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *application) {
		a.now = now
	}
}

// WithRunner sets the command runner used for git operations.
func WithRunner(r release.Runner) Option {
	return func(a *application) {
		a.runner = r
	}
}
