// Package release tags the current version in git.
package release

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// Runner executes an external command in dir.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) error
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, msg)
		}
		return fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return nil
}

// Tagger creates "v<version>" tags in a git work tree.
type Tagger struct {
	runner Runner
	dir    string
	push   bool
	logger *slog.Logger
}

// NewTagger returns a Tagger operating in dir. When push is set, tags are
// pushed after creation.
func NewTagger(runner Runner, dir string, push bool, logger *slog.Logger) *Tagger {
	return &Tagger{runner: runner, dir: dir, push: push, logger: logger}
}

// Tag creates the tag for version and returns its name.
func (t *Tagger) Tag(ctx context.Context, version string) (string, error) {
	version = strings.TrimSpace(version)
	if version == "" {
		return "", errors.New("release: version is empty")
	}
	tag := "v" + version

	t.logger.Info("Tagging release", slog.String("tag", tag))
	if err := t.runner.Run(ctx, t.dir, "git", "tag", tag); err != nil {
		return "", fmt.Errorf("release: tag: %w", err)
	}
	if !t.push {
		return tag, nil
	}
	if err := t.runner.Run(ctx, t.dir, "git", "push", "--tags"); err != nil {
		return "", fmt.Errorf("release: push tags: %w", err)
	}
	t.logger.Info("Tag pushed", slog.String("tag", tag))
	return tag, nil
}
