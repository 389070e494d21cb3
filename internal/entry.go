// Package internal provides the application wiring: configuration, logging,
// and the build, inspect, bump, and tag operations.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/starford/deckbuild/internal/apperr"
	"github.com/starford/deckbuild/internal/assembler"
	"github.com/starford/deckbuild/internal/checksum"
	"github.com/starford/deckbuild/internal/models"
	"github.com/starford/deckbuild/internal/parser"
	"github.com/starford/deckbuild/internal/release"
	"github.com/starford/deckbuild/internal/report"
	"github.com/starford/deckbuild/internal/storage"
	"github.com/starford/deckbuild/internal/version"
)

// BuildResult describes the artifacts written by Build.
type BuildResult struct {
	Versioned string
	Canonical string
	Cards     int
	Decks     int
}

func newApplication(opts []Option) (*application, error) {
	app := &application{
		stdout: os.Stdout,
		stderr: os.Stderr,
		getenv: os.Getenv,
		now:    time.Now,
		runner: release.ExecRunner{},
	}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	return app, nil
}

func (a *application) logger() *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: a.config.App.LogLevel}
	if a.config.App.LogFormat == LogFormatJSON {
		return slog.New(slog.NewJSONHandler(a.stderr, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(a.stderr, handlerOpts))
}

// Build extracts every card from the input directory and writes the
// versioned and canonical packages. Nothing is written when extraction
// fails or yields no cards.
func Build(ctx context.Context, opts ...Option) (*BuildResult, error) {
	app, err := newApplication(opts)
	if err != nil {
		return nil, err
	}
	cfg := app.config
	logger := app.logger()

	logger.Info("Configuration loaded",
		slog.String("project_root", cfg.Project.Root),
		slog.String("input_dir", cfg.Input.Dir),
		slog.String("output_dir", cfg.Output.Dir),
		slog.String("root_deck", cfg.Deck.RootName),
		slog.String("log_level", cfg.App.LogLevel.String()))

	store, err := storage.NewFS(cfg.Project.Root)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	asm, _, err := app.collect(ctx, store, logger)
	if err != nil {
		return nil, err
	}
	pkg, err := asm.Package()
	if err != nil {
		return nil, fmt.Errorf("build: %w in %s", err, cfg.Input.Dir)
	}
	pkg.Now = app.now

	ver := version.Fallback
	verStore, verPath, err := fileStore(store, cfg.Build.VersionFile)
	if err == nil {
		ver, err = version.Read(verStore, verPath)
	}
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("build: read version: %w", err)
	}
	suffix := version.BuildSuffix(app.getenv, app.now())

	data, err := pkg.Bytes()
	if err != nil {
		return nil, fmt.Errorf("build: render package: %w", err)
	}

	if filepath.IsAbs(cfg.Output.Dir) {
		if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("build: create output dir: %w", err)
		}
	}
	outStore, outDir, err := dirStore(store, cfg.Output.Dir)
	if err != nil {
		return nil, fmt.Errorf("build: output dir: %w", err)
	}

	versionedName := version.ArtifactName(cfg.Output.Basename, ver, suffix)
	canonicalName := cfg.Output.Basename + ".apkg"
	res := &BuildResult{
		Versioned: filepath.Join(cfg.Output.Dir, versionedName),
		Canonical: filepath.Join(cfg.Output.Dir, canonicalName),
		Cards:     pkg.NoteCount(),
		Decks:     len(pkg.Decks),
	}
	for _, name := range []string{versionedName, canonicalName} {
		p := filepath.Join(outDir, name)
		if err := outStore.Write(p, data); err != nil {
			return nil, fmt.Errorf("build: write %s: %w", filepath.Join(cfg.Output.Dir, name), err)
		}
	}

	logger.Info("Package built",
		slog.String("versioned", res.Versioned),
		slog.String("canonical", res.Canonical),
		slog.Int("cards", res.Cards),
		slog.Int("decks", res.Decks),
		slog.Int("models", len(asm.Models())))
	return res, nil
}

// Inspect extracts every card and prints per-file, per-deck, and per-model
// tables without writing a package.
func Inspect(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	logger := app.logger()

	store, err := storage.NewFS(app.config.Project.Root)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	asm, stats, err := app.collect(ctx, store, logger)
	if err != nil {
		return err
	}

	report.Files(app.stdout, stats)
	report.Decks(app.stdout, asm.Decks())
	report.Models(app.stdout, asm.Models())
	return nil
}

// Bump increments the persisted version by kind and returns the new value.
func Bump(_ context.Context, kind string, opts ...Option) (version.Version, error) {
	app, err := newApplication(opts)
	if err != nil {
		return version.Version{}, err
	}
	store, err := storage.NewFS(app.config.Project.Root)
	if err != nil {
		return version.Version{}, fmt.Errorf("init storage: %w", err)
	}
	v, err := version.BumpFile(store, app.config.Build.VersionFile, kind)
	if err != nil {
		return version.Version{}, fmt.Errorf("bump: %w", err)
	}
	app.logger().Info("Version bumped", slog.String("version", v.String()), slog.String("kind", kind))
	return v, nil
}

// Tag creates (and optionally pushes) the git tag for the persisted version.
// The version file must exist and hold a valid version.
func Tag(ctx context.Context, opts ...Option) (string, error) {
	app, err := newApplication(opts)
	if err != nil {
		return "", err
	}
	store, err := storage.NewFS(app.config.Project.Root)
	if err != nil {
		return "", fmt.Errorf("init storage: %w", err)
	}
	verStore, verPath, err := fileStore(store, app.config.Build.VersionFile)
	if err != nil {
		return "", fmt.Errorf("tag: read version: %w", err)
	}
	ver, err := version.ReadRequired(verStore, verPath)
	if err != nil {
		return "", fmt.Errorf("tag: read version: %w", err)
	}
	tagger := release.NewTagger(app.runner, store.Root(), app.config.Release.Push, app.logger())
	return tagger.Tag(ctx, ver.String())
}

// collect lists the export files of the input dir and parses them in name
// order. A missing input dir maps to ErrInputDirMissing.
func (a *application) collect(ctx context.Context, root *storage.FS, logger *slog.Logger) (*assembler.Assembler, []report.FileStat, error) {
	cfg := a.config
	store, dir, err := dirStore(root, cfg.Input.Dir)
	var files []models.ExportFile
	if err == nil {
		files, err = store.ListExports(dir)
	}
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil, fmt.Errorf("%w: %s", apperr.ErrInputDirMissing, cfg.Input.Dir)
	}
	if err != nil {
		return nil, nil, err
	}
	return a.parseExports(ctx, store, files, logger)
}

// parseExports feeds the cards of every listed file to a fresh Assembler.
func (a *application) parseExports(ctx context.Context, store storage.Provider, files []models.ExportFile, logger *slog.Logger) (*assembler.Assembler, []report.FileStat, error) {
	cfg := a.config
	asm := assembler.New(cfg.Deck.RootName, assembler.WithPlainTextEscaping(cfg.Build.EscapePlainText))
	stats := make([]report.FileStat, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		data, err := store.Read(f.Path)
		if err != nil {
			return nil, nil, err
		}
		f.Checksum = checksum.Sum(data)
		cards, err := parser.Export(f.Flavor, filepath.Base(f.Path), data)
		if err != nil {
			return nil, nil, err
		}
		n := 0
		for card, err := range cards {
			if err != nil {
				return nil, nil, err
			}
			asm.Add(card)
			n++
		}
		stats = append(stats, report.FileStat{File: f, Cards: n})
		logger.Debug("export parsed",
			slog.String("file", f.Path),
			slog.String("flavor", string(f.Flavor)),
			slog.String("checksum", f.Checksum),
			slog.Int("cards", n))
	}
	return asm, stats, nil
}

// dirStore returns the store that owns dir and the path of dir inside it.
// Relative dirs resolve against the project root; an absolute dir gets a
// store rooted at the dir itself.
func dirStore(root *storage.FS, dir string) (*storage.FS, string, error) {
	if !filepath.IsAbs(dir) {
		return root, dir, nil
	}
	s, err := storage.NewFS(dir)
	if err != nil {
		return nil, "", err
	}
	return s, ".", nil
}

// fileStore is dirStore for the directory holding path.
func fileStore(root *storage.FS, path string) (*storage.FS, string, error) {
	s, dir, err := dirStore(root, filepath.Dir(path))
	if err != nil {
		return nil, "", err
	}
	return s, filepath.Join(dir, filepath.Base(path)), nil
}
