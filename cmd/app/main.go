package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/deckbuild/internal"
	"github.com/starford/deckbuild/internal/apperr"
	pkgconfig "github.com/starford/deckbuild/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	configPath := cmd.Root().String("config")

	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadOptional(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func build(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	res, err := internal.Build(ctx, internal.WithConfig(cfg))
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Built %s and %s (%d cards, %d decks)\n", res.Versioned, res.Canonical, res.Cards, res.Decks)
	return nil
}

func inspect(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return internal.Inspect(ctx, internal.WithConfig(cfg))
}

func bump(ctx context.Context, cmd *cli.Command) error {
	kind := cmd.Args().First()
	if kind == "" {
		return fmt.Errorf("usage: %s bump [patch|minor|major]", cmd.Root().Name)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	v, err := internal.Bump(ctx, kind, internal.WithConfig(cfg))
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, v.String())
	return nil
}

func tag(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.IsSet("push") {
		cfg.Release.Push = cmd.Bool("push")
	}
	name, err := internal.Tag(ctx, internal.WithConfig(cfg))
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Tagged %s\n", name)
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:   "deckbuild",
		Usage:  "Build Anki deck packages from tab/comma-delimited text exports",
		Action: build,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file (optional)",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("DECKBUILD_CONFIG"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "build",
				Usage:  "Write the versioned and canonical .apkg packages",
				Action: build,
			},
			{
				Name:   "inspect",
				Usage:  "Show what a build would package without writing it",
				Action: inspect,
			},
			{
				Name:      "bump",
				Usage:     "Increment the version file",
				ArgsUsage: "patch|minor|major",
				Action:    bump,
			},
			{
				Name:  "tag",
				Usage: "Create the git tag for the current version",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "push",
						Usage: "Push tags after creating them (overrides release.push)",
					},
				},
				Action: tag,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(apperr.ExitCode(err))
	}
}
