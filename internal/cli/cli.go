package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/handiism/mint-backgrounds/internal/config"
	"github.com/handiism/mint-backgrounds/internal/model"
	"github.com/urfave/cli/v3"
)

// Version is the application version reported by --version.
var Version = "dev"

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var loggerCfg config.Logger
	logger := slog.Default()

	app := &cli.Command{
		Name:      "mint-backgrounds",
		Usage:     "Mirror Linux Mint wallpaper packages into per-release folders",
		Version:   Version,
		Flags:     loggerCfg.Flags(),
		Writer:    stdout,
		ErrWriter: stderr,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			configured, err := loggerCfg.Configure(c.Root().ErrWriter)
			if err != nil {
				return ctx, err
			}

			logger = configured
			slog.SetDefault(logger)
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdSync(),
			cmdList(),
			cmdTUI(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		logger.Error("CLI execution failed", slog.Any("error", err))
		return err
	}

	return nil
}

// settingsFlags binds the settings flags of a subcommand and returns a
// loader that merges them over the --config file.
func settingsFlags() ([]cli.Flag, func(c *cli.Command) (*config.Settings, error)) {
	var configPath string
	flagged := config.DefaultSettings()

	flags := append([]cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Settings file (.json or .toml)",
			Destination: &configPath,
			Sources:     cli.EnvVars("MINT_BG_CONFIG"),
		},
	}, flagged.Flags()...)

	load := func(c *cli.Command) (*config.Settings, error) {
		settings := config.DefaultSettings()
		if configPath != "" {
			var err error
			if settings, err = config.Load(configPath); err != nil {
				return nil, err
			}
		}
		settings.Override(c.IsSet, flagged)
		if err := settings.Validate(); err != nil {
			return nil, err
		}
		return settings, nil
	}

	return flags, load
}

// logProgress forwards pipeline events to logger.
func logProgress(ctx context.Context, logger *slog.Logger) model.ProgressFunc {
	return func(e model.ProgressEvent) {
		logger.LogAttrs(ctx, e.Level.SlogLevel(), e.Message, e.Attrs...)
	}
}
