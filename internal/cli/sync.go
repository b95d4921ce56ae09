package cli

import (
	"context"
	"log/slog"

	"github.com/handiism/mint-backgrounds/internal/pipeline"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdSync() *cli.Command {
	var dryRun bool
	flags, loadSettings := settingsFlags()

	return &cli.Command{
		Name:    "sync",
		Aliases: []string{"s"},
		Usage:   "Download and extract every wallpaper package above the size threshold",
		Flags: append(flags, &cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "List and filter only; download nothing",
			Destination: &dryRun,
		}),
		Action: func(ctx context.Context, c *cli.Command) error {
			settings, err := loadSettings(c)
			if err != nil {
				return err
			}

			logger := slog.Default()
			driver, err := pipeline.NewDriver(settings, logProgress(ctx, logger))
			if err != nil {
				return err
			}

			if dryRun {
				plan, err := driver.Plan(ctx)
				if err != nil {
					return err
				}
				printPlan(c.Root().Writer, plan, settings.PackagePrefix, false)
				return nil
			}

			logger.Info("Starting sync",
				slog.String("run_id", driver.RunID()),
				slog.String("base_url", settings.BaseURL),
				slog.String("output", settings.OutputDir),
				slog.Int64("min_size_bytes", settings.MinSizeBytes),
			)

			summary, err := driver.Run(ctx)
			if err != nil {
				return err
			}
			printSummary(c.Root().Writer, summary)

			if settings.SummaryPath != "" {
				if err := pipeline.WriteSummary(settings.SummaryPath, summary); err != nil {
					return goerr.Wrap(err, "failed to save summary")
				}
				logger.Info("Summary written", slog.String("path", settings.SummaryPath))
			}
			return nil
		},
	}
}
