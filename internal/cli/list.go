package cli

import (
	"context"
	"log/slog"

	"github.com/handiism/mint-backgrounds/internal/pipeline"
	"github.com/urfave/cli/v3"
)

func cmdList() *cli.Command {
	var all bool
	flags, loadSettings := settingsFlags()

	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "Show the archives on the package index and whether they pass the size filter",
		Flags: append(flags, &cli.BoolFlag{
			Name:        "all",
			Aliases:     []string{"a"},
			Usage:       "Include archives below the size threshold",
			Destination: &all,
		}),
		Action: func(ctx context.Context, c *cli.Command) error {
			settings, err := loadSettings(c)
			if err != nil {
				return err
			}

			driver, err := pipeline.NewDriver(settings, logProgress(ctx, slog.Default()))
			if err != nil {
				return err
			}

			plan, err := driver.Plan(ctx)
			if err != nil {
				return err
			}
			printPlan(c.Root().Writer, plan, settings.PackagePrefix, all)
			return nil
		},
	}
}
