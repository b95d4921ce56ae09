package cli

import (
	"context"

	"github.com/handiism/mint-backgrounds/internal/tui"
	"github.com/urfave/cli/v3"
)

func cmdTUI() *cli.Command {
	flags, loadSettings := settingsFlags()

	return &cli.Command{
		Name:  "tui",
		Usage: "Run a sync inside an interactive terminal view",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			settings, err := loadSettings(c)
			if err != nil {
				return err
			}
			return tui.Run(ctx, settings)
		},
	}
}
