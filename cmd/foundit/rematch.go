package main

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/techtitans/foundit/internal/cli"
	"github.com/techtitans/foundit/internal/matcher"
)

func rematchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rematch",
		Short: "Re-run matching over every open item without a match",
		Long: `Re-run the creation-time matching pipeline over every open item that
has no match record yet. Useful after new items arrive in bulk or after
changing the matching thresholds.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			db, err := openStorage()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			if err := db.Migrate(ctx); err != nil {
				return err
			}

			engine := matcher.NewWithConfig(db, createReasoner(), createNotifier(), matcherConfig())

			var bar *progressbar.ProgressBar
			progress := func(current, total int, _ string) {
				if bar == nil {
					bar = progressbar.NewOptions(total,
						progressbar.OptionSetWriter(os.Stderr),
						progressbar.OptionEnableColorCodes(true),
						progressbar.OptionShowCount(),
						progressbar.OptionShowElapsedTimeOnFinish(),
						progressbar.OptionSetWidth(40),
						progressbar.OptionSetDescription("[cyan][bold]Rematching items...[reset]"),
						progressbar.OptionSetTheme(progressbar.Theme{
							Saucer:        "[green]=[reset]",
							SaucerHead:    "[green]>[reset]",
							SaucerPadding: " ",
							BarStart:      "[",
							BarEnd:        "]",
						}),
						progressbar.OptionOnCompletion(func() {
							fmt.Fprintln(os.Stderr)
						}),
					)
				}
				_ = bar.Set(current)
			}

			matched, err := engine.Rematch(ctx, progress)
			if err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Rematch complete: %d new match(es)", matched)))
			return nil
		},
	}
}
