package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/techtitans/foundit/internal/cli"
	"github.com/techtitans/foundit/internal/pairing"
)

func historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show reconstructed resolution history",
		Long: `Reconstruct the most likely lost/found pairs among resolved items.
The pairing is recomputed on every invocation (greedy first-fit over
items in creation order) and never persisted.`,
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

			resolved, err := db.ListResolvedItems(ctx)
			if err != nil {
				return err
			}

			history := pairing.BuildHistory(resolved)
			if len(history) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No resolved items yet."))
				return nil
			}

			fmt.Println(cli.TitleStyle.Render("Resolution history"))
			for _, entry := range history {
				if entry.IsPair() {
					fmt.Printf("%s %.0f%%\n", cli.LabelStyle.Render("[pair]"), entry.Score*100)
					fmt.Printf("  lost:  %s — %s\n", entry.Lost.ID, entry.Lost.Description)
					fmt.Printf("  found: %s — %s\n", entry.Found.ID, entry.Found.Description)
				} else {
					fmt.Printf("%s %s (%s) — %s\n", cli.SubtleStyle.Render("[single]"),
						entry.Item.ID, entry.Item.Type, entry.Item.Description)
				}
			}
			return nil
		},
	}
}
