package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/techtitans/foundit/internal/cli"
	"github.com/techtitans/foundit/internal/matcher"
)

func matchesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "matches <item-id>",
		Short: "Browse match candidates for an item",
		Long: `Browse match candidates for an existing item. Uses a relaxed filter so
that a wrong category tag never hides a real match: candidates sharing a
significant keyword are listed first, then everything open on the same
campus. Read-only; no match record is created.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			db, err := openStorage()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			if err := db.Migrate(ctx); err != nil {
				return err
			}

			engine := matcher.NewWithConfig(db, nil, nil, matcherConfig())

			candidates, err := engine.FindMatches(ctx, args[0])
			if err != nil {
				return err
			}

			if len(candidates) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No candidates found."))
				return nil
			}

			fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("%d candidate(s)", len(candidates))))
			for _, candidate := range candidates {
				fmt.Printf("%s %s\n", cli.LabelStyle.Render("["+string(candidate.Label)+"]"), cli.BoldStyle.Render(candidate.Item.ID))
				fmt.Printf("  %s\n", candidate.Item.Description)
				if candidate.Item.Location != "" {
					fmt.Printf("  Location: %s\n", candidate.Item.Location)
				}
				fmt.Printf("  Contact:  %s (%s)\n", candidate.Email, candidate.ContactType)
			}
			return nil
		},
	}
}
