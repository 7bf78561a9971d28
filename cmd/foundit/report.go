package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/techtitans/foundit/internal/cli"
	"github.com/techtitans/foundit/internal/matcher"
	"github.com/techtitans/foundit/internal/model"
)

func reportCmd() *cobra.Command {
	var (
		reportType  string
		campus      string
		category    string
		description string
		location    string
		contact     string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Report a lost or found item",
		Long: `Report a lost or found item. The report is analyzed, stored, and
immediately run through the matching engine against open reports of the
opposite type.`,
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

			item := &model.Item{
				Type:        model.ReportType(reportType),
				Campus:      campus,
				Category:    category,
				Description: description,
				Location:    location,
				Contact:     contact,
			}

			record, err := engine.ReportItem(ctx, item)
			if err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Item reported (id %s)", item.ID)))

			if record != nil {
				fmt.Println(cli.TitleStyle.Render("Match found!"))
				fmt.Printf("  Matched item: %s\n", cli.BoldStyle.Render(record.MatchedItemID))
				fmt.Printf("  Confidence:   %d%%\n", record.Confidence)
				if record.Reason != "" {
					fmt.Printf("  Reason:       %s\n", record.Reason)
				}
			} else {
				fmt.Println(cli.SubtleStyle.Render("No confident match yet. Run 'foundit matches " + item.ID + "' to browse candidates."))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&reportType, "type", "", "report type: lost or found")
	cmd.Flags().StringVar(&campus, "campus", "", "campus where the item was lost or found")
	cmd.Flags().StringVar(&category, "category", "", "item category (electronic, id, keys, others)")
	cmd.Flags().StringVar(&description, "description", "", "free-text description of the item")
	cmd.Flags().StringVar(&location, "location", "", "where on campus, free text")
	cmd.Flags().StringVar(&contact, "contact", "", "contact email or phone number")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("campus")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("contact")

	return cmd
}
