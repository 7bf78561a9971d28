package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/techtitans/foundit/internal/cli"
	"github.com/techtitans/foundit/internal/model"
	"github.com/techtitans/foundit/internal/service"
)

func itemsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "List and manage reported items",
	}

	cmd.AddCommand(itemsListCmd())
	cmd.AddCommand(itemsResolveCmd())
	cmd.AddCommand(itemsDeleteCmd())

	return cmd
}

func itemsListCmd() *cobra.Command {
	var (
		itemType string
		campus   string
		category string
		all      bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List open items",
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

			filter := service.ItemFilter{
				Type:     model.ReportType(itemType),
				Campus:   campus,
				Category: category,
			}
			if !all {
				filter.Status = model.StatusOpen
			}

			items, err := db.ListItems(ctx, filter)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No items match."))
				return nil
			}

			for i := range items {
				item := &items[i]
				status := string(item.Status)
				if item.Status == model.StatusResolved {
					status = cli.SubtleStyle.Render(status)
				}
				fmt.Printf("%s  %-5s  %-10s  %-10s  %s  %s\n",
					item.ID, item.Type, item.Campus, item.Category, status, item.Description)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&itemType, "type", "", "filter by report type (lost or found)")
	cmd.Flags().StringVar(&campus, "campus", "", "filter by campus")
	cmd.Flags().StringVar(&category, "category", "", "filter by category")
	cmd.Flags().BoolVar(&all, "all", false, "include resolved items")

	return cmd
}

func itemsResolveCmd() *cobra.Command {
	var note string

	cmd := &cobra.Command{
		Use:   "resolve <item-id>",
		Short: "Mark an item as resolved",
		Args:  cobra.ExactArgs(1),
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

			if err := db.ResolveItem(ctx, args[0], note); err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render("✓ Item resolved"))
			return nil
		},
	}

	cmd.Flags().StringVar(&note, "note", "", "optional resolution note")

	return cmd
}

func itemsDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <item-id>",
		Short: "Delete an item report",
		Args:  cobra.ExactArgs(1),
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

			item, err := db.GetItem(ctx, args[0])
			if err != nil {
				return err
			}

			if !force {
				fmt.Printf("Delete %s item %q (%s)? Re-run with --force to confirm.\n",
					item.Type, item.ID, item.Description)
				return nil
			}

			if err := db.DeleteItem(ctx, item.ID); err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render("✓ Item deleted"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "skip confirmation")

	return cmd
}
