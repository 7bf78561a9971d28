package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/techtitans/foundit/internal/cli"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply any pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := openStorage()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			if err := db.Migrate(cmd.Context()); err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render("✓ Database is up to date"))
			return nil
		},
	}
}
