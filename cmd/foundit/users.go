package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/techtitans/foundit/internal/cli"
)

func usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user profiles",
	}

	cmd.AddCommand(usersDeleteCmd())

	return cmd
}

func usersDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <email>",
		Short: "Delete a user profile and every report they filed",
		Long: `Delete a user profile along with every item whose contact matches
the profile's email or phone number. The deletion is atomic: either the
profile and all of its reports are removed, or nothing is.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			email := args[0]

			if !force {
				fmt.Printf("Delete user %s and all of their reports? Re-run with --force to confirm.\n", email)
				return nil
			}

			db, err := openStorage()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			if err := db.Migrate(ctx); err != nil {
				return err
			}

			deleted, err := db.DeleteUserData(ctx, email)
			if err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Deleted user %s and %d report(s)", email, deleted)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "skip confirmation")

	return cmd
}
