package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tunewave/backend/internal/database"
	"github.com/tunewave/backend/internal/models"
)

var promoteAdminCmd = &cobra.Command{
	Use:   "promote-admin <email>",
	Short: "Grant admin rights to an existing account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := connect(); err != nil {
			return err
		}
		defer database.Close()

		email := args[0]
		result := database.DB.Model(&models.User{}).
			Where("LOWER(email) = LOWER(?)", email).
			Update("is_admin", true)
		if result.Error != nil {
			return fmt.Errorf("failed to promote user: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("no account found for %s", email)
		}

		fmt.Printf("%s is now an admin\n", email)
		return nil
	},
}
