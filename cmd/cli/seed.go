package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tunewave/backend/internal/database"
	"github.com/tunewave/backend/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the development database with realistic data",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := connect(); err != nil {
			return err
		}
		defer database.Close()

		seeder := seed.NewSeeder(database.DB)
		if err := seeder.SeedDev(); err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}

		fmt.Println("Database seeded")
		return nil
	},
}
