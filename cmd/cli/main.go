package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tunewave/backend/internal/config"
	"github.com/tunewave/backend/internal/database"
	"github.com/tunewave/backend/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "tunewave",
	Short: "Tunewave CLI - operational tooling for the Tunewave backend",
	Long: `Tunewave CLI provides direct database operations for operators:
seeding development data, promoting admins, and managing the
recommendation cache.`,
}

// connect loads config and opens the database for subcommands
func connect() error {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := logger.Initialize(cfg.LogLevel, "cli.log"); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Initialize(cfg.DatabaseURL, cfg.Environment); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	return database.Migrate()
}

func init() {
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(promoteAdminCmd)
	rootCmd.AddCommand(recommendationsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
