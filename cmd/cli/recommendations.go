package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tunewave/backend/internal/config"
	"github.com/tunewave/backend/internal/database"
	"github.com/tunewave/backend/internal/models"
	"github.com/tunewave/backend/internal/recommendations"
)

var recommendationsCmd = &cobra.Command{
	Use:   "recommendations",
	Short: "Manage the recommendation cache",
}

var invalidateCmd = &cobra.Command{
	Use:   "invalidate <user-id>",
	Short: "Drop a user's cached recommendations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := connect(); err != nil {
			return err
		}
		defer database.Close()

		var userID uint
		if _, err := fmt.Sscanf(args[0], "%d", &userID); err != nil {
			return fmt.Errorf("invalid user id %q", args[0])
		}

		engine := recommendations.NewEngine(database.DB, config.DefaultRecommendationConfig())
		if err := engine.Invalidate(context.Background(), userID); err != nil {
			return err
		}

		fmt.Printf("Cache invalidated for user %d\n", userID)
		return nil
	},
}

var recomputeCmd = &cobra.Command{
	Use:   "recompute <user-id>",
	Short: "Force a fresh recommendation computation for a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := connect(); err != nil {
			return err
		}
		defer database.Close()

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		var userID uint
		if len(args) > 0 {
			if _, err := fmt.Sscanf(args[0], "%d", &userID); err != nil {
				return fmt.Errorf("invalid user id %q", args[0])
			}
		}
		if userID == 0 {
			return fmt.Errorf("user id is required")
		}

		engine := recommendations.NewEngine(database.DB, cfg.Recommendations)
		tracks, err := engine.Compute(context.Background(), userID, cfg.Recommendations.DefaultLimit, true)
		if err != nil {
			return err
		}

		fmt.Printf("Computed %d recommendations for user %d:\n", len(tracks), userID)
		for i, track := range tracks {
			genre := ""
			if track.Genre != nil {
				genre = " [" + *track.Genre + "]"
			}
			fmt.Printf("%3d. %s%s\n", i+1, track.Title, genre)
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show recommendation cache statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := connect(); err != nil {
			return err
		}
		defer database.Close()

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		var total, stale int64
		if err := database.DB.Model(&models.RecommendationCache{}).Count(&total).Error; err != nil {
			return err
		}
		cutoff := time.Now().UTC().Add(-cfg.Recommendations.CacheTTL)
		err = database.DB.Model(&models.RecommendationCache{}).
			Where("generated_at < ?", cutoff).
			Count(&stale).Error
		if err != nil {
			return err
		}

		fmt.Printf("Cache rows: %d (%d stale)\n", total, stale)
		return nil
	},
}

func init() {
	recommendationsCmd.AddCommand(invalidateCmd)
	recommendationsCmd.AddCommand(recomputeCmd)
	recommendationsCmd.AddCommand(statsCmd)
}
