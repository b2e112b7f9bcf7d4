package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// cacheCmd groups local response cache management commands.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the local response cache",
	Long: `Inspect or clear the response cache used to avoid repeated GitHub
API calls.

Examples:
  # Show cache status for the default sqlite backend
  github-stars cache status

  # Clear a redis-backed cache
  github-stars cache clear --cache-backend redis --cache-connect localhost:6379`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// cacheStatusCmd reports entry counts and age of the response cache.
var cacheStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Show response cache status",
	PreRunE: cacheSetup,
	RunE: func(cmd *cobra.Command, _ []string) error {
		defer cacheManager.Close()

		status, err := cacheManager.GetResponseStore().GetStatus()
		if err != nil {
			return fmt.Errorf("failed to read cache status: %w", err)
		}

		cmd.Printf("Backend:   %s\n", status.Backend)
		cmd.Printf("Connected: %t\n", status.Connected)
		cmd.Printf("Entries:   %d\n", status.TotalEntries)
		if status.TotalEntries > 0 {
			cmd.Printf("Oldest:    %s\n", status.OldestEntryTime.Format(time.RFC3339))
			cmd.Printf("Newest:    %s\n", status.LastEntryTime.Format(time.RFC3339))
		}
		return nil
	},
}

// cacheClearCmd removes all entries from the response cache.
var cacheClearCmd = &cobra.Command{
	Use:     "clear",
	Short:   "Clear the response cache",
	PreRunE: cacheSetup,
	RunE: func(cmd *cobra.Command, _ []string) error {
		defer cacheManager.Close()

		removed, err := cacheManager.GetResponseStore().Clear()
		if err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}

		cmd.Printf("Cleared %d cached entries from the %s backend.\n", removed, cacheManager.Backend())
		return nil
	},
}
