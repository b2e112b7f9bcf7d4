package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/Dustyposa/github-stars-mcp-server/internal/export"
	"github.com/Dustyposa/github-stars-mcp-server/internal/outwriter"
)

var bundleExportFile string

// bundleCmd builds the full starred-repository analysis for a user.
var bundleCmd = &cobra.Command{
	Use:   "bundle [username]",
	Short: "Build a starred-repository analysis bundle",
	Long: `Collect a user's starred repositories, enrich them with README
content, and aggregate language, topic and star statistics. Without a
username, analyzes the authenticated user's stars.

Examples:
  # Summary tables for octocat's stars
  github-stars bundle octocat

  # Full bundle as JSON, capped at 50 repositories
  github-stars bundle octocat --max-repositories 50 -o json

  # Export the flattened bundle to Parquet
  github-stars bundle octocat --export-file stars.parquet`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, args []string) error {
		var username string
		if len(args) == 1 {
			username = args[0]
		}
		start := time.Now()
		bundle, err := service.BuildAnalysisBundle(rootCtx, username, cfg.MaxRepositories, cfg.Concurrency)
		if err != nil {
			return err
		}

		if bundleExportFile != "" {
			if err := export.WriteBundleParquet(bundle, bundleExportFile); err != nil {
				return err
			}
			log.Info().Str("path", bundleExportFile).Msg("exported bundle to parquet")
		}
		return outwriter.WriteBundle(bundle, cfg, time.Since(start))
	},
}

func init() {
	bundleCmd.Flags().StringVar(&bundleExportFile, "export-file", "", "Write the flattened bundle to this Parquet file")
}
