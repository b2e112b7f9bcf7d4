package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/Dustyposa/github-stars-mcp-server/internal/outwriter"
	"github.com/Dustyposa/github-stars-mcp-server/schema"
)

// detailsCmd fetches README details for one or more repositories.
var detailsCmd = &cobra.Command{
	Use:   "details <repo-id>...",
	Short: "Fetch README details for repositories",
	Long: `Fetch README availability and content size for one or more
repositories, identified as "owner/name" or by repository id.

Repositories that fail to resolve are omitted from the result.

Examples:
  # Single repository
  github-stars details golang/go

  # Several at once, as JSON
  github-stars details golang/go rust-lang/rust -o json`,
	Args:    cobra.RangeArgs(1, schema.MaxPageSize),
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, args []string) error {
		start := time.Now()
		resp, err := service.GetBatchRepositoryDetails(rootCtx, args, cfg.Concurrency)
		if err != nil {
			return err
		}
		return outwriter.WriteDetails(resp, args, cfg, time.Since(start))
	},
}
