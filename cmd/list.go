package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/Dustyposa/github-stars-mcp-server/internal/outwriter"
)

var listCursor string

// listCmd lists one page of a user's starred repositories.
var listCmd = &cobra.Command{
	Use:   "list [username]",
	Short: "List a user's starred repositories",
	Long: `List one page of a GitHub user's starred repositories, most recently
starred first. Without a username, lists the authenticated user's stars.
Use --cursor to continue from a previous page.

Examples:
  # First page of octocat's stars
  github-stars list octocat

  # Your own stars
  github-stars list

  # Continue from a cursor, as JSON
  github-stars list octocat --cursor Y3Vyc29yOjEwMA== -o json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, args []string) error {
		var username string
		if len(args) == 1 {
			username = args[0]
		}
		start := time.Now()
		resp, err := service.ListStarredRepositories(rootCtx, username, listCursor)
		if err != nil {
			return err
		}
		return outwriter.WriteRepositories(resp, cfg, time.Since(start))
	},
}

func init() {
	listCmd.Flags().StringVar(&listCursor, "cursor", "", "Pagination cursor from a previous page")
}
