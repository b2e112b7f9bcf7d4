package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Dustyposa/github-stars-mcp-server/internal/mcp"
)

// serveCmd starts the MCP server on stdio.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the GitHub stars MCP server",
	Long: `Launch an MCP server that lets AI agents list, enrich and analyze
starred repositories via standard tools.

The protocol runs on stdio, so all logs go to stderr.`,
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		log.Info().Str("version", rootCmd.Version).Msg("starting MCP server on stdio")
		return mcp.StartMCPServer(rootCtx, service, cacheManager, log)
	},
}
