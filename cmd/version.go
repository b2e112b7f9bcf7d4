package cmd

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/Dustyposa/github-stars-mcp-server/schema"
)

// versionCmd prints build information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("github-stars %s (%s)\n", schema.Version, runtime.Version())
	},
}
