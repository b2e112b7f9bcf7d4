// Package cmd defines the command-line interface for github-stars.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Dustyposa/github-stars-mcp-server/internal/contract"
	"github.com/Dustyposa/github-stars-mcp-server/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(detailsCmd)
	rootCmd.AddCommand(bundleCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheStatusCmd)
	cacheCmd.AddCommand(cacheClearCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("config", "", "Path to a config file (defaults to .github-stars.yaml)")
	rootCmd.PersistentFlags().String("token", "", "GitHub token (prefer GITHUB_STARS_TOKEN env var)")
	rootCmd.PersistentFlags().Int("max-repositories", schema.DefaultMaxRepositories, "Repository cap for pagination (1-200)")
	rootCmd.PersistentFlags().IntP("concurrency", "c", schema.DefaultConcurrency, "Concurrent README fetches (1-20)")
	rootCmd.PersistentFlags().String("request-timeout", "", "Per-request HTTP timeout (e.g. 30s)")
	rootCmd.PersistentFlags().String("cache-ttl", "", "Response cache TTL (e.g. 30m)")
	rootCmd.PersistentFlags().String("log-level", contract.DefaultLogLevel, "Log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: memory, sqlite, mysql, postgres, redis, none")
	rootCmd.PersistentFlags().String("cache-connect", "", "Cache connection string for mysql/postgres/redis backends")
	rootCmd.PersistentFlags().StringP("output", "o", string(schema.TableOut), "Output format: table or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		panic(err)
	}
}
