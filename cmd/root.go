package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Dustyposa/github-stars-mcp-server/core"
	"github.com/Dustyposa/github-stars-mcp-server/internal/contract"
	"github.com/Dustyposa/github-stars-mcp-server/internal/githubclient"
	"github.com/Dustyposa/github-stars-mcp-server/internal/iocache"
	"github.com/Dustyposa/github-stars-mcp-server/internal/logger"
	"github.com/Dustyposa/github-stars-mcp-server/schema"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg holds the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources
// (file, env, flags). Viper unmarshals into this struct.
var input = &contract.ConfigRawInput{}

// log is the process-wide logger, built during setup.
var log zerolog.Logger

// cacheManager is the response cache manager instance.
var cacheManager *iocache.Manager

// service is the operation layer shared by all commands.
var service *core.Service

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "github-stars",
	Short:              "Explore and analyze GitHub starred repositories.",
	Long:               `github-stars lists, enriches and analyzes a user's starred repositories, and serves the same operations to AI agents over MCP.`,
	Version:            schema.Version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Set environment variable prefix
	viper.SetEnvPrefix("GITHUB_STARS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("token", "")
	viper.SetDefault("max-repositories", schema.DefaultMaxRepositories)
	viper.SetDefault("concurrency", schema.DefaultConcurrency)
	viper.SetDefault("request-timeout", "")
	viper.SetDefault("cache-ttl", "")
	viper.SetDefault("log-level", contract.DefaultLogLevel)
	viper.SetDefault("cache-backend", schema.SQLiteBackend)
	viper.SetDefault("cache-connect", "")
	viper.SetDefault("output", schema.TableOut)
	viper.SetDefault("color", "yes")
}

// loadConfigFile handles config file loading logic common to all setup functions.
func loadConfigFile() error {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".github-stars")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	// Load config file if present
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// sharedSetup unmarshals config, runs validation and builds the service.
func sharedSetup(_ *cobra.Command, _ []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := loadConfigFile(); err != nil {
		return err
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Run all validation and complex parsing.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	// 4. Build the shared collaborators from the validated config.
	log = logger.New(cfg.LogLevel)

	client, err := githubclient.New(cfg.Token, log, githubclient.WithTimeout(cfg.RequestTimeout))
	if err != nil {
		return err
	}

	cacheManager, err = iocache.NewManager(cfg.CacheBackend, cfg.CacheConnect)
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	service = core.NewService(client, cacheManager, cfg.CacheTTL, log)
	return nil
}

// cacheSetup loads minimal configuration needed for cache operations.
// This avoids requiring a GitHub token for local cache management.
func cacheSetup(_ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.CacheBackend(viper.GetString("cache-backend"))
	connStr := viper.GetString("cache-connect")
	if err := contract.ValidateCacheConnectionString(backend, connStr); err != nil {
		return err
	}

	var err error
	cacheManager, err = iocache.NewManager(backend, connStr)
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	cfg.CacheBackend = backend
	cfg.CacheConnect = connStr
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
