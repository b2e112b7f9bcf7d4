package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Dustyposa/github-stars-mcp-server/schema"
)

// Default values for configuration.
const (
	DefaultRequestTimeout = 30 * time.Second
	DefaultCacheTTL       = 30 * time.Minute
	DefaultLogLevel       = "info"
)

// Config holds the runtime configuration for the server and CLI.
// This struct remains the "final, validated" config.
type Config struct {
	Token           string // Please use env var as this is plaintext
	MaxRepositories int
	Concurrency     int
	RequestTimeout  time.Duration
	CacheTTL        time.Duration
	LogLevel        string

	CacheBackend schema.CacheBackend
	CacheConnect string // Please use env var as this is plaintext

	Output     schema.OutputMode
	OutputFile string
	UseColors  bool
	Width      int // Terminal width override (0 = auto-detect)
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	Token           string `mapstructure:"token"`
	MaxRepositories int    `mapstructure:"max-repositories"`
	Concurrency     int    `mapstructure:"concurrency"`
	RequestTimeout  string `mapstructure:"request-timeout"`
	CacheTTL        string `mapstructure:"cache-ttl"`
	LogLevel        string `mapstructure:"log-level"`

	CacheBackend string `mapstructure:"cache-backend"`
	CacheConnect string `mapstructure:"cache-connect"`

	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Color      string `mapstructure:"color"`
	Width      int    `mapstructure:"width"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processDurations(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfig(cfg, input); err != nil {
		return err
	}
	return nil
}

// validateSimpleInputs processes and validates all non-backend fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Token = strings.TrimSpace(input.Token)
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.MaxRepositories < 1 || input.MaxRepositories > schema.MaxRepositoryCap {
		return fmt.Errorf("max-repositories must be between 1 and %d (received %d)",
			schema.MaxRepositoryCap, input.MaxRepositories)
	}
	cfg.MaxRepositories = input.MaxRepositories

	if input.Concurrency < 1 || input.Concurrency > schema.MaxConcurrency {
		return fmt.Errorf("concurrency must be between 1 and %d (received %d)",
			schema.MaxConcurrency, input.Concurrency)
	}
	cfg.Concurrency = input.Concurrency

	cfg.LogLevel = strings.ToLower(input.LogLevel)
	switch cfg.LogLevel {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level '%s'. must be trace, debug, info, warn, error", input.LogLevel)
	}

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be table, json", input.Output)
	}

	return nil
}

// processDurations parses the duration-valued fields.
func processDurations(cfg *Config, input *ConfigRawInput) error {
	cfg.RequestTimeout = DefaultRequestTimeout
	if input.RequestTimeout != "" {
		d, err := time.ParseDuration(input.RequestTimeout)
		if err != nil {
			return fmt.Errorf("invalid request-timeout '%s': %w", input.RequestTimeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("request-timeout must be positive (received %s)", d)
		}
		cfg.RequestTimeout = d
	}

	cfg.CacheTTL = DefaultCacheTTL
	if input.CacheTTL != "" {
		d, err := time.ParseDuration(input.CacheTTL)
		if err != nil {
			return fmt.Errorf("invalid cache-ttl '%s': %w", input.CacheTTL, err)
		}
		if d <= 0 {
			return fmt.Errorf("cache-ttl must be positive (received %s)", d)
		}
		cfg.CacheTTL = d
	}

	return nil
}

// validateBackendConfig validates the cache backend selection and connection string.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.CacheBackend = schema.CacheBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidCacheBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be memory, sqlite, mysql, postgres, redis, none", input.CacheBackend)
	}
	cfg.CacheConnect = input.CacheConnect
	return ValidateCacheConnectionString(cfg.CacheBackend, cfg.CacheConnect)
}

// ValidateCacheConnectionString validates the format of cache connection strings
// for the backends that require one.
func ValidateCacheConnectionString(backend schema.CacheBackend, connStr string) error {
	switch backend {
	case schema.MemoryBackend, schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") && !strings.HasPrefix(connStr, "postgres://") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' or use a postgres:// URL")
		}
	case schema.RedisBackend:
		if connStr == "" {
			return fmt.Errorf("cache-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, ":") {
			return fmt.Errorf("Redis connection string must be in host:port form")
		}
	}
	return nil
}

// GetCacheDBFilePath returns the default path to the SQLite DB file for the
// response cache.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".github_stars_cache.db"
	}
	return filepath.Join(homeDir, ".github_stars_cache.db")
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. An empty path means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
