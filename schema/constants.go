package schema

// Version is the server version reported over MCP and by the CLI.
const Version = "1.0.0"

// Limits and defaults for the exposed operations.
const (
	// MaxBatchSize bounds the identifier list accepted by the batch detail
	// operation.
	MaxBatchSize = 100

	// MaxPageSize bounds the identifier list on narrower call sites, such as
	// the details CLI command.
	MaxPageSize = 50

	// DetailChunkSize is how many repository ids a single bulk detail query
	// may carry. Larger batches are split into chunks of this size.
	DetailChunkSize = 100

	// DefaultConcurrency is used when the caller does not supply a
	// concurrent_requests value.
	DefaultConcurrency = 10

	// MaxConcurrency is the ceiling for caller-supplied concurrency.
	MaxConcurrency = 20

	// DefaultMaxRepositories caps how many starred repositories pagination
	// accumulates when the caller does not ask for a specific amount.
	DefaultMaxRepositories = 100

	// MaxRepositoryCap is the ceiling for caller-supplied max_repositories.
	MaxRepositoryCap = 200

	// MaxUsernameLength is GitHub's username length limit.
	MaxUsernameLength = 39

	// TopLanguages and TopTopics truncate the respective distributions.
	TopLanguages = 10
	TopTopics    = 15
)

// CacheBackend identifies a response cache store implementation.
type CacheBackend string

// Supported cache backends.
const (
	MemoryBackend     CacheBackend = "memory"
	SQLiteBackend     CacheBackend = "sqlite"
	MySQLBackend      CacheBackend = "mysql"
	PostgreSQLBackend CacheBackend = "postgres"
	RedisBackend      CacheBackend = "redis"
	NoneBackend       CacheBackend = "none"
)

// ValidCacheBackends is the allow-list used during config validation.
var ValidCacheBackends = map[CacheBackend]struct{}{
	MemoryBackend:     {},
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	RedisBackend:      {},
	NoneBackend:       {},
}

// OutputMode selects the CLI output format.
type OutputMode string

// Supported output modes.
const (
	TableOut OutputMode = "table"
	JSONOut  OutputMode = "json"
)

// ValidOutputModes is the allow-list used during config validation.
var ValidOutputModes = map[OutputMode]struct{}{
	TableOut: {},
	JSONOut:  {},
}
