// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"errors"
	"time"

	"github.com/Dustyposa/github-stars-mcp-server/schema"
)

// RepositoryDataSource defines the GitHub queries the core consumes.
// This allows the core logic to be tested without a real GraphQL endpoint.
type RepositoryDataSource interface {
	// ListStarredPage returns one page of starred repositories. An empty
	// username means the currently authenticated identity. cursor is the
	// opaque pagination token from the previous page, or empty for the first.
	ListStarredPage(ctx context.Context, username, cursor string) (*schema.StarredPage, error)

	// GetCurrentUser returns the authenticated user, or nil when the token
	// resolves to no user.
	GetCurrentUser(ctx context.Context) (*schema.UserInfo, error)

	// GetReadme fetches the README for a single repository. The identifier is
	// either an opaque repository id or an "owner/name" string.
	GetReadme(ctx context.Context, repoID string) (*schema.ReadmeResult, error)
}

// BulkDetailSource is the optional bulk-fetch capability of a data source.
// When a data source implements it, the batch fetcher issues chunked bulk
// queries instead of per-item calls.
type BulkDetailSource interface {
	// GetReadmesBulk returns detail records keyed by repository id. Ids whose
	// lookup failed are absent from the map; a transport-level failure of the
	// bulk call itself returns an error.
	GetReadmesBulk(ctx context.Context, repoIDs []string) (map[string]schema.RepositoryDetails, error)
}

// ErrCacheMiss is returned by CacheStore.Get when the key is absent or its
// entry has expired.
var ErrCacheMiss = errors.New("cache miss")

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetResponseStore() CacheStore
}

// CacheStore defines the interface for response cache storage. Entries are
// whole-value replacements, so last-writer-wins is sufficient under
// concurrent access.
type CacheStore interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte, ttl time.Duration) error
	Clear() (int64, error)
	GetStatus() (schema.CacheStatus, error)
	Close() error
}
