// Package iocache is the response cache layer. It stores serialized
// operation results keyed by a fingerprint of the operation parameters,
// with per-entry TTL expiry.
package iocache

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Dustyposa/github-stars-mcp-server/internal/contract"
	"github.com/Dustyposa/github-stars-mcp-server/schema"
)

// Manager owns the response cache store for the process.
type Manager struct {
	store   contract.CacheStore
	backend schema.CacheBackend
}

var _ contract.CacheManager = &Manager{} // Compile-time check

// NewManager builds a Manager for the configured backend.
func NewManager(backend schema.CacheBackend, connStr string) (*Manager, error) {
	var store contract.CacheStore
	var err error

	switch backend {
	case schema.MemoryBackend:
		store = NewMemoryStore()
	case schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend:
		store, err = NewSQLStore(backend, connStr)
	case schema.RedisBackend:
		store, err = NewRedisStore(connStr)
	case schema.NoneBackend:
		store = noopStore{}
	default:
		return nil, fmt.Errorf("unsupported cache backend: %s", backend)
	}
	if err != nil {
		return nil, err
	}

	return &Manager{store: store, backend: backend}, nil
}

// GetResponseStore returns the response cache store.
func (m *Manager) GetResponseStore() contract.CacheStore {
	return m.store
}

// Backend returns the configured backend name.
func (m *Manager) Backend() schema.CacheBackend {
	return m.backend
}

// Close releases the underlying store.
func (m *Manager) Close() error {
	return m.store.Close()
}

// Fingerprint derives a deterministic cache key from an operation name and
// its parameters. JSON marshaling of a map sorts keys, so equal parameter
// sets always hash identically.
func Fingerprint(op string, args map[string]any) string {
	encoded, err := json.Marshal(args)
	if err != nil {
		encoded = []byte(fmt.Sprintf("%v", args))
	}
	sum := sha256.Sum256(append([]byte(op+"\x00"), encoded...))
	return fmt.Sprintf("%x", sum)
}

// noopStore is the disabled-cache store. Reads always miss, writes vanish.
type noopStore struct{}

func (noopStore) Get(string) ([]byte, error) { return nil, contract.ErrCacheMiss }

func (noopStore) Set(string, []byte, time.Duration) error { return nil }

func (noopStore) Clear() (int64, error) { return 0, nil }

func (noopStore) GetStatus() (schema.CacheStatus, error) {
	return schema.CacheStatus{Backend: string(schema.NoneBackend)}, nil
}

func (noopStore) Close() error { return nil }
