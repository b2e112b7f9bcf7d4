package iocache

import (
	"sync"
	"time"

	"github.com/Dustyposa/github-stars-mcp-server/internal/contract"
	"github.com/Dustyposa/github-stars-mcp-server/schema"
)

// MemoryStore is an in-process cache store. Entries expire lazily on read.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value     []byte
	createdAt time.Time
	expiresAt time.Time
}

var _ contract.CacheStore = &MemoryStore{} // Compile-time check

// NewMemoryStore returns an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

// Get returns the value for key, or contract.ErrCacheMiss when the key is
// absent or expired. Expired entries are removed on access.
func (ms *MemoryStore) Get(key string) ([]byte, error) {
	ms.mu.RLock()
	entry, ok := ms.entries[key]
	ms.mu.RUnlock()

	if !ok {
		return nil, contract.ErrCacheMiss
	}
	if time.Now().After(entry.expiresAt) {
		ms.mu.Lock()
		delete(ms.entries, key)
		ms.mu.Unlock()
		return nil, contract.ErrCacheMiss
	}
	return entry.value, nil
}

// Set stores value under key for the given TTL.
func (ms *MemoryStore) Set(key string, value []byte, ttl time.Duration) error {
	now := time.Now()
	ms.mu.Lock()
	ms.entries[key] = memoryEntry{
		value:     value,
		createdAt: now,
		expiresAt: now.Add(ttl),
	}
	ms.mu.Unlock()
	return nil
}

// Clear removes all entries and returns how many were dropped.
func (ms *MemoryStore) Clear() (int64, error) {
	ms.mu.Lock()
	n := int64(len(ms.entries))
	ms.entries = make(map[string]memoryEntry)
	ms.mu.Unlock()
	return n, nil
}

// GetStatus reports entry counts and age bounds for live entries.
func (ms *MemoryStore) GetStatus() (schema.CacheStatus, error) {
	status := schema.CacheStatus{
		Backend:   string(schema.MemoryBackend),
		Connected: true,
	}

	now := time.Now()
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	for _, entry := range ms.entries {
		if now.After(entry.expiresAt) {
			continue
		}
		status.TotalEntries++
		if status.OldestEntryTime.IsZero() || entry.createdAt.Before(status.OldestEntryTime) {
			status.OldestEntryTime = entry.createdAt
		}
		if entry.createdAt.After(status.LastEntryTime) {
			status.LastEntryTime = entry.createdAt
		}
	}
	return status, nil
}

// Close is a no-op for the in-process store.
func (ms *MemoryStore) Close() error {
	return nil
}
