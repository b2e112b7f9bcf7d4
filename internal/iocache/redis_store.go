package iocache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Dustyposa/github-stars-mcp-server/internal/contract"
	"github.com/Dustyposa/github-stars-mcp-server/schema"
)

// redisKeyPrefix namespaces cache entries so Clear never touches keys owned
// by other applications sharing the Redis instance.
const redisKeyPrefix = "stars:"

// RedisStore is a cache store backed by Redis. TTL expiry is delegated to
// Redis itself.
type RedisStore struct {
	client *redis.Client
}

var _ contract.CacheStore = &RedisStore{} // Compile-time check

// NewRedisStore connects to the Redis instance at addr (host:port form).
func NewRedisStore(addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis cache at %q: %w", addr, err)
	}
	return &RedisStore{client: client}, nil
}

// Get returns the value for key, or contract.ErrCacheMiss when absent.
func (rs *RedisStore) Get(key string) ([]byte, error) {
	value, err := rs.client.Get(context.Background(), redisKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, contract.ErrCacheMiss
		}
		return nil, err
	}
	return value, nil
}

// Set stores value under key with the given TTL.
func (rs *RedisStore) Set(key string, value []byte, ttl time.Duration) error {
	return rs.client.Set(context.Background(), redisKeyPrefix+key, value, ttl).Err()
}

// Clear removes all entries under the application prefix and returns how
// many were dropped.
func (rs *RedisStore) Clear() (int64, error) {
	ctx := context.Background()
	var removed int64
	iter := rs.client.Scan(ctx, 0, redisKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		n, err := rs.client.Del(ctx, iter.Val()).Result()
		if err != nil {
			return removed, err
		}
		removed += n
	}
	if err := iter.Err(); err != nil {
		return removed, err
	}
	return removed, nil
}

// GetStatus reports the entry count under the application prefix.
func (rs *RedisStore) GetStatus() (schema.CacheStatus, error) {
	status := schema.CacheStatus{
		Backend: string(schema.RedisBackend),
	}

	ctx := context.Background()
	if err := rs.client.Ping(ctx).Err(); err != nil {
		return status, err
	}
	status.Connected = true

	iter := rs.client.Scan(ctx, 0, redisKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		status.TotalEntries++
	}
	if err := iter.Err(); err != nil {
		return status, err
	}
	return status, nil
}

// Close closes the Redis connection.
func (rs *RedisStore) Close() error {
	return rs.client.Close()
}
