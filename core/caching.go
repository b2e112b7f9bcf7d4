package core

import (
	"encoding/json"

	"github.com/Dustyposa/github-stars-mcp-server/internal/iocache"
)

// cachedCall wraps an expensive operation with the response cache. Cache
// failures on either side degrade to plain computation, never to a request
// failure.
func cachedCall[T any](s *Service, op string, args map[string]any, compute func() (*T, error)) (*T, error) {
	if s.cache == nil {
		return compute()
	}
	store := s.cache.GetResponseStore()
	key := iocache.Fingerprint(op, args)

	if data, err := store.Get(key); err == nil {
		var result T
		if err := json.Unmarshal(data, &result); err == nil {
			s.log.Debug().Str("op", op).Msg("response cache hit")
			return &result, nil
		}
	}

	result, err := compute()
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(result); err == nil {
		if err := store.Set(key, data, s.cacheTTL); err != nil {
			s.log.Warn().Err(err).Str("op", op).Msg("response cache write failed")
		}
	}
	return result, nil
}
