// Package core implements the starred-repository operations: listing,
// pagination, batch README enrichment and analysis bundle assembly.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Dustyposa/github-stars-mcp-server/internal/contract"
	"github.com/Dustyposa/github-stars-mcp-server/schema"
)

// Service wires the data source and cache behind the exposed operations.
// All collaborators are injected; Service holds no global state.
type Service struct {
	ds       contract.RepositoryDataSource
	cache    contract.CacheManager
	cacheTTL time.Duration
	log      zerolog.Logger
}

// NewService builds a Service. cache may be nil when response caching is
// disabled entirely.
func NewService(ds contract.RepositoryDataSource, cache contract.CacheManager, cacheTTL time.Duration, log zerolog.Logger) *Service {
	if cacheTTL <= 0 {
		cacheTTL = contract.DefaultCacheTTL
	}
	return &Service{ds: ds, cache: cache, cacheTTL: cacheTTL, log: log}
}

// HealthCheck reports API reachability and cache state.
func (s *Service) HealthCheck(ctx context.Context, version string) *schema.HealthStatus {
	health := &schema.HealthStatus{
		Status:       "healthy",
		Version:      version,
		CacheBackend: string(schema.NoneBackend),
	}

	if _, err := s.ds.GetCurrentUser(ctx); err != nil {
		health.Status = "degraded"
		s.log.Warn().Err(err).Msg("github api unreachable during health check")
	} else {
		health.GitHubAPIAvailable = true
	}

	if s.cache != nil {
		status, err := s.cache.GetResponseStore().GetStatus()
		if err != nil {
			health.Status = "degraded"
			s.log.Warn().Err(err).Msg("cache store unreachable during health check")
		} else {
			health.CacheBackend = status.Backend
			health.CacheEntries = status.TotalEntries
		}
	}
	return health
}

// ClearCache drops all cached responses and returns how many were removed.
func (s *Service) ClearCache() (int64, error) {
	if s.cache == nil {
		return 0, nil
	}
	removed, err := s.cache.GetResponseStore().Clear()
	if err != nil {
		return 0, fmt.Errorf("failed to clear response cache: %w", err)
	}
	s.log.Info().Int64("removed", removed).Msg("cleared response cache")
	return removed, nil
}

// CurrentUser returns the authenticated GitHub user.
func (s *Service) CurrentUser(ctx context.Context) (*schema.UserInfo, error) {
	return s.ds.GetCurrentUser(ctx)
}
