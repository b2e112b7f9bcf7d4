package core

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/Dustyposa/github-stars-mcp-server/internal/contract"
	"github.com/Dustyposa/github-stars-mcp-server/schema"
)

// GetRepositoryDetails fetches the README record for a single repository.
// The identifier may be an "owner/name" string or an opaque node id.
func (s *Service) GetRepositoryDetails(ctx context.Context, repoID string) (*schema.RepositoryDetails, error) {
	validated, err := contract.ValidateRepoIDs([]string{repoID}, 1)
	if err != nil {
		return nil, err
	}

	readme, err := s.ds.GetReadme(ctx, validated[0])
	if err != nil {
		return nil, schema.WrapAPIError("failed to fetch repository details", err)
	}
	return &schema.RepositoryDetails{
		ReadmeContent: readme.Content,
		HasReadme:     readme.HasReadme,
	}, nil
}

// GetBatchRepositoryDetails fetches README records for up to MaxBatchSize
// repositories. Individual failures are logged and omitted from the result;
// the call fails as a whole on invalid input, context cancellation, or when
// the bulk transport produced nothing at all.
func (s *Service) GetBatchRepositoryDetails(ctx context.Context, repoIDs []string, concurrency int) (*schema.BatchDetailsResponse, error) {
	validated, err := contract.ValidateRepoIDs(repoIDs, schema.MaxBatchSize)
	if err != nil {
		return nil, err
	}
	workers, err := contract.NormalizeConcurrency(concurrency)
	if err != nil {
		return nil, err
	}

	details, err := s.fetchDetails(ctx, validated, workers)
	if err != nil {
		return nil, err
	}
	return &schema.BatchDetailsResponse{Data: details}, nil
}

// fetchDetails resolves README records for the given ids. Opaque node ids go
// out in chunked bulk queries when the data source supports them; "owner/name"
// identifiers always take the per-item path, since bulk node lookups cannot
// resolve that form.
func (s *Service) fetchDetails(ctx context.Context, repoIDs []string, concurrency int) (map[string]schema.RepositoryDetails, error) {
	bulk, ok := s.ds.(contract.BulkDetailSource)
	if !ok {
		return s.fetchDetailsConcurrent(ctx, repoIDs, concurrency)
	}

	var nodeIDs, namedIDs []string
	for _, id := range repoIDs {
		if strings.Contains(id, "/") {
			namedIDs = append(namedIDs, id)
		} else {
			nodeIDs = append(nodeIDs, id)
		}
	}

	details := make(map[string]schema.RepositoryDetails, len(repoIDs))
	if len(nodeIDs) > 0 {
		bulkDetails, err := s.fetchDetailsBulk(ctx, bulk, nodeIDs)
		if err != nil {
			return nil, err
		}
		for id, d := range bulkDetails {
			details[id] = d
		}
	}
	if len(namedIDs) > 0 {
		namedDetails, err := s.fetchDetailsConcurrent(ctx, namedIDs, concurrency)
		if err != nil {
			return nil, err
		}
		for id, d := range namedDetails {
			details[id] = d
		}
	}
	return details, nil
}

// fetchDetailsBulk resolves node ids in chunked bulk queries. A failed chunk
// is logged and skipped as long as another chunk succeeded; when every chunk
// fails the whole call fails, so a transport outage is never reported as an
// empty success.
func (s *Service) fetchDetailsBulk(ctx context.Context, bulk contract.BulkDetailSource, repoIDs []string) (map[string]schema.RepositoryDetails, error) {
	details := make(map[string]schema.RepositoryDetails, len(repoIDs))
	var firstErr error
	succeeded := 0
	for start := 0; start < len(repoIDs); start += schema.DetailChunkSize {
		end := min(start+schema.DetailChunkSize, len(repoIDs))
		chunk, err := bulk.GetReadmesBulk(ctx, repoIDs[start:end])
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.log.Warn().Err(err).
				Int("chunk_start", start).
				Int("chunk_size", end-start).
				Msg("bulk detail chunk failed")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		succeeded++
		for id, d := range chunk {
			details[id] = d
		}
	}
	if succeeded == 0 && firstErr != nil {
		return nil, schema.WrapAPIError("bulk detail fetch failed", firstErr)
	}
	return details, nil
}

func (s *Service) fetchDetailsConcurrent(ctx context.Context, repoIDs []string, concurrency int) (map[string]schema.RepositoryDetails, error) {
	sem := semaphore.NewWeighted(int64(concurrency))
	details := make(map[string]schema.RepositoryDetails, len(repoIDs))

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, id := range repoIDs {
		if err := sem.Acquire(ctx, 1); err != nil {
			// Context canceled; stop launching and wait for in-flight work
			break
		}
		wg.Add(1)
		go func(repoID string) {
			defer wg.Done()
			defer sem.Release(1)

			readme, err := s.ds.GetReadme(ctx, repoID)
			if err != nil {
				s.log.Warn().Err(err).Str("repo_id", repoID).Msg("detail fetch failed")
				return
			}
			mu.Lock()
			details[repoID] = schema.RepositoryDetails{
				ReadmeContent: readme.Content,
				HasReadme:     readme.HasReadme,
			}
			mu.Unlock()
		}(id)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return details, nil
}
