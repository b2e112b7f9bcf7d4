package core

import (
	"context"

	"github.com/Dustyposa/github-stars-mcp-server/schema"
)

// collectStarred walks the starred-repository pages for username until
// maxRepos entries are accumulated or the pages run out. Duplicate ids keep
// their first occurrence; insertion order is preserved. Any page error
// aborts the walk, no partial result is returned.
func (s *Service) collectStarred(ctx context.Context, username string, maxRepos int) ([]schema.Repository, int, error) {
	seen := make(map[string]struct{}, maxRepos)
	collected := make([]schema.Repository, 0, maxRepos)

	cursor := ""
	totalCount := 0
	for {
		page, err := s.ds.ListStarredPage(ctx, username, cursor)
		if err != nil {
			return nil, 0, schema.WrapAPIError("failed to paginate starred repositories", err)
		}
		totalCount = page.TotalCount

		for _, repo := range page.Repositories {
			if _, dup := seen[repo.RepoID]; dup {
				continue
			}
			seen[repo.RepoID] = struct{}{}
			collected = append(collected, repo)
			if len(collected) >= maxRepos {
				s.log.Debug().
					Str("username", username).
					Int("collected", len(collected)).
					Msg("pagination stopped at repository cap")
				return collected, totalCount, nil
			}
		}

		if !page.HasNextPage {
			return collected, totalCount, nil
		}
		cursor = page.EndCursor
	}
}
