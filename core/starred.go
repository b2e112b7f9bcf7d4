package core

import (
	"context"

	"github.com/Dustyposa/github-stars-mcp-server/internal/contract"
	"github.com/Dustyposa/github-stars-mcp-server/schema"
)

// ListStarredRepositories returns one page of a user's starred repositories.
// The username is validated before any network call; cursor is the opaque
// pagination token from a previous page, or empty for the first page.
func (s *Service) ListStarredRepositories(ctx context.Context, username, cursor string) (*schema.StarredRepositoriesResponse, error) {
	validated, err := contract.ValidateUsername(username)
	if err != nil {
		return nil, err
	}

	page, err := s.ds.ListStarredPage(ctx, validated, cursor)
	if err != nil {
		return nil, schema.WrapAPIError("failed to list starred repositories", err)
	}

	s.log.Info().
		Str("username", validated).
		Int("returned", len(page.Repositories)).
		Int("total", page.TotalCount).
		Msg("listed starred repositories")

	return &schema.StarredRepositoriesResponse{
		Repositories: page.Repositories,
		TotalCount:   page.TotalCount,
		HasNextPage:  page.HasNextPage,
		EndCursor:    page.EndCursor,
	}, nil
}
