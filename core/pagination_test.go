package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dustyposa/github-stars-mcp-server/schema"
)

// pagedSource scripts a multi-page data source keyed by cursor.
func pagedSource(pages map[string]*schema.StarredPage) func(string, string) (*schema.StarredPage, error) {
	return func(_, cursor string) (*schema.StarredPage, error) {
		page, ok := pages[cursor]
		if !ok {
			return nil, schema.NewAPIError("unexpected cursor %q", cursor)
		}
		return page, nil
	}
}

func TestCollectStarredDeduplicatesFirstWins(t *testing.T) {
	ds := &fakeDataSource{
		listFn: pagedSource(map[string]*schema.StarredPage{
			"": {
				Repositories: []schema.Repository{testRepo("R_1", 10), testRepo("R_2", 20)},
				TotalCount:   3,
				HasNextPage:  true,
				EndCursor:    "p2",
			},
			"p2": {
				// R_2 repeats across the page boundary
				Repositories: []schema.Repository{testRepo("R_2", 20), testRepo("R_3", 30)},
				TotalCount:   3,
				HasNextPage:  false,
			},
		}),
	}
	svc := newTestService(ds)

	repos, total, err := svc.collectStarred(context.Background(), "octocat", 100)
	require.NoError(t, err)

	assert.Equal(t, 3, total)
	require.Len(t, repos, 3)
	assert.Equal(t, "R_1", repos[0].RepoID)
	assert.Equal(t, "R_2", repos[1].RepoID)
	assert.Equal(t, "R_3", repos[2].RepoID)
}

func TestCollectStarredStopsAtCap(t *testing.T) {
	ds := &fakeDataSource{
		listFn: pagedSource(map[string]*schema.StarredPage{
			"": {
				Repositories: []schema.Repository{testRepo("R_1", 1), testRepo("R_2", 2)},
				HasNextPage:  true,
				EndCursor:    "p2",
			},
			"p2": {
				Repositories: []schema.Repository{testRepo("R_3", 3), testRepo("R_4", 4)},
				HasNextPage:  true,
				EndCursor:    "p3",
			},
		}),
	}
	svc := newTestService(ds)

	repos, _, err := svc.collectStarred(context.Background(), "octocat", 3)
	require.NoError(t, err)

	assert.Len(t, repos, 3)
	assert.Equal(t, "R_3", repos[2].RepoID)
	// The third page is never requested
	assert.Equal(t, int64(2), ds.listCalls.Load())
}

func TestCollectStarredPropagatesMidPaginationError(t *testing.T) {
	ds := &fakeDataSource{
		listFn: pagedSource(map[string]*schema.StarredPage{
			"": {
				Repositories: []schema.Repository{testRepo("R_1", 1)},
				HasNextPage:  true,
				EndCursor:    "p2",
			},
			// "p2" is missing, so the second page fails
		}),
	}
	svc := newTestService(ds)

	repos, _, err := svc.collectStarred(context.Background(), "octocat", 100)
	var ge *schema.APIError
	require.ErrorAs(t, err, &ge)
	assert.Nil(t, repos)
}

func TestCollectStarredEmpty(t *testing.T) {
	ds := &fakeDataSource{listFn: singlePage()}
	svc := newTestService(ds)

	repos, total, err := svc.collectStarred(context.Background(), "octocat", 100)
	require.NoError(t, err)
	assert.Empty(t, repos)
	assert.Zero(t, total)
}
