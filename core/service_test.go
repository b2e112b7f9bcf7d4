package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dustyposa/github-stars-mcp-server/schema"
)

func TestListStarredRepositories(t *testing.T) {
	ds := &fakeDataSource{
		listFn: singlePage(testRepo("R_1", 100), testRepo("R_2", 50)),
	}
	svc := newTestService(ds)

	resp, err := svc.ListStarredRepositories(context.Background(), "octocat", "")
	require.NoError(t, err)

	assert.Equal(t, 2, resp.TotalCount)
	assert.Len(t, resp.Repositories, 2)
	assert.False(t, resp.HasNextPage)
}

func TestListStarredRepositoriesValidationSkipsNetwork(t *testing.T) {
	ds := &fakeDataSource{listFn: singlePage()}
	svc := newTestService(ds)

	for _, bad := range []string{"-octocat", "octo--cat", "octo cat"} {
		_, err := svc.ListStarredRepositories(context.Background(), bad, "")
		var ve *schema.ValidationError
		assert.ErrorAs(t, err, &ve, "input %q", bad)
	}
	assert.Equal(t, int64(0), ds.listCalls.Load())
}

func TestListStarredRepositoriesViewerFallback(t *testing.T) {
	var seenUsername string
	ds := &fakeDataSource{
		listFn: func(username, _ string) (*schema.StarredPage, error) {
			seenUsername = username
			return &schema.StarredPage{Repositories: []schema.Repository{testRepo("R_1", 5)}, TotalCount: 1}, nil
		},
	}
	svc := newTestService(ds)

	// An empty username queries the authenticated user's stars
	resp, err := svc.ListStarredRepositories(context.Background(), "  ", "")
	require.NoError(t, err)
	assert.Empty(t, seenUsername)
	assert.Equal(t, 1, resp.TotalCount)
}

func TestBuildAnalysisBundle(t *testing.T) {
	repoGo := testRepo("R_1", 10)
	repoGo.PrimaryLanguage = "Go"
	repoGo.RepositoryTopics = []string{"cli"}
	repoPy := testRepo("R_2", 30)
	repoPy.PrimaryLanguage = "Python"

	ds := &fakeDataSource{
		listFn: singlePage(repoGo, repoPy),
		readmeFn: func(repoID string) (*schema.ReadmeResult, error) {
			if repoID == "R_2" {
				return &schema.ReadmeResult{HasReadme: false}, nil
			}
			return &schema.ReadmeResult{Content: "# One", HasReadme: true}, nil
		},
	}
	svc := newTestService(ds)

	bundle, err := svc.BuildAnalysisBundle(context.Background(), "octocat", 0, 0)
	require.NoError(t, err)

	assert.Equal(t, "octocat", bundle.Username)
	assert.Equal(t, 2, bundle.TotalRepositories)
	require.Len(t, bundle.Repositories, 2)
	assert.Equal(t, "# One", bundle.Repositories[0].ReadmeContent)
	assert.True(t, bundle.Repositories[0].HasReadme)
	assert.False(t, bundle.Repositories[1].HasReadme)

	require.Len(t, bundle.LanguageDistribution, 2)
	assert.Equal(t, 50.0, bundle.LanguageDistribution[0].Percentage)
	require.Len(t, bundle.TopicDistribution, 1)
	assert.Equal(t, "cli", bundle.TopicDistribution[0].Name)

	assert.Equal(t, 40, bundle.StarStatistics.TotalStars)
	assert.Equal(t, 20.0, bundle.StarStatistics.MedianStars)

	assert.Equal(t, schema.ProcessingSummary{
		TotalRequested:   2,
		SucceededDetails: 2,
		WithReadme:       1,
		WithoutReadme:    1,
	}, bundle.ProcessingSummary)
	assert.False(t, bundle.AnalysisTimestamp.IsZero())
}

func TestBuildAnalysisBundleValidation(t *testing.T) {
	ds := &fakeDataSource{listFn: singlePage()}
	svc := newTestService(ds)
	ctx := context.Background()

	var ve *schema.ValidationError

	_, err := svc.BuildAnalysisBundle(ctx, "-octocat", 0, 0)
	require.ErrorAs(t, err, &ve)

	_, err = svc.BuildAnalysisBundle(ctx, "octocat", schema.MaxRepositoryCap+1, 0)
	require.ErrorAs(t, err, &ve)

	_, err = svc.BuildAnalysisBundle(ctx, "octocat", 0, -1)
	require.ErrorAs(t, err, &ve)

	assert.Equal(t, int64(0), ds.listCalls.Load())
}

func TestBuildAnalysisBundleViewerFallback(t *testing.T) {
	ds := &fakeDataSource{
		listFn:   singlePage(testRepo("R_1", 10)),
		readmeFn: readmeForAll("# Mine"),
		userFn: func() (*schema.UserInfo, error) {
			return &schema.UserInfo{Login: "octocat"}, nil
		},
	}
	svc := newTestService(ds)

	// The bundle names the authenticated user when no username is given
	bundle, err := svc.BuildAnalysisBundle(context.Background(), "", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "octocat", bundle.Username)
	assert.Equal(t, int64(1), ds.userCalls.Load())
}

func TestBuildAnalysisBundleCached(t *testing.T) {
	ds := &fakeDataSource{
		listFn:   singlePage(testRepo("R_1", 10)),
		readmeFn: readmeForAll("# Cached"),
	}
	svc := newCachedTestService(ds)
	ctx := context.Background()

	first, err := svc.BuildAnalysisBundle(ctx, "octocat", 0, 0)
	require.NoError(t, err)
	listCallsAfterFirst := ds.listCalls.Load()

	second, err := svc.BuildAnalysisBundle(ctx, "octocat", 0, 0)
	require.NoError(t, err)

	assert.Equal(t, listCallsAfterFirst, ds.listCalls.Load())
	assert.Equal(t, first.Username, second.Username)
	assert.Equal(t, first.Repositories, second.Repositories)

	// A different parameter set misses the cache
	_, err = svc.BuildAnalysisBundle(ctx, "octocat", 50, 0)
	require.NoError(t, err)
	assert.Greater(t, ds.listCalls.Load(), listCallsAfterFirst)
}

func TestBuildFullAnalysisBundle(t *testing.T) {
	ds := &fakeDataSource{
		listFn:   singlePage(testRepo("R_1", 10), testRepo("R_2", 20)),
		readmeFn: readmeForAll("# Full"),
	}
	svc := newTestService(ds)

	resp, err := svc.BuildFullAnalysisBundle(context.Background(), "octocat", 0, 0)
	require.NoError(t, err)

	assert.Equal(t, 2, resp.TotalCount)
	require.Len(t, resp.Repositories, 2)
	for _, repo := range resp.Repositories {
		assert.True(t, repo.HasReadme)
		assert.Equal(t, "# Full", repo.ReadmeContent)
	}
}

func TestHealthCheck(t *testing.T) {
	t.Run("healthy with cache", func(t *testing.T) {
		ds := &fakeDataSource{listFn: singlePage()}
		svc := newCachedTestService(ds)

		health := svc.HealthCheck(context.Background(), "1.2.3")
		assert.Equal(t, "healthy", health.Status)
		assert.Equal(t, "1.2.3", health.Version)
		assert.True(t, health.GitHubAPIAvailable)
		assert.Equal(t, string(schema.MemoryBackend), health.CacheBackend)
	})

	t.Run("degraded when api unreachable", func(t *testing.T) {
		ds := &fakeDataSource{
			listFn: singlePage(),
			userFn: func() (*schema.UserInfo, error) {
				return nil, schema.NewAPIError("down")
			},
		}
		svc := newTestService(ds)

		health := svc.HealthCheck(context.Background(), "1.2.3")
		assert.Equal(t, "degraded", health.Status)
		assert.False(t, health.GitHubAPIAvailable)
	})
}

func TestClearCache(t *testing.T) {
	ds := &fakeDataSource{
		listFn:   singlePage(testRepo("R_1", 1)),
		readmeFn: readmeForAll("# X"),
	}
	svc := newCachedTestService(ds)
	ctx := context.Background()

	_, err := svc.BuildAnalysisBundle(ctx, "octocat", 0, 0)
	require.NoError(t, err)

	removed, err := svc.ClearCache()
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	// Recompute after clearing
	before := ds.listCalls.Load()
	_, err = svc.BuildAnalysisBundle(ctx, "octocat", 0, 0)
	require.NoError(t, err)
	assert.Greater(t, ds.listCalls.Load(), before)
}

func TestClearCacheWithoutCache(t *testing.T) {
	svc := newTestService(&fakeDataSource{listFn: singlePage()})
	removed, err := svc.ClearCache()
	require.NoError(t, err)
	assert.Zero(t, removed)
}
