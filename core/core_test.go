package core

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/Dustyposa/github-stars-mcp-server/internal/contract"
	"github.com/Dustyposa/github-stars-mcp-server/internal/iocache"
	"github.com/Dustyposa/github-stars-mcp-server/internal/logger"
	"github.com/Dustyposa/github-stars-mcp-server/schema"
)

// fakeDataSource is a scriptable RepositoryDataSource with call counters.
type fakeDataSource struct {
	listFn   func(username, cursor string) (*schema.StarredPage, error)
	readmeFn func(repoID string) (*schema.ReadmeResult, error)
	userFn   func() (*schema.UserInfo, error)

	listCalls   atomic.Int64
	readmeCalls atomic.Int64
	userCalls   atomic.Int64
}

var _ contract.RepositoryDataSource = &fakeDataSource{}

func (f *fakeDataSource) ListStarredPage(_ context.Context, username, cursor string) (*schema.StarredPage, error) {
	f.listCalls.Add(1)
	return f.listFn(username, cursor)
}

func (f *fakeDataSource) GetReadme(_ context.Context, repoID string) (*schema.ReadmeResult, error) {
	f.readmeCalls.Add(1)
	return f.readmeFn(repoID)
}

func (f *fakeDataSource) GetCurrentUser(context.Context) (*schema.UserInfo, error) {
	f.userCalls.Add(1)
	if f.userFn != nil {
		return f.userFn()
	}
	return &schema.UserInfo{Login: "octocat"}, nil
}

// bulkFakeDataSource additionally implements the bulk detail capability.
type bulkFakeDataSource struct {
	fakeDataSource
	bulkFn    func(repoIDs []string) (map[string]schema.RepositoryDetails, error)
	bulkCalls atomic.Int64
}

var _ contract.BulkDetailSource = &bulkFakeDataSource{}

func (f *bulkFakeDataSource) GetReadmesBulk(_ context.Context, repoIDs []string) (map[string]schema.RepositoryDetails, error) {
	f.bulkCalls.Add(1)
	return f.bulkFn(repoIDs)
}

// newTestService builds a Service without caching for direct tests.
func newTestService(ds contract.RepositoryDataSource) *Service {
	return NewService(ds, nil, time.Minute, logger.Nop())
}

// newCachedTestService builds a Service with an in-memory response cache.
func newCachedTestService(ds contract.RepositoryDataSource) *Service {
	mgr, _ := iocache.NewManager(schema.MemoryBackend, "")
	return NewService(ds, mgr, time.Minute, logger.Nop())
}

// singlePage scripts a data source that serves one fixed page.
func singlePage(repos ...schema.Repository) func(string, string) (*schema.StarredPage, error) {
	return func(string, string) (*schema.StarredPage, error) {
		return &schema.StarredPage{
			Repositories: repos,
			TotalCount:   len(repos),
			HasNextPage:  false,
		}, nil
	}
}

// readmeForAll scripts a README fetch that succeeds for every id.
func readmeForAll(content string) func(string) (*schema.ReadmeResult, error) {
	return func(string) (*schema.ReadmeResult, error) {
		return &schema.ReadmeResult{Content: content, Size: len(content), HasReadme: true}, nil
	}
}

func testRepo(id string, stars int) schema.Repository {
	return schema.Repository{
		RepoID:         id,
		NameWithOwner:  "owner/" + id,
		Name:           id,
		Owner:          "owner",
		StargazerCount: stars,
	}
}
