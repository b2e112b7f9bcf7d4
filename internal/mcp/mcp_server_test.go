package mcp_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dustyposa/github-stars-mcp-server/core"
	"github.com/Dustyposa/github-stars-mcp-server/internal/iocache"
	"github.com/Dustyposa/github-stars-mcp-server/internal/logger"
	mcp_internal "github.com/Dustyposa/github-stars-mcp-server/internal/mcp"
	"github.com/Dustyposa/github-stars-mcp-server/schema"
)

// stubDataSource serves a fixed starred page and README for handler tests.
type stubDataSource struct{}

func (stubDataSource) ListStarredPage(_ context.Context, username, _ string) (*schema.StarredPage, error) {
	return &schema.StarredPage{
		Repositories: []schema.Repository{
			{
				RepoID:         "R_1",
				NameWithOwner:  "golang/go",
				Name:           "go",
				Owner:          "golang",
				StargazerCount: 120000,
				URL:            "https://github.com/golang/go",
			},
		},
		TotalCount: 1,
	}, nil
}

func (stubDataSource) GetCurrentUser(context.Context) (*schema.UserInfo, error) {
	return &schema.UserInfo{Login: "octocat"}, nil
}

func (stubDataSource) GetReadme(_ context.Context, _ string) (*schema.ReadmeResult, error) {
	return &schema.ReadmeResult{Content: "# Go", HasReadme: true}, nil
}

func newTestServer(t *testing.T) *server.MCPServer {
	t.Helper()
	mgr, err := iocache.NewManager(schema.MemoryBackend, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = mgr.Close() })

	svc := core.NewService(stubDataSource{}, mgr, time.Minute, logger.Nop())
	return mcp_internal.NewMCPServer(svc, mgr, logger.Nop())
}

func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.GetTool(name)
	require.NotNil(t, tool, "tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "MCP handlers must not return raw errors for tool logic failures")
	return res
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	return res.Content[0].(mcp.TextContent).Text
}

func TestListStarredRepositoriesTool(t *testing.T) {
	s := newTestServer(t)

	res := callTool(t, s, "list_starred_repositories", map[string]any{"username": "octocat"})
	require.False(t, res.IsError)

	var resp schema.StarredRepositoriesResponse
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &resp))
	assert.Equal(t, 1, resp.TotalCount)
	require.Len(t, resp.Repositories, 1)
	assert.Equal(t, "golang/go", resp.Repositories[0].NameWithOwner)
}

func TestListStarredRepositoriesToolValidation(t *testing.T) {
	s := newTestServer(t)

	res := callTool(t, s, "list_starred_repositories", map[string]any{"username": "-bad-"})
	assert.True(t, res.IsError)
	assert.Contains(t, textOf(t, res), "hyphen")
}

func TestGetRepositoryDetailsTool(t *testing.T) {
	s := newTestServer(t)

	res := callTool(t, s, "get_repository_details", map[string]any{"repo_id": "golang/go"})
	require.False(t, res.IsError)

	var details schema.RepositoryDetails
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &details))
	assert.True(t, details.HasReadme)
	assert.Equal(t, "# Go", details.ReadmeContent)
}

func TestGetBatchRepositoryDetailsToolValidation(t *testing.T) {
	s := newTestServer(t)

	res := callTool(t, s, "get_batch_repository_details", map[string]any{"repo_ids": []any{}})
	assert.True(t, res.IsError)
	assert.Contains(t, textOf(t, res), "must not be empty")

	res = callTool(t, s, "get_batch_repository_details", map[string]any{
		"repo_ids":            []any{"golang/go"},
		"concurrent_requests": float64(schema.MaxConcurrency + 1),
	})
	assert.True(t, res.IsError)
	assert.Contains(t, textOf(t, res), "concurrency")
}

func TestBuildAnalysisBundleTool(t *testing.T) {
	s := newTestServer(t)

	res := callTool(t, s, "build_analysis_bundle", map[string]any{"username": "octocat"})
	require.False(t, res.IsError)

	var bundle schema.AnalysisBundle
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &bundle))
	assert.Equal(t, "octocat", bundle.Username)
	assert.Equal(t, 1, bundle.TotalRepositories)
	assert.Equal(t, 1, bundle.ProcessingSummary.WithReadme)
}

func TestHealthCheckTool(t *testing.T) {
	s := newTestServer(t)

	res := callTool(t, s, "health_check", nil)
	require.False(t, res.IsError)

	var health schema.HealthStatus
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, schema.Version, health.Version)
	assert.True(t, health.GitHubAPIAvailable)
}

func TestCacheStatusTool(t *testing.T) {
	s := newTestServer(t)

	res := callTool(t, s, "build_analysis_bundle", map[string]any{"username": "octocat"})
	require.False(t, res.IsError)

	res = callTool(t, s, "cache_status", nil)
	require.False(t, res.IsError)

	var status schema.CacheStatus
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &status))
	assert.Equal(t, string(schema.MemoryBackend), status.Backend)
	assert.True(t, status.Connected)
	assert.Equal(t, int64(1), status.TotalEntries)
}

func TestClearCacheTool(t *testing.T) {
	s := newTestServer(t)

	// Populate the cache, then clear it
	res := callTool(t, s, "build_analysis_bundle", map[string]any{"username": "octocat"})
	require.False(t, res.IsError)

	res = callTool(t, s, "clear_cache", nil)
	require.False(t, res.IsError)

	var cleared map[string]int64
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &cleared))
	assert.Equal(t, int64(1), cleared["removed_entries"])
}
