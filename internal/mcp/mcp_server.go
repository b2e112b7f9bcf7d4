// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/Dustyposa/github-stars-mcp-server/core"
	"github.com/Dustyposa/github-stars-mcp-server/internal/contract"
	"github.com/Dustyposa/github-stars-mcp-server/schema"
)

// NewMCPServer initializes and configures the GitHub stars MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(svc *core.Service, mgr contract.CacheManager, log zerolog.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		"GitHub Stars Server",
		schema.Version,
		server.WithLogging(),
		server.WithResourceCapabilities(true, true),
	)

	h := &toolHandler{
		svc: svc,
		mgr: mgr,
		log: log,
	}

	// --- 1. Tool: list_starred_repositories ---
	s.AddTool(mcp.NewTool("list_starred_repositories",
		mcp.WithDescription("List one page of a GitHub user's starred repositories, most recently starred first."),
		mcp.WithString("username", mcp.Description("GitHub username whose stars to list. Omit for the authenticated user.")),
		mcp.WithString("cursor", mcp.Description("Pagination cursor from a previous page. Omit for the first page.")),
	), h.handleListStarredRepositories)

	// --- 2. Tool: get_repository_details ---
	s.AddTool(mcp.NewTool("get_repository_details",
		mcp.WithDescription("Fetch README details for a single repository, identified as 'owner/name' or by repository id."),
		mcp.WithString("repo_id", mcp.Description("Repository identifier ('owner/name' or node id)."), mcp.Required()),
	), h.handleGetRepositoryDetails)

	// --- 3. Tool: get_batch_repository_details ---
	s.AddTool(mcp.NewTool("get_batch_repository_details",
		mcp.WithDescription("Fetch README details for up to 100 repositories. Repositories that fail to resolve are omitted from the result."),
		mcp.WithArray("repo_ids", mcp.Description("Repository identifiers ('owner/name' or node ids)."), mcp.Required()),
		mcp.WithNumber("concurrent_requests", mcp.Description("Concurrent fetches, 1-20. Defaults to 10.")),
	), h.handleGetBatchRepositoryDetails)

	// --- 4. Tool: build_full_analysis_bundle ---
	s.AddTool(mcp.NewTool("build_full_analysis_bundle",
		mcp.WithDescription("Collect a user's starred repositories and join each with its README content."),
		mcp.WithString("username", mcp.Description("GitHub username to analyze. Omit for the authenticated user.")),
		mcp.WithNumber("max_repositories", mcp.Description("Repository cap, 1-200. Defaults to 100.")),
		mcp.WithNumber("concurrent_requests", mcp.Description("Concurrent fetches, 1-20. Defaults to 10.")),
	), h.handleBuildFullAnalysisBundle)

	// --- 5. Tool: build_analysis_bundle ---
	s.AddTool(mcp.NewTool("build_analysis_bundle",
		mcp.WithDescription("Build a full analysis of a user's stars: repositories with READMEs, language and topic distributions, star statistics."),
		mcp.WithString("username", mcp.Description("GitHub username to analyze. Omit for the authenticated user.")),
		mcp.WithNumber("max_repositories", mcp.Description("Repository cap, 1-200. Defaults to 100.")),
		mcp.WithNumber("concurrent_requests", mcp.Description("Concurrent fetches, 1-20. Defaults to 10.")),
	), h.handleBuildAnalysisBundle)

	// --- 6. Tool: health_check ---
	s.AddTool(mcp.NewTool("health_check",
		mcp.WithDescription("Report server health: GitHub API reachability and cache state."),
	), h.handleHealthCheck)

	// --- 7. Tool: clear_cache ---
	s.AddTool(mcp.NewTool("clear_cache",
		mcp.WithDescription("Drop all cached responses."),
	), h.handleClearCache)

	// --- 8. Tool: cache_status ---
	s.AddTool(mcp.NewTool("cache_status",
		mcp.WithDescription("Report response cache backend, entry count and entry age."),
	), h.handleCacheStatus)

	// --- Resource: authenticated user ---
	s.AddResource(mcp.NewResource(
		"github://user/current",
		"Current GitHub User",
		mcp.WithResourceDescription("The user behind the configured GitHub token."),
		mcp.WithMIMEType("application/json"),
	), h.handleCurrentUserResource)

	return s
}

// StartMCPServer starts the GitHub stars MCP server on stdio.
func StartMCPServer(_ context.Context, svc *core.Service, mgr contract.CacheManager, log zerolog.Logger) error {
	s := NewMCPServer(svc, mgr, log)
	return server.ServeStdio(s)
}
