package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"

	"github.com/Dustyposa/github-stars-mcp-server/core"
	"github.com/Dustyposa/github-stars-mcp-server/internal/contract"
	"github.com/Dustyposa/github-stars-mcp-server/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	svc *core.Service
	mgr contract.CacheManager
	log zerolog.Logger
}

// toolResult serializes a payload into a text tool result.
func toolResult(payload any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListStarredRepositories(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	username := request.GetString("username", "")
	cursor := request.GetString("cursor", "")

	resp, err := h.svc.ListStarredRepositories(ctx, username, cursor)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list starred repositories: %v", err)), nil
	}
	return toolResult(resp)
}

func (h *toolHandler) handleGetRepositoryDetails(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	repoID := request.GetString("repo_id", "")

	details, err := h.svc.GetRepositoryDetails(ctx, repoID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to fetch repository details: %v", err)), nil
	}
	return toolResult(details)
}

func (h *toolHandler) handleGetBatchRepositoryDetails(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	repoIDs := request.GetStringSlice("repo_ids", nil)
	concurrency := request.GetInt("concurrent_requests", 0)

	resp, err := h.svc.GetBatchRepositoryDetails(ctx, repoIDs, concurrency)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to fetch batch details: %v", err)), nil
	}
	return toolResult(resp)
}

func (h *toolHandler) handleBuildFullAnalysisBundle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	username := request.GetString("username", "")
	maxRepos := request.GetInt("max_repositories", 0)
	concurrency := request.GetInt("concurrent_requests", 0)

	resp, err := h.svc.BuildFullAnalysisBundle(ctx, username, maxRepos, concurrency)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to build full analysis bundle: %v", err)), nil
	}
	return toolResult(resp)
}

func (h *toolHandler) handleBuildAnalysisBundle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	username := request.GetString("username", "")
	maxRepos := request.GetInt("max_repositories", 0)
	concurrency := request.GetInt("concurrent_requests", 0)

	bundle, err := h.svc.BuildAnalysisBundle(ctx, username, maxRepos, concurrency)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to build analysis bundle: %v", err)), nil
	}
	return toolResult(bundle)
}

func (h *toolHandler) handleHealthCheck(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return toolResult(h.svc.HealthCheck(ctx, schema.Version))
}

func (h *toolHandler) handleClearCache(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	removed, err := h.svc.ClearCache()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to clear cache: %v", err)), nil
	}
	return toolResult(map[string]int64{"removed_entries": removed})
}

func (h *toolHandler) handleCacheStatus(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status, err := h.mgr.GetResponseStore().GetStatus()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read cache status: %v", err)), nil
	}
	return toolResult(status)
}

func (h *toolHandler) handleCurrentUserResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	user, err := h.svc.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve current user: %w", err)
	}

	jsonData, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}
