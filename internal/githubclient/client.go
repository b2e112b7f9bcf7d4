// Package githubclient implements the GitHub GraphQL data source. It owns
// authentication, request pacing, retry and the translation from raw API
// payloads into typed records.
package githubclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/Dustyposa/github-stars-mcp-server/schema"
)

// DefaultEndpoint is the GitHub GraphQL API endpoint.
const DefaultEndpoint = "https://api.github.com/graphql"

const (
	// currentUserTTL bounds how long the authenticated-user lookup is reused.
	currentUserTTL = 5 * time.Minute

	// requestsPerSecond paces outbound GraphQL calls. GitHub's secondary
	// rate limits trip on bursts well above this.
	requestsPerSecond = 10

	maxRetries = 3
)

// Client talks to the GitHub GraphQL API. It is safe for concurrent use.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        zerolog.Logger

	mu          sync.Mutex
	cachedUser  *schema.UserInfo
	userFetched time.Time
}

// Option customizes a Client.
type Option func(*Client)

// WithEndpoint overrides the GraphQL endpoint. Used by tests.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = endpoint }
}

// WithTimeout overrides the per-request HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = timeout }
}

// New builds a Client for the given token. An empty token is rejected up
// front so that misconfiguration surfaces at startup, not on first call.
func New(token string, log zerolog.Logger, opts ...Option) (*Client, error) {
	if strings.TrimSpace(token) == "" {
		return nil, &schema.AuthenticationError{Message: "github token is required"}
	}
	c := &Client{
		endpoint:   DefaultEndpoint,
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
		log:        log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type gqlError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type gqlEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

// doQuery executes one GraphQL query with pacing and bounded retry, and
// unmarshals the data payload into out. Authentication, rate limit and
// client-side errors are never retried.
func (c *Client) doQuery(ctx context.Context, query string, variables map[string]any, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	body, err := json.Marshal(map[string]any{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		return schema.WrapAPIError("encode graphql request", err)
	}

	attempt := func() (*gqlEnvelope, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, backoff.Permanent(schema.WrapAPIError("build graphql request", err))
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, schema.WrapAPIError("github graphql request failed", err)
		}
		defer func() { _ = resp.Body.Close() }()

		if err := checkHTTPStatus(resp); err != nil {
			return nil, err
		}

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, schema.WrapAPIError("read graphql response", err)
		}

		var envelope gqlEnvelope
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return nil, backoff.Permanent(schema.WrapAPIError("decode graphql response", err))
		}
		if err := checkGraphQLErrors(envelope.Errors); err != nil {
			return nil, err
		}
		return &envelope, nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries), ctx)
	envelope, err := backoff.RetryWithData(attempt, policy)
	if err != nil {
		return err
	}

	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return schema.WrapAPIError("decode graphql data", err)
		}
	}
	return nil
}

// checkHTTPStatus maps HTTP-level failures onto the error taxonomy. Server
// errors stay retryable; everything else is permanent.
func checkHTTPStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return backoff.Permanent(&schema.AuthenticationError{
			Message: "github token was rejected",
		})
	case resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0",
		resp.StatusCode == http.StatusTooManyRequests:
		return backoff.Permanent(&schema.RateLimitError{
			Message: "github api rate limit exceeded",
			ResetAt: parseRateLimitReset(resp.Header.Get("X-RateLimit-Reset")),
		})
	case resp.StatusCode >= http.StatusInternalServerError:
		return schema.NewAPIError("github api returned status %d", resp.StatusCode)
	default:
		err := schema.NewAPIError("github api returned status %d", resp.StatusCode)
		err.StatusCode = resp.StatusCode
		return backoff.Permanent(err)
	}
}

// checkGraphQLErrors maps GraphQL-level errors onto the error taxonomy.
func checkGraphQLErrors(errs []gqlError) error {
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		if e.Type == "RATE_LIMITED" {
			return backoff.Permanent(&schema.RateLimitError{
				Message: "github graphql rate limit exceeded",
			})
		}
		msgs = append(msgs, e.Message)
	}
	return backoff.Permanent(schema.NewAPIError("github graphql error: %s", strings.Join(msgs, "; ")))
}

func parseRateLimitReset(header string) time.Time {
	if header == "" {
		return time.Time{}
	}
	epoch, err := strconv.ParseInt(header, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(epoch, 0).UTC()
}

// ListStarredPage fetches one page of starred repositories. An empty username
// lists the authenticated user's stars.
func (c *Client) ListStarredPage(ctx context.Context, username, cursor string) (*schema.StarredPage, error) {
	variables := map[string]any{}
	if cursor != "" {
		variables["cursor"] = cursor
	}

	query := viewerStarredReposQuery
	if username != "" {
		query = starredReposQuery
		variables["username"] = username
	}

	var payload struct {
		User *struct {
			StarredRepositories rawStarredConnection `json:"starredRepositories"`
		} `json:"user"`
		Viewer *struct {
			StarredRepositories rawStarredConnection `json:"starredRepositories"`
		} `json:"viewer"`
	}
	if err := c.doQuery(ctx, query, variables, &payload); err != nil {
		return nil, err
	}

	var conn rawStarredConnection
	switch {
	case username != "" && payload.User != nil:
		conn = payload.User.StarredRepositories
	case username == "" && payload.Viewer != nil:
		conn = payload.Viewer.StarredRepositories
	default:
		return nil, schema.NewAPIError("github user %q not found", username)
	}

	page := parseStarredPage(conn)
	c.log.Debug().
		Str("username", username).
		Int("page_size", len(page.Repositories)).
		Bool("has_next", page.HasNextPage).
		Msg("fetched starred page")
	return page, nil
}

// GetCurrentUser returns the authenticated user. The result is reused for a
// short window since the identity behind a token does not change mid-session.
func (c *Client) GetCurrentUser(ctx context.Context) (*schema.UserInfo, error) {
	c.mu.Lock()
	if c.cachedUser != nil && time.Since(c.userFetched) < currentUserTTL {
		user := c.cachedUser
		c.mu.Unlock()
		return user, nil
	}
	c.mu.Unlock()

	var payload struct {
		Viewer rawUser `json:"viewer"`
	}
	if err := c.doQuery(ctx, currentUserQuery, nil, &payload); err != nil {
		return nil, err
	}
	user := parseUser(payload.Viewer)

	c.mu.Lock()
	c.cachedUser = user
	c.userFetched = time.Now()
	c.mu.Unlock()
	return user, nil
}

// GetReadme fetches the README for one repository. The identifier may be an
// "owner/name" string or an opaque GraphQL node id.
func (c *Client) GetReadme(ctx context.Context, repoID string) (*schema.ReadmeResult, error) {
	if strings.Contains(repoID, "/") {
		owner, name, err := schema.SplitNameWithOwner(repoID)
		if err != nil {
			return nil, schema.NewValidationError("%v", err)
		}
		var payload struct {
			Repository *struct {
				Object *rawBlob `json:"object"`
			} `json:"repository"`
		}
		variables := map[string]any{"owner": owner, "name": name}
		if err := c.doQuery(ctx, readmeByNameQuery, variables, &payload); err != nil {
			return nil, err
		}
		if payload.Repository == nil {
			return nil, schema.NewAPIError("repository %q not found", repoID)
		}
		return parseReadme(payload.Repository.Object), nil
	}

	var payload struct {
		Node *struct {
			Object *rawBlob `json:"object"`
		} `json:"node"`
	}
	if err := c.doQuery(ctx, readmeByNodeQuery, map[string]any{"id": repoID}, &payload); err != nil {
		return nil, err
	}
	if payload.Node == nil {
		return nil, schema.NewAPIError("repository node %q not found", repoID)
	}
	return parseReadme(payload.Node.Object), nil
}

// GetReadmesBulk fetches READMEs for a set of node ids in a single query.
// Ids that do not resolve to a repository are absent from the result.
func (c *Client) GetReadmesBulk(ctx context.Context, repoIDs []string) (map[string]schema.RepositoryDetails, error) {
	if len(repoIDs) == 0 {
		return map[string]schema.RepositoryDetails{}, nil
	}

	var payload struct {
		Nodes []*struct {
			ID     string   `json:"id"`
			Object *rawBlob `json:"object"`
		} `json:"nodes"`
	}
	if err := c.doQuery(ctx, readmeBulkQuery, map[string]any{"ids": repoIDs}, &payload); err != nil {
		return nil, err
	}

	details := make(map[string]schema.RepositoryDetails, len(payload.Nodes))
	for _, node := range payload.Nodes {
		if node == nil || node.ID == "" {
			continue
		}
		readme := parseReadme(node.Object)
		details[node.ID] = schema.RepositoryDetails{
			ReadmeContent: readme.Content,
			HasReadme:     readme.HasReadme,
		}
	}
	return details, nil
}

// Ping verifies that the API is reachable with the configured token.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.GetCurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("github api unavailable: %w", err)
	}
	return nil
}
