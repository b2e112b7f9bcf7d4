// Package schema has the data models, response envelopes, error types and
// shared constants for all parts of the GitHub stars server.
package schema

import (
	"fmt"
	"strings"
	"time"
)

// Repository is an immutable snapshot of a starred repository at fetch time.
// It is created in a single translation step from the raw GraphQL payload and
// never mutated afterwards.
type Repository struct {
	RepoID           string     `json:"repo_id"`
	NameWithOwner    string     `json:"name_with_owner"`
	Name             string     `json:"name"`
	Owner            string     `json:"owner"`
	Description      string     `json:"description,omitempty"`
	StargazerCount   int        `json:"stargazer_count"`
	URL              string     `json:"url"`
	PrimaryLanguage  string     `json:"primary_language,omitempty"`
	StarredAt        *time.Time `json:"starred_at,omitempty"`
	PushedAt         *time.Time `json:"pushed_at,omitempty"`
	DiskUsage        int        `json:"disk_usage,omitempty"` // KB
	RepositoryTopics []string   `json:"repository_topics"`
	Languages        []string   `json:"languages"`
}

// RepositoryWithReadme is a Repository widened with README content once
// enrichment completes.
type RepositoryWithReadme struct {
	Repository
	ReadmeContent string `json:"readme_content,omitempty"`
	HasReadme     bool   `json:"has_readme"`
}

// RepositoryDetails is the narrow record returned by single and batch detail
// lookups. Full repository metadata is resolved by the caller joining on id.
type RepositoryDetails struct {
	ReadmeContent string `json:"readme_content,omitempty"`
	HasReadme     bool   `json:"has_readme"`
}

// ReadmeResult is the raw README lookup outcome from the data source.
type ReadmeResult struct {
	Content   string `json:"content,omitempty"`
	Size      int    `json:"size,omitempty"`
	HasReadme bool   `json:"has_readme"`
}

// UserInfo describes the authenticated GitHub user.
type UserInfo struct {
	Login     string     `json:"login"`
	Name      string     `json:"name,omitempty"`
	AvatarURL string     `json:"avatar_url,omitempty"`
	Bio       string     `json:"bio,omitempty"`
	Company   string     `json:"company,omitempty"`
	Location  string     `json:"location,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// StarredPage is one page of starred repositories as returned by the data
// source, already translated into typed records.
type StarredPage struct {
	Repositories []Repository `json:"repositories"`
	TotalCount   int          `json:"total_count"`
	HasNextPage  bool         `json:"has_next_page"`
	EndCursor    string       `json:"end_cursor,omitempty"`
}

// StarredRepositoriesResponse is the list_starred_repositories payload.
type StarredRepositoriesResponse struct {
	Repositories []Repository `json:"repositories"`
	TotalCount   int          `json:"total_count"`
	HasNextPage  bool         `json:"has_next_page"`
	EndCursor    string       `json:"end_cursor,omitempty"`
}

// BatchDetailsResponse maps repository id to its detail record. Identifiers
// whose fetch failed are absent from the map.
type BatchDetailsResponse struct {
	Data map[string]RepositoryDetails `json:"data"`
}

// FullBundleResponse is the build_full_analysis_bundle payload: every starred
// repository joined with its README content.
type FullBundleResponse struct {
	TotalCount   int                    `json:"total_count"`
	Repositories []RepositoryWithReadme `json:"repositories"`
}

// LanguageStat is one entry of a language distribution.
type LanguageStat struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// TopicStat is one entry of a topic distribution.
type TopicStat struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// StarStats summarizes stargazer counts across a repository set.
type StarStats struct {
	TotalStars   int     `json:"total_stars"`
	AverageStars float64 `json:"average_stars"`
	MedianStars  float64 `json:"median_stars"`
	MaxStars     int     `json:"max_stars"`
	MinStars     int     `json:"min_stars"`
}

// ProcessingSummary records how the enrichment pass went.
type ProcessingSummary struct {
	TotalRequested   int `json:"total_requested"`
	SucceededDetails int `json:"succeeded_details"`
	FailedDetails    int `json:"failed_details"`
	WithReadme       int `json:"with_readme"`
	WithoutReadme    int `json:"without_readme"`
}

// AnalysisBundle is the complete analysis of a user's starred repositories.
// Built once per request and never mutated.
type AnalysisBundle struct {
	Username             string                 `json:"username"`
	TotalRepositories    int                    `json:"total_repositories"`
	Repositories         []RepositoryWithReadme `json:"repositories"`
	LanguageDistribution []LanguageStat         `json:"language_distribution"`
	TopicDistribution    []TopicStat            `json:"topic_distribution"`
	StarStatistics       StarStats              `json:"star_statistics"`
	AnalysisTimestamp    time.Time              `json:"analysis_timestamp"`
	ProcessingSummary    ProcessingSummary      `json:"processing_summary"`
}

// HealthStatus is the health_check payload.
type HealthStatus struct {
	Status             string `json:"status"`
	Version            string `json:"version"`
	GitHubAPIAvailable bool   `json:"github_api_available"`
	CacheBackend       string `json:"cache_backend"`
	CacheEntries       int64  `json:"cache_entries"`
}

// CacheStatus reports the state of a cache store.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int64     `json:"total_entries"`
	OldestEntryTime time.Time `json:"oldest_entry_time,omitzero"`
	LastEntryTime   time.Time `json:"last_entry_time,omitzero"`
}

// SplitNameWithOwner splits an "owner/name" identifier into its two parts.
// Exactly one separator with non-empty segments on both sides is accepted.
func SplitNameWithOwner(nameWithOwner string) (owner, name string, err error) {
	parts := strings.Split(nameWithOwner, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("repository identifier %q is not in owner/name form", nameWithOwner)
	}
	return parts[0], parts[1], nil
}
