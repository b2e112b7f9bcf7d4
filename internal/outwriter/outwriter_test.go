package outwriter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dustyposa/github-stars-mcp-server/internal/contract"
	"github.com/Dustyposa/github-stars-mcp-server/schema"
)

func TestGetPlainLabel(t *testing.T) {
	assert.Equal(t, HotValue, GetPlainLabel(50000))
	assert.Equal(t, PopularValue, GetPlainLabel(5000))
	assert.Equal(t, NotableValue, GetPlainLabel(500))
	assert.Equal(t, EmergingValue, GetPlainLabel(50))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 20))
	assert.Equal(t, "long de...", truncate("long description here", 10))
	// Narrow widths leave the string untouched rather than slicing negative
	assert.Equal(t, "abcd", truncate("abcd", 3))
}

func TestWriteRepositoryTable(t *testing.T) {
	resp := &schema.StarredRepositoriesResponse{
		Repositories: []schema.Repository{
			{
				NameWithOwner:   "golang/go",
				StargazerCount:  120000,
				PrimaryLanguage: "Go",
				Description:     "The Go programming language",
			},
		},
		TotalCount:  42,
		HasNextPage: true,
		EndCursor:   "cursor-1",
	}
	cfg := &contract.Config{Output: schema.TableOut, Width: 120, CacheBackend: schema.MemoryBackend}

	var buf bytes.Buffer
	require.NoError(t, writeRepositoryTable(resp, cfg, time.Second, &buf))

	out := buf.String()
	assert.Contains(t, out, "golang/go")
	assert.Contains(t, out, "120000")
	assert.Contains(t, out, HotValue)
	assert.Contains(t, out, "Showing 1 of 42")
	assert.Contains(t, out, "cursor-1")
}

func TestWriteDetailsTable(t *testing.T) {
	resp := &schema.BatchDetailsResponse{
		Data: map[string]schema.RepositoryDetails{
			"golang/go":      {ReadmeContent: "# Go", HasReadme: true},
			"rust-lang/rust": {HasReadme: false},
		},
	}
	requested := []string{"golang/go", "rust-lang/rust", "missing/repo"}

	var buf bytes.Buffer
	require.NoError(t, writeDetailsTable(resp, requested, time.Second, &buf))

	out := buf.String()
	assert.Contains(t, out, "golang/go")
	assert.Contains(t, out, "rust-lang/rust")
	assert.Contains(t, out, "yes")
	assert.Contains(t, out, "no")
	assert.Contains(t, out, "Resolved 2 of 3 repositories")
}

func TestWriteBundleSummary(t *testing.T) {
	bundle := &schema.AnalysisBundle{
		Username:          "octocat",
		TotalRepositories: 2,
		LanguageDistribution: []schema.LanguageStat{
			{Name: "Go", Count: 2, Percentage: 100},
		},
		StarStatistics: schema.StarStats{
			TotalStars: 30, AverageStars: 15, MedianStars: 15, MaxStars: 20, MinStars: 10,
		},
		ProcessingSummary: schema.ProcessingSummary{WithReadme: 2},
	}
	cfg := &contract.Config{Output: schema.TableOut, Width: 120, CacheBackend: schema.NoneBackend}

	var buf bytes.Buffer
	require.NoError(t, writeBundleSummary(bundle, cfg, time.Second, &buf))

	out := buf.String()
	assert.Contains(t, out, "octocat")
	assert.Contains(t, out, "Go")
	assert.Contains(t, out, "100.00%")
	assert.Contains(t, out, "No Topic data")
	assert.Contains(t, out, "total 30")
	// README content never leaks into table mode
	assert.False(t, strings.Contains(out, "readme_content"))
}
