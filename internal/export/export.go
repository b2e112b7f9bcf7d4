// Package export writes analysis bundles to Parquet files using
// github.com/parquet-go/parquet-go.
package export

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/Dustyposa/github-stars-mcp-server/schema"
)

// BundleRow is one starred repository flattened for columnar export.
type BundleRow struct {
	// Username is the analyzed GitHub user
	Username string `parquet:"username,snappy"`

	// AnalysisTimestamp is when the bundle was built
	AnalysisTimestamp time.Time `parquet:"analysis_timestamp,snappy"`

	// RepoID is the opaque GraphQL node id
	RepoID string `parquet:"repo_id,snappy"`

	// NameWithOwner is the "owner/name" identifier
	NameWithOwner string `parquet:"name_with_owner,snappy"`

	// Description is the repository description (nullable)
	Description *string `parquet:"description,optional,snappy"`

	// StargazerCount is the star count at fetch time
	StargazerCount int32 `parquet:"stargazer_count,snappy"`

	// PrimaryLanguage is the dominant language (nullable)
	PrimaryLanguage *string `parquet:"primary_language,optional,snappy"`

	// Topics is the comma-joined topic list (nullable)
	Topics *string `parquet:"topics,optional,snappy"`

	// StarredAt is when the user starred the repository (nullable)
	StarredAt *time.Time `parquet:"starred_at,optional,snappy"`

	// PushedAt is the last push time (nullable)
	PushedAt *time.Time `parquet:"pushed_at,optional,snappy"`

	// HasReadme records whether a README was found at HEAD
	HasReadme bool `parquet:"has_readme,snappy"`

	// ReadmeContent is the README text (nullable)
	ReadmeContent *string `parquet:"readme_content,optional,snappy"`
}

// ConvertBundle flattens an analysis bundle into export rows.
func ConvertBundle(bundle *schema.AnalysisBundle) []BundleRow {
	rows := make([]BundleRow, len(bundle.Repositories))
	for i, repo := range bundle.Repositories {
		row := BundleRow{
			Username:          bundle.Username,
			AnalysisTimestamp: bundle.AnalysisTimestamp,
			RepoID:            repo.RepoID,
			NameWithOwner:     repo.NameWithOwner,
			StargazerCount:    int32(repo.StargazerCount),
			StarredAt:         repo.StarredAt,
			PushedAt:          repo.PushedAt,
			HasReadme:         repo.HasReadme,
		}
		if repo.Description != "" {
			row.Description = &repo.Description
		}
		if repo.PrimaryLanguage != "" {
			row.PrimaryLanguage = &repo.PrimaryLanguage
		}
		if len(repo.RepositoryTopics) > 0 {
			topics := strings.Join(repo.RepositoryTopics, ",")
			row.Topics = &topics
		}
		if repo.ReadmeContent != "" {
			row.ReadmeContent = &repo.ReadmeContent
		}
		rows[i] = row
	}
	return rows
}

// WriteBundleParquet writes an analysis bundle to a Parquet file.
func WriteBundleParquet(bundle *schema.AnalysisBundle, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the BundleRow struct tags
	writer := parquet.NewGenericWriter[BundleRow](file)

	if _, err := writer.Write(ConvertBundle(bundle)); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}
