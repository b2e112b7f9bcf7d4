package outwriter

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/Dustyposa/github-stars-mcp-server/internal/contract"
	"github.com/Dustyposa/github-stars-mcp-server/schema"
)

// WriteRepositories outputs a starred repository listing, dispatching based
// on the configured output format.
func WriteRepositories(resp *schema.StarredRepositoriesResponse, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, resp)
		}, "Wrote JSON")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRepositoryTable(resp, cfg, duration, w)
		}, "Wrote table")
	}
}

// writeRepositoryTable generates and writes the human-readable table.
func writeRepositoryTable(resp *schema.StarredRepositoriesResponse, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Rank", "Repository", "Stars", "Language", "Label", "Description"})

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	descWidth := getMaxDescriptionWidth(cfg)
	var data [][]string
	for i, repo := range resp.Repositories {
		label := GetPlainLabel(repo.StargazerCount)
		if cfg.UseColors {
			label = GetColorLabel(repo.StargazerCount)
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			repo.NameWithOwner,
			strconv.Itoa(repo.StargazerCount),
			repo.PrimaryLanguage,
			label,
			truncate(repo.Description, descWidth),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Showing %d of %d starred repositories\n",
		len(resp.Repositories), resp.TotalCount); err != nil {
		return err
	}
	if resp.HasNextPage {
		if _, err := fmt.Fprintf(writer, "More available, next cursor: %s\n", resp.EndCursor); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(writer, "Fetched in %v. Cache backend: %s\n", duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}
