package outwriter

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/Dustyposa/github-stars-mcp-server/internal/contract"
	"github.com/Dustyposa/github-stars-mcp-server/schema"
)

// WriteDetails outputs batch README details, dispatching based on the
// configured output format.
func WriteDetails(resp *schema.BatchDetailsResponse, requested []string, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, resp)
		}, "Wrote JSON")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDetailsTable(resp, requested, duration, w)
		}, "Wrote table")
	}
}

// writeDetailsTable generates and writes the human-readable table. Rows are
// sorted by repository identifier for stable output.
func writeDetailsTable(resp *schema.BatchDetailsResponse, requested []string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Repository", "README", "Size"})

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	ids := make([]string, 0, len(resp.Data))
	for id := range resp.Data {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var data [][]string
	for _, id := range ids {
		details := resp.Data[id]
		readme := "no"
		if details.HasReadme {
			readme = "yes"
		}
		data = append(data, []string{id, readme, strconv.Itoa(len(details.ReadmeContent))})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Resolved %d of %d repositories in %v\n",
		len(resp.Data), len(requested), duration); err != nil {
		return err
	}
	return nil
}
