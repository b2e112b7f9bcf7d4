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

// WriteBundle outputs an analysis bundle, dispatching based on the configured
// output format. Table mode prints the aggregate views; README content is
// only emitted in JSON mode.
func WriteBundle(bundle *schema.AnalysisBundle, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, bundle)
		}, "Wrote JSON")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBundleSummary(bundle, cfg, duration, w)
		}, "Wrote summary")
	}
}

// writeBundleSummary writes the human-readable aggregate tables.
func writeBundleSummary(bundle *schema.AnalysisBundle, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	if _, err := fmt.Fprintf(writer, "Starred repository analysis for %s (%d repositories)\n\n",
		bundle.Username, bundle.TotalRepositories); err != nil {
		return err
	}

	if err := writeDistributionTable(writer, "Language", languageRows(bundle.LanguageDistribution)); err != nil {
		return err
	}
	if err := writeDistributionTable(writer, "Topic", topicRows(bundle.TopicDistribution)); err != nil {
		return err
	}

	stats := bundle.StarStatistics
	if _, err := fmt.Fprintf(writer,
		"Stars: total %d, average %.2f, median %.2f, max %d, min %d\n",
		stats.TotalStars, stats.AverageStars, stats.MedianStars, stats.MaxStars, stats.MinStars); err != nil {
		return err
	}

	summary := bundle.ProcessingSummary
	if _, err := fmt.Fprintf(writer,
		"READMEs: %d with, %d without, %d fetch failures\n",
		summary.WithReadme, summary.WithoutReadme, summary.FailedDetails); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Analysis completed in %v. Cache backend: %s\n",
		duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

func languageRows(stats []schema.LanguageStat) [][]string {
	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, []string{s.Name, strconv.Itoa(s.Count), fmt.Sprintf("%.2f%%", s.Percentage)})
	}
	return rows
}

func topicRows(stats []schema.TopicStat) [][]string {
	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, []string{s.Name, strconv.Itoa(s.Count), fmt.Sprintf("%.2f%%", s.Percentage)})
	}
	return rows
}

func writeDistributionTable(writer io.Writer, kind string, rows [][]string) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintf(writer, "No %s data\n\n", kind)
		return err
	}

	table := tablewriter.NewWriter(writer)
	table.Header([]string{kind, "Count", "Share"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	if err := table.Bulk(rows); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(writer)
	return err
}
