// Package outwriter has the CLI output logic: repository tables, bundle
// summaries and JSON payloads.
package outwriter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/Dustyposa/github-stars-mcp-server/internal/contract"
)

// Popularity label constants.
const (
	HotValue      = "Hot"
	PopularValue  = "Popular"
	NotableValue  = "Notable"
	EmergingValue = "Emerging"
)

// Color variables for console output.
var (
	HotColor      = color.New(color.FgRed, color.Bold)
	PopularColor  = color.New(color.FgMagenta, color.Bold)
	NotableColor  = color.New(color.FgYellow)
	EmergingColor = color.New(color.FgCyan)
)

// GetPlainLabel returns a plain text popularity label for a star count.
// This is the core logic used for JSON and table printing.
func GetPlainLabel(stars int) string {
	switch {
	case stars >= 10000:
		return HotValue
	case stars >= 1000:
		return PopularValue
	case stars >= 100:
		return NotableValue
	default:
		return EmergingValue
	}
}

// GetColorLabel returns a colored popularity label for console output.
func GetColorLabel(stars int) string {
	text := GetPlainLabel(stars)

	switch text {
	case HotValue:
		return HotColor.Sprint(text)
	case PopularValue:
		return PopularColor.Sprint(text)
	case NotableValue:
		return NotableColor.Sprint(text)
	default: // "Emerging"
		return EmergingColor.Sprint(text)
	}
}

// writeWithFile handles the common pattern of opening a file, writing to it,
// and cleaning up.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "%s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// getMaxDescriptionWidth calculates how much room descriptions get in table
// output based on terminal width.
func getMaxDescriptionWidth(cfg *contract.Config) int {
	termWidth := cfg.Width
	if termWidth == 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for rank, name, stars, language and label columns
	width := termWidth - 70
	if width < 20 {
		width = 20
	}
	return width
}

// truncate shortens a string to maxWidth runes with an ellipsis suffix.
func truncate(s string, maxWidth int) string {
	runes := []rune(s)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return s
}
