// Package output renders scan results for people and tools.
package output

import (
	"fmt"
	"io"

	"github.com/CypherHippie/HeaderHunter/pkg/types"
)

// Formatter renders scan results to a writer. Findings keep the order the
// analyzer produced; URLs are rendered in lexical order.
type Formatter interface {
	Format(w io.Writer, result types.ScanResult) error
}

// GetFormatter returns the appropriate formatter for the given format string.
func GetFormatter(format string) (Formatter, error) {
	switch format {
	case "table":
		return &TableFormatter{}, nil
	case "text":
		return &TextFormatter{}, nil
	case "json":
		return &JSONFormatter{}, nil
	case "markdown":
		return &MarkdownFormatter{}, nil
	case "html":
		return &HTMLFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (supported: table, text, json, markdown, html)", format)
	}
}

func levelCounts(result types.ScanResult) map[types.Level]int {
	counts := map[types.Level]int{}
	for _, findings := range result {
		for _, f := range findings {
			counts[f.Level()]++
		}
	}
	return counts
}

func formatSummary(counts map[types.Level]int) string {
	total := 0
	for _, c := range counts {
		total += c
	}
	return fmt.Sprintf("%d findings (%d critical, %d high, %d medium, %d low, %d info)",
		total,
		counts[types.LevelCritical],
		counts[types.LevelHigh],
		counts[types.LevelMedium],
		counts[types.LevelLow],
		counts[types.LevelInfo],
	)
}
