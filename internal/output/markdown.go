package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/CypherHippie/HeaderHunter/pkg/types"
)

// MarkdownFormatter renders results as Markdown tables suitable for
// pasting into docs, issues, or pull-request descriptions.
type MarkdownFormatter struct{}

func (f *MarkdownFormatter) Format(w io.Writer, result types.ScanResult) error {
	if len(result) == 0 {
		fmt.Fprintln(w, "_No findings._")
		return nil
	}

	for i, entry := range result.Sorted() {
		if i > 0 {
			fmt.Fprintln(w)
		}

		fmt.Fprintf(w, "## %s\n\n", entry.URL)
		fmt.Fprintln(w, "| Severity | Finding | Suggestion |")
		fmt.Fprintln(w, "|----------|---------|------------|")

		for _, finding := range entry.Findings {
			fmt.Fprintf(w, "| %s | %s | %s |\n",
				severityBadge(finding),
				escapeMarkdown(finding.Label),
				escapeMarkdown(finding.Suggestion),
			)
		}
	}

	fmt.Fprintf(w, "\n**Summary:** %s\n", formatSummary(levelCounts(result)))
	return nil
}

// severityBadge returns the bold level label and numeric score.
func severityBadge(f types.Finding) string {
	return fmt.Sprintf("**%s** (%d)", f.Level(), f.Severity)
}

// escapeMarkdown escapes pipe characters that would break Markdown tables.
func escapeMarkdown(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
