package output

import (
	"fmt"
	"io"

	"github.com/CypherHippie/HeaderHunter/pkg/types"
)

// TextFormatter prints one line per finding under each URL:
// "  <label> (Severity: <n>): <suggestion>".
type TextFormatter struct{}

func (f *TextFormatter) Format(w io.Writer, result types.ScanResult) error {
	for _, entry := range result.Sorted() {
		fmt.Fprintf(w, "\nURL: %s\n", entry.URL)
		for _, finding := range entry.Findings {
			fmt.Fprintf(w, "  %s (Severity: %d): %s\n", finding.Label, finding.Severity, finding.Suggestion)
		}
	}
	return nil
}
