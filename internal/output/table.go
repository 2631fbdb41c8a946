package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/CypherHippie/HeaderHunter/pkg/types"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// TableFormatter renders results as a colored terminal table per URL.
type TableFormatter struct{}

func (f *TableFormatter) Format(w io.Writer, result types.ScanResult) error {
	if len(result) == 0 {
		fmt.Fprintln(w, "No findings.")
		return nil
	}

	for _, entry := range result.Sorted() {
		fmt.Fprintf(w, "\n[%s] — %d findings\n", entry.URL, len(entry.Findings))

		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"Severity", "Level", "Finding", "Suggestion"})
		table.SetAutoWrapText(false)
		table.SetBorder(false)
		table.SetColumnSeparator("│")

		for _, finding := range entry.Findings {
			table.Append([]string{
				strconv.FormatUint(uint64(finding.Severity), 10),
				colorLevel(finding.Level()),
				finding.Label,
				finding.Suggestion,
			})
		}

		table.Render()
	}

	fmt.Fprintf(w, "\n%d URLs — %s\n", len(result), formatSummary(levelCounts(result)))
	return nil
}

func colorLevel(l types.Level) string {
	switch l {
	case types.LevelCritical:
		return color.New(color.FgRed, color.Bold).Sprint("CRITICAL")
	case types.LevelHigh:
		return color.RedString("HIGH")
	case types.LevelMedium:
		return color.YellowString("MEDIUM")
	case types.LevelLow:
		return color.CyanString("LOW")
	case types.LevelInfo:
		return color.WhiteString("INFO")
	default:
		return string(l)
	}
}
