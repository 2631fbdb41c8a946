package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/CypherHippie/HeaderHunter/internal/rules"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the header rules, whitelist and exploit patterns",
	RunE:  runRules,
}

func runRules(cmd *cobra.Command, args []string) error {
	cfg := appConfig
	table := rules.Default()
	w := cmd.OutOrStdout()

	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"Header", "Base", "Vulnerable Values", "Suggestion"})
	tw.SetAutoWrapText(false)
	tw.SetBorder(false)
	tw.SetColumnSeparator("│")
	for _, r := range table.Rules() {
		tw.Append([]string{
			r.Name,
			strconv.FormatUint(uint64(r.BaseSeverity), 10),
			strings.Join(r.VulnerableValues, ", "),
			r.Suggestion,
		})
	}
	tw.Render()

	bold := color.New(color.Bold)
	fmt.Fprintf(w, "\n%s %s\n", bold.Sprint("Whitelisted:"), strings.Join(table.Whitelist(), ", "))
	fmt.Fprintf(w, "%s %s\n", bold.Sprint("Priority headers:"), strings.Join(cfg.PriorityHeaders, ", "))
	fmt.Fprintf(w, "%s\n", bold.Sprint("Exploit patterns:"))
	for _, p := range cfg.Patterns {
		fmt.Fprintf(w, "  %s\n", p)
	}
	return nil
}
