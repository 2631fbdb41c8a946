package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/CypherHippie/HeaderHunter/internal/output"
	"github.com/CypherHippie/HeaderHunter/pkg/types"
	"github.com/spf13/cobra"
)

// analyzeSource is the report key for headers given on the command line.
const analyzeSource = "(input)"

var analyzeCmd = &cobra.Command{
	Use:   "analyze [\"Name: value\"...]",
	Short: "Score headers without sending any request",
	Long: `Evaluates headers given as "Name: value" arguments. With no arguments
the headers are read from stdin, one per line, so the output of
"curl -sI <url>" can be piped in directly. Status lines are skipped.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().Uint("min-severity", 0, "hide findings below this severity")
	addAnalyzerFlags(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := appConfig

	var (
		headers types.HeaderSet
		err     error
	)
	if len(args) > 0 {
		headers, err = parseHeaderArgs(args)
	} else {
		headers, err = parseHeaderDump(cmd.InOrStdin())
	}
	if err != nil {
		return err
	}
	if len(headers) == 0 {
		return fmt.Errorf("no headers to analyze")
	}

	formatter, err := output.GetFormatter(cfg.OutputFormat)
	if err != nil {
		return err
	}

	agg, err := newAggregator(cfg)
	if err != nil {
		return err
	}

	result := types.ScanResult{}
	if findings := agg.ScanOne(headers); len(findings) > 0 {
		result[analyzeSource] = findings
	}
	return formatter.Format(cmd.OutOrStdout(), result.Filter(cfg.MinSeverity))
}

func parseHeaderArgs(args []string) (types.HeaderSet, error) {
	headers := make(types.HeaderSet, 0, len(args))
	for _, arg := range args {
		h, ok := parseHeaderLine(arg)
		if !ok {
			return nil, fmt.Errorf("invalid header %q: expected \"Name: value\"", arg)
		}
		headers = append(headers, h)
	}
	return headers, nil
}

func parseHeaderDump(r io.Reader) (types.HeaderSet, error) {
	var headers types.HeaderSet
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "HTTP/") {
			continue
		}
		h, ok := parseHeaderLine(line)
		if !ok {
			continue
		}
		headers = append(headers, h)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading headers: %w", err)
	}
	return headers, nil
}

func parseHeaderLine(line string) (types.Header, bool) {
	name, value, ok := strings.Cut(line, ":")
	name = strings.TrimSpace(name)
	if !ok || name == "" || strings.ContainsAny(name, " \t") {
		return types.Header{}, false
	}
	return types.Header{Name: name, Value: strings.TrimSpace(value)}, true
}
