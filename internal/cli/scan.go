package cli

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/CypherHippie/HeaderHunter/internal/output"
	"github.com/CypherHippie/HeaderHunter/internal/scanner"
	"github.com/CypherHippie/HeaderHunter/internal/targets"
	"github.com/CypherHippie/HeaderHunter/pkg/types"
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan [url...]",
	Short: "Probe URLs and score their response headers",
	Long: `Sends one request to every URL (from --url-file, --url or arguments),
evaluates the response headers and prints the findings per URL.
Unreachable URLs are logged and left out of the report.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringArrayP("url", "u", nil, "URL to scan (repeatable)")
	scanCmd.Flags().Uint("min-severity", 0, "hide findings below this severity")
	addAnalyzerFlags(scanCmd)
	addFetcherFlags(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg := appConfig

	urls, err := scanTargets(cmd, args, cfg.URLFile)
	if err != nil {
		return err
	}

	formatter, err := output.GetFormatter(cfg.OutputFormat)
	if err != nil {
		return err
	}

	runner, err := newRunner(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	opts := scanner.Options{
		Concurrency: cfg.Concurrency,
		OnURLDone: func(url string, findings []types.Finding, err error) {
			if err == nil {
				logger.Infow("url done", "url", url, "findings", len(findings))
			}
		},
	}
	logger.Infow("scan started", "urls", len(urls), "concurrency", cfg.Concurrency)
	result := runner.Scan(ctx, urls, opts)
	if ctx.Err() != nil {
		logger.Warnw("scan interrupted, reporting partial results")
	}

	return formatter.Format(cmd.OutOrStdout(), result.Filter(cfg.MinSeverity))
}

// scanTargets prefers URLs given on the command line and falls back to the
// URL file.
func scanTargets(cmd *cobra.Command, args []string, urlFile string) ([]string, error) {
	flagURLs, _ := cmd.Flags().GetStringArray("url")
	raw := append(append([]string(nil), flagURLs...), args...)

	if len(raw) > 0 {
		urls := make([]string, 0, len(raw))
		for _, u := range raw {
			if n := targets.Normalize(u); n != "" {
				urls = append(urls, n)
			}
		}
		if len(urls) == 0 {
			return nil, targets.ErrNoTargets
		}
		return urls, nil
	}

	if urlFile == "" {
		return nil, fmt.Errorf("no targets: pass --url-file, --url or URL arguments")
	}
	return targets.Load(urlFile)
}
