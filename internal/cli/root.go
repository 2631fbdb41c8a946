package cli

import (
	"fmt"

	"github.com/CypherHippie/HeaderHunter/internal/analyzer"
	"github.com/CypherHippie/HeaderHunter/internal/config"
	"github.com/CypherHippie/HeaderHunter/internal/fetcher"
	"github.com/CypherHippie/HeaderHunter/internal/logging"
	"github.com/CypherHippie/HeaderHunter/internal/rules"
	"github.com/CypherHippie/HeaderHunter/internal/scanner"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "dev"

var (
	debugFlag  bool
	configFlag string
)

// appConfig holds the loaded configuration, available after PersistentPreRunE.
var appConfig *config.Config

// logger is built from --debug in PersistentPreRunE.
var logger = logging.Nop()

var rootCmd = &cobra.Command{
	Use:   "headerhunter",
	Short: "HeaderHunter — HTTP response header scanner",
	Long: `HeaderHunter probes a list of URLs, collects their HTTP response headers
and scores every header that discloses versions, misconfigurations or
exploit indicators.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var (
			cfg *config.Config
			err error
		)
		if configFlag != "" {
			cfg, err = config.LoadFromFile(configFlag)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		config.ApplyFlags(cfg, cmd)
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		l, err := logging.New(debugFlag)
		if err != nil {
			return err
		}
		logger = l
		appConfig = cfg
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	d := config.Defaults()
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", fmt.Sprintf("config file (default %s)", config.ConfigFilePath()))
	rootCmd.PersistentFlags().StringP("url-file", "f", "", "file with one URL per line")
	rootCmd.PersistentFlags().StringP("output", "o", d.OutputFormat, "output format: table, text, json, markdown, html")
	rootCmd.PersistentFlags().IntP("concurrency", "c", d.Concurrency, "max concurrent probes")
	rootCmd.PersistentFlags().Duration("timeout", d.Timeout, "per-request timeout")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "debug logging")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// addAnalyzerFlags registers the flags that shape header analysis.
func addAnalyzerFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("priority", nil, "headers evaluated before the full pass (repeatable)")
	cmd.Flags().StringArray("pattern", nil, "exploit-indicator regular expression (repeatable)")
	cmd.Flags().Bool("dedupe", false, "drop full-pass findings already reported by the priority pass")
}

// addFetcherFlags registers the flags that shape outbound probes.
func addFetcherFlags(cmd *cobra.Command) {
	d := config.Defaults()
	cmd.Flags().Duration("min-delay", d.MinDelay, "minimum random delay before each request")
	cmd.Flags().Duration("max-delay", d.MaxDelay, "maximum random delay before each request")
	cmd.Flags().Float64("rate-limit", 0, "max requests per second across all workers (0 = unlimited)")
	cmd.Flags().String("method", d.Method, "probe method: HEAD or GET")
}

// newAggregator builds the analysis pipeline from the loaded configuration.
func newAggregator(cfg *config.Config) (*analyzer.Aggregator, error) {
	opts, err := cfg.AnalyzerOptions()
	if err != nil {
		return nil, err
	}
	return analyzer.NewAggregator(analyzer.NewEvaluator(rules.Default()), opts), nil
}

// newRunner wires the HTTP fetcher and the analysis pipeline together.
func newRunner(cfg *config.Config, log *zap.SugaredLogger) (*scanner.Runner, error) {
	agg, err := newAggregator(cfg)
	if err != nil {
		return nil, err
	}
	return scanner.NewRunner(fetcher.New(cfg.FetcherOptions()), agg, log), nil
}
