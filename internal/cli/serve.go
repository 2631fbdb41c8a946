package cli

import (
	"fmt"

	"github.com/CypherHippie/HeaderHunter/internal/web"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HeaderHunter API server",
	Long:  "Serves header analysis and asynchronous scan jobs over a JSON API.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":3000", "listen address (host:port)")
	serveCmd.Flags().Duration("job-timeout", 0, "upper bound on one scan job (0 = none)")
	addAnalyzerFlags(serveCmd)
	addFetcherFlags(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := appConfig

	runner, err := newRunner(cfg, logger)
	if err != nil {
		return err
	}

	jobTimeout, _ := cmd.Flags().GetDuration("job-timeout")
	s := web.NewServer(cfg.ListenAddr, runner, logger, jobTimeout)
	fmt.Fprintf(cmd.OutOrStdout(), "HeaderHunter API listening on %s\n", cfg.ListenAddr)
	return s.Start()
}
