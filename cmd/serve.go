package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xrsl/wfx/pkg/metrics"
	"github.com/xrsl/wfx/pkg/server"
	"github.com/xrsl/wfx/pkg/signal"
	"github.com/xrsl/wfx/pkg/style"
)

var (
	serveAddrFlag    string
	serveProfileFlag string
	serveCatalogFlag string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analyzer over HTTP",
	Long: `Run an HTTP server exposing the analyzer.

Endpoints:
  POST /v1/analyze   {"brief": "...", "profile": "weighted"}
  GET  /v1/catalog   ?profile=coarse
  GET  /healthz
  GET  /metrics      Prometheus metrics

Stops gracefully on SIGINT or SIGTERM.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{requestScopedLogs: "true"},
	RunE:        runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddrFlag, "addr", "", "Listen address (default from config serve_addr)")
	serveCmd.Flags().StringVar(&serveProfileFlag, "profile", "", "Default scoring profile (weighted, coarse)")
	serveCmd.Flags().StringVar(&serveCatalogFlag, "catalog", "", "Workflow catalog file (.yaml or .toml)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	s := settings()

	srv, err := server.New(server.Options{
		DefaultProfile: firstNonEmpty(serveProfileFlag, s.Profile),
		CatalogPath:    firstNonEmpty(serveCatalogFlag, s.CatalogPath),
		Metrics:        metrics.New(),
	})
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext()
	defer cancel()

	addr := firstNonEmpty(serveAddrFlag, s.ServeAddr)
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "%s Listening on http://%s\n", style.C(style.Blue, "→"), addr)
	}
	return srv.ListenAndServe(ctx, addr)
}
