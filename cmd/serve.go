package cmd

import (
	"github.com/spf13/cobra"

	"github.com/s0up4200/cineparadis/server"
)

var listenAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve detail pages as JSON over HTTP",
	Long: `Start an HTTP server exposing:

  GET /api/{kind}/{id}?tab=&filter=&preset=   detail page as JSON
  GET /api/presets                            configured filter presets
  GET /healthz                                liveness
  GET /metrics                                Prometheus metrics`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&listenAddr, "listen", "l", "", "listen address (overrides server.listen)")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := cfg.Server.Listen
	if cmd.Flags().Changed("listen") {
		addr = listenAddr
	}

	srv := server.New(tmdbClient, filters, logger,
		server.WithImages(imgBuilder),
		server.WithSite(siteInfo()),
		server.WithRecorder(recorder),
		server.WithFetchTimeout(cfg.TMDB.FetchTimeout),
		server.WithRateLimit(server.RateLimitConfig{
			RequestLimit: cfg.Server.RateLimitRequests,
			WindowSize:   cfg.Server.RateLimitWindow,
		}),
	)

	return srv.ListenAndServe(cmd.Context(), addr)
}
