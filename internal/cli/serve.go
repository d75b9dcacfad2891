package cli

import (
	"github.com/spf13/cobra"

	"github.com/poppimarsantii12/model-matematika-dalam-industri/internal/server"
)

func (a *app) serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the models over an HTTP JSON API",
		Long: `Starts the HTTP API on --addr. Every model is a POST endpoint under
/api/v1; /healthz reports liveness and /metrics exposes Prometheus metrics.
The server shuts down gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			srv := server.New(a.opt, a.log)
			return srv.ListenAndServe(cmd.Context(), a.cfg.ServerAddr)
		},
	}
}
