package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// serve: run the HTTP verifier until interrupted.
func serveCmd() *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve fingerprint verification over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listen != "" {
				wire.Config.Server.Listen = listen
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return wire.NewVerifierServer().ListenAndServe(ctx, wire.Config.Server.Listen)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default from config, :8080)")
	return cmd
}
