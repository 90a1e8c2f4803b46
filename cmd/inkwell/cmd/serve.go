package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/inkwell-press/inkwell/internal/server"
)

func serveCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Preview the site locally, rebuilding on changes",
		Long: `Serve performs an initial build with drafts included, starts a local
web server on the output directory, and watches content, layouts and
static directories, rebuilding automatically on changes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port == "" {
				port = cfg.Port
			}

			builder := newBuilder(true, false, nil)
			srv := server.New(
				builder,
				cfg.OutputPath,
				port,
				[]string{cfg.ContentPath, cfg.LayoutsPath, cfg.StaticPath},
				cfg.WatchDebounce,
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "port to serve on (default from PORT)")
	return cmd
}
