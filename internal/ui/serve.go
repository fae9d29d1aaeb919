package ui

import (
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javiermolinar/deckhand/internal/logging"
	"github.com/javiermolinar/deckhand/internal/server"
)

func (a *App) serveCmd() *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the board over HTTP",
		Long: `Start the JSON API for schedules, drag and drop, labels and saving.
The server stops on SIGINT or SIGTERM.

Example:
  deckhand serve --listen 127.0.0.1:9000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logCfg := a.config.Log
			if a.debug {
				logCfg.Level = "debug"
			} else {
				gin.SetMode(gin.ReleaseMode)
			}
			logger, err := logging.New(logCfg)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if err := a.ensureRepo(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := server.New(a.repo, server.WithLogger(logger), server.WithVersion(Version))
			logger.Info("serving board API", zap.String("db", a.config.Storage.DBPath))
			return srv.Run(ctx, listen)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", a.config.Server.Listen, "Address to listen on")
	return cmd
}
