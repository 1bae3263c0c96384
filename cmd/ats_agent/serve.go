package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/ats-scorer/internal/schemas"
	"github.com/jonathan/ats-scorer/internal/server"
	"github.com/jonathan/ats-scorer/internal/server/ratelimit"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long:  "Start an HTTP server exposing /health, /api/score, /api/refine and /metrics.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadRuntime(root)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if port != 0 {
				cfg.Server.Port = port
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			svc, cleanup, err := newService(ctx, cfg, logger, nil)
			if err != nil {
				return err
			}
			defer cleanup()

			var validator *schemas.Validator
			if cfg.Logging.Level == "debug" {
				validator, err = schemas.NewScoreReportValidator()
				if err != nil {
					return err
				}
			}

			srv := server.New(svc, server.Config{
				Addr:            cfg.Addr(),
				ReadTimeout:     cfg.Server.ReadTimeout,
				WriteTimeout:    cfg.Server.WriteTimeout,
				MaxUploadBytes:  cfg.Server.MaxUploadBytes,
				RateLimit:       ratelimit.FromSettings(cfg.RateLimit),
				ReportValidator: validator,
				Logger:          logger,
			})

			logger.Info("starting server",
				zap.String("addr", cfg.Addr()),
				zap.Bool("cache", cfg.Cache.Enabled),
				zap.Bool("rate_limit", cfg.RateLimit.Enabled))
			return srv.Start(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Port to listen on (overrides server.port)")

	return cmd
}
