package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/chatwire/internal/auth"
	"github.com/alfredjeanlab/chatwire/internal/config"
	"github.com/alfredjeanlab/chatwire/internal/events"
	"github.com/alfredjeanlab/chatwire/internal/notify"
	"github.com/alfredjeanlab/chatwire/internal/registry"
	"github.com/alfredjeanlab/chatwire/internal/server"
	"github.com/alfredjeanlab/chatwire/internal/store/postgres"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the notify daemon",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		slog.SetDefault(logger)

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		st, err := postgres.New(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer st.Close()

		var mirror events.Publisher
		if cfg.NATSURL != "" {
			m, err := events.NewNATSPublisher(cfg.NATSURL)
			if err != nil {
				return err
			}
			mirror = m
			logger.Info("event mirror enabled", "nats_url", cfg.NATSURL)
		} else {
			mirror = &events.NoopPublisher{}
			logger.Info("event mirror disabled (CHATWIRE_NATS_URL not set)")
		}
		defer mirror.Close()

		reg := registry.New()

		pump, err := notify.NewPump(cfg.DatabaseURL, reg, mirror, logger)
		if err != nil {
			return err
		}

		srv := server.New(reg, auth.StaticVerifier(cfg.AuthTokens), st, cfg.Keepalive, logger)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		httpServer := &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: srv.Handler(),
			// Streaming handlers exit when their request context is canceled,
			// so derive request contexts from the run context to let Shutdown
			// drain them.
			BaseContext: func(net.Listener) context.Context { return ctx },
		}

		pumpErr := make(chan error, 1)
		go func() { pumpErr <- pump.Run(ctx) }()

		go func() {
			logger.Info("HTTP server listening", "addr", cfg.HTTPAddr)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("HTTP server error", "err", err)
			}
		}()

		var runErr error
		select {
		case <-ctx.Done():
			logger.Info("shutting down")
		case err := <-pumpErr:
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("notification pump failed", "err", err)
				runErr = err
			}
		}
		stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP shutdown error", "err", err)
		}
		return runErr
	},
}
