package main

import (
	"github.com/diewo77/cobranzas/internal/logger"
	"github.com/diewo77/cobranzas/internal/remote"
	"github.com/diewo77/cobranzas/internal/server"
	"github.com/diewo77/cobranzas/internal/syncer"
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API backed by the local replica",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.WithComponent("serve")

		st, err := openStore()
		if err != nil {
			return err
		}
		rc := remote.NewClient(cfg.RemoteURL, remote.NoAuth{})
		sy := syncer.New(rc, st, nil)

		srv := &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      server.NewApp(st, sy),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 120 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		go func() {
			log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatal().Err(err).Msg("server error")
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info().Msg("shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("error during shutdown")
		}
		log.Info().Msg("server stopped gracefully")
		return nil
	},
}
