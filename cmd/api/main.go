// Command api serves the Kanso Habits HTTP API.
//
//	@title						Kanso Habits API
//	@version					1.0
//	@description				Habit tracking with daily check-ins, statistics and reminders.
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/comitanigiacomo/kanso-habits/internal/config"
	"github.com/comitanigiacomo/kanso-habits/internal/platform/logger"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.Setup("kanso-habits", cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := newApp(ctx, cfg, appLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start")
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.Error().Err(err).Msg("shutdown cleanup failed")
		}
	}()

	application.scheduler.Start(ctx)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr(),
		Handler:      application.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("environment", string(cfg.Environment)).Msg("kanso habits API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("critical server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("stop signal received, shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
		return
	}

	log.Info().Msg("server stopped gracefully")
}
