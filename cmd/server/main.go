package main

import (
	"context"
	"delivery-emissions-service/internal/api"
	"delivery-emissions-service/internal/bootstrap"
	"delivery-emissions-service/internal/config"
	"delivery-emissions-service/internal/platform/obs"
	"delivery-emissions-service/internal/session"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// main is the application composition root.
// It wires concrete adapters (ORS, Nominatim, OpenWeatherMap, the model bridge,
// optional Postgres/Redis caches) behind ports and starts the HTTP server.
func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		obs.InitLogger("info", "console")
		log.Fatal().Err(err).Msg("load config")
	}
	obs.InitLogger(cfg.LogLevel, cfg.LogFormat)
	if envErr != nil {
		log.Info().Msg("No .env file found (using environment variables)")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stack, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("wire collaborators")
	}
	defer func() {
		if err := stack.Close(); err != nil {
			log.Warn().Err(err).Msg("close cache backends")
		}
	}()

	if err := stack.Model.Health(ctx); err != nil {
		log.Warn().Err(err).Msg("model service not healthy yet; predictions will fail until it is")
	}

	registry := session.NewRegistry()
	go sweepSessions(ctx, registry, cfg.SessionIdleTimeout)

	// Timeouts allow for a cold-cache prediction: two geocodes, two weather
	// lookups, one route and one model call, each bounded by EXTERNAL_TIMEOUT.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(registry, stack.Deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
		}
	}
}

// sweepSessions drops idle sessions until ctx is cancelled.
func sweepSessions(ctx context.Context, reg *session.Registry, maxIdle time.Duration) {
	t := time.NewTicker(maxIdle / 4)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := reg.Sweep(maxIdle); n > 0 {
				log.Info().Int("sessions", n).Msg("expired idle sessions")
			}
		}
	}
}
