package app

import (
	"context"
	"fmt"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/boogeyman0929/chat-backend/internal/auth"
	"github.com/boogeyman0929/chat-backend/internal/config"
	"github.com/boogeyman0929/chat-backend/internal/core"
	"github.com/boogeyman0929/chat-backend/internal/store"
	"github.com/boogeyman0929/chat-backend/internal/store/sqlite"
	transporthttp "github.com/boogeyman0929/chat-backend/internal/transport/http"
)

// App wires together core and transport layers.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	hub             *core.Hub
	janitor         *core.Janitor
	store           store.KeyStore
	log             *zerolog.Logger
}

// New constructs the application with provided configuration.
func New(cfg config.Config, logger *zerolog.Logger) (*App, error) {
	st, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("init key store: %w", err)
	}

	logger.Info().Str("db_path", cfg.DatabasePath).Msg("key store initialized")

	jwtConfig := &auth.JWTConfig{
		Secret:   []byte(cfg.JWTSecret),
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
		TTL:      cfg.TokenTTL,
	}

	registry := core.NewRegistry()
	channels := core.NewChannelStore()

	authService := auth.NewService(st, cfg.AccessKeys, registry, jwtConfig)
	hub := core.NewHub(registry, channels, logger)
	janitor := core.NewJanitor(channels, cfg.HistoryResetInterval, logger)
	server := transporthttp.NewServer(hub, authService, cfg, logger)

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		hub:             hub,
		janitor:         janitor,
		store:           st,
		log:             logger,
	}, nil
}

// Run starts the HTTP server and blocks until context cancellation or fatal error.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go a.hub.Run(ctx)
	go a.janitor.Run(ctx)

	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		a.cleanup()
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			a.cleanup()
			return err
		}

		a.cleanup()
		return <-serverErr
	}
}

// cleanup closes the key store and other resources.
func (a *App) cleanup() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn().Err(err).Msg("failed to close key store")
		} else {
			a.log.Info().Msg("key store closed")
		}
	}
}
