// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/oliverandrich/music-catalog/internal/config"
	"codeberg.org/oliverandrich/music-catalog/internal/database"
	"codeberg.org/oliverandrich/music-catalog/internal/handlers"
	"codeberg.org/oliverandrich/music-catalog/internal/i18n"
	"codeberg.org/oliverandrich/music-catalog/internal/middleware"
	"codeberg.org/oliverandrich/music-catalog/internal/repository"
	authsvc "codeberg.org/oliverandrich/music-catalog/internal/services/auth"
	"codeberg.org/oliverandrich/music-catalog/internal/services/email"
	"codeberg.org/oliverandrich/music-catalog/internal/sse"
	"github.com/labstack/echo/v4"
	"github.com/urfave/cli/v3"
	"github.com/vinovest/sqlx"
)

const shutdownTimeout = 10 * time.Second

// App holds the wired HTTP stack.
type App struct {
	Echo *echo.Echo
	Auth *authsvc.Service
	Hub  *sse.Hub
}

// Run starts the server with the given CLI command.
func Run(ctx context.Context, cmd *cli.Command) error {
	cfg := config.NewFromCLI(cmd)
	setupLogger(cfg.Log.Level, cfg.Log.Format)

	if err := cfg.Validate(); err != nil {
		return err
	}

	slog.Info("starting server",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"base_url", cfg.Server.BaseURL,
		"dialect", database.DialectFromDSN(cfg.Database.DSN),
	)

	// Database and migrations
	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("failed to close database", "error", closeErr)
		}
	}()

	app, err := NewApp(cfg, db)
	if err != nil {
		return err
	}

	return startWithGracefulShutdown(ctx, app, cfg)
}

// NewApp wires services, middleware and routes on top of an open database.
func NewApp(cfg *config.Config, db *sqlx.DB) (*App, error) {
	if err := i18n.Init(); err != nil {
		return nil, fmt.Errorf("failed to init i18n: %w", err)
	}

	repo := repository.New(db)

	tokens, err := authsvc.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create token issuer: %w", err)
	}
	authService := authsvc.NewService(repo, authsvc.NewHasher(cfg.Auth.BcryptCost), tokens)

	if cfg.SMTP.Enabled() {
		mailer, mailErr := email.NewService(&cfg.SMTP, cfg.Server.BaseURL)
		if mailErr != nil {
			return nil, fmt.Errorf("failed to configure mail: %w", mailErr)
		}
		authService.SetMailer(mailer)
		slog.Info("welcome mails enabled", "smtp_host", cfg.SMTP.Host)
	}

	hub := sse.NewHub()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	setupMiddleware(e, cfg)
	setupRoutes(e, cfg, handlers.New(repo, authService, hub), tokens)

	return &App{Echo: e, Auth: authService, Hub: hub}, nil
}

func setupRoutes(e *echo.Echo, cfg *config.Config, h *handlers.Handlers, tokens middleware.TokenVerifier) {
	e.GET("/health", h.Health)

	api := e.Group("/api")

	// Public
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)

	// Protected
	protected := api.Group("", middleware.RequireToken(tokens, cfg.Auth.TokenHeader))
	protected.GET("/auth/me", h.Me)
	protected.GET("/events", h.Events)

	artists := protected.Group("/artists")
	artists.POST("", h.CreateArtist)
	artists.GET("", h.ListArtists)
	artists.GET("/:id", h.GetArtist)
	artists.PUT("/:id", h.UpdateArtist)
	artists.DELETE("/:id", h.DeleteArtist)

	albums := protected.Group("/albums")
	albums.POST("", h.CreateAlbum)
	albums.GET("", h.ListAlbums)
	albums.GET("/:id", h.GetAlbum)
	albums.PUT("/:id", h.UpdateAlbum)
	albums.DELETE("/:id", h.DeleteAlbum)

	songs := protected.Group("/songs")
	songs.POST("", h.CreateSong)
	songs.GET("", h.ListSongs)
	songs.GET("/:id", h.GetSong)
	songs.PUT("/:id", h.UpdateSong)
	songs.DELETE("/:id", h.DeleteSong)
}

func startWithGracefulShutdown(ctx context.Context, app *App, cfg *config.Config) error {
	e := app.Echo

	// Setup TLS
	tlsResult, err := SetupTLS(cfg)
	if err != nil {
		return fmt.Errorf("TLS setup failed: %w", err)
	}

	// Channel for server errors
	errChan := make(chan error, 1)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	go func() {
		slog.Info("Server running", "url", cfg.Server.BaseURL, "tls", tlsResult.Mode)
		var serveErr error
		if tlsResult.Mode == TLSModeOff {
			serveErr = e.Start(addr)
		} else {
			serveErr = startTLSServer(e, addr, tlsResult.TLSConfig)
		}
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errChan <- serveErr
		}
	}()

	// Wait for interrupt signal or error
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case <-sigCtx.Done():
		slog.Info("shutting down server")
	case err := <-errChan:
		slog.Error("server error", "error", err)
		return err
	}

	return shutdown(app)
}

// shutdown ends open event streams, drains in-flight requests and waits for pending mails.
func shutdown(app *App) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	app.Hub.Close()

	err := app.Echo.Shutdown(shutdownCtx)
	if err != nil {
		slog.Error("failed to shutdown server", "error", err)
	}

	app.Auth.Wait()

	slog.Info("server stopped")
	return err
}

// startTLSServer starts the Echo server with a custom TLS configuration.
func startTLSServer(e *echo.Echo, addr string, tlsConfig *tls.Config) error {
	lc := &net.ListenConfig{}
	ln, err := lc.Listen(context.Background(), "tcp", addr)
	if err != nil {
		return err
	}
	e.TLSListener = tls.NewListener(ln, tlsConfig)
	e.TLSServer.TLSConfig = tlsConfig
	return e.TLSServer.Serve(e.TLSListener)
}
