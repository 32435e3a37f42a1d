// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/gigtags/internal/api"
	"github.com/starford/gigtags/internal/facetservice"
	"github.com/starford/gigtags/internal/lint"
	"github.com/starford/gigtags/internal/mcpserver"
	"github.com/starford/gigtags/internal/sse"
	"github.com/starford/gigtags/internal/storage"
)

func newApplication(opts []Option) (*application, error) {
	app := &application{version: "dev"}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	return app, nil
}

func (a *application) logger(out io.Writer) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: a.config.App.LogLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// NewLinter opens the vault of cfg and returns a linter over it.
func NewLinter(cfg *Config, logger *slog.Logger) (*lint.Linter, error) {
	store, err := storage.NewFS(cfg.Vault.Path)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	return lint.New(store, cfg.Lint.Ignore, logger), nil
}

// Run starts the HTTP server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config
	logger := app.logger(os.Stdout)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("vault_path", cfg.Vault.Path),
		slog.Bool("lint_watch", cfg.Lint.Watch),
		slog.Int("lint_ignore", len(cfg.Lint.Ignore)),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Ensure vault directory exists.
	if err := os.MkdirAll(cfg.Vault.Path, 0o755); err != nil {
		return fmt.Errorf("create vault dir: %w", err)
	}

	linter, err := NewLinter(cfg, logger)
	if err != nil {
		return err
	}

	// Warm the lint cache.
	if report, err := linter.LintVault(ctx); err != nil {
		logger.Warn("initial lint failed", slog.String("error", err.Error()))
	} else {
		logger.Info("Vault linted",
			slog.Int("notes", report.Notes),
			slog.Int("facets", report.Facets),
			slog.Int("findings", report.Findings))
	}

	var sseHandler http.Handler
	var broker *sse.Broker
	if cfg.Lint.Watch {
		broker = sse.NewBroker(cfg.Lint.EventThrottle)
		defer broker.Close()
		sseHandler = broker
	}

	apiRouter := api.NewRouter(facetservice.NewService(), linter, cfg.Auth.AuthEnabled(), cfg.Auth.Token, sseHandler)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	if broker != nil {
		g.Go(func() error {
			if err := lint.Watch(gCtx, linter, cfg.Vault.Path, logger, broker.PublishLintEvent); err != nil {
				return fmt.Errorf("watcher: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		// Unblock the watcher when shutdown came from a signal.
		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

var errShutdown = errors.New("shutdown")

// RunMCP serves the MCP tools on stdin/stdout until the client disconnects.
// Logs go to stderr.
func RunMCP(_ context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config
	logger := app.logger(os.Stderr)

	linter, err := NewLinter(cfg, logger)
	if err != nil {
		return err
	}

	logger.Info("MCP server starting", slog.String("vault_path", cfg.Vault.Path), slog.String("version", app.version))
	srv := mcpserver.New(facetservice.NewService(), linter, app.version)
	if err := srv.ServeStdio(); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
