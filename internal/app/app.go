// Package app wires the registry, the use case and the HTTP delivery layer
// together and runs the server until the context is cancelled.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/httplog/v2"
	"github.com/nekli/url-shortener/internal/adapter/repository/memory"
	"github.com/nekli/url-shortener/internal/config"
	"github.com/nekli/url-shortener/internal/usecase"
	"golang.org/x/sync/errgroup"

	delivery "github.com/nekli/url-shortener/internal/adapter/delivery/http"
)

// NewLogger builds the structured logger shared by the server and the request middleware.
func NewLogger(cfg *config.Config) *httplog.Logger {
	return httplog.NewLogger("url-shortener", httplog.Options{
		JSON:            cfg.Env == config.EnvProd,
		Concise:         cfg.Env != config.EnvProd,
		LogLevel:        cfg.Log.SlogLevel(),
		QuietDownRoutes: []string{"/api/health"},
		QuietDownPeriod: 10 * time.Second,
	})
}

// NewHandler creates a fresh, empty registry and returns the router serving it.
func NewHandler(cfg *config.Config, logger *httplog.Logger) http.Handler {
	urlRepo := memory.NewURLRepository()
	urlUseCase := usecase.NewURLUseCase(urlRepo)

	return delivery.NewRouter(logger, delivery.Config{
		BaseURL:        cfg.BaseURL,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	}, urlUseCase)
}

func Run(ctx context.Context, cfg *config.Config, logger *httplog.Logger) error {
	const op = "app.Run"

	server := &http.Server{
		Addr:           cfg.HTTPServer.Addr(),
		Handler:        NewHandler(cfg, logger),
		ReadTimeout:    cfg.HTTPServer.ReadTimeout,
		WriteTimeout:   cfg.HTTPServer.WriteTimeout,
		IdleTimeout:    cfg.HTTPServer.IdleTimeout,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting server",
			"env", cfg.Env,
			"addr", server.Addr,
			"base_url", cfg.BaseURL,
		)

		var err error

		switch cfg.Env {
		case config.EnvProd:
			err = server.ListenAndServeTLS(cfg.HTTPServer.CertFile, cfg.HTTPServer.KeyFile)
		default:
			err = server.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s: server error occurred: %w", op, err)
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		logger.Info("shutting down server, shortened urls will be lost")

		if err := server.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("%s: failed to shutdown server: %w", op, err)
		}

		return nil
	})

	return g.Wait()
}
