// Package http provides the HTTP delivery layer for the URL shortener service.
// This package contains the HTTP handlers and related types used for processing
// incoming requests, validating input, and formatting responses.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"github.com/go-playground/validator/v10"
	"github.com/nekli/url-shortener/docs"
	"github.com/nekli/url-shortener/pkg/middleware/recoverer"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Config holds the settings the router needs beyond its collaborators.
type Config struct {
	// BaseURL prefixes short codes in short_url fields.
	BaseURL string
	// AllowedOrigins is passed to the CORS middleware.
	AllowedOrigins []string
}

// NewRouter initializes and returns a new Chi router configured with middleware and routes for the URL shortener API.
func NewRouter(logger *httplog.Logger, cfg Config, urlUseCase urlUseCase) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(logger))
	r.Use(recoverer.New(logger.Logger))

	r.NotFound(handleNotFound)
	r.MethodNotAllowed(handleMethodNotAllowed)

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/swagger.yml"),
	))

	r.Get("/docs/swagger.yml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.Write(docs.Swagger)
	})

	h := newURLHandler(urlUseCase, validator.New(), cfg.BaseURL)

	r.Route("/api", func(r chi.Router) {
		r.Post("/shorten", h.shortenURL)
		r.Get("/stats/{shortCode}", h.getURLStats)
		r.Get("/list", h.listURLs)
		r.Get("/health", h.health)
		r.Get("/clear", h.clearURLs)
	})

	r.Get("/{shortCode}", h.redirect)

	return r
}
