package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/nekli/url-shortener/internal/entity"
	"github.com/nekli/url-shortener/internal/usecase"
	"github.com/nekli/url-shortener/pkg/response"
)

type urlUseCase interface {
	ShortenURL(ctx context.Context, rawURL string) (*entity.URL, bool, error)
	ResolveShortCode(ctx context.Context, shortCode string) (*entity.URL, error)
	GetURLStats(ctx context.Context, shortCode string) (*entity.URL, error)
	ListURLs(ctx context.Context, limit int) ([]*entity.URL, int, error)
	CountURLs(ctx context.Context) (int, error)
	ClearURLs(ctx context.Context) (int, error)
}

type urlHandler struct {
	useCase  urlUseCase
	validate *validator.Validate
	baseURL  string
}

func newURLHandler(useCase urlUseCase, validate *validator.Validate, baseURL string) *urlHandler {
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &urlHandler{
		useCase:  useCase,
		validate: validate,
		baseURL:  baseURL,
	}
}

func renderError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, response.Error(msg))
}

func renderInternalError(w http.ResponseWriter, r *http.Request, err error) {
	httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))

	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, response.InternalError(err))
}

func (h *urlHandler) shortenURL(w http.ResponseWriter, r *http.Request) {
	var req shortenRequest

	if err := render.DecodeJSON(r.Body, &req); err != nil {
		if errors.Is(err, io.EOF) {
			renderError(w, r, http.StatusBadRequest, "empty request body")
			return
		}

		renderError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		renderError(w, r, http.StatusBadRequest, validationMessage(err))
		return
	}

	if strings.TrimSpace(*req.URL) == "" {
		renderError(w, r, http.StatusBadRequest, "url must not be empty")
		return
	}

	url, isNew, err := h.useCase.ShortenURL(r.Context(), *req.URL)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidURL) {
			renderError(w, r, http.StatusBadRequest, "invalid url")
			return
		}

		renderInternalError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toShortenResponse(h.baseURL, url, isNew))
}

func (h *urlHandler) redirect(w http.ResponseWriter, r *http.Request) {
	shortCode := chi.URLParam(r, "shortCode")

	url, err := h.useCase.ResolveShortCode(r.Context(), shortCode)
	if err != nil {
		if errors.Is(err, entity.ErrURLNotFound) {
			renderError(w, r, http.StatusNotFound, "url not found")
			return
		}

		renderInternalError(w, r, err)
		return
	}

	http.Redirect(w, r, url.OriginalURL, http.StatusFound)
}

func (h *urlHandler) getURLStats(w http.ResponseWriter, r *http.Request) {
	shortCode := chi.URLParam(r, "shortCode")

	url, err := h.useCase.GetURLStats(r.Context(), shortCode)
	if err != nil {
		if errors.Is(err, entity.ErrURLNotFound) {
			renderError(w, r, http.StatusNotFound, "url not found")
			return
		}

		renderInternalError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toURLStatsResponse(h.baseURL, url))
}

func (h *urlHandler) listURLs(w http.ResponseWriter, r *http.Request) {
	urls, total, err := h.useCase.ListURLs(r.Context(), usecase.DefaultListLimit)
	if err != nil {
		renderInternalError(w, r, err)
		return
	}

	resp := listResponse{
		URLs:  make([]urlStatsResponse, 0, len(urls)),
		Total: total,
	}
	for _, url := range urls {
		resp.URLs = append(resp.URLs, toURLStatsResponse(h.baseURL, url))
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

func (h *urlHandler) health(w http.ResponseWriter, r *http.Request) {
	n, err := h.useCase.CountURLs(r.Context())
	if err != nil {
		renderInternalError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, healthResponse{
		Status:    "ok",
		Message:   "NEKLI API is running",
		Version:   apiVersion,
		TotalURLs: n,
	})
}

func (h *urlHandler) clearURLs(w http.ResponseWriter, r *http.Request) {
	n, err := h.useCase.ClearURLs(r.Context())
	if err != nil {
		renderInternalError(w, r, err)
		return
	}

	total, err := h.useCase.CountURLs(r.Context())
	if err != nil {
		renderInternalError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, clearResponse{
		Message:   fmt.Sprintf("%d URLs removed", n),
		TotalURLs: total,
	})
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	renderError(w, r, http.StatusNotFound, "endpoint not found")
}

func handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	renderError(w, r, http.StatusMethodNotAllowed, "method not allowed")
}
