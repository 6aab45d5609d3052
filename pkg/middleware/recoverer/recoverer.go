// Package recoverer turns a panicking handler into a 500 JSON response.
package recoverer

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/nekli/url-shortener/pkg/middleware"
	"github.com/nekli/url-shortener/pkg/response"
)

func New(logger *slog.Logger) middleware.Middleware {
	const op = "middleware.recoverer.New"

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}

				logger.Error(
					"something went wrong, panic occurred",
					slog.Group(op, slog.Any("err", rvr), slog.String("path", r.URL.Path)),
				)

				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.InternalError(rvr))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
