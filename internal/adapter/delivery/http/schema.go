package http

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/nekli/url-shortener/internal/entity"
)

const (
	apiVersion = "1.0.0"

	msgURLShortened        = "URL shortened successfully"
	msgURLAlreadyShortened = "URL already shortened"
)

// shortenRequest is the body of POST /api/shorten.
// URL is a pointer so that a missing field can be told apart from an empty one.
type shortenRequest struct {
	URL *string `json:"url" validate:"required"`
}

type shortenResponse struct {
	OriginalURL string `json:"original_url"`
	ShortURL    string `json:"short_url"`
	ShortCode   string `json:"short_code"`
	Message     string `json:"message"`
}

func toShortenResponse(baseURL string, url *entity.URL, isNew bool) shortenResponse {
	msg := msgURLAlreadyShortened
	if isNew {
		msg = msgURLShortened
	}

	return shortenResponse{
		OriginalURL: url.OriginalURL,
		ShortURL:    shortURL(baseURL, url.ShortCode),
		ShortCode:   url.ShortCode,
		Message:     msg,
	}
}

// urlStatsResponse is used both by the stats endpoint and as a list item.
type urlStatsResponse struct {
	OriginalURL string    `json:"original_url"`
	ShortCode   string    `json:"short_code"`
	ShortURL    string    `json:"short_url"`
	CreatedAt   time.Time `json:"created_at"`
	Clicks      int64     `json:"clicks"`
}

func toURLStatsResponse(baseURL string, url *entity.URL) urlStatsResponse {
	return urlStatsResponse{
		OriginalURL: url.OriginalURL,
		ShortCode:   url.ShortCode,
		ShortURL:    shortURL(baseURL, url.ShortCode),
		CreatedAt:   url.CreatedAt,
		Clicks:      url.Clicks,
	}
}

type listResponse struct {
	URLs  []urlStatsResponse `json:"urls"`
	Total int                `json:"total"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Version   string `json:"version"`
	TotalURLs int    `json:"total_urls"`
}

type clearResponse struct {
	Message   string `json:"message"`
	TotalURLs int    `json:"total_urls"`
}

func shortURL(baseURL, shortCode string) string {
	return strings.TrimRight(baseURL, "/") + "/" + shortCode
}

// messageForTag returns a user-friendly message based on the validation tag.
func messageForTag(tag string) string {
	switch tag {
	case "required":
		return "is required"
	default:
		return "is invalid"
	}
}

// validationMessage flattens validation errors into a single line.
func validationMessage(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return "invalid request body"
	}

	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, fmt.Sprintf("%s %s", e.Field(), messageForTag(e.Tag())))
	}

	return strings.Join(msgs, "; ")
}
