// Package entity defines the entities and errors used in the application.
// It includes the URL struct, which represents a shortened URL along with its
// click statistics, and the errors shared between the layers.
package entity

import (
	"errors"
	"time"
)

var (
	// ErrInvalidURL is returned when the input cannot be normalized into an absolute URL.
	ErrInvalidURL = errors.New("invalid url")
	// ErrShortCodeExists is returned when attempting to save a URL under a short code that is already taken.
	ErrShortCodeExists = errors.New("short code exists")
	// ErrURLExists is returned when attempting to save an original URL that is already registered.
	ErrURLExists = errors.New("url exists")
	// ErrURLNotFound is returned when a URL with the specified short code cannot be found.
	ErrURLNotFound = errors.New("url not found")
)

// URL represents a shortened URL.
type URL struct {
	ShortCode   string    // ShortCode is the generated code used to shorten the original URL.
	OriginalURL string    // OriginalURL is the normalized URL that the short code resolves to.
	URLStats              // URLStats contains statistics about the URL.
	CreatedAt   time.Time // CreatedAt is the timestamp when the URL was first registered.
}

// URLStats contains statistics related to a shortened URL.
type URLStats struct {
	Clicks int64 // Clicks is the number of times the short code has been resolved.
}
