// Package usecase implements short code allocation and the operations served
// on top of the URL registry.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/nekli/url-shortener/internal/entity"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// Alphabet is the set of characters short codes are drawn from.
	Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	// ShortCodeLength is the length of freshly minted short codes.
	ShortCodeLength = 6
	// DefaultListLimit caps the number of records returned by ListURLs.
	DefaultListLimit = 10

	defaultScheme = "https://"
	maxRetries    = 100
)

var ErrMaxRetriesExceeded = errors.New("maximum retries exceeded for generating short code")

type urlRepository interface {
	Save(ctx context.Context, shortCode, originalURL string) (*entity.URL, error)
	RetrieveByOriginalURL(ctx context.Context, originalURL string) (*entity.URL, error)
	RetrieveByShortCode(ctx context.Context, shortCode string) (*entity.URL, error)
	RetrieveAndUpdateStats(ctx context.Context, shortCode string) (*entity.URL, error)
	List(ctx context.Context, limit int) ([]*entity.URL, int, error)
	Count(ctx context.Context) (int, error)
	RemoveAll(ctx context.Context) (int, error)
}

type URLUseCase struct {
	urlRepo urlRepository
}

func NewURLUseCase(urlRepo urlRepository) *URLUseCase {
	return &URLUseCase{
		urlRepo: urlRepo,
	}
}

// Normalize trims rawURL, prepends https:// when neither http:// nor https:// is present
// and requires the result to carry both a scheme and a host.
func Normalize(rawURL string) (string, error) {
	const op = "usecase.Normalize"

	s := strings.TrimSpace(rawURL)
	if s == "" {
		return "", fmt.Errorf("%s: empty url: %w", op, entity.ErrInvalidURL)
	}

	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		s = defaultScheme + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", op, entity.ErrInvalidURL, err)
	}

	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%s: missing scheme or host: %w", op, entity.ErrInvalidURL)
	}

	return s, nil
}

// GenerateCode draws length independent characters from Alphabet.
// Uniqueness is not guaranteed; ShortenURL retries on collision.
func GenerateCode(length int) (string, error) {
	return gonanoid.Generate(Alphabet, length)
}

// ShortenURL returns the short code registered for rawURL, minting one if needed.
// The boolean result reports whether a new record was created.
func (uc *URLUseCase) ShortenURL(ctx context.Context, rawURL string) (*entity.URL, bool, error) {
	const op = "usecase.URLUseCase.ShortenURL"

	originalURL, err := Normalize(rawURL)
	if err != nil {
		return nil, false, err
	}

	existing, err := uc.urlRepo.RetrieveByOriginalURL(ctx, originalURL)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, entity.ErrURLNotFound) {
		return nil, false, fmt.Errorf("%s: failed to look up url: %w", op, err)
	}

	// A full round of collisions at the default length falls back to one character more.
	for _, length := range []int{ShortCodeLength, ShortCodeLength + 1} {
		for i := 0; i < maxRetries; i++ {
			shortCode, err := GenerateCode(length)
			if err != nil {
				return nil, false, fmt.Errorf("%s: failed to generate short code: %w", op, err)
			}

			url, err := uc.urlRepo.Save(ctx, shortCode, originalURL)
			switch {
			case err == nil:
				return url, true, nil
			case errors.Is(err, entity.ErrShortCodeExists):
				continue
			case errors.Is(err, entity.ErrURLExists):
				return url, false, nil
			default:
				return nil, false, fmt.Errorf("%s: failed to shorten url: %w", op, err)
			}
		}
	}

	return nil, false, fmt.Errorf("%s: %w", op, ErrMaxRetriesExceeded)
}

// ResolveShortCode counts a click and returns the post-increment record.
func (uc *URLUseCase) ResolveShortCode(ctx context.Context, shortCode string) (*entity.URL, error) {
	const op = "usecase.URLUseCase.ResolveShortCode"

	url, err := uc.urlRepo.RetrieveAndUpdateStats(ctx, shortCode)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to resolve short code: %w", op, err)
	}

	return url, nil
}

func (uc *URLUseCase) GetURLStats(ctx context.Context, shortCode string) (*entity.URL, error) {
	const op = "usecase.URLUseCase.GetURLStats"

	url, err := uc.urlRepo.RetrieveByShortCode(ctx, shortCode)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get url stats: %w", op, err)
	}

	return url, nil
}

// ListURLs returns up to limit records, newest first, plus the total registry size.
func (uc *URLUseCase) ListURLs(ctx context.Context, limit int) ([]*entity.URL, int, error) {
	const op = "usecase.URLUseCase.ListURLs"

	urls, total, err := uc.urlRepo.List(ctx, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: failed to list urls: %w", op, err)
	}

	return urls, total, nil
}

func (uc *URLUseCase) CountURLs(ctx context.Context) (int, error) {
	const op = "usecase.URLUseCase.CountURLs"

	n, err := uc.urlRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to count urls: %w", op, err)
	}

	return n, nil
}

// ClearURLs empties the registry and returns how many records were removed.
func (uc *URLUseCase) ClearURLs(ctx context.Context) (int, error) {
	const op = "usecase.URLUseCase.ClearURLs"

	n, err := uc.urlRepo.RemoveAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to clear urls: %w", op, err)
	}

	return n, nil
}
