// Package memory implements the URL registry kept entirely in process memory.
// Nothing is persisted: the registry lives as long as the process does.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/nekli/url-shortener/internal/entity"
	"github.com/samber/lo"
)

type urlRecord struct {
	seq         uint64
	shortCode   string
	originalURL string
	clicks      int64
	createdAt   time.Time
}

func (u *urlRecord) toEntity() *entity.URL {
	return &entity.URL{
		ShortCode:   u.shortCode,
		OriginalURL: u.originalURL,
		URLStats: entity.URLStats{
			Clicks: u.clicks,
		},
		CreatedAt: u.createdAt,
	}
}

type Option func(*URLRepository)

// WithClock overrides the time source used to stamp new records.
func WithClock(now func() time.Time) Option {
	return func(r *URLRepository) {
		r.now = now
	}
}

// URLRepository is a short code → record mapping guarded by a single readers-writer lock.
type URLRepository struct {
	mu   sync.RWMutex
	urls map[string]*urlRecord
	seq  uint64
	now  func() time.Time
}

func NewURLRepository(opts ...Option) *URLRepository {
	r := &URLRepository{
		urls: make(map[string]*urlRecord),
		now:  time.Now,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Save registers originalURL under shortCode with zero clicks.
// If originalURL is already registered, the existing record is returned together with entity.ErrURLExists.
func (r *URLRepository) Save(_ context.Context, shortCode, originalURL string) (*entity.URL, error) {
	const op = "adapter.repository.memory.URLRepository.Save"

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.findByOriginalURL(originalURL); ok {
		return existing.toEntity(), fmt.Errorf("%s: %w", op, entity.ErrURLExists)
	}

	if _, ok := r.urls[shortCode]; ok {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrShortCodeExists)
	}

	r.seq++
	rec := &urlRecord{
		seq:         r.seq,
		shortCode:   shortCode,
		originalURL: originalURL,
		createdAt:   r.now(),
	}
	r.urls[shortCode] = rec

	return rec.toEntity(), nil
}

// RetrieveByOriginalURL scans the registry for an exact match of originalURL.
func (r *URLRepository) RetrieveByOriginalURL(_ context.Context, originalURL string) (*entity.URL, error) {
	const op = "adapter.repository.memory.URLRepository.RetrieveByOriginalURL"

	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.findByOriginalURL(originalURL)
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrURLNotFound)
	}

	return rec.toEntity(), nil
}

func (r *URLRepository) findByOriginalURL(originalURL string) (*urlRecord, bool) {
	shortCode, ok := lo.FindKeyBy(r.urls, func(_ string, rec *urlRecord) bool {
		return rec.originalURL == originalURL
	})
	if !ok {
		return nil, false
	}

	return r.urls[shortCode], true
}

func (r *URLRepository) RetrieveByShortCode(_ context.Context, shortCode string) (*entity.URL, error) {
	const op = "adapter.repository.memory.URLRepository.RetrieveByShortCode"

	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.urls[shortCode]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrURLNotFound)
	}

	return rec.toEntity(), nil
}

// RetrieveAndUpdateStats increments the click counter and returns the post-increment record.
func (r *URLRepository) RetrieveAndUpdateStats(_ context.Context, shortCode string) (*entity.URL, error) {
	const op = "adapter.repository.memory.URLRepository.RetrieveAndUpdateStats"

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.urls[shortCode]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrURLNotFound)
	}

	rec.clicks++

	return rec.toEntity(), nil
}

// List returns at most limit records, newest first, and the registry size before truncation.
// A non-positive limit returns every record.
func (r *URLRepository) List(_ context.Context, limit int) ([]*entity.URL, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	recs := lo.Values(r.urls)
	slices.SortFunc(recs, func(a, b *urlRecord) int {
		if c := b.createdAt.Compare(a.createdAt); c != 0 {
			return c
		}
		return cmp.Compare(b.seq, a.seq)
	})

	if limit > 0 {
		recs = lo.Slice(recs, 0, limit)
	}

	urls := lo.Map(recs, func(rec *urlRecord, _ int) *entity.URL {
		return rec.toEntity()
	})

	return urls, len(r.urls), nil
}

func (r *URLRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.urls), nil
}

// RemoveAll empties the registry and returns the number of removed records.
func (r *URLRepository) RemoveAll(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.urls)
	r.urls = make(map[string]*urlRecord)

	return n, nil
}
