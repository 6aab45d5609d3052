package http

import (
	"context"

	"github.com/nekli/url-shortener/internal/entity"
	"github.com/stretchr/testify/mock"
)

type MockURLUseCase struct {
	mock.Mock
}

func (m *MockURLUseCase) ShortenURL(ctx context.Context, rawURL string) (*entity.URL, bool, error) {
	args := m.Called(ctx, rawURL)
	url, _ := args.Get(0).(*entity.URL)
	return url, args.Bool(1), args.Error(2)
}

func (m *MockURLUseCase) ResolveShortCode(ctx context.Context, shortCode string) (*entity.URL, error) {
	args := m.Called(ctx, shortCode)
	url, _ := args.Get(0).(*entity.URL)
	return url, args.Error(1)
}

func (m *MockURLUseCase) GetURLStats(ctx context.Context, shortCode string) (*entity.URL, error) {
	args := m.Called(ctx, shortCode)
	url, _ := args.Get(0).(*entity.URL)
	return url, args.Error(1)
}

func (m *MockURLUseCase) ListURLs(ctx context.Context, limit int) ([]*entity.URL, int, error) {
	args := m.Called(ctx, limit)
	urls, _ := args.Get(0).([]*entity.URL)
	return urls, args.Int(1), args.Error(2)
}

func (m *MockURLUseCase) CountURLs(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockURLUseCase) ClearURLs(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
