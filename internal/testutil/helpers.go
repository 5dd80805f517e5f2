package testutil

import (
	"testing"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/cache"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/repository"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/service"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/yahoo"
)

// NewTestCache creates an in-memory cache that is closed when the test ends.
func NewTestCache(t *testing.T) cache.Cache {
	t.Helper()

	c, err := cache.NewMemoryCache(100)
	if err != nil {
		t.Fatalf("failed to create test cache: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

// TestMarketOptions returns market options without request spacing, so tests
// do not wait on the rate limiter.
func TestMarketOptions() service.MarketOptions {
	opts := service.DefaultMarketOptions()
	opts.MinInterval = 0
	return opts
}

func NewTestMarketService(t *testing.T, client yahoo.Client, holdings []model.Holding) *service.MarketService {
	t.Helper()

	return service.NewMarketService(
		client,
		NewTestCache(t),
		repository.NewHoldingRepositoryFromSlice(holdings),
		TestMarketOptions(),
	)
}

func NewTestPortfolioService(t *testing.T, client yahoo.Client, holdings []model.Holding) *service.PortfolioService {
	t.Helper()

	repo := repository.NewHoldingRepositoryFromSlice(holdings)
	market := service.NewMarketService(client, NewTestCache(t), repo, TestMarketOptions())

	return service.NewPortfolioService(repo, market)
}

func NewTestSystemService(t *testing.T, holdings []model.Holding) *service.SystemService {
	t.Helper()

	return service.NewSystemService(
		repository.NewHoldingRepositoryFromSlice(holdings),
		NewTestCache(t),
		map[string]bool{"export": true},
	)
}
