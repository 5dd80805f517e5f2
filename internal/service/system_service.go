package service

import (
	"context"
	"fmt"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/cache"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/repository"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	holdingRepo *repository.HoldingRepository
	cache       cache.Cache
	features    map[string]bool
}

// NewSystemService creates a new SystemService.
// features lists optional capabilities reported by the version endpoint.
func NewSystemService(holdingRepo *repository.HoldingRepository, c cache.Cache, features map[string]bool) *SystemService {
	if features == nil {
		features = map[string]bool{}
	}
	return &SystemService{
		holdingRepo: holdingRepo,
		cache:       c,
		features:    features,
	}
}

// CheckHealth reports whether the holdings loaded and the cache is reachable.
// The returned status is populated even when an error is returned.
func (s *SystemService) CheckHealth(ctx context.Context) (model.HealthStatus, error) {
	status := model.HealthStatus{
		Holdings:     s.holdingRepo.Count(),
		HoldingsPath: s.holdingRepo.Path(),
		Cache:        "connected",
	}

	if err := s.cache.Ping(ctx); err != nil {
		status.Cache = "disconnected"
		return status, fmt.Errorf("cache: %w", err)
	}

	if err := s.holdingRepo.LoadError(); err != nil {
		return status, fmt.Errorf("holdings: %w", err)
	}

	return status, nil
}

// CheckVersion returns the application version and enabled features.
func (s *SystemService) CheckVersion() (*model.VersionInfo, error) {
	features := make(map[string]bool, len(s.features))
	for k, v := range s.features {
		features[k] = v
	}

	return &model.VersionInfo{
		AppVersion:   version.Version,
		Features:     features,
		CacheBackend: s.cache.Backend(),
	}, nil
}
