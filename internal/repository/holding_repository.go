package repository

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/validation"
)

// HoldingRepository serves the static portfolio holdings.
// The file is read once at construction; holdings never change afterwards,
// so the repository is safe for concurrent use without locking.
type HoldingRepository struct {
	path     string
	holdings []model.Holding
	loadErr  error
}

// NewHoldingRepository loads and validates the holdings file at path.
// A load failure does not prevent construction: the repository stays empty and
// GetHoldings reports the failure, so the server can still answer health checks
// and quote requests.
func NewHoldingRepository(path string) *HoldingRepository {
	r := &HoldingRepository{path: path}

	holdings, err := loadHoldings(path)
	if err != nil {
		slog.Error("failed to load portfolio holdings", slog.String("path", path), slog.String("err", err.Error()))
		r.loadErr = err
		return r
	}

	r.holdings = holdings
	slog.Info("loaded portfolio holdings", slog.String("path", path), slog.Int("count", len(holdings)))
	return r
}

// NewHoldingRepositoryFromSlice builds a repository around already-validated holdings.
func NewHoldingRepositoryFromSlice(holdings []model.Holding) *HoldingRepository {
	return &HoldingRepository{path: "memory", holdings: holdings}
}

// GetHoldings returns a copy of the loaded holdings.
// Returns ErrHoldingsNotLoaded (wrapping the cause) if the file could not be loaded.
func (r *HoldingRepository) GetHoldings() ([]model.Holding, error) {
	if r.loadErr != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrHoldingsNotLoaded, r.loadErr)
	}

	holdings := make([]model.Holding, len(r.holdings))
	copy(holdings, r.holdings)
	return holdings, nil
}

// Count returns the number of loaded holdings.
func (r *HoldingRepository) Count() int {
	return len(r.holdings)
}

// LoadError returns the error encountered while loading, if any.
func (r *HoldingRepository) LoadError() error {
	return r.loadErr
}

func loadHoldings(path string) ([]model.Holding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read holdings file: %w", err)
	}

	holdings, err := decodeHoldings(path, data)
	if err != nil {
		return nil, err
	}

	if err := validation.ValidateHoldings(holdings); err != nil {
		return nil, err
	}

	return holdings, nil
}

// Path returns the file the holdings were loaded from.
func (r *HoldingRepository) Path() string {
	return r.path
}
