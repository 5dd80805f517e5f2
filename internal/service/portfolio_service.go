package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/repository"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/symbols"
)

// PortfolioService builds the dashboard views from the static holdings and
// the live market data.
type PortfolioService struct {
	holdingRepo   *repository.HoldingRepository
	marketService *MarketService
}

// NewPortfolioService creates a new PortfolioService.
func NewPortfolioService(holdingRepo *repository.HoldingRepository, marketService *MarketService) *PortfolioService {
	return &PortfolioService{
		holdingRepo:   holdingRepo,
		marketService: marketService,
	}
}

// GetHoldings returns the configured holdings without market data.
func (s *PortfolioService) GetHoldings() ([]model.Holding, error) {
	return s.holdingRepo.GetHoldings()
}

// GetPortfolio returns every derived view from a single market snapshot.
// Upstream failures never fail the portfolio: affected rows carry nil live
// values and HasError instead.
func (s *PortfolioService) GetPortfolio(ctx context.Context) (model.Portfolio, error) {
	holdings, err := s.holdingRepo.GetHoldings()
	if err != nil {
		return model.Portfolio{}, err
	}

	quotes, metrics, err := s.loadMarketData(ctx, symbols.FromHoldings(holdings))
	if err != nil {
		return model.Portfolio{}, err
	}

	rows := CalculatePortfolioRows(holdings, quotes, metrics)

	return model.Portfolio{
		Rows:    rows,
		Sectors: CalculateSectorGroups(rows),
		Summary: CalculatePortfolioSummary(rows),
	}, nil
}

// GetPortfolioRows returns the per-holding rows.
func (s *PortfolioService) GetPortfolioRows(ctx context.Context) ([]model.PortfolioRow, error) {
	p, err := s.GetPortfolio(ctx)
	if err != nil {
		return nil, err
	}
	return p.Rows, nil
}

// GetSectors returns the rows grouped by sector.
func (s *PortfolioService) GetSectors(ctx context.Context) ([]model.SectorGroup, error) {
	p, err := s.GetPortfolio(ctx)
	if err != nil {
		return nil, err
	}
	return p.Sectors, nil
}

// GetSummary returns the portfolio-wide totals.
func (s *PortfolioService) GetSummary(ctx context.Context) (model.PortfolioSummary, error) {
	p, err := s.GetPortfolio(ctx)
	if err != nil {
		return model.PortfolioSummary{}, err
	}
	return p.Summary, nil
}

// loadMarketData fetches quotes and metrics for syms in parallel.
func (s *PortfolioService) loadMarketData(ctx context.Context, syms []string) ([]model.Quote, []model.Metrics, error) {
	if len(syms) == 0 {
		return []model.Quote{}, []model.Metrics{}, nil
	}

	var (
		quotes  []model.Quote
		metrics []model.Metrics
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		quotes, err = s.marketService.FetchQuotes(gctx, syms)
		return err
	})
	g.Go(func() error {
		var err error
		metrics, err = s.marketService.FetchMetrics(gctx, syms)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return quotes, metrics, nil
}
