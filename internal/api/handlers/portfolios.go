package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/report"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/service"
)

// ReportGenerator renders a portfolio snapshot into a downloadable file.
type ReportGenerator interface {
	Generate(ctx context.Context, portfolio model.Portfolio) ([]byte, error)
}

// PortfolioHandler handles portfolio-related HTTP requests
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
	generator        ReportGenerator
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService *service.PortfolioService, generator ReportGenerator) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
		generator:        generator,
	}
}

// Holdings handles GET requests for the configured holdings.
//
// Endpoint: GET /api/holdings
// Response: 200 OK with []model.Holding
// Error: 500 Internal Server Error if the holdings file could not be loaded
func (h *PortfolioHandler) Holdings(w http.ResponseWriter, r *http.Request) {
	holdings, err := h.portfolioService.GetHoldings()
	if err != nil {
		respondServiceError(w, r, apperrors.ErrFailedToRetrieveHoldings, err)
		return
	}

	respondJSON(w, http.StatusOK, holdings)
}

// Portfolio handles GET requests for the enriched per-holding rows.
//
// Endpoint: GET /api/portfolio
// Response: 200 OK with []model.PortfolioRow
// Error: 500 Internal Server Error if the holdings could not be loaded
func (h *PortfolioHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	rows, err := h.portfolioService.GetPortfolioRows(r.Context())
	if err != nil {
		respondServiceError(w, r, apperrors.ErrFailedToGetPortfolio, err)
		return
	}

	respondJSON(w, http.StatusOK, rows)
}

// Sectors handles GET requests for holdings grouped by sector.
//
// Endpoint: GET /api/portfolio/sectors
// Response: 200 OK with []model.SectorGroup
func (h *PortfolioHandler) Sectors(w http.ResponseWriter, r *http.Request) {
	sectors, err := h.portfolioService.GetSectors(r.Context())
	if err != nil {
		respondServiceError(w, r, apperrors.ErrFailedToGetSectors, err)
		return
	}

	respondJSON(w, http.StatusOK, sectors)
}

// Summary handles GET requests for the portfolio-wide totals.
//
// Endpoint: GET /api/portfolio/summary
// Response: 200 OK with model.PortfolioSummary
func (h *PortfolioHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.portfolioService.GetSummary(r.Context())
	if err != nil {
		respondServiceError(w, r, apperrors.ErrFailedToGetSummary, err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// Export handles GET requests for an XLSX download of the current portfolio.
//
// Endpoint: GET /api/portfolio/export
// Response: 200 OK with the workbook as an attachment
func (h *PortfolioHandler) Export(w http.ResponseWriter, r *http.Request) {
	portfolio, err := h.portfolioService.GetPortfolio(r.Context())
	if err != nil {
		respondServiceError(w, r, apperrors.ErrFailedToExportPortfolio, err)
		return
	}

	data, err := h.generator.Generate(r.Context(), portfolio)
	if err != nil {
		respondServiceError(w, r, apperrors.ErrFailedToExportPortfolio, err)
		return
	}

	filename := fmt.Sprintf("portfolio-%s.xlsx", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
