package handlers

import (
	"net/http"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/response"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/service"
)

// MarketHandler handles quote and metrics HTTP requests
type MarketHandler struct {
	marketService *service.MarketService
	maxSymbols    int
}

// NewMarketHandler creates a new MarketHandler.
// maxSymbols caps the batch size when the request did not pass through
// ValidateSymbolsMiddleware; 0 disables the cap.
func NewMarketHandler(marketService *service.MarketService, maxSymbols int) *MarketHandler {
	return &MarketHandler{
		marketService: marketService,
		maxSymbols:    maxSymbols,
	}
}

// Quotes handles GET requests for current market prices.
// Returns one quote per requested symbol, in request order. Symbols that could
// not be priced carry a null cmp and an error message.
//
// Endpoint: GET /api/quotes?symbols=TCS,INFY,500034
// Response: 200 OK with []model.Quote
// Error: 400 Bad Request if symbols is missing or empty
// Error: 500 Internal Server Error if the request was aborted
func (h *MarketHandler) Quotes(w http.ResponseWriter, r *http.Request) {
	symbols, ok := h.symbols(w, r)
	if !ok {
		return
	}

	quotes, err := h.marketService.FetchQuotes(r.Context(), symbols)
	if err != nil {
		respondServiceError(w, r, apperrors.ErrFailedToFetchQuotes, err)
		return
	}

	respondJSON(w, http.StatusOK, quotes)
}

// Metrics handles GET requests for P/E ratio and latest earnings.
//
// Endpoint: GET /api/metrics?symbols=TCS,INFY,500034
// Response: 200 OK with []model.Metrics
// Error: 400 Bad Request if symbols is missing or empty
// Error: 500 Internal Server Error if the request was aborted
func (h *MarketHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	symbols, ok := h.symbols(w, r)
	if !ok {
		return
	}

	metrics, err := h.marketService.FetchMetrics(r.Context(), symbols)
	if err != nil {
		respondServiceError(w, r, apperrors.ErrFailedToFetchMetrics, err)
		return
	}

	respondJSON(w, http.StatusOK, metrics)
}

// symbols returns the list parsed by the validation middleware, or parses it
// itself. On failure a 400 has already been written.
func (h *MarketHandler) symbols(w http.ResponseWriter, r *http.Request) ([]string, bool) {
	if list, ok := request.SymbolsFromContext(r.Context()); ok {
		return list, true
	}

	list, err := request.ParseSymbols(r, h.maxSymbols)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, err.Error(), nil)
		return nil, false
	}
	return list, true
}
