package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/middleware"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/response"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/config"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/service"
)

// Services bundles the services the HTTP layer depends on.
type Services struct {
	System    *service.SystemService
	Market    *service.MarketService
	Portfolio *service.PortfolioService
	Reports   handlers.ReportGenerator
}

// NewRouter creates and configures the HTTP router
func NewRouter(services Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)
	r.Use(custommiddleware.AnswerOptions)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.RespondError(w, http.StatusNotFound, "not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.RespondError(w, http.StatusMethodNotAllowed, "method not allowed", nil)
	})

	marketHandler := handlers.NewMarketHandler(services.Market, cfg.Upstream.MaxSymbols)
	portfolioHandler := handlers.NewPortfolioHandler(services.Portfolio, services.Reports)
	systemHandler := handlers.NewSystemHandler(services.System)
	requireSymbols := custommiddleware.ValidateSymbolsMiddleware(cfg.Upstream.MaxSymbols)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/holdings", portfolioHandler.Holdings)

		r.With(requireSymbols).Get("/quotes", marketHandler.Quotes)
		r.With(requireSymbols).Get("/metrics", marketHandler.Metrics)

		r.Route("/portfolio", func(r chi.Router) {
			r.Get("/", portfolioHandler.Portfolio)
			r.Get("/sectors", portfolioHandler.Sectors)
			r.Get("/summary", portfolioHandler.Summary)
			r.Get("/export", portfolioHandler.Export)
		})

		// System namespace
		r.Route("/system", func(r chi.Router) {
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})
	})

	return r
}
