package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/cache"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/config"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/logging"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/report"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/repository"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/scheduler"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/service"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/yahoo"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("err", err.Error()))
		os.Exit(1)
	}

	logging.Setup(os.Stdout, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Open cache backend
	c, err := openCache(ctx, cfg)
	if err != nil {
		slog.Error("failed to open cache", slog.String("backend", cfg.Cache.Backend), slog.String("err", err.Error()))
		os.Exit(1)
	}
	defer c.Close()

	slog.Info("cache ready", slog.String("backend", c.Backend()))

	// Holdings load failures are reported through the API, not fatal.
	holdingRepo := repository.NewHoldingRepository(cfg.Holdings.Path)

	client := yahoo.NewFinanceClient(yahoo.Options{
		BaseURL:      cfg.Upstream.BaseURL,
		Timeout:      cfg.Upstream.Timeout,
		RetryCount:   cfg.Upstream.RetryCount,
		RetryWait:    cfg.Upstream.RetryWait,
		RetryMaxWait: cfg.Upstream.RetryMaxWait,
		Debug:        cfg.Upstream.Debug,
	})

	// Create services
	marketService := service.NewMarketService(client, c, holdingRepo, service.MarketOptions{
		QuoteTTL:         cfg.Cache.QuoteTTL,
		MetricsTTL:       cfg.Cache.MetricsTTL,
		MinInterval:      cfg.Upstream.MinInterval,
		MaxConcurrent:    cfg.Upstream.MaxConcurrent,
		MaxPrice:         cfg.Upstream.MaxPrice,
		EarningsCurrency: cfg.Upstream.EarningsCurrency,
		FetchTimeout:     cfg.Upstream.FetchTimeout,
	})
	portfolioService := service.NewPortfolioService(holdingRepo, marketService)
	systemService := service.NewSystemService(holdingRepo, c, map[string]bool{
		"export":          true,
		"background_jobs": cfg.Jobs.Enabled,
	})

	// Background cache refresh
	jobs := scheduler.New(ctx)
	if cfg.Jobs.Enabled {
		if err := scheduleRefresh(jobs, cfg.Jobs, marketService); err != nil {
			slog.Error("failed to schedule background refresh", slog.String("err", err.Error()))
			// os.Exit skips deferred calls.
			_ = c.Close()
			os.Exit(1)
		}
		jobs.Start()
	}

	// Create router
	router := api.NewRouter(api.Services{
		System:    systemService,
		Market:    marketService,
		Portfolio: portfolioService,
		Reports:   report.NewXLSXGenerator(),
	}, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("starting server", slog.String("addr", cfg.Server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", slog.String("err", err.Error()))
			stop()
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	<-ctx.Done()

	slog.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	jobs.Stop(shutdownCtx)

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("err", err.Error()))
	}

	slog.Info("server exited")
}

// scheduleRefresh registers the quote and metrics warm-up jobs.
func scheduleRefresh(jobs *scheduler.Scheduler, cfg config.JobsConfig, market *service.MarketService) error {
	if err := jobs.AddJob("refresh-quotes", cfg.QuotesSchedule, market.RefreshQuotes); err != nil {
		return fmt.Errorf("quote refresh: %w", err)
	}
	if err := jobs.AddJob("refresh-metrics", cfg.MetricsSchedule, market.RefreshMetrics); err != nil {
		return fmt.Errorf("metrics refresh: %w", err)
	}
	return nil
}

func openCache(ctx context.Context, cfg *config.Config) (cache.Cache, error) {
	if cfg.Cache.Backend == "redis" {
		return cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	return cache.NewMemoryCache(cfg.Cache.MaxEntries)
}
