package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/cache"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/logging"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/repository"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/symbols"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/yahoo"
)

// MarketOptions tunes the cache TTLs, the outbound call budget and the
// sanity bounds applied to upstream values.
type MarketOptions struct {
	QuoteTTL         time.Duration
	MetricsTTL       time.Duration
	MinInterval      time.Duration // Minimum spacing between upstream calls; 0 disables spacing
	MaxConcurrent    int
	MaxPrice         float64
	EarningsCurrency string
	FetchTimeout     time.Duration // Bounds a shared upstream call, including the limiter wait; 0 means no bound
}

// DefaultMarketOptions mirrors the dashboard's refresh cadence: quotes are
// polled every 15s and fundamentals every 60s.
func DefaultMarketOptions() MarketOptions {
	return MarketOptions{
		QuoteTTL:         15 * time.Second,
		MetricsTTL:       60 * time.Second,
		MinInterval:      100 * time.Millisecond,
		MaxConcurrent:    5,
		MaxPrice:         100000,
		EarningsCurrency: "₹",
		FetchTimeout:     30 * time.Second,
	}
}

// MarketService enriches symbols with quotes and metrics from the market-data API.
//
// Every symbol in a batch is resolved independently: cache first, then a
// rate-limited upstream call. Concurrent misses for the same symbol share one
// upstream call. A failing symbol yields a result carrying an error string and
// never affects its siblings. Failed lookups are not cached. A shared upstream
// call outlives the caller that started it, so a disconnecting client never
// fails the other callers waiting on the same symbol.
type MarketService struct {
	client      yahoo.Client
	cache       cache.Cache
	holdingRepo *repository.HoldingRepository
	limiter     *rate.Limiter
	flight      singleflight.Group
	opts        MarketOptions
	now         func() time.Time
}

// NewMarketService creates a new MarketService.
func NewMarketService(
	client yahoo.Client,
	c cache.Cache,
	holdingRepo *repository.HoldingRepository,
	opts MarketOptions,
) *MarketService {
	if opts.MaxConcurrent < 1 {
		opts.MaxConcurrent = 1
	}

	limit := rate.Inf
	if opts.MinInterval > 0 {
		limit = rate.Every(opts.MinInterval)
	}

	return &MarketService{
		client:      client,
		cache:       c,
		holdingRepo: holdingRepo,
		limiter:     rate.NewLimiter(limit, 1),
		opts:        opts,
		now:         time.Now,
	}
}

// FetchQuotes returns one quote per requested symbol, in request order.
// Symbols are normalized before lookup, so "TCS" and "TCS.NS" resolve to the same entry.
func (s *MarketService) FetchQuotes(ctx context.Context, syms []string) ([]model.Quote, error) {
	return s.fetchQuotes(ctx, syms, false)
}

// FetchMetrics returns one metrics entry per requested symbol, in request order.
func (s *MarketService) FetchMetrics(ctx context.Context, syms []string) ([]model.Metrics, error) {
	return s.fetchMetrics(ctx, syms, false)
}

// RefreshQuotes re-fetches quotes for every holding, bypassing cached entries,
// so that dashboard requests keep hitting a warm cache.
func (s *MarketService) RefreshQuotes(ctx context.Context) error {
	syms, err := s.holdingSymbols()
	if err != nil {
		return err
	}
	quotes, err := s.fetchQuotes(ctx, syms, true)
	if err != nil {
		return err
	}
	logRefresh(ctx, "quotes", len(quotes), countQuoteErrors(quotes))
	return nil
}

// RefreshMetrics re-fetches metrics for every holding, bypassing cached entries.
func (s *MarketService) RefreshMetrics(ctx context.Context) error {
	syms, err := s.holdingSymbols()
	if err != nil {
		return err
	}
	metrics, err := s.fetchMetrics(ctx, syms, true)
	if err != nil {
		return err
	}
	logRefresh(ctx, "metrics", len(metrics), countMetricsErrors(metrics))
	return nil
}

func (s *MarketService) holdingSymbols() ([]string, error) {
	holdings, err := s.holdingRepo.GetHoldings()
	if err != nil {
		return nil, err
	}
	return symbols.FromHoldings(holdings), nil
}

func (s *MarketService) fetchQuotes(ctx context.Context, syms []string, refresh bool) ([]model.Quote, error) {
	ts := s.now().UnixMilli()
	logBatch(ctx, "quotes", syms)

	return fanOut(ctx, s.opts.MaxConcurrent, syms, func(ctx context.Context, raw string) model.Quote {
		return s.quote(ctx, symbols.Normalize(raw), ts, refresh)
	})
}

func (s *MarketService) fetchMetrics(ctx context.Context, syms []string, refresh bool) ([]model.Metrics, error) {
	ts := s.now().UnixMilli()
	logBatch(ctx, "metrics", syms)

	return fanOut(ctx, s.opts.MaxConcurrent, syms, func(ctx context.Context, raw string) model.Metrics {
		return s.metrics(ctx, symbols.Normalize(raw), ts, refresh)
	})
}

// fanOut resolves every symbol with at most limit lookups in flight and keeps
// results aligned with the input order. Lookups never fail; only a cancelled
// context aborts the batch.
func fanOut[T any](ctx context.Context, limit int, syms []string, resolve func(context.Context, string) T) ([]T, error) {
	results := make([]T, len(syms))

	var g errgroup.Group
	g.SetLimit(limit)
	for i, sym := range syms {
		i, sym := i, sym
		g.Go(func() error {
			results[i] = resolve(ctx, sym)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *MarketService) quote(ctx context.Context, sym string, ts int64, refresh bool) model.Quote {
	key := cache.QuoteKey(sym)

	if !refresh {
		var cached model.Quote
		if s.lookup(ctx, key, &cached) {
			return cached
		}
	}

	v, err := s.shared(ctx, key, func(ctx context.Context) (any, error) {
		price, err := s.fetchPrice(ctx, sym)
		if err != nil {
			return nil, err
		}
		q := model.Quote{Symbol: sym, CMP: &price, Timestamp: ts}
		s.store(ctx, key, q, s.opts.QuoteTTL)
		return q, nil
	})
	if err != nil {
		slog.Warn("quote fetch failed", slog.String("rqID", logging.RequestID(ctx)), slog.String("symbol", sym), slog.String("err", err.Error()))
		return model.Quote{Symbol: sym, Timestamp: ts, Error: err.Error()}
	}
	return v.(model.Quote)
}

func (s *MarketService) metrics(ctx context.Context, sym string, ts int64, refresh bool) model.Metrics {
	key := cache.MetricsKey(sym)

	if !refresh {
		var cached model.Metrics
		if s.lookup(ctx, key, &cached) {
			return cached
		}
	}

	v, err := s.shared(ctx, key, func(ctx context.Context) (any, error) {
		m, err := s.fetchFundamentals(ctx, sym)
		if err != nil {
			return nil, err
		}
		m.Timestamp = ts
		s.store(ctx, key, m, s.opts.MetricsTTL)
		return m, nil
	})
	if err != nil {
		slog.Warn("metrics fetch failed", slog.String("rqID", logging.RequestID(ctx)), slog.String("symbol", sym), slog.String("err", err.Error()))
		return model.Metrics{Symbol: sym, Timestamp: ts, Error: err.Error()}
	}
	return v.(model.Metrics)
}

// shared runs fn once per key across concurrent callers. fn runs detached from
// the caller's cancellation but keeps its values, so the request ID still
// reaches the upstream logs. Each caller stops waiting when its own ctx is done.
func (s *MarketService) shared(ctx context.Context, key string, fn func(context.Context) (any, error)) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ch := s.flight.DoChan(key, func() (any, error) {
		fctx := context.WithoutCancel(ctx)
		if s.opts.FetchTimeout > 0 {
			var cancel context.CancelFunc
			fctx, cancel = context.WithTimeout(fctx, s.opts.FetchTimeout)
			defer cancel()
		}
		return fn(fctx)
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// fetchPrice performs a rate-limited quote call and applies the price sanity bounds.
func (s *MarketService) fetchPrice(ctx context.Context, sym string) (float64, error) {
	if sym == "" {
		return 0, apperrors.ErrEmptySymbols
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("rate limiter: %w", err)
	}

	price, err := s.client.QueryQuote(ctx, sym)
	if err != nil {
		return 0, err
	}

	if err := s.checkPrice(price.Value); err != nil {
		return 0, err
	}
	return price.Value, nil
}

// checkPrice accepts prices in (0, MaxPrice].
func (s *MarketService) checkPrice(p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) || p <= 0 || p > s.opts.MaxPrice {
		return fmt.Errorf("%w: %s%v outside reasonable range", apperrors.ErrPriceOutOfRange, s.opts.EarningsCurrency, p)
	}
	return nil
}

// fetchFundamentals performs a rate-limited metrics call. A zero P/E or zero
// earnings figure is reported as missing; non-finite values are rejected.
func (s *MarketService) fetchFundamentals(ctx context.Context, sym string) (model.Metrics, error) {
	if sym == "" {
		return model.Metrics{}, apperrors.ErrEmptySymbols
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return model.Metrics{}, fmt.Errorf("rate limiter: %w", err)
	}

	f, err := s.client.QueryFundamentals(ctx, sym)
	if err != nil {
		return model.Metrics{}, err
	}

	m := model.Metrics{Symbol: sym}

	if f.PERatio != nil {
		pe := *f.PERatio
		if math.IsNaN(pe) || math.IsInf(pe, 0) {
			return model.Metrics{}, fmt.Errorf("%w: P/E %v", apperrors.ErrInvalidMetrics, pe)
		}
		if pe != 0 {
			m.PERatio = &pe
		}
	}

	if f.LatestEarnings != nil {
		e := *f.LatestEarnings
		if math.IsNaN(e) || math.IsInf(e, 0) {
			return model.Metrics{}, fmt.Errorf("%w: earnings %v", apperrors.ErrInvalidMetrics, e)
		}
		if e != 0 {
			formatted := FormatEarnings(s.opts.EarningsCurrency, e)
			m.LatestEarnings = &formatted
		}
	}

	return m, nil
}

// FormatEarnings renders a raw earnings amount in billions with one decimal,
// e.g. 65_000_000_000 → "₹65.0B".
func FormatEarnings(currency string, amount float64) string {
	return fmt.Sprintf("%s%.1fB", currency, amount/1e9)
}

// lookup reads key from the cache. Cache errors are logged and treated as misses.
func (s *MarketService) lookup(ctx context.Context, key string, dst any) bool {
	found, err := s.cache.Get(ctx, key, dst)
	if err != nil {
		slog.Warn("cache read failed", slog.String("rqID", logging.RequestID(ctx)), slog.String("key", key), slog.String("err", err.Error()))
		return false
	}
	return found
}

// store writes to the cache. A failed write only costs a future upstream call.
func (s *MarketService) store(ctx context.Context, key string, value any, ttl time.Duration) {
	if err := s.cache.Set(ctx, key, value, ttl); err != nil {
		slog.Warn("cache write failed", slog.String("rqID", logging.RequestID(ctx)), slog.String("key", key), slog.String("err", err.Error()))
	}
}

func logBatch(ctx context.Context, kind string, syms []string) {
	preview := syms
	if len(preview) > 3 {
		preview = preview[:3]
	}
	slog.Info("fetching "+kind,
		slog.String("rqID", logging.RequestID(ctx)),
		slog.Int("count", len(syms)),
		slog.Any("symbols", preview),
	)
}

func logRefresh(ctx context.Context, kind string, total, failed int) {
	slog.Info("refreshed "+kind,
		slog.String("rqID", logging.RequestID(ctx)),
		slog.Int("total", total),
		slog.Int("failed", failed),
	)
}

func countQuoteErrors(quotes []model.Quote) int {
	n := 0
	for _, q := range quotes {
		if q.Error != "" {
			n++
		}
	}
	return n
}

func countMetricsErrors(metrics []model.Metrics) int {
	n := 0
	for _, m := range metrics {
		if m.Error != "" {
			n++
		}
	}
	return n
}
