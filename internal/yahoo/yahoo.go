package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/logging"
)

const (
	// DefaultBaseURL is the Yahoo Finance query host.
	DefaultBaseURL = "https://query1.finance.yahoo.com"

	// DefaultTimeout bounds a single request attempt.
	DefaultTimeout = 10 * time.Second

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	chartPath        = "/v8/finance/chart/{symbol}"
	quoteSummaryPath = "/v10/finance/quoteSummary/{symbol}"
	summaryModules   = "defaultKeyStatistics,earnings"
)

// Client is the market-data surface the services depend on.
// It lets tests substitute a fake for the real Yahoo Finance client.
type Client interface {
	QueryQuote(ctx context.Context, symbol string) (Price, error)
	QueryFundamentals(ctx context.Context, symbol string) (Fundamentals, error)
}

// FinanceClient fetches quotes and fundamentals from Yahoo Finance.
// Transient failures (transport errors, 429 and 5xx) are retried with backoff
// by resty; everything else is returned to the caller as-is.
type FinanceClient struct {
	client *resty.Client
}

// Options configures a FinanceClient. Zero values fall back to defaults.
type Options struct {
	BaseURL      string
	Timeout      time.Duration
	RetryCount   int
	RetryWait    time.Duration
	RetryMaxWait time.Duration
	Debug        bool
}

// NewFinanceClient creates a new Yahoo Finance client.
func NewFinanceClient(opts Options) *FinanceClient {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}

	client := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetDebug(opts.Debug).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json").
		SetRetryCount(opts.RetryCount).
		AddRetryCondition(shouldRetry)

	if opts.RetryWait > 0 {
		client.SetRetryWaitTime(opts.RetryWait)
	}
	if opts.RetryMaxWait > 0 {
		client.SetRetryMaxWaitTime(opts.RetryMaxWait)
	}

	return &FinanceClient{client: client}
}

// shouldRetry retries transport failures, throttling and server errors.
func shouldRetry(resp *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	if resp == nil {
		return false
	}
	code := resp.StatusCode()
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

// QueryQuote fetches the current market price for symbol from the chart endpoint.
// The regular market price is preferred; the previous close is used when the
// market price is missing or zero.
func (c *FinanceClient) QueryQuote(ctx context.Context, symbol string) (Price, error) {
	var raw ChartResponse
	if err := c.get(ctx, chartPath, symbol, nil, &raw); err != nil {
		return Price{}, err
	}
	return ParseChart(symbol, raw)
}

// QueryFundamentals fetches the trailing P/E ratio and the latest quarterly
// earnings for symbol from the quoteSummary endpoint.
func (c *FinanceClient) QueryFundamentals(ctx context.Context, symbol string) (Fundamentals, error) {
	var raw QuoteSummaryResponse
	params := map[string]string{"modules": summaryModules}
	if err := c.get(ctx, quoteSummaryPath, symbol, params, &raw); err != nil {
		return Fundamentals{}, err
	}
	return ParseQuoteSummary(symbol, raw)
}

// ParseChart extracts the current price from a chart response.
func ParseChart(symbol string, raw ChartResponse) (Price, error) {
	if raw.Chart.Error != nil {
		return Price{}, fmt.Errorf("yahoo error: %s", raw.Chart.Error.Description)
	}
	if len(raw.Chart.Result) == 0 {
		return Price{}, fmt.Errorf("%w for symbol %s", apperrors.ErrNoResult, symbol)
	}

	meta := raw.Chart.Result[0].Meta
	price, ok := firstPositive(meta.RegularMarketPrice, meta.PreviousClose)
	if !ok {
		return Price{}, apperrors.ErrNoPriceData
	}

	resolved := meta.Symbol
	if resolved == "" {
		resolved = symbol
	}

	return Price{
		Symbol:   resolved,
		Currency: meta.Currency,
		Value:    price,
	}, nil
}

// ParseQuoteSummary extracts the fundamentals from a quoteSummary response.
// Missing modules or values are reported as nil, not as errors.
func ParseQuoteSummary(symbol string, raw QuoteSummaryResponse) (Fundamentals, error) {
	if raw.QuoteSummary.Error != nil {
		return Fundamentals{}, fmt.Errorf("yahoo error: %s", raw.QuoteSummary.Error.Description)
	}
	if len(raw.QuoteSummary.Result) == 0 {
		return Fundamentals{}, fmt.Errorf("%w for symbol %s", apperrors.ErrNoResult, symbol)
	}

	result := raw.QuoteSummary.Result[0]
	fundamentals := Fundamentals{Symbol: symbol}

	if stats := result.DefaultKeyStatistics; stats != nil && stats.TrailingPE != nil {
		fundamentals.PERatio = stats.TrailingPE.Raw
	}

	if result.Earnings != nil && len(result.Earnings.EarningsChart.Quarterly) > 0 {
		if actual := result.Earnings.EarningsChart.Quarterly[0].Actual; actual != nil {
			fundamentals.LatestEarnings = actual.Raw
		}
	}

	return fundamentals, nil
}

func firstPositive(values ...*float64) (float64, bool) {
	for _, v := range values {
		if v != nil && *v != 0 {
			return *v, true
		}
	}
	return 0, false
}

// get executes a GET against path with the symbol path parameter and decodes
// the JSON body into result. Non-2xx responses are reported with their status.
func (c *FinanceClient) get(ctx context.Context, path, symbol string, params map[string]string, result any) error {
	rqID := logging.RequestID(ctx)

	slog.Debug("yahoo request start", slog.String("rqID", rqID), slog.String("path", path), slog.String("symbol", symbol))

	req := c.client.R().
		SetContext(ctx).
		SetPathParam("symbol", symbol)
	if len(params) > 0 {
		req.SetQueryParams(params)
	}

	resp, err := req.Get(path)
	if err != nil {
		slog.Error("error while dialing yahoo", slog.String("rqID", rqID), slog.String("symbol", symbol), slog.String("err", err.Error()))
		return err
	}

	if !resp.IsSuccess() {
		slog.Warn("yahoo returned non-success status",
			slog.String("rqID", rqID),
			slog.String("symbol", symbol),
			slog.Int("status", resp.StatusCode()),
			slog.Int("attempts", resp.Request.Attempt),
		)
		return fmt.Errorf("%w: %d", apperrors.ErrUpstreamStatus, resp.StatusCode())
	}

	if err := json.Unmarshal(resp.Body(), result); err != nil {
		slog.Error("can't unmarshal yahoo response", slog.String("rqID", rqID), slog.String("symbol", symbol), slog.String("err", err.Error()))
		return fmt.Errorf("failed to decode response: %w", err)
	}

	slog.Debug("yahoo request complete", slog.String("rqID", rqID), slog.String("symbol", symbol))

	return nil
}
