package testutil

import (
	"context"
	"sync"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/yahoo"
)

// MockYahooClient is a mock implementation of yahoo.Client for testing.
// It returns predefined per-symbol data instead of making actual API calls.
// Symbols without configured data return yahoo's no-result error.
type MockYahooClient struct {
	mu sync.Mutex

	// Prices maps a normalized symbol to the price returned by QueryQuote
	Prices map[string]float64
	// Fundamentals maps a normalized symbol to the data returned by QueryFundamentals
	Fundamentals map[string]yahoo.Fundamentals
	// Errors maps a normalized symbol to an error returned by both query methods
	Errors map[string]error

	quoteCalls   map[string]int
	metricsCalls map[string]int
}

// NewMockYahooClient creates an empty mock Yahoo client.
func NewMockYahooClient() *MockYahooClient {
	return &MockYahooClient{
		Prices:       map[string]float64{},
		Fundamentals: map[string]yahoo.Fundamentals{},
		Errors:       map[string]error{},
		quoteCalls:   map[string]int{},
		metricsCalls: map[string]int{},
	}
}

// QueryQuote returns the configured price for symbol.
func (m *MockYahooClient) QueryQuote(_ context.Context, symbol string) (yahoo.Price, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.quoteCalls[symbol]++
	if err, ok := m.Errors[symbol]; ok {
		return yahoo.Price{}, err
	}
	price, ok := m.Prices[symbol]
	if !ok {
		return yahoo.ParseChart(symbol, yahoo.ChartResponse{})
	}
	return yahoo.Price{Symbol: symbol, Currency: "INR", Value: price}, nil
}

// QueryFundamentals returns the configured fundamentals for symbol.
func (m *MockYahooClient) QueryFundamentals(_ context.Context, symbol string) (yahoo.Fundamentals, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.metricsCalls[symbol]++
	if err, ok := m.Errors[symbol]; ok {
		return yahoo.Fundamentals{}, err
	}
	f, ok := m.Fundamentals[symbol]
	if !ok {
		return yahoo.ParseQuoteSummary(symbol, yahoo.QuoteSummaryResponse{})
	}
	f.Symbol = symbol
	return f, nil
}

// WithPrice configures the price returned for symbol.
func (m *MockYahooClient) WithPrice(symbol string, price float64) *MockYahooClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Prices[symbol] = price
	return m
}

// WithFundamentals configures the P/E ratio and raw earnings returned for symbol.
// Pass nil for either value to simulate a missing field.
func (m *MockYahooClient) WithFundamentals(symbol string, pe, earnings *float64) *MockYahooClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Fundamentals[symbol] = yahoo.Fundamentals{Symbol: symbol, PERatio: pe, LatestEarnings: earnings}
	return m
}

// WithError configures the mock to fail every query for symbol.
func (m *MockYahooClient) WithError(symbol string, err error) *MockYahooClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors[symbol] = err
	return m
}

// QuoteCalls returns how many times QueryQuote was called for symbol.
func (m *MockYahooClient) QuoteCalls(symbol string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.quoteCalls[symbol]
}

// MetricsCalls returns how many times QueryFundamentals was called for symbol.
func (m *MockYahooClient) MetricsCalls(symbol string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.metricsCalls[symbol]
}

// Float returns a pointer to v, for building optional fundamentals.
func Float(v float64) *float64 {
	return &v
}
