package yahoo

// ChartResponse represents the raw JSON response from the chart v8 endpoint.
// Only the meta block is decoded; the price series is not needed for a live quote.
type ChartResponse struct {
	Chart Chart `json:"chart"`
}

// Chart wraps the result list and the optional API error.
type Chart struct {
	Result []ChartResult `json:"result"`
	Error  *APIError     `json:"error"`
}

// ChartResult is a single symbol's chart payload.
type ChartResult struct {
	Meta Meta `json:"meta"`
}

// Meta holds the symbol metadata and the current trading prices.
type Meta struct {
	Currency           string   `json:"currency"`
	Symbol             string   `json:"symbol"`
	ExchangeName       string   `json:"exchangeName"`
	FullExchangeName   string   `json:"fullExchangeName"`
	LongName           string   `json:"longName"`
	ShortName          string   `json:"shortName"`
	RegularMarketPrice *float64 `json:"regularMarketPrice"`
	PreviousClose      *float64 `json:"previousClose"`
	ChartPreviousClose *float64 `json:"chartPreviousClose"`
}

// QuoteSummaryResponse represents the raw JSON response from the quoteSummary v10
// endpoint when queried with modules=defaultKeyStatistics,earnings.
type QuoteSummaryResponse struct {
	QuoteSummary QuoteSummary `json:"quoteSummary"`
}

// QuoteSummary wraps the result list and the optional API error.
type QuoteSummary struct {
	Result []QuoteSummaryResult `json:"result"`
	Error  *APIError            `json:"error"`
}

// QuoteSummaryResult holds the requested modules for a single symbol.
type QuoteSummaryResult struct {
	DefaultKeyStatistics *KeyStatistics `json:"defaultKeyStatistics"`
	Earnings             *Earnings      `json:"earnings"`
}

// KeyStatistics is the subset of defaultKeyStatistics the dashboard uses.
type KeyStatistics struct {
	TrailingPE *RawValue `json:"trailingPE"`
	ForwardPE  *RawValue `json:"forwardPE"`
}

// Earnings is the earnings module.
type Earnings struct {
	EarningsChart EarningsChart `json:"earningsChart"`
}

// EarningsChart lists reported quarters, most recent first.
type EarningsChart struct {
	Quarterly []QuarterlyEarnings `json:"quarterly"`
}

// QuarterlyEarnings is one reported quarter.
type QuarterlyEarnings struct {
	Date   string    `json:"date"`
	Actual *RawValue `json:"actual"`
}

// RawValue is Yahoo's {"raw": 1.23, "fmt": "1.23"} number encoding.
type RawValue struct {
	Raw *float64 `json:"raw"`
	Fmt string   `json:"fmt"`
}

// APIError is the error object Yahoo embeds in otherwise successful responses.
type APIError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Price is the parsed current market price for a symbol.
type Price struct {
	Symbol   string
	Currency string
	Value    float64
}

// Fundamentals is the parsed P/E ratio and latest quarterly earnings for a symbol.
// Either field may be nil when Yahoo does not report it.
type Fundamentals struct {
	Symbol         string
	PERatio        *float64
	LatestEarnings *float64 // Raw amount in the listing currency
}
