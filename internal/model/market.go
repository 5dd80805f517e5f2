package model

// Quote is the current market price for a normalized symbol.
// CMP is nil when the price could not be fetched; Error then explains why.
type Quote struct {
	Symbol    string   `json:"symbol"`
	CMP       *float64 `json:"cmp"`
	Timestamp int64    `json:"timestamp"` // Unix milliseconds
	Error     string   `json:"error,omitempty"`
}

// Metrics holds the slower-moving fundamentals for a normalized symbol.
type Metrics struct {
	Symbol         string   `json:"symbol"`
	PERatio        *float64 `json:"peRatio"`
	LatestEarnings *string  `json:"latestEarnings"`
	Timestamp      int64    `json:"timestamp"` // Unix milliseconds
	Error          string   `json:"error,omitempty"`
}
