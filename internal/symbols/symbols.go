// Package symbols maps exchange codes from the holdings file to the
// market-data symbols used for quote and metrics lookups.
//
// NSE tickers are alphabetic (HDFCBANK, RELIANCE) and take the ".NS" suffix.
// BSE scrip codes are numeric (500325) and take the ".BO" suffix.
package symbols

import (
	"strings"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

const (
	// NSESuffix marks a National Stock Exchange symbol.
	NSESuffix = ".NS"
	// BSESuffix marks a Bombay Stock Exchange symbol.
	BSESuffix = ".BO"
)

// Normalize returns the market-data symbol for an exchange code.
// Codes that already carry an exchange suffix are returned unchanged.
// An empty or blank code normalizes to "".
func Normalize(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}

	if strings.HasSuffix(code, NSESuffix) || strings.HasSuffix(code, BSESuffix) {
		return code
	}

	if isNumeric(code) {
		return code + BSESuffix
	}
	return code + NSESuffix
}

// isNumeric reports whether the code is a plain decimal number, which is how
// BSE scrip codes are told apart from NSE tickers. Spellings that only parse as
// numbers in other notations, such as "Infinity", "1e3" or "0x1F", are tickers.
func isNumeric(code string) bool {
	digits := 0
	for i, r := range code {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.' && i > 0 && !strings.ContainsRune(code[:i], '.'):
		default:
			return false
		}
	}
	return digits > 0
}

// ForHolding returns the lookup symbol for a holding, or "" when the holding
// has no exchange code.
func ForHolding(h model.Holding) string {
	if h.Exchange == nil {
		return ""
	}
	return Normalize(*h.Exchange)
}

// FromHoldings returns the distinct lookup symbols for the holdings in
// first-seen order. Holdings without an exchange code are skipped.
func FromHoldings(holdings []model.Holding) []string {
	seen := make(map[string]bool, len(holdings))
	result := make([]string, 0, len(holdings))
	for _, h := range holdings {
		sym := ForHolding(h)
		if sym == "" || seen[sym] {
			continue
		}
		seen[sym] = true
		result = append(result, sym)
	}
	return result
}

// ParseList splits a comma-separated symbols parameter, trimming whitespace
// and dropping blank entries. Order and duplicates are preserved.
func ParseList(raw string) []string {
	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
