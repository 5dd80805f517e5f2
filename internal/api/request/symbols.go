package request

import (
	"context"
	"net/http"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/symbols"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/validation"
)

// SymbolsParam is the query parameter carrying the comma-separated symbol list.
const SymbolsParam = "symbols"

type symbolsKey struct{}

// ParseSymbols extracts the symbol list from the query string.
//
// Validation rules:
//   - the parameter must be present and non-empty (ErrMissingSymbols)
//   - at least one non-blank symbol must remain after trimming (ErrEmptySymbols)
//   - at most limit symbols may be requested; limit <= 0 disables the check
//
// Duplicates and request order are preserved.
func ParseSymbols(r *http.Request, limit int) ([]string, error) {
	raw := r.URL.Query().Get(SymbolsParam)
	if raw == "" {
		return nil, apperrors.ErrMissingSymbols
	}

	list := symbols.ParseList(raw)
	if err := validation.ValidateSymbols(list, limit); err != nil {
		return nil, err
	}
	return list, nil
}

// WithSymbols stores a parsed symbol list on the context.
func WithSymbols(ctx context.Context, list []string) context.Context {
	return context.WithValue(ctx, symbolsKey{}, list)
}

// SymbolsFromContext returns the symbol list stored by WithSymbols.
func SymbolsFromContext(ctx context.Context) ([]string, bool) {
	list, ok := ctx.Value(symbolsKey{}).([]string)
	return list, ok
}
