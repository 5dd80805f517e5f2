// Package middleware provides HTTP middleware for request validation and processing.
package middleware

import (
	"net/http"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/response"
)

// ValidateSymbolsMiddleware parses the symbols query parameter and stores the
// list on the request context. Returns 400 Bad Request if the parameter is
// missing, contains no symbols, or exceeds limit.
//
// Example usage in router:
//
//	r.With(middleware.ValidateSymbolsMiddleware(100)).Get("/quotes", handler.Quotes)
func ValidateSymbolsMiddleware(limit int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			list, err := request.ParseSymbols(r, limit)
			if err != nil {
				response.RespondError(w, http.StatusBadRequest, err.Error(), nil)
				return
			}

			next.ServeHTTP(w, r.WithContext(request.WithSymbols(r.Context(), list)))
		})
	}
}
