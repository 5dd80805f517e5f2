package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/middleware"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/response"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/testutil"
)

func TestValidateSymbolsMiddleware(t *testing.T) {
	t.Run("passes parsed symbols to the next handler", func(t *testing.T) {
		var got []string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _ = request.SymbolsFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		})

		mw := middleware.ValidateSymbolsMiddleware(10)(next)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/quotes", map[string]string{
			"symbols": " TCS, 500034 ,,TCS",
		})
		w := httptest.NewRecorder()
		mw.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", w.Code)
		}
		want := []string{"TCS", "500034", "TCS"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Expected symbols %v, got %v", want, got)
		}
	})

	tests := []struct {
		name    string
		query   map[string]string
		limit   int
		wantErr string
	}{
		{"missing parameter", nil, 10, "symbols parameter is required"},
		{"empty parameter", map[string]string{"symbols": ""}, 10, "symbols parameter is required"},
		{"only separators", map[string]string{"symbols": " , ,"}, 10, "at least one symbol is required"},
		{"too many symbols", map[string]string{"symbols": "A,B,C"}, 2, "too many symbols"},
	}

	for _, tt := range tests {
		t.Run("returns 400 for "+tt.name, func(t *testing.T) {
			handlerCalled := false
			next := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
				handlerCalled = true
			})

			mw := middleware.ValidateSymbolsMiddleware(tt.limit)(next)

			req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/quotes", tt.query)
			w := httptest.NewRecorder()
			mw.ServeHTTP(w, req)

			if handlerCalled {
				t.Error("Expected next handler NOT to be called")
			}
			if w.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", w.Code)
			}

			var body response.ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("Failed to decode error body: %v", err)
			}
			if len(body.Error) < len(tt.wantErr) || body.Error[:len(tt.wantErr)] != tt.wantErr {
				t.Errorf("Expected error starting with %q, got %q", tt.wantErr, body.Error)
			}
		})
	}
}

func TestAnswerOptions(t *testing.T) {
	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		nextCalled = true
		w.WriteHeader(http.StatusTeapot)
	})
	mw := middleware.AnswerOptions(next)

	t.Run("answers OPTIONS directly", func(t *testing.T) {
		w := httptest.NewRecorder()
		mw.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/quotes", nil))

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", w.Code)
		}
		if nextCalled {
			t.Error("Expected next handler NOT to be called")
		}
	})

	t.Run("passes other methods through", func(t *testing.T) {
		w := httptest.NewRecorder()
		mw.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/quotes", nil))

		if w.Code != http.StatusTeapot {
			t.Errorf("Expected next handler status, got %d", w.Code)
		}
	})
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := middleware.NewCORS([]string{"*"}).Handler(next)

	t.Run("allows any origin on GET", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/holdings", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("Expected Access-Control-Allow-Origin *, got %q", got)
		}
	})

	t.Run("answers preflight for GET", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/quotes", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", w.Code)
		}
		if got := w.Header().Get("Access-Control-Allow-Methods"); got != http.MethodGet {
			t.Errorf("Expected Access-Control-Allow-Methods GET, got %q", got)
		}
	})
}
