// Package logging configures the process-wide slog logger and carries the
// request ID through contexts so service and client logs can be correlated
// with the HTTP access log.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
)

// Setup installs a JSON slog handler at the given level as the default logger.
// Unknown levels fall back to info.
func Setup(w io.Writer, level string) {
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
	slog.SetDefault(logger)
}

// ParseLevel maps a LOG_LEVEL value to a slog level.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// RequestID returns the request ID stored by chi's RequestID middleware or by
// WithRequestID, or "" when there is none.
func RequestID(ctx context.Context) string {
	return middleware.GetReqID(ctx)
}

// WithRequestID stores id under the same key chi's RequestID middleware uses,
// for work that does not originate from an HTTP request.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, middleware.RequestIDKey, id)
}
