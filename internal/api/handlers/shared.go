package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/response"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/logging"
)

// respondJSON sends a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	response.RespondJSON(w, status, data)
}

// respondServiceError logs a failed service call and answers 500 with the
// operation's sentinel message and the underlying error as details.
func respondServiceError(w http.ResponseWriter, r *http.Request, operation error, err error) {
	slog.Error(operation.Error(),
		slog.String("rqID", logging.RequestID(r.Context())),
		slog.String("path", r.URL.Path),
		slog.String("err", err.Error()),
	)
	response.RespondError(w, http.StatusInternalServerError, operation.Error(), err.Error())
}
