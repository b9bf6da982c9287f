package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/verimedia/media-platform/internal/core/domain"
	"github.com/verimedia/media-platform/internal/log"
)

// ErrorResponse is the error envelope of every non 2xx answer. Details, when
// present, carries the upstream body or the offending fields so callers can
// tell transient failures from permanent ones.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error(ctx, "cannot encode response", err)
	}
}

func writeRaw(ctx context.Context, w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Error(ctx, "cannot write response", err)
	}
}

// writeError maps the error taxonomy onto the error envelope: configuration
// failures are 500 before any upstream call, validation failures 400,
// upstream failures mirror the upstream status and body verbatim.
func writeError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	var (
		cfgErr *domain.ConfigurationError
		valErr *domain.ValidationError
		upErr  *domain.UpstreamServiceError
		encErr *domain.EncodingError
	)
	switch {
	case errors.As(err, &cfgErr):
		writeJSON(ctx, w, http.StatusInternalServerError, ErrorResponse{Error: cfgErr.Error()})
	case errors.As(err, &valErr):
		writeJSON(ctx, w, http.StatusBadRequest, ErrorResponse{Error: msg, Details: valErr.Error()})
	case errors.As(err, &upErr):
		writeJSON(ctx, w, upErr.Status, ErrorResponse{Error: msg, Details: upErr.Body})
	case errors.As(err, &encErr):
		writeJSON(ctx, w, http.StatusBadRequest, ErrorResponse{Error: msg, Details: encErr.Error()})
	default:
		writeJSON(ctx, w, http.StatusInternalServerError, ErrorResponse{Error: msg, Details: err.Error()})
	}
}
