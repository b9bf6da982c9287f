package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/verimedia/media-platform/internal/core/ports"
)

// CreateResource is the handler for POST /resource/create (and its historical
// alias POST /resource). One canonical body shape: did plus the already
// encoded data and its descriptor fields.
func (s *Server) CreateResource(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ports.PublishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(ctx, w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Details: err.Error()})
		return
	}

	descriptor, err := s.resources.Publish(ctx, req)
	if err != nil {
		writeError(ctx, w, "Failed to create resource", err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, descriptor)
}

// GetResource is the handler for GET /resource/{did}/{resourceId}
func (s *Server) GetResource(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := s.resources.Get(ctx, chi.URLParam(r, "did"), chi.URLParam(r, "resourceId"))
	if err != nil {
		writeError(ctx, w, "Failed to get resource", err)
		return
	}
	writeRaw(ctx, w, http.StatusOK, body)
}

// SearchResources is the handler for GET /resource/search/{did}. It returns
// the DID resource search document with every linked resource enriched with
// its dereferenced metadata where reachable.
func (s *Server) SearchResources(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := s.resources.Resolve(ctx, chi.URLParam(r, "did"))
	if err != nil {
		writeError(ctx, w, "Failed to fetch resource", err)
		return
	}
	writeRaw(ctx, w, http.StatusOK, body)
}

// VerifyResource is the handler for GET /resource/verify/{did}/{resourceId}
func (s *Server) VerifyResource(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := s.resources.Verify(ctx, chi.URLParam(r, "did"), chi.URLParam(r, "resourceId"))
	if err != nil {
		writeError(ctx, w, "Failed to verify resource", err)
		return
	}
	writeRaw(ctx, w, http.StatusOK, body)
}
