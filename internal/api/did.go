package api

import (
	"net/http"
)

// CreateDID is the handler for POST /did. It provisions a fresh DID on the
// ledger and returns its document.
func (s *Server) CreateDID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	document, err := s.identity.Create(ctx)
	if err != nil {
		writeError(ctx, w, "Failed to create DID", err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, document)
}
