package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/verimedia/media-platform/internal/core/domain"
	"github.com/verimedia/media-platform/internal/core/ports"
	"github.com/verimedia/media-platform/internal/core/services"
)

// Certify is the handler for POST /certify. It runs the whole certification
// flow for the uploaded file and returns the resulting certificate. A
// rejected upload (no usable capture metadata) answers 200 with the rejected
// state; an upstream failure mirrors the upstream status with the failed
// certificate as body.
func (s *Server) Certify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(ctx, w, http.StatusBadRequest, ErrorResponse{Error: "Invalid multipart form", Details: err.Error()})
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(ctx, w, http.StatusBadRequest, ErrorResponse{Error: "Missing file", Details: err.Error()})
		return
	}
	defer func() { _ = file.Close() }()

	content, err := io.ReadAll(file)
	if err != nil {
		writeJSON(ctx, w, http.StatusInternalServerError, ErrorResponse{Error: "Cannot read upload", Details: err.Error()})
		return
	}

	cert, err := s.certification.Certify(ctx, ports.CertifyRequest{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     content,
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	})
	if err != nil {
		writeJSON(ctx, w, failureStatus(err), cert)
		return
	}
	writeJSON(ctx, w, http.StatusOK, cert)
}

// GetCertificate is the handler for GET /certificate/{id}
func (s *Server) GetCertificate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cert, err := s.certification.Certificate(ctx, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, services.ErrCertificateNotFound) {
			writeJSON(ctx, w, http.StatusNotFound, ErrorResponse{Error: "Certificate not found"})
			return
		}
		writeError(ctx, w, "Failed to fetch certificate", err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, cert)
}

// failureStatus maps a certification failure onto the mirrored upstream
// status, falling back to 500 for local failures.
func failureStatus(err error) int {
	var upErr *domain.UpstreamServiceError
	if errors.As(err, &upErr) {
		return upErr.Status
	}
	var cfgErr *domain.ConfigurationError
	if errors.As(err, &cfgErr) {
		return http.StatusInternalServerError
	}
	var encErr *domain.EncodingError
	if errors.As(err, &encErr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
