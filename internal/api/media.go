package api

import (
	"encoding/json"
	"io"
	"net/http"
)

const maxUploadBytes = 64 << 20 // request body cap for uploads

// AnalyzeMedia is the handler for POST /media/analyze. It hands the multipart
// file to the external analyzer and returns the analysis result.
func (s *Server) AnalyzeMedia(w http.ResponseWriter, r *http.Request) {
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

	analysis, err := s.media.Analyze(ctx, header.Filename, header.Header.Get("Content-Type"), content)
	if err != nil {
		writeError(ctx, w, "Failed to analyze media", err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, analysis)
}

type thumbnailRequest struct {
	VideoContent string `json:"videoContent"`
}

type thumbnailResponse struct {
	Thumbnail string `json:"thumbnail"`
}

// CreateThumbnail is the handler for POST /media/thumbnail. The video arrives
// as a base64 data url and the extracted frame goes back the same way.
func (s *Server) CreateThumbnail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req thumbnailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(ctx, w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Details: err.Error()})
		return
	}
	if req.VideoContent == "" {
		writeJSON(ctx, w, http.StatusBadRequest, ErrorResponse{Error: "Missing required fields", Details: "videoContent is required"})
		return
	}

	video, err := decodeUploadPayload(req.VideoContent)
	if err != nil {
		writeError(ctx, w, "Failed to create thumbnail", err)
		return
	}

	thumbnail, err := s.media.VideoThumbnail(ctx, video)
	if err != nil {
		writeError(ctx, w, "Failed to create thumbnail", err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, thumbnailResponse{Thumbnail: thumbnail})
}
