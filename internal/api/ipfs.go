package api

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/verimedia/media-platform/internal/core/domain"
)

type ipfsUploadRequest struct {
	Content string `json:"content"`
}

type ipfsUploadResponse struct {
	URL string `json:"url"`
}

// UploadToIPFS is the handler for POST /ipfs/upload. It accepts either a
// multipart file part or a JSON body with a content field (plain text or a
// base64 data url) and returns the gateway url of the pinned content.
func (s *Server) UploadToIPFS(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var content []byte
	name := "upload"

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
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
		content, err = io.ReadAll(file)
		if err != nil {
			writeJSON(ctx, w, http.StatusInternalServerError, ErrorResponse{Error: "Cannot read upload", Details: err.Error()})
			return
		}
		name = header.Filename
	} else {
		var req ipfsUploadRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(ctx, w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Details: err.Error()})
			return
		}
		if req.Content == "" {
			writeJSON(ctx, w, http.StatusBadRequest, ErrorResponse{Error: "Missing required fields", Details: "content is required"})
			return
		}
		decoded, err := decodeUploadPayload(req.Content)
		if err != nil {
			writeError(ctx, w, "Failed to upload to IPFS", err)
			return
		}
		content = decoded
	}

	url, err := s.pinner.Pin(ctx, content, name)
	if err != nil {
		writeError(ctx, w, "Failed to upload to IPFS", err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, ipfsUploadResponse{URL: url})
}

// decodeUploadPayload turns an upload field into raw bytes. Data urls are
// base64 decoded; anything else is taken as-is.
func decodeUploadPayload(payload string) ([]byte, error) {
	if !strings.HasPrefix(payload, "data:") {
		return []byte(payload), nil
	}
	idx := strings.Index(payload, ",")
	if idx < 0 {
		return nil, domain.NewEncodingError("malformed data url", nil)
	}
	content, err := base64.StdEncoding.DecodeString(payload[idx+1:])
	if err != nil {
		return nil, domain.NewEncodingError("data url payload is not valid base64", err)
	}
	return content, nil
}
