package gateways

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verimedia/media-platform/internal/core/domain"
)

func TestAnalyzerAnalyze(t *testing.T) {
	ctx := context.Background()
	content := []byte("jpeg bytes")

	srv, _ := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/analyze", r.URL.Path)

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "photo.jpg", header.Filename)
		uploaded, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, content, uploaded)

		_, _ = w.Write([]byte(`{"isAuthentic":true,"confidence":0.95,"metadata":{"Make":"Acme","Model":"X1","fileType":"image/jpeg"},"warnings":[]}`))
	})

	analysis, err := NewAnalyzerService(AnalyzerConfig{URL: srv.URL, Timeout: 5 * time.Second}).
		Analyze(ctx, "photo.jpg", "image/jpeg", content)
	require.NoError(t, err)
	assert.True(t, analysis.IsAuthentic)
	assert.Equal(t, 0.95, analysis.Confidence)
	assert.Equal(t, "Acme", analysis.Metadata.Make)
	assert.Equal(t, "image/jpeg", analysis.Metadata.FileType)
}

func TestAnalyzerFileTypeFallback(t *testing.T) {
	ctx := context.Background()
	srv, _ := countingServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"isAuthentic":false,"confidence":0.5,"metadata":{}}`))
	})

	analysis, err := NewAnalyzerService(AnalyzerConfig{URL: srv.URL, Timeout: 5 * time.Second}).
		Analyze(ctx, "clip.mp4", "video/mp4", []byte("mp4"))
	require.NoError(t, err)
	assert.Equal(t, "video/mp4", analysis.Metadata.FileType)
}

func TestAnalyzerMissingURL(t *testing.T) {
	ctx := context.Background()

	_, err := NewAnalyzerService(AnalyzerConfig{Timeout: 5 * time.Second}).
		Analyze(ctx, "photo.jpg", "image/jpeg", []byte("jpeg"))
	var cfgErr *domain.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}

func TestAnalyzerUpstreamError(t *testing.T) {
	ctx := context.Background()
	srv, _ := countingServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail":"unsupported media type"}`))
	})

	_, err := NewAnalyzerService(AnalyzerConfig{URL: srv.URL, Timeout: 5 * time.Second}).
		Analyze(ctx, "doc.pdf", "application/pdf", []byte("pdf"))
	var upErr *domain.UpstreamServiceError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusUnprocessableEntity, upErr.Status)
}
