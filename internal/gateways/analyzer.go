package gateways

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/verimedia/media-platform/internal/core/domain"
	client "github.com/verimedia/media-platform/pkg/http"
)

// AnalyzerConfig represents the media analysis service configuration
type AnalyzerConfig struct {
	URL     string
	Timeout time.Duration
}

// AnalyzerService sends uploads to the external media analysis service, which
// extracts the EXIF or container metadata and scores authenticity.
type AnalyzerService struct {
	cfg    AnalyzerConfig
	client *client.Client
}

// NewAnalyzerService returns a gateway to the media analysis service
func NewAnalyzerService(cfg AnalyzerConfig) *AnalyzerService {
	return &AnalyzerService{
		cfg:    cfg,
		client: client.NewClient(http.Client{Timeout: cfg.Timeout}),
	}
}

// Analyze submits one file and returns its analysis result
func (s *AnalyzerService) Analyze(ctx context.Context, fileName, contentType string, content []byte) (*domain.MediaAnalysis, error) {
	if s.cfg.URL == "" {
		return nil, domain.NewConfigurationError("media analyzer url")
	}

	url := strings.TrimRight(s.cfg.URL, "/") + "/analyze"
	status, body, err := s.client.PostMultipart(ctx, url, "file", fileName, content, nil)
	if err != nil {
		return nil, errors.Wrap(err, "media analysis request")
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return nil, domain.NewUpstreamServiceError("media analysis", status, body)
	}

	var analysis domain.MediaAnalysis
	if err := json.Unmarshal(body, &analysis); err != nil {
		return nil, errors.Wrap(err, "decoding media analysis response")
	}
	if analysis.Metadata.FileType == "" {
		analysis.Metadata.FileType = contentType
	}
	return &analysis, nil
}
