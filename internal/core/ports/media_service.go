package ports

import (
	"context"

	"github.com/verimedia/media-platform/internal/core/domain"
)

// AnalyzerGateway sends uploads to the external media analysis service
type AnalyzerGateway interface {
	Analyze(ctx context.Context, fileName, contentType string, content []byte) (*domain.MediaAnalysis, error)
}

// ThumbnailerGateway extracts a still frame from a video
type ThumbnailerGateway interface {
	Thumbnail(ctx context.Context, video []byte) ([]byte, error)
}

// PinnerGateway uploads content to a content addressed storage network and
// returns a stable retrieval url.
type PinnerGateway interface {
	Pin(ctx context.Context, content []byte, name string) (string, error)
}

// MediaService analyzes uploads and prepares their derived assets
type MediaService interface {
	Analyze(ctx context.Context, fileName, contentType string, content []byte) (*domain.MediaAnalysis, error)
	VideoThumbnail(ctx context.Context, video []byte) (string, error)
}
