package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/verimedia/media-platform/internal/core/domain"
	"github.com/verimedia/media-platform/internal/core/ports"
	"github.com/verimedia/media-platform/internal/log"
)

// Media analyzes uploads through the external analyzer and prepares derived
// assets such as video thumbnails.
type Media struct {
	analyzer    ports.AnalyzerGateway
	thumbnailer ports.ThumbnailerGateway
}

// NewMedia returns a media service
func NewMedia(analyzer ports.AnalyzerGateway, thumbnailer ports.ThumbnailerGateway) *Media {
	return &Media{
		analyzer:    analyzer,
		thumbnailer: thumbnailer,
	}
}

// Analyze submits the file to the analyzer and normalizes the result with the
// derived fields the analyzer leaves out: deviceInfo from the EXIF make and
// model, creationDate from the capture timestamp, location from the GPS
// coordinates.
func (s *Media) Analyze(ctx context.Context, fileName, contentType string, content []byte) (*domain.MediaAnalysis, error) {
	analysis, err := s.analyzer.Analyze(ctx, fileName, contentType, content)
	if err != nil {
		return nil, err
	}

	m := &analysis.Metadata
	if m.DeviceInfo == "" && m.Make != "" && m.Model != "" {
		m.DeviceInfo = fmt.Sprintf("%s %s", m.Make, m.Model)
	}
	if m.CreationDate == "" {
		if m.DateTimeOriginal != "" {
			m.CreationDate = m.DateTimeOriginal
		} else if m.CreateDate != "" {
			m.CreationDate = m.CreateDate
		}
	}
	if m.Location == "" && m.GPSLatitude != nil && m.GPSLongitude != nil {
		m.Location = fmt.Sprintf("%.6f, %.6f", *m.GPSLatitude, *m.GPSLongitude)
	}
	if m.FileSize == 0 {
		m.FileSize = int64(len(content))
	}
	if analysis.Warnings == nil {
		analysis.Warnings = []string{}
	}

	log.Debug(ctx, "media analyzed", "file", fileName, "authentic", analysis.IsAuthentic, "confidence", analysis.Confidence)
	return analysis, nil
}

// VideoThumbnail extracts a frame from the video and returns it as a jpeg
// data url, ready for inline rendering or pinning.
func (s *Media) VideoThumbnail(ctx context.Context, video []byte) (string, error) {
	thumbnail, err := s.thumbnailer.Thumbnail(ctx, video)
	if err != nil {
		return "", err
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(thumbnail), nil
}

// decodeDataURL extracts the raw bytes of a base64 data url
func decodeDataURL(dataURL string) ([]byte, error) {
	idx := strings.Index(dataURL, ",")
	if idx < 0 {
		return nil, domain.NewEncodingError("malformed data url", nil)
	}
	content, err := base64.StdEncoding.DecodeString(dataURL[idx+1:])
	if err != nil {
		return nil, domain.NewEncodingError("data url payload is not valid base64", err)
	}
	return content, nil
}
