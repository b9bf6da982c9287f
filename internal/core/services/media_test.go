package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verimedia/media-platform/internal/common"
	"github.com/verimedia/media-platform/internal/core/domain"
)

func TestAnalyzeNormalizesDerivedFields(t *testing.T) {
	ctx := context.Background()

	analyzer := &analyzerMock{
		analyzeFn: func(_ context.Context, _, _ string, _ []byte) (*domain.MediaAnalysis, error) {
			return &domain.MediaAnalysis{
				IsAuthentic: true,
				Confidence:  0.95,
				Metadata: domain.MediaMetadata{
					Make:             "Acme",
					Model:            "X1",
					DateTimeOriginal: "2026:05:01 10:30:00",
					GPSLatitude:      common.ToPointer(48.858844),
					GPSLongitude:     common.ToPointer(2.294351),
				},
			}, nil
		},
	}

	analysis, err := NewMedia(analyzer, &thumbnailerMock{}).Analyze(ctx, "photo.jpg", "image/jpeg", []byte("jpeg bytes"))
	require.NoError(t, err)

	assert.Equal(t, "Acme X1", analysis.Metadata.DeviceInfo)
	assert.Equal(t, "2026:05:01 10:30:00", analysis.Metadata.CreationDate)
	assert.Equal(t, "48.858844, 2.294351", analysis.Metadata.Location)
	assert.Equal(t, int64(len("jpeg bytes")), analysis.Metadata.FileSize)
	assert.NotNil(t, analysis.Warnings)
}

func TestAnalyzeKeepsAnalyzerFields(t *testing.T) {
	ctx := context.Background()

	analyzer := &analyzerMock{
		analyzeFn: func(_ context.Context, _, _ string, _ []byte) (*domain.MediaAnalysis, error) {
			return &domain.MediaAnalysis{
				Metadata: domain.MediaMetadata{
					DeviceInfo:   "Custom Device",
					CreationDate: "2026-05-01T10:30:00Z",
					FileSize:     1234,
					CreateDate:   "2020:01:01 00:00:00",
				},
			}, nil
		},
	}

	analysis, err := NewMedia(analyzer, &thumbnailerMock{}).Analyze(ctx, "clip.mp4", "video/mp4", []byte("mp4"))
	require.NoError(t, err)

	// analyzer supplied values win over the derived ones
	assert.Equal(t, "Custom Device", analysis.Metadata.DeviceInfo)
	assert.Equal(t, "2026-05-01T10:30:00Z", analysis.Metadata.CreationDate)
	assert.Equal(t, int64(1234), analysis.Metadata.FileSize)
}

func TestVideoThumbnailDataURL(t *testing.T) {
	ctx := context.Background()

	frame := []byte{0xff, 0xd8, 0xff, 0xe0}
	thumbnailer := &thumbnailerMock{
		thumbnailFn: func(_ context.Context, _ []byte) ([]byte, error) {
			return frame, nil
		},
	}

	dataURL, err := NewMedia(&analyzerMock{}, thumbnailer).VideoThumbnail(ctx, []byte("mp4 bytes"))
	require.NoError(t, err)
	assert.Equal(t, "data:image/jpeg;base64,/9j/4A==", dataURL)

	decoded, err := decodeDataURL(dataURL)
	require.NoError(t, err)
	assert.Equal(t, frame, decoded)
}

func TestDecodeDataURLMalformed(t *testing.T) {
	_, err := decodeDataURL("not a data url")
	var encErr *domain.EncodingError
	assert.ErrorAs(t, err, &encErr)
}
