package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEnvelopeCurrentSchema(t *testing.T) {
	raw := map[string]any{
		"schemaVersion": "2",
		"title":         "Sunset",
		"fileType":      "image/jpeg",
		"fileSize":      2048,
		"hash":          "deadbeef",
		"metadata": map[string]any{
			"deviceInfo":  "Acme X1",
			"Make":        "Acme",
			"Model":       "X1",
			"captureDate": "2026:05:01 10:30:00",
		},
	}

	envelope, err := DecodeEnvelope(raw)
	require.NoError(t, err)
	assert.Equal(t, EnvelopeSchemaV2, envelope.SchemaVersion)
	assert.Equal(t, "Sunset", envelope.Title)
	assert.Equal(t, int64(2048), envelope.FileSize)
	assert.Equal(t, "deadbeef", envelope.Hash)
	assert.Equal(t, "Acme X1", envelope.Metadata.DeviceInfo)
	assert.Equal(t, "2026:05:01 10:30:00", envelope.Metadata.CaptureDate)
}

func TestDecodeEnvelopeLegacyFlatShape(t *testing.T) {
	// legacy blobs carried the capture fields next to the file fields and
	// no schemaVersion discriminator
	raw := map[string]any{
		"title":      "Old clip",
		"fileType":   "video/mp4",
		"hash":       "cafebabe",
		"deviceInfo": "Acme X1",
		"resolution": "1920x1080",
		"duration":   "12.4",
	}

	envelope, err := DecodeEnvelope(raw)
	require.NoError(t, err)
	assert.Equal(t, EnvelopeSchemaV1, envelope.SchemaVersion)
	assert.Equal(t, "Old clip", envelope.Title)
	assert.Equal(t, "cafebabe", envelope.Hash)
	assert.Equal(t, "Acme X1", envelope.Metadata.DeviceInfo)
	assert.Equal(t, "1920x1080", envelope.Metadata.Resolution)
	assert.Equal(t, "12.4", envelope.Metadata.Duration)
}

func TestDecodeEnvelopeWeakTyping(t *testing.T) {
	// JSON numbers arrive as float64 when decoded into a loose map
	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(`{"schemaVersion":"2","fileSize":1234,"hash":"ff","metadata":{}}`), &raw))

	envelope, err := DecodeEnvelope(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(1234), envelope.FileSize)
}
