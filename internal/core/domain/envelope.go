package domain

import (
	"github.com/mitchellh/mapstructure"
)

// Envelope schema versions. Version 1 is the legacy flat shape where capture
// fields sat next to the file fields; version 2 nests them under metadata.
const (
	EnvelopeSchemaV1 = "1"
	EnvelopeSchemaV2 = "2"
)

// CaptureMetadata is the capture related subset of a metadata envelope. It is
// what the resolver swaps into a linked resource entry after dereferencing.
type CaptureMetadata struct {
	DeviceInfo   string   `json:"deviceInfo,omitempty" mapstructure:"deviceInfo"`
	Make         string   `json:"Make,omitempty" mapstructure:"Make"`
	Model        string   `json:"Model,omitempty" mapstructure:"Model"`
	CaptureDate  string   `json:"captureDate,omitempty" mapstructure:"captureDate"`
	GPSLatitude  *float64 `json:"GPSLatitude,omitempty" mapstructure:"GPSLatitude"`
	GPSLongitude *float64 `json:"GPSLongitude,omitempty" mapstructure:"GPSLongitude"`
	Software     string   `json:"software,omitempty" mapstructure:"software"`
	Resolution   string   `json:"resolution,omitempty" mapstructure:"resolution"`
	Codec        string   `json:"codec,omitempty" mapstructure:"codec"`
	Duration     string   `json:"duration,omitempty" mapstructure:"duration"`
	Bitrate      string   `json:"bitrate,omitempty" mapstructure:"bitrate"`
	ThumbnailURL string   `json:"thumbnailUrl,omitempty" mapstructure:"thumbnailUrl"`
}

// MetadataEnvelope is the application defined JSON blob anchored as resource
// content. Invariant: Hash equals the sha256 hex digest of the original
// uploaded content.
type MetadataEnvelope struct {
	SchemaVersion string          `json:"schemaVersion" mapstructure:"schemaVersion"`
	Title         string          `json:"title,omitempty" mapstructure:"title"`
	Description   string          `json:"description,omitempty" mapstructure:"description"`
	FileType      string          `json:"fileType,omitempty" mapstructure:"fileType"`
	FileSize      int64           `json:"fileSize,omitempty" mapstructure:"fileSize"`
	Hash          string          `json:"hash" mapstructure:"hash"`
	Metadata      CaptureMetadata `json:"metadata" mapstructure:"metadata"`
}

// DecodeEnvelope decodes a loose JSON object into a MetadataEnvelope,
// dispatching on the schemaVersion discriminator. Objects without a
// discriminator are treated as legacy version 1, whose capture fields live at
// the top level of the blob.
func DecodeEnvelope(raw map[string]any) (MetadataEnvelope, error) {
	version := EnvelopeSchemaV1
	if v, ok := raw["schemaVersion"].(string); ok && v != "" {
		version = v
	}

	var envelope MetadataEnvelope
	decode := func(input, output any) error {
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           output,
			WeaklyTypedInput: true,
			TagName:          "mapstructure",
		})
		if err != nil {
			return err
		}
		return dec.Decode(input)
	}

	if version == EnvelopeSchemaV1 {
		if err := decode(raw, &envelope); err != nil {
			return MetadataEnvelope{}, NewEncodingError("cannot decode legacy envelope", err)
		}
		// legacy blobs kept capture fields next to the file fields
		if err := decode(raw, &envelope.Metadata); err != nil {
			return MetadataEnvelope{}, NewEncodingError("cannot decode legacy capture fields", err)
		}
		envelope.SchemaVersion = EnvelopeSchemaV1
		return envelope, nil
	}

	if err := decode(raw, &envelope); err != nil {
		return MetadataEnvelope{}, NewEncodingError("cannot decode envelope", err)
	}
	return envelope, nil
}
