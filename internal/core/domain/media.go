package domain

// MediaMetadata is the subset of EXIF / container fields reported by the
// media analyzer. Field casing follows the analyzer wire format: EXIF tags
// keep their EXIF names, derived fields are camelCase.
type MediaMetadata struct {
	FileSize         int64    `json:"fileSize"`
	FileType         string   `json:"fileType"`
	Resolution       string   `json:"resolution,omitempty"`
	DeviceInfo       string   `json:"deviceInfo,omitempty"`
	CreationDate     string   `json:"creationDate,omitempty"`
	Location         string   `json:"location,omitempty"`
	Software         string   `json:"software,omitempty"`
	Codec            string   `json:"codec,omitempty"`
	Duration         string   `json:"duration,omitempty"`
	Bitrate          string   `json:"bitrate,omitempty"`
	Make             string   `json:"Make,omitempty"`
	Model            string   `json:"Model,omitempty"`
	DateTimeOriginal string   `json:"DateTimeOriginal,omitempty"`
	CreateDate       string   `json:"CreateDate,omitempty"`
	GPSLatitude      *float64 `json:"GPSLatitude,omitempty"`
	GPSLongitude     *float64 `json:"GPSLongitude,omitempty"`
	GPSAltitude      *float64 `json:"GPSAltitude,omitempty"`
}

// MediaAnalysis is the result of analyzing one uploaded file. It is ephemeral:
// consumed to decide whether certification proceeds and to populate the
// metadata envelope, never persisted.
type MediaAnalysis struct {
	IsAuthentic bool          `json:"isAuthentic"`
	Confidence  float64       `json:"confidence"`
	Metadata    MediaMetadata `json:"metadata"`
	Warnings    []string      `json:"warnings"`
}

// HasCaptureMetadata tells whether the analyzed file carries usable device or
// capture information. Images need a device make and model; videos need a
// resolution and a duration.
func (m *MediaAnalysis) HasCaptureMetadata() bool {
	if m.Metadata.Make != "" && m.Metadata.Model != "" {
		return true
	}
	return m.Metadata.Resolution != "" && m.Metadata.Duration != ""
}
