package domain

import (
	"encoding/base64"
	"encoding/json"
	"strings"
)

// Encode produces the canonical base64url payload for ledger submission:
// URL safe alphabet, trailing padding stripped.
func Encode(content []byte) string {
	return base64.RawURLEncoding.EncodeToString(content)
}

// Decode reverses Encode. It tolerates payloads that kept their padding, the
// standard alphabet variants and stray whitespace, restoring padding before
// decoding.
func Decode(encoded string) ([]byte, error) {
	normalized := strings.Map(func(r rune) rune {
		switch r {
		case '+':
			return '-'
		case '/':
			return '_'
		case ' ', '\n', '\r', '\t':
			return -1
		}
		return r
	}, encoded)
	normalized = strings.TrimRight(normalized, "=")

	content, err := base64.RawURLEncoding.DecodeString(normalized)
	if err != nil {
		return nil, NewEncodingError("payload is not valid base64url", err)
	}
	return content, nil
}

// EncodeEnvelope encodes a metadata envelope as a canonical payload
func EncodeEnvelope(envelope MetadataEnvelope) (string, error) {
	content, err := json.Marshal(envelope)
	if err != nil {
		return "", NewEncodingError("cannot encode envelope", err)
	}
	return Encode(content), nil
}

// MergeMetadata shallow merges metadata into the metadata key of an already
// encoded JSON payload and re-encodes it. Used by the edit-after-create flow
// where descriptive metadata arrives out of band.
func MergeMetadata(encoded string, metadata map[string]any) (string, error) {
	content, err := Decode(encoded)
	if err != nil {
		return "", err
	}

	var payload map[string]any
	if err := json.Unmarshal(content, &payload); err != nil {
		return "", NewEncodingError("existing payload is not valid JSON", err)
	}

	existing, _ := payload["metadata"].(map[string]any)
	if existing == nil {
		existing = make(map[string]any, len(metadata))
	}
	for k, v := range metadata {
		existing[k] = v
	}
	payload["metadata"] = existing

	merged, err := json.Marshal(payload)
	if err != nil {
		return "", NewEncodingError("cannot re-encode merged payload", err)
	}
	return Encode(merged), nil
}
