package ports

import (
	"context"
	"encoding/json"

	"github.com/verimedia/media-platform/internal/core/domain"
)

// CreateResourcePayload is the canonical resource creation body submitted to
// the registry, already encoded.
type CreateResourcePayload struct {
	Data          string               `json:"data"`
	Encoding      string               `json:"encoding"`
	Name          string               `json:"name"`
	Type          string               `json:"type"`
	Version       string               `json:"version,omitempty"`
	AlsoKnownAs   []domain.AlsoKnownAs `json:"alsoKnownAs,omitempty"`
	PublicKeyHexs []string             `json:"publicKeyHexs,omitempty"`
}

// PublishRequest is a caller request to anchor encoded content under a DID
type PublishRequest struct {
	DID           string               `json:"did"`
	Data          string               `json:"data"`
	Encoding      string               `json:"encoding"`
	Name          string               `json:"name"`
	Type          string               `json:"type"`
	Version       string               `json:"version,omitempty"`
	AlsoKnownAs   []domain.AlsoKnownAs `json:"alsoKnownAs,omitempty"`
	PublicKeyHexs []string             `json:"publicKeyHexs,omitempty"`
}

// Validate checks the request required fields. It returns a ValidationError
// naming exactly the missing ones, in payload order.
func (r *PublishRequest) Validate() error {
	var missing []string
	if r.DID == "" {
		missing = append(missing, "did")
	}
	if r.Data == "" {
		missing = append(missing, "data")
	}
	if r.Encoding == "" {
		missing = append(missing, "encoding")
	}
	if r.Name == "" {
		missing = append(missing, "name")
	}
	if r.Type == "" {
		missing = append(missing, "type")
	}
	if len(missing) > 0 {
		return domain.NewValidationError(missing...)
	}
	return nil
}

// ResolverGateway dereferences anchored resources through the public resolver
type ResolverGateway interface {
	// DereferenceMetadata fetches a resource and returns the metadata object
	// of its decoded envelope.
	DereferenceMetadata(ctx context.Context, did, resourceID string) (map[string]any, error)
}

// ResourceService publishes, fetches and resolves DID linked resources
type ResourceService interface {
	Publish(ctx context.Context, req PublishRequest) (*domain.ResourceDescriptor, error)
	Get(ctx context.Context, did, resourceID string) (json.RawMessage, error)
	Verify(ctx context.Context, did, resourceID string) (json.RawMessage, error)
	// Resolve returns the DID resource search document with every linked
	// resource entry enriched with its dereferenced metadata where possible.
	Resolve(ctx context.Context, did string) (json.RawMessage, error)
}
