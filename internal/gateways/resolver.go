package gateways

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/verimedia/media-platform/internal/core/domain"
	client "github.com/verimedia/media-platform/pkg/http"
)

// ResolverConfig represents the public resolver service configuration
type ResolverConfig struct {
	ResolverURL string
	Timeout     time.Duration
}

// ResolverService dereferences anchored resources through the public resolver
// endpoint. It needs no credential: the resolver is public.
type ResolverService struct {
	cfg    ResolverConfig
	client *client.Client
}

// NewResolverService returns a gateway to the public resolver
func NewResolverService(cfg ResolverConfig) *ResolverService {
	return &ResolverService{
		cfg:    cfg,
		client: client.NewClient(http.Client{Timeout: cfg.Timeout}),
	}
}

// DereferenceMetadata fetches the resource identified by did and resourceID
// and returns the metadata object of its envelope. The resolver answers
// either with the resolved envelope itself or with the raw base64url payload
// under a data field; both shapes are handled.
func (s *ResolverService) DereferenceMetadata(ctx context.Context, did, resourceID string) (map[string]any, error) {
	status, body, err := s.client.Get(ctx, fmt.Sprintf("%s/%s/resources/%s", s.cfg.ResolverURL, did, resourceID), nil)
	if err != nil {
		return nil, errors.Wrap(err, "resource dereference request")
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return nil, domain.NewUpstreamServiceError("resource dereference", status, body)
	}

	if data := gjson.GetBytes(body, "data"); data.Exists() && data.Type == gjson.String {
		content, err := domain.Decode(data.String())
		if err != nil {
			return nil, err
		}
		body = content
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, domain.NewEncodingError("resolved resource is not valid JSON", err)
	}
	if metadata, ok := payload["metadata"].(map[string]any); ok {
		return metadata, nil
	}
	return payload, nil
}
