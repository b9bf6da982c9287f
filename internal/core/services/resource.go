package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/verimedia/media-platform/internal/core/domain"
	"github.com/verimedia/media-platform/internal/core/ports"
	"github.com/verimedia/media-platform/internal/log"
	client "github.com/verimedia/media-platform/pkg/http"
)

const linkedResourcePath = "didDocumentMetadata.linkedResourceMetadata"

const thumbnailCheckTimeout = 10 * time.Second

// Resource publishes and resolves DID linked resources. Publishing validates
// the caller input and hands the encoded payload to the registry; resolving
// enriches every linked resource entry with its dereferenced metadata.
type Resource struct {
	registry  ports.RegistryGateway
	resolver  ports.ResolverGateway
	reachable *client.Client
}

// NewResource returns a resource service
func NewResource(registry ports.RegistryGateway, resolver ports.ResolverGateway) *Resource {
	return &Resource{
		registry:  registry,
		resolver:  resolver,
		reachable: client.NewClient(http.Client{Timeout: thumbnailCheckTimeout}),
	}
}

// Publish anchors an encoded payload as a resource under a DID. Repeated
// publishes of identical content create new resource versions: the registry
// does not deduplicate and neither do we.
func (s *Resource) Publish(ctx context.Context, req ports.PublishRequest) (*domain.ResourceDescriptor, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	descriptor, err := s.registry.CreateResource(ctx, req.DID, ports.CreateResourcePayload{
		Data:          req.Data,
		Encoding:      req.Encoding,
		Name:          req.Name,
		Type:          req.Type,
		Version:       req.Version,
		AlsoKnownAs:   req.AlsoKnownAs,
		PublicKeyHexs: req.PublicKeyHexs,
	})
	if err != nil {
		return nil, err
	}

	log.Info(ctx, "resource published", "did", req.DID, "resourceId", descriptor.ResourceID, "version", descriptor.ResourceVersion)
	return descriptor, nil
}

// Get fetches one resource of a DID from the registry
func (s *Resource) Get(ctx context.Context, did, resourceID string) (json.RawMessage, error) {
	return s.registry.GetResource(ctx, did, resourceID)
}

// Verify asks the registry to verify a resource integrity
func (s *Resource) Verify(ctx context.Context, did, resourceID string) (json.RawMessage, error) {
	return s.registry.VerifyResource(ctx, did, resourceID)
}

// Resolve fetches the DID resource search document and enriches each linked
// resource entry with its dereferenced metadata. The top level lookup is the
// only fatal path; a per entry dereference failure leaves that entry
// untouched, so the output always carries the same entries as the upstream
// document, in the same order.
func (s *Resource) Resolve(ctx context.Context, did string) (json.RawMessage, error) {
	document, err := s.registry.SearchResources(ctx, did)
	if err != nil {
		return nil, err
	}

	entries := gjson.GetBytes(document, linkedResourcePath)
	if !entries.IsArray() {
		return document, nil
	}

	items := entries.Array()
	resolved := make([]map[string]any, len(items))
	var wg sync.WaitGroup
	for i, entry := range items {
		resourceID := entryResourceID(entry)
		if resourceID == "" {
			continue
		}
		wg.Add(1)
		go func(i int, resourceID string) {
			defer wg.Done()
			metadata, err := s.resolver.DereferenceMetadata(ctx, did, resourceID)
			if err != nil {
				log.Warn(ctx, "cannot dereference linked resource", "err", err, "did", did, "resourceId", resourceID)
				return
			}
			resolved[i] = metadata
		}(i, resourceID)
	}
	wg.Wait()

	for i, metadata := range resolved {
		if metadata == nil {
			continue
		}
		document, err = sjson.SetBytes(document, fmt.Sprintf("%s.%d.metadata", linkedResourcePath, i), metadata)
		if err != nil {
			log.Warn(ctx, "cannot attach resolved metadata", "err", err, "index", i)
			continue
		}
		if thumbnail, ok := metadata["thumbnailUrl"].(string); ok && thumbnail != "" {
			go s.checkThumbnail(log.CopyFromContext(ctx, context.Background()), thumbnail)
		}
	}

	return document, nil
}

// entryResourceID extracts the resource id of a linked resource entry,
// falling back to the trailing path segment of its resource URI.
func entryResourceID(entry gjson.Result) string {
	if id := entry.Get("resourceId").String(); id != "" {
		return id
	}
	uri := entry.Get("resourceURI").String()
	if idx := strings.LastIndex(uri, "/"); idx >= 0 && idx < len(uri)-1 {
		return uri[idx+1:]
	}
	return ""
}

// checkThumbnail confirms a thumbnail url is reachable. Best effort: the
// outcome is only logged, never reflected in the resolution result.
func (s *Resource) checkThumbnail(ctx context.Context, url string) {
	status, err := s.reachable.Head(ctx, url)
	if err == nil && status == http.StatusMethodNotAllowed {
		status, _, err = s.reachable.Get(ctx, url, nil)
	}
	if err != nil {
		log.Warn(ctx, "thumbnail is not reachable", "err", err, "url", url)
		return
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		log.Warn(ctx, "thumbnail is not reachable", "status", status, "url", url)
		return
	}
	log.Debug(ctx, "thumbnail reachable", "url", url, "status", status)
}
