package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/verimedia/media-platform/internal/core/domain"
	"github.com/verimedia/media-platform/internal/core/ports"
)

func TestPublishValidation(t *testing.T) {
	ctx := context.Background()

	full := ports.PublishRequest{
		DID:      "did:example:123",
		Data:     "eyJhIjoxfQ",
		Encoding: "base64url",
		Name:     "media-abc12345",
		Type:     "MediaVerification",
	}

	// every subset of missing required fields must be reported exactly
	fields := []string{"did", "data", "encoding", "name", "type"}
	for mask := 1; mask < 1<<len(fields); mask++ {
		var missing []string
		req := full
		for i, field := range fields {
			if mask&(1<<i) == 0 {
				continue
			}
			missing = append(missing, field)
			switch field {
			case "did":
				req.DID = ""
			case "data":
				req.Data = ""
			case "encoding":
				req.Encoding = ""
			case "name":
				req.Name = ""
			case "type":
				req.Type = ""
			}
		}

		t.Run(fmt.Sprintf("missing %v", missing), func(t *testing.T) {
			registry := &registryMock{}
			service := NewResource(registry, &resolverMock{})

			_, err := service.Publish(ctx, req)
			var valErr *domain.ValidationError
			require.ErrorAs(t, err, &valErr)
			assert.Equal(t, missing, valErr.Fields)
			assert.Equal(t, 0, registry.createResourceCalls, "registry must not be reached on invalid input")
		})
	}
}

func TestPublishReturnsDescriptorVerbatim(t *testing.T) {
	ctx := context.Background()

	descriptor := &domain.ResourceDescriptor{
		ResourceURI:     "did:example:123/resources/res-1",
		ResourceID:      "res-1",
		ResourceName:    "media-abc12345",
		ResourceType:    "MediaVerification",
		ResourceVersion: "1.0",
		Checksum:        "deadbeef",
	}
	registry := &registryMock{
		createResourceFn: func(_ context.Context, did string, payload ports.CreateResourcePayload) (*domain.ResourceDescriptor, error) {
			assert.Equal(t, "did:example:123", did)
			assert.Equal(t, "base64url", payload.Encoding)
			return descriptor, nil
		},
	}

	got, err := NewResource(registry, &resolverMock{}).Publish(ctx, ports.PublishRequest{
		DID:      "did:example:123",
		Data:     "eyJhIjoxfQ",
		Encoding: "base64url",
		Name:     "media-abc12345",
		Type:     "MediaVerification",
	})
	require.NoError(t, err)
	assert.Equal(t, descriptor, got)
}

func searchDocument(resourceIDs ...string) []byte {
	doc := `{"didDocument":{"id":"did:example:123"},"didDocumentMetadata":{"linkedResourceMetadata":[`
	for i, id := range resourceIDs {
		if i > 0 {
			doc += ","
		}
		doc += fmt.Sprintf(`{"resourceURI":"did:example:123/resources/%s","resourceId":"%s","resourceName":"media-%d","metadata":null}`, id, id, i)
	}
	return []byte(doc + `]}}`)
}

func TestResolveEnrichesEntries(t *testing.T) {
	ctx := context.Background()

	registry := &registryMock{
		searchResourcesFn: func(_ context.Context, did string) ([]byte, error) {
			assert.Equal(t, "did:example:123", did)
			return searchDocument("res-1", "res-2", "res-3"), nil
		},
	}
	resolver := &resolverMock{
		dereferenceFn: func(_ context.Context, _, resourceID string) (map[string]any, error) {
			if resourceID == "res-2" {
				return nil, domain.NewUpstreamServiceError("resource dereference", 404, []byte("not found"))
			}
			return map[string]any{"deviceInfo": "Acme X1", "source": resourceID}, nil
		},
	}

	out, err := NewResource(registry, resolver).Resolve(ctx, "did:example:123")
	require.NoError(t, err)

	entries := gjson.GetBytes(out, "didDocumentMetadata.linkedResourceMetadata").Array()
	require.Len(t, entries, 3, "output must keep every upstream entry")

	assert.Equal(t, "res-1", entries[0].Get("metadata.source").String())
	assert.Equal(t, gjson.Null, entries[1].Get("metadata").Type, "failed entry stays unchanged")
	assert.Equal(t, "res-3", entries[2].Get("metadata.source").String())

	// input order survives the concurrent fan-out
	assert.Equal(t, "res-1", entries[0].Get("resourceId").String())
	assert.Equal(t, "res-2", entries[1].Get("resourceId").String())
	assert.Equal(t, "res-3", entries[2].Get("resourceId").String())
}

func TestResolveAllDereferencesFail(t *testing.T) {
	ctx := context.Background()

	registry := &registryMock{
		searchResourcesFn: func(_ context.Context, _ string) ([]byte, error) {
			return searchDocument("res-1", "res-2"), nil
		},
	}
	resolver := &resolverMock{
		dereferenceFn: func(_ context.Context, _, _ string) (map[string]any, error) {
			return nil, domain.NewUpstreamServiceError("resource dereference", 500, []byte("boom"))
		},
	}

	out, err := NewResource(registry, resolver).Resolve(ctx, "did:example:123")
	require.NoError(t, err, "per-entry failures must not fail the resolution")

	entries := gjson.GetBytes(out, "didDocumentMetadata.linkedResourceMetadata").Array()
	assert.Len(t, entries, 2)
}

func TestResolveTopLevelLookupFailure(t *testing.T) {
	ctx := context.Background()

	registry := &registryMock{
		searchResourcesFn: func(_ context.Context, _ string) ([]byte, error) {
			return nil, domain.NewUpstreamServiceError("resource search", 404, []byte("did not found"))
		},
	}

	_, err := NewResource(registry, &resolverMock{}).Resolve(ctx, "did:example:123")
	var upErr *domain.UpstreamServiceError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, 404, upErr.Status)
	assert.Equal(t, "did not found", upErr.Body)
}

func TestResolveThumbnailCheckNeverTouchesResult(t *testing.T) {
	ctx := context.Background()

	var failing atomic.Bool
	methods := make(chan string, 8)
	thumbSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods <- r.Method
		switch {
		case failing.Load():
			w.WriteHeader(http.StatusInternalServerError)
		case r.Method == http.MethodHead:
			w.WriteHeader(http.StatusMethodNotAllowed)
		default:
			w.WriteHeader(http.StatusOK)
		}
	}))
	t.Cleanup(thumbSrv.Close)

	registry := &registryMock{
		searchResourcesFn: func(_ context.Context, _ string) ([]byte, error) {
			return searchDocument("res-1"), nil
		},
	}
	resolver := &resolverMock{
		dereferenceFn: func(_ context.Context, _, _ string) (map[string]any, error) {
			return map[string]any{
				"deviceInfo":   "Acme X1",
				"thumbnailUrl": thumbSrv.URL + "/ipfs/QmThumb",
			}, nil
		},
	}
	service := NewResource(registry, resolver)

	receive := func() string {
		select {
		case m := <-methods:
			return m
		case <-time.After(5 * time.Second):
			t.Fatal("thumbnail check request never arrived")
			return ""
		}
	}

	reachable, err := service.Resolve(ctx, "did:example:123")
	require.NoError(t, err)

	// HEAD first, GET after the 405
	assert.Equal(t, http.MethodHead, receive())
	assert.Equal(t, http.MethodGet, receive())

	entries := gjson.GetBytes(reachable, "didDocumentMetadata.linkedResourceMetadata").Array()
	require.Len(t, entries, 1)
	assert.Equal(t, "Acme X1", entries[0].Get("metadata.deviceInfo").String())
	assert.Equal(t, thumbSrv.URL+"/ipfs/QmThumb", entries[0].Get("metadata.thumbnailUrl").String())

	// an unreachable thumbnail yields the exact same resolution result
	failing.Store(true)
	unreachable, err := service.Resolve(ctx, "did:example:123")
	require.NoError(t, err)
	assert.Equal(t, http.MethodHead, receive())
	assert.Equal(t, []byte(reachable), []byte(unreachable))
}

func TestResolveNoLinkedResources(t *testing.T) {
	ctx := context.Background()

	doc := []byte(`{"didDocument":{"id":"did:example:123"},"didDocumentMetadata":{}}`)
	registry := &registryMock{
		searchResourcesFn: func(_ context.Context, _ string) ([]byte, error) {
			return doc, nil
		},
	}

	out, err := NewResource(registry, &resolverMock{}).Resolve(ctx, "did:example:123")
	require.NoError(t, err)
	assert.Equal(t, doc, []byte(out))
}
