package gateways

import (
	"context"
	"io"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verimedia/media-platform/internal/core/domain"
)

func TestPinataPin(t *testing.T) {
	ctx := context.Background()
	content := []byte{0xff, 0xd8, 0xff, 0xe0}

	srv, _ := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "key", r.Header.Get("pinata_api_key"))
		assert.Equal(t, "secret", r.Header.Get("pinata_secret_api_key"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "thumbnail-abc.jpg", header.Filename)
		uploaded, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, content, uploaded)

		_, _ = w.Write([]byte(`{"IpfsHash":"QmThumb","PinSize":4}`))
	})

	service := NewPinataService(PinataConfig{
		PinURL:     srv.URL,
		APIKey:     "key",
		Secret:     "secret",
		GatewayURL: "https://gateway.pinata.cloud/",
		Timeout:    5 * time.Second,
	})

	url, err := service.Pin(ctx, content, "thumbnail-abc.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://gateway.pinata.cloud/ipfs/QmThumb", url)
}

func TestPinataMissingCredentials(t *testing.T) {
	ctx := context.Background()
	srv, hits := countingServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	service := NewPinataService(PinataConfig{PinURL: srv.URL, Timeout: 5 * time.Second})

	_, err := service.Pin(ctx, []byte("content"), "file.jpg")
	var cfgErr *domain.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, int32(0), atomic.LoadInt32(hits))
}

func TestPinataUpstreamError(t *testing.T) {
	ctx := context.Background()
	srv, _ := countingServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"invalid credentials"}`))
	})

	service := NewPinataService(PinataConfig{
		PinURL:  srv.URL,
		APIKey:  "key",
		Secret:  "bad",
		Timeout: 5 * time.Second,
	})

	_, err := service.Pin(ctx, []byte("content"), "file.jpg")
	var upErr *domain.UpstreamServiceError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusForbidden, upErr.Status)
	assert.Equal(t, `{"error":"invalid credentials"}`, upErr.Body)
}
