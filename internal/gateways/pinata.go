package gateways

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/verimedia/media-platform/internal/core/domain"
	client "github.com/verimedia/media-platform/pkg/http"
)

// PinataConfig represents the hosted pinning service configuration
type PinataConfig struct {
	PinURL     string
	APIKey     string
	Secret     string
	GatewayURL string
	Timeout    time.Duration
}

// PinataService pins content on the hosted pinning service. Uploads are a
// single multipart part; chunking is not supported, so content is practically
// bounded by the provider request body limit (a few tens of MB).
type PinataService struct {
	cfg    PinataConfig
	client *client.Client
}

// NewPinataService returns a gateway to the hosted pinning service
func NewPinataService(cfg PinataConfig) *PinataService {
	return &PinataService{
		cfg:    cfg,
		client: client.NewClient(http.Client{Timeout: cfg.Timeout}),
	}
}

// Pin uploads content and returns the gateway url of the pinned item
func (s *PinataService) Pin(ctx context.Context, content []byte, name string) (string, error) {
	if s.cfg.APIKey == "" || s.cfg.Secret == "" {
		return "", domain.NewConfigurationError("pinning service credentials")
	}
	if name == "" {
		name = "upload"
	}

	headers := map[string]string{
		"pinata_api_key":        s.cfg.APIKey,
		"pinata_secret_api_key": s.cfg.Secret,
	}
	status, body, err := s.client.PostMultipart(ctx, s.cfg.PinURL, "file", name, content, headers)
	if err != nil {
		return "", errors.Wrap(err, "pin request")
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return "", domain.NewUpstreamServiceError("content pin", status, body)
	}

	var out struct {
		IpfsHash string `json:"IpfsHash"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", errors.Wrap(err, "decoding pin response")
	}
	if out.IpfsHash == "" {
		return "", errors.New("pin response carries no content identifier")
	}
	return gatewayURL(s.cfg.GatewayURL, out.IpfsHash), nil
}

func gatewayURL(gateway, cid string) string {
	return fmt.Sprintf("%s/ipfs/%s", strings.TrimRight(gateway, "/"), cid)
}
