package gateways

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/verimedia/media-platform/internal/core/domain"
	"github.com/verimedia/media-platform/internal/core/ports"
	"github.com/verimedia/media-platform/internal/log"
	client "github.com/verimedia/media-platform/pkg/http"
)

// RegistryConfig represents the hosted ledger registry configuration
type RegistryConfig struct {
	RegistryURL string
	TemplateURL string
	APIKey      string
	Network     string
	Timeout     time.Duration
}

// RegistryService is the gateway to the hosted DID registry. Every method
// checks the credential before going to the network and maps non success
// responses to UpstreamServiceError with the upstream status and body.
type RegistryService struct {
	cfg    RegistryConfig
	client *client.Client
}

// NewRegistryService returns a gateway to the ledger registry service
func NewRegistryService(cfg RegistryConfig) *RegistryService {
	return &RegistryService{
		cfg:    cfg,
		client: client.NewClient(http.Client{Timeout: cfg.Timeout}),
	}
}

func (s *RegistryService) headers() map[string]string {
	return map[string]string{"x-api-key": s.cfg.APIKey}
}

func (s *RegistryService) requireCredential() error {
	if s.cfg.APIKey == "" {
		return domain.NewConfigurationError("ledger API key")
	}
	return nil
}

// CreateKey requests a fresh asymmetric keypair from the registry. The private
// key stays inside the hosted service.
func (s *RegistryService) CreateKey(ctx context.Context) (*domain.RegistryKey, error) {
	if err := s.requireCredential(); err != nil {
		return nil, err
	}

	status, body, err := s.client.Post(ctx, s.cfg.RegistryURL+"/key/create", []byte(`{}`), s.headers())
	if err != nil {
		return nil, errors.Wrap(err, "key creation request")
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return nil, domain.NewUpstreamServiceError("key creation", status, body)
	}

	var key domain.RegistryKey
	if err := json.Unmarshal(body, &key); err != nil {
		return nil, errors.Wrap(err, "decoding key creation response")
	}
	return &key, nil
}

// DIDDocumentTemplate fetches a DID document skeleton from the template
// service, keyed by the verification method type and the new key material.
func (s *RegistryService) DIDDocumentTemplate(ctx context.Context, req ports.DIDTemplateRequest) (map[string]any, error) {
	if s.cfg.TemplateURL == "" {
		return nil, domain.NewConfigurationError("DID document template url")
	}

	q := url.Values{}
	q.Set("verificationMethod", req.VerificationMethodType)
	q.Set("methodSpecificIdAlgo", req.MethodSpecificIDAlgo)
	q.Set("network", req.Network)
	q.Set("publicKeyHex", req.PublicKeyHex)

	status, body, err := s.client.Get(ctx, s.cfg.TemplateURL+"?"+q.Encode(), s.headers())
	if err != nil {
		return nil, errors.Wrap(err, "DID document template request")
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return nil, domain.NewUpstreamServiceError("DID document template fetch", status, body)
	}

	var template map[string]any
	if err := json.Unmarshal(body, &template); err != nil {
		return nil, errors.Wrap(err, "decoding DID document template")
	}
	if doc, ok := template["didDoc"].(map[string]any); ok {
		return doc, nil
	}
	return template, nil
}

// CreateDID requests a DID anchored on the target network. The request is form
// encoded; when a document template has been fetched it is merged in as the
// didDocument field.
func (s *RegistryService) CreateDID(ctx context.Context, req ports.CreateDIDRequest) (*domain.DIDDocument, error) {
	if err := s.requireCredential(); err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("network", req.Network)
	form.Set("identifierFormatType", req.IdentifierFormatType)
	form.Set("verificationMethodType", req.VerificationMethodType)
	form.Set("@context", "https://www.w3.org/ns/did/v1")
	if req.AssertionMethod {
		form.Set("assertionMethod", "true")
	}
	if req.DIDDocument != nil {
		doc, err := json.Marshal(req.DIDDocument)
		if err != nil {
			return nil, errors.Wrap(err, "encoding didDocument field")
		}
		form.Set("didDocument", string(doc))
	}

	status, body, err := s.client.PostForm(ctx, s.cfg.RegistryURL+"/did/create", form, s.headers())
	if err != nil {
		return nil, errors.Wrap(err, "DID creation request")
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return nil, domain.NewUpstreamServiceError("DID creation", status, body)
	}

	return parseDIDDocument(body)
}

// parseDIDDocument normalizes the registry creation response, which carries
// the document either under didDocument or at the top level.
func parseDIDDocument(body []byte) (*domain.DIDDocument, error) {
	var document domain.DIDDocument
	raw := body
	if node := gjson.GetBytes(body, "didDocument"); node.Exists() {
		raw = []byte(node.Raw)
	}
	if err := json.Unmarshal(raw, &document); err != nil {
		return nil, errors.Wrap(err, "decoding DID document")
	}
	if document.ID == "" {
		if did := gjson.GetBytes(body, "did").String(); did != "" {
			document.ID = did
		}
	}
	if document.ID == "" {
		return nil, errors.New("registry response carries no DID")
	}
	return &document, nil
}

// CreateResource anchors an encoded payload as a new resource version under did
func (s *RegistryService) CreateResource(ctx context.Context, did string, payload ports.CreateResourcePayload) (*domain.ResourceDescriptor, error) {
	if err := s.requireCredential(); err != nil {
		return nil, err
	}

	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "encoding resource payload")
	}

	status, body, err := s.client.Post(ctx, fmt.Sprintf("%s/resource/create/%s", s.cfg.RegistryURL, did), reqBody, s.headers())
	if err != nil {
		return nil, errors.Wrap(err, "resource creation request")
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return nil, domain.NewUpstreamServiceError("resource creation", status, body)
	}

	raw := body
	if node := gjson.GetBytes(body, "resource"); node.Exists() {
		raw = []byte(node.Raw)
	}
	var descriptor domain.ResourceDescriptor
	if err := json.Unmarshal(raw, &descriptor); err != nil {
		return nil, errors.Wrap(err, "decoding resource descriptor")
	}
	return &descriptor, nil
}

// GetResource fetches one resource of a DID from the registry
func (s *RegistryService) GetResource(ctx context.Context, did, resourceID string) ([]byte, error) {
	if err := s.requireCredential(); err != nil {
		return nil, err
	}

	status, body, err := s.client.Get(ctx, fmt.Sprintf("%s/resource/%s/%s", s.cfg.RegistryURL, did, resourceID), s.headers())
	if err != nil {
		return nil, errors.Wrap(err, "resource fetch request")
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return nil, domain.NewUpstreamServiceError("resource fetch", status, body)
	}
	return body, nil
}

// SearchResources fetches the resource search document of a DID, including
// the linked resource metadata of its DID document.
func (s *RegistryService) SearchResources(ctx context.Context, did string) ([]byte, error) {
	if err := s.requireCredential(); err != nil {
		return nil, err
	}

	status, body, err := s.client.Get(ctx, fmt.Sprintf("%s/resource/search/%s", s.cfg.RegistryURL, did), s.headers())
	if err != nil {
		return nil, errors.Wrap(err, "resource search request")
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return nil, domain.NewUpstreamServiceError("resource search", status, body)
	}
	return body, nil
}

// VerifyResource asks the registry to verify a resource integrity
func (s *RegistryService) VerifyResource(ctx context.Context, did, resourceID string) ([]byte, error) {
	if err := s.requireCredential(); err != nil {
		return nil, err
	}

	status, body, err := s.client.Get(ctx, fmt.Sprintf("%s/resource/verify/%s/%s", s.cfg.RegistryURL, did, resourceID), s.headers())
	if err != nil {
		return nil, errors.Wrap(err, "resource verification request")
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return nil, domain.NewUpstreamServiceError("resource verification", status, body)
	}
	return body, nil
}

// Ping tells whether the registry is reachable
func (s *RegistryService) Ping(ctx context.Context) error {
	status, _, err := s.client.Get(ctx, s.cfg.RegistryURL, nil)
	if err != nil {
		return err
	}
	log.Debug(ctx, "registry ping", "status", status)
	return nil
}
