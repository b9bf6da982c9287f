package services

import (
	"context"

	"github.com/verimedia/media-platform/internal/core/domain"
	"github.com/verimedia/media-platform/internal/core/ports"
	"github.com/verimedia/media-platform/internal/log"
)

// DID creation defaults. The registry anchors uuid style identifiers with a
// single Ed25519 verification method.
const (
	identifierFormatType   = "uuid"
	verificationMethodType = "Ed25519VerificationKey2018"
)

// Identity orchestrates DID provisioning against the ledger registry: a fresh
// keypair, an optional DID document template keyed by the new key material,
// and the DID creation itself. A failure in any step fails the whole
// operation; no partial DID is ever returned.
type Identity struct {
	registry        ports.RegistryGateway
	network         string
	templateEnabled bool
}

// NewIdentity returns an identity provisioning service
func NewIdentity(registry ports.RegistryGateway, network string, templateEnabled bool) *Identity {
	return &Identity{
		registry:        registry,
		network:         network,
		templateEnabled: templateEnabled,
	}
}

// Create provisions a fresh DID anchored on the target network
func (s *Identity) Create(ctx context.Context) (*domain.DIDDocument, error) {
	key, err := s.registry.CreateKey(ctx)
	if err != nil {
		return nil, err
	}
	log.Debug(ctx, "registry key created", "kid", key.Kid)

	var template map[string]any
	if s.templateEnabled {
		template, err = s.registry.DIDDocumentTemplate(ctx, ports.DIDTemplateRequest{
			VerificationMethodType: verificationMethodType,
			MethodSpecificIDAlgo:   identifierFormatType,
			Network:                s.network,
			PublicKeyHex:           key.PublicKeyHex,
		})
		if err != nil {
			return nil, err
		}
	}

	document, err := s.registry.CreateDID(ctx, ports.CreateDIDRequest{
		Network:                s.network,
		IdentifierFormatType:   identifierFormatType,
		VerificationMethodType: verificationMethodType,
		AssertionMethod:        true,
		DIDDocument:            template,
	})
	if err != nil {
		return nil, err
	}

	log.Info(ctx, "DID created", "did", document.ID)
	return document, nil
}
