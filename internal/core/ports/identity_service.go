package ports

import (
	"context"

	"github.com/verimedia/media-platform/internal/core/domain"
)

// CreateDIDRequest are the ledger scoped options of a DID creation
type CreateDIDRequest struct {
	Network                string
	IdentifierFormatType   string
	VerificationMethodType string
	AssertionMethod        bool
	DIDDocument            map[string]any
}

// DIDTemplateRequest parameterizes the DID document template endpoint
type DIDTemplateRequest struct {
	VerificationMethodType string
	MethodSpecificIDAlgo   string
	Network                string
	PublicKeyHex           string
}

// RegistryGateway gives access to the hosted ledger registry endpoints
type RegistryGateway interface {
	CreateKey(ctx context.Context) (*domain.RegistryKey, error)
	DIDDocumentTemplate(ctx context.Context, req DIDTemplateRequest) (map[string]any, error)
	CreateDID(ctx context.Context, req CreateDIDRequest) (*domain.DIDDocument, error)
	CreateResource(ctx context.Context, did string, payload CreateResourcePayload) (*domain.ResourceDescriptor, error)
	GetResource(ctx context.Context, did, resourceID string) ([]byte, error)
	SearchResources(ctx context.Context, did string) ([]byte, error)
	VerifyResource(ctx context.Context, did, resourceID string) ([]byte, error)
	Ping(ctx context.Context) error
}

// IdentityService orchestrates the provisioning of a fresh DID
type IdentityService interface {
	Create(ctx context.Context) (*domain.DIDDocument, error)
}
