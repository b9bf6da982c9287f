package services

import (
	"context"

	"github.com/verimedia/media-platform/internal/core/domain"
	"github.com/verimedia/media-platform/internal/core/ports"
)

// registryMock is a function-field fake of the registry gateway. Every call is
// counted so tests can assert which ledger endpoints were reached.
type registryMock struct {
	createKeyFn       func(ctx context.Context) (*domain.RegistryKey, error)
	templateFn        func(ctx context.Context, req ports.DIDTemplateRequest) (map[string]any, error)
	createDIDFn       func(ctx context.Context, req ports.CreateDIDRequest) (*domain.DIDDocument, error)
	createResourceFn  func(ctx context.Context, did string, payload ports.CreateResourcePayload) (*domain.ResourceDescriptor, error)
	getResourceFn     func(ctx context.Context, did, resourceID string) ([]byte, error)
	searchResourcesFn func(ctx context.Context, did string) ([]byte, error)
	verifyResourceFn  func(ctx context.Context, did, resourceID string) ([]byte, error)

	createKeyCalls      int
	templateCalls       int
	createDIDCalls      int
	createResourceCalls int
	searchCalls         int
}

func (m *registryMock) CreateKey(ctx context.Context) (*domain.RegistryKey, error) {
	m.createKeyCalls++
	return m.createKeyFn(ctx)
}

func (m *registryMock) DIDDocumentTemplate(ctx context.Context, req ports.DIDTemplateRequest) (map[string]any, error) {
	m.templateCalls++
	return m.templateFn(ctx, req)
}

func (m *registryMock) CreateDID(ctx context.Context, req ports.CreateDIDRequest) (*domain.DIDDocument, error) {
	m.createDIDCalls++
	return m.createDIDFn(ctx, req)
}

func (m *registryMock) CreateResource(ctx context.Context, did string, payload ports.CreateResourcePayload) (*domain.ResourceDescriptor, error) {
	m.createResourceCalls++
	return m.createResourceFn(ctx, did, payload)
}

func (m *registryMock) GetResource(ctx context.Context, did, resourceID string) ([]byte, error) {
	return m.getResourceFn(ctx, did, resourceID)
}

func (m *registryMock) SearchResources(ctx context.Context, did string) ([]byte, error) {
	m.searchCalls++
	return m.searchResourcesFn(ctx, did)
}

func (m *registryMock) VerifyResource(ctx context.Context, did, resourceID string) ([]byte, error) {
	return m.verifyResourceFn(ctx, did, resourceID)
}

func (m *registryMock) Ping(_ context.Context) error {
	return nil
}

type resolverMock struct {
	dereferenceFn func(ctx context.Context, did, resourceID string) (map[string]any, error)
}

func (m *resolverMock) DereferenceMetadata(ctx context.Context, did, resourceID string) (map[string]any, error) {
	return m.dereferenceFn(ctx, did, resourceID)
}

type analyzerMock struct {
	analyzeFn func(ctx context.Context, fileName, contentType string, content []byte) (*domain.MediaAnalysis, error)
}

func (m *analyzerMock) Analyze(ctx context.Context, fileName, contentType string, content []byte) (*domain.MediaAnalysis, error) {
	return m.analyzeFn(ctx, fileName, contentType, content)
}

type thumbnailerMock struct {
	thumbnailFn func(ctx context.Context, video []byte) ([]byte, error)
}

func (m *thumbnailerMock) Thumbnail(ctx context.Context, video []byte) ([]byte, error) {
	return m.thumbnailFn(ctx, video)
}

type pinnerMock struct {
	pinFn    func(ctx context.Context, content []byte, name string) (string, error)
	pinCalls int
}

func (m *pinnerMock) Pin(ctx context.Context, content []byte, name string) (string, error) {
	m.pinCalls++
	return m.pinFn(ctx, content, name)
}
