package ports

import (
	"context"

	"github.com/verimedia/media-platform/internal/core/domain"
)

// CertifyRequest is one certification flow input: the uploaded file plus the
// user supplied descriptive fields.
type CertifyRequest struct {
	FileName    string
	ContentType string
	Content     []byte
	Title       string
	Description string
}

// CertificationService runs the certification state machine end to end and
// keeps finished certificates resolvable for sharing.
type CertificationService interface {
	Certify(ctx context.Context, req CertifyRequest) (*domain.Certificate, error)
	Certificate(ctx context.Context, id string) (*domain.Certificate, error)
}
