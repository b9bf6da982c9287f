package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/verimedia/media-platform/internal/core/domain"
	"github.com/verimedia/media-platform/internal/core/ports"
	"github.com/verimedia/media-platform/internal/log"
	"github.com/verimedia/media-platform/pkg/cache"
)

// Resource naming for certified media
const (
	resourceType     = "MediaVerification"
	resourceVersion  = "1.0"
	resourceEncoding = "base64url"
)

// ErrCertificateNotFound is returned when a shared certificate id is unknown
// or its share window expired.
var ErrCertificateNotFound = errors.New("certificate not found")

// Certification runs the certification flow end to end: analyze, hash, pin
// the video thumbnail, provision a DID, encode the metadata envelope and
// publish it as a DID linked resource. One flow per call, no state shared
// between flows; finished certificates are kept resolvable for sharing for a
// bounded time.
type Certification struct {
	media     ports.MediaService
	identity  ports.IdentityService
	resources ports.ResourceService
	pinner    ports.PinnerGateway
	store     cache.Cache
	serverURL string
	ttl       time.Duration
}

// NewCertification returns a certification service
func NewCertification(media ports.MediaService, identity ports.IdentityService, resources ports.ResourceService, pinner ports.PinnerGateway, store cache.Cache, serverURL string, ttl time.Duration) *Certification {
	return &Certification{
		media:     media,
		identity:  identity,
		resources: resources,
		pinner:    pinner,
		store:     store,
		serverURL: strings.TrimRight(serverURL, "/"),
		ttl:       ttl,
	}
}

// Certify runs the state machine for one upload. The returned certificate is
// never nil: on rejection it carries the analysis and the rejected state, on
// an upstream failure the failed state plus the error, which is also returned
// so callers can mirror the upstream status.
func (s *Certification) Certify(ctx context.Context, req ports.CertifyRequest) (*domain.Certificate, error) {
	cert := &domain.Certificate{
		ID:        uuid.NewString(),
		State:     domain.StateAnalyzing,
		CreatedAt: time.Now().UTC(),
	}
	ctx = log.With(ctx, "certificate", cert.ID)

	analysis, err := s.media.Analyze(ctx, req.FileName, req.ContentType, req.Content)
	if err != nil {
		return s.fail(ctx, cert, err)
	}
	cert.Analysis = analysis

	if !analysis.IsAuthentic || !analysis.HasCaptureMetadata() {
		cert.State = domain.StateRejected
		log.Info(ctx, "certification rejected: no usable capture metadata", "file", req.FileName)
		s.save(ctx, cert)
		return cert, nil
	}

	cert.State = domain.StateHashing
	digest := sha256.Sum256(req.Content)
	cert.Hash = hex.EncodeToString(digest[:])

	thumbnailURL, err := s.pinThumbnail(ctx, req, cert.Hash)
	if err != nil {
		return s.fail(ctx, cert, err)
	}

	cert.State = domain.StateProvisioning
	document, err := s.identity.Create(ctx)
	if err != nil {
		return s.fail(ctx, cert, err)
	}
	cert.DID = document.ID

	cert.State = domain.StateEncoding
	envelope := buildEnvelope(req, analysis, cert.Hash, thumbnailURL)
	encoded, err := domain.EncodeEnvelope(envelope)
	if err != nil {
		return s.fail(ctx, cert, err)
	}

	cert.State = domain.StatePublishing
	descriptor, err := s.resources.Publish(ctx, ports.PublishRequest{
		DID:      cert.DID,
		Data:     encoded,
		Encoding: resourceEncoding,
		Name:     fmt.Sprintf("media-%s", cert.Hash[:8]),
		Type:     resourceType,
		Version:  resourceVersion,
	})
	if err != nil {
		return s.fail(ctx, cert, err)
	}

	cert.State = domain.StateDone
	cert.Resource = descriptor
	if s.serverURL != "" {
		cert.ShareURL = fmt.Sprintf("%s/certificate/%s", s.serverURL, cert.ID)
	}
	s.save(ctx, cert)
	log.Info(ctx, "certification done", "did", cert.DID, "resourceURI", descriptor.ResourceURI)
	return cert, nil
}

// Certificate returns a previously issued certificate by its share id
func (s *Certification) Certificate(ctx context.Context, id string) (*domain.Certificate, error) {
	var cert domain.Certificate
	if !s.store.Get(ctx, certificateKey(id), &cert) {
		return nil, ErrCertificateNotFound
	}
	return &cert, nil
}

// pinThumbnail extracts and pins a thumbnail for video uploads. Image uploads
// need none: the content itself is the visual.
func (s *Certification) pinThumbnail(ctx context.Context, req ports.CertifyRequest, hash string) (string, error) {
	if !strings.HasPrefix(req.ContentType, "video/") {
		return "", nil
	}

	dataURL, err := s.media.VideoThumbnail(ctx, req.Content)
	if err != nil {
		return "", err
	}
	thumbnail, err := decodeDataURL(dataURL)
	if err != nil {
		return "", err
	}
	return s.pinner.Pin(ctx, thumbnail, fmt.Sprintf("thumbnail-%s.jpg", hash[:8]))
}

func (s *Certification) fail(ctx context.Context, cert *domain.Certificate, err error) (*domain.Certificate, error) {
	cert.State = domain.StateFailed
	cert.Error = err.Error()
	log.Error(ctx, "certification failed", err, "state", cert.State)
	s.save(ctx, cert)
	return cert, err
}

func (s *Certification) save(ctx context.Context, cert *domain.Certificate) {
	if err := s.store.Set(ctx, certificateKey(cert.ID), *cert, s.ttl); err != nil {
		log.Warn(ctx, "cannot store certificate", "err", err, "id", cert.ID)
	}
}

func certificateKey(id string) string {
	return fmt.Sprintf("certificate-%s", id)
}

func buildEnvelope(req ports.CertifyRequest, analysis *domain.MediaAnalysis, hash, thumbnailURL string) domain.MetadataEnvelope {
	m := analysis.Metadata
	title := req.Title
	if title == "" {
		title = req.FileName
	}
	return domain.MetadataEnvelope{
		SchemaVersion: domain.EnvelopeSchemaV2,
		Title:         title,
		Description:   req.Description,
		FileType:      m.FileType,
		FileSize:      m.FileSize,
		Hash:          hash,
		Metadata: domain.CaptureMetadata{
			DeviceInfo:   m.DeviceInfo,
			Make:         m.Make,
			Model:        m.Model,
			CaptureDate:  m.CreationDate,
			GPSLatitude:  m.GPSLatitude,
			GPSLongitude: m.GPSLongitude,
			Software:     m.Software,
			Resolution:   m.Resolution,
			Codec:        m.Codec,
			Duration:     m.Duration,
			Bitrate:      m.Bitrate,
			ThumbnailURL: thumbnailURL,
		},
	}
}
