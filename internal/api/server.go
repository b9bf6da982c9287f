package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/verimedia/media-platform/internal/core/ports"
	"github.com/verimedia/media-platform/internal/health"
	"github.com/verimedia/media-platform/internal/log"
)

// Server exposes the application http surface consumed by the front end
type Server struct {
	identity      ports.IdentityService
	resources     ports.ResourceService
	media         ports.MediaService
	pinner        ports.PinnerGateway
	certification ports.CertificationService
	health        *health.Status
}

// NewServer returns a Server wired to the given services
func NewServer(identity ports.IdentityService, resources ports.ResourceService, media ports.MediaService, pinner ports.PinnerGateway, certification ports.CertificationService, healthStatus *health.Status) *Server {
	return &Server{
		identity:      identity,
		resources:     resources,
		media:         media,
		pinner:        pinner,
		certification: certification,
		health:        healthStatus,
	}
}

// Routes mounts every handler on mux
func (s *Server) Routes(ctx context.Context, mux *chi.Mux) {
	mux.Use(middleware.RequestID)
	mux.Use(middleware.Recoverer)
	mux.Use(cors.AllowAll().Handler)
	mux.Use(LogMiddleware(ctx))
	mux.Use(log.ChiMiddleware(ctx))

	mux.Post("/did", s.CreateDID)
	mux.Route("/resource", func(r chi.Router) {
		r.Post("/", s.CreateResource)
		r.Post("/create", s.CreateResource)
		r.Get("/search/{did}", s.SearchResources)
		r.Get("/verify/{did}/{resourceId}", s.VerifyResource)
		r.Get("/{did}/{resourceId}", s.GetResource)
	})
	mux.Post("/ipfs/upload", s.UploadToIPFS)
	mux.Post("/media/analyze", s.AnalyzeMedia)
	mux.Post("/media/thumbnail", s.CreateThumbnail)
	mux.Post("/certify", s.Certify)
	mux.Get("/certificate/{id}", s.GetCertificate)
	mux.Get("/status", s.GetStatus)
}

// GetStatus reports the reachability of the external collaborators
func (s *Server) GetStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, s.health.Status(r.Context()))
}
