package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/verimedia/media-platform/internal/api"
	"github.com/verimedia/media-platform/internal/buildinfo"
	"github.com/verimedia/media-platform/internal/config"
	"github.com/verimedia/media-platform/internal/core/ports"
	"github.com/verimedia/media-platform/internal/core/services"
	"github.com/verimedia/media-platform/internal/gateways"
	"github.com/verimedia/media-platform/internal/health"
	"github.com/verimedia/media-platform/internal/log"
	"github.com/verimedia/media-platform/pkg/cache"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Error(context.Background(), "cannot load config", err)
		return
	}

	// Context with log
	ctx := log.NewContext(context.Background(), cfg.Log.Level, cfg.Log.Mode, os.Stdout)

	if err := cfg.Sanitize(); err != nil {
		log.Error(ctx, "invalid configuration", err)
		return
	}

	store, err := cache.NewCacheClient(ctx, *cfg)
	if err != nil {
		log.Error(ctx, "cannot create cache client", err)
		return
	}

	registry := gateways.NewRegistryService(gateways.RegistryConfig{
		RegistryURL: cfg.Ledger.RegistryUrl,
		TemplateURL: cfg.Ledger.TemplateUrl,
		APIKey:      cfg.Ledger.APIKey,
		Network:     cfg.Ledger.Network,
		Timeout:     cfg.Ledger.Timeout,
	})
	resolver := gateways.NewResolverService(gateways.ResolverConfig{
		ResolverURL: cfg.Ledger.ResolverUrl,
		Timeout:     cfg.Ledger.Timeout,
	})
	analyzer := gateways.NewAnalyzerService(gateways.AnalyzerConfig{
		URL:     cfg.MediaAnalyzer.Url,
		Timeout: cfg.MediaAnalyzer.Timeout,
	})
	thumbnailer := gateways.NewFFmpegThumbnailer(gateways.ThumbnailerConfig{
		FFmpegPath: cfg.Thumbnailer.FFmpegPath,
		Offset:     cfg.Thumbnailer.Offset,
		Size:       cfg.Thumbnailer.Size,
	})
	pinner := newPinner(cfg)

	identityService := services.NewIdentity(registry, cfg.Ledger.Network, cfg.Ledger.TemplateUrl != "")
	resourceService := services.NewResource(registry, resolver)
	mediaService := services.NewMedia(analyzer, thumbnailer)
	certificationService := services.NewCertification(mediaService, identityService, resourceService, pinner, store, cfg.ServerUrl, cfg.Cache.CertificateTTL)

	healthStatus := health.New(map[string]health.Ping{
		"registry": health.PingFunc(registry.Ping),
		"cache": health.PingFunc(func(ctx context.Context) error {
			return store.Set(ctx, "health-probe", true, time.Minute)
		}),
	})

	mux := chi.NewRouter()
	api.NewServer(identityService, resourceService, mediaService, pinner, certificationService, healthStatus).Routes(ctx, mux)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info(ctx, fmt.Sprintf("server started on port:%d", cfg.ServerPort), "revision", buildinfo.Revision())
		if err := server.ListenAndServe(); err != nil {
			log.Error(ctx, "starting http server", err)
		}
	}()

	<-quit
	log.Info(ctx, "Shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "shutting down http server", err)
	}
}

// newPinner selects the pinning backend from the configuration
func newPinner(cfg *config.Configuration) ports.PinnerGateway {
	if cfg.Pinning.Provider == config.PinningProviderNode {
		return gateways.NewIPFSNodeService(cfg.Pinning.NodeAddr, cfg.Pinning.GatewayUrl)
	}
	return gateways.NewPinataService(gateways.PinataConfig{
		PinURL:     cfg.Pinning.PinataUrl,
		APIKey:     cfg.Pinning.PinataApiKey,
		Secret:     cfg.Pinning.PinataSecret,
		GatewayURL: cfg.Pinning.GatewayUrl,
		Timeout:    cfg.Ledger.Timeout,
	})
}
