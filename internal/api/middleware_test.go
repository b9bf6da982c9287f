package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verimedia/media-platform/internal/log"
)

func TestLogMiddlewareInjectsConfiguredLogger(t *testing.T) {
	var buf bytes.Buffer
	ctx := log.NewContext(context.Background(), log.LevelDebug, log.OutputJSON, &buf)

	mux := chi.NewRouter()
	mux.Use(middleware.RequestID)
	mux.Use(LogMiddleware(ctx))
	mux.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		log.Info(r.Context(), "handling ping")
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	// handler logs flow through the configured sink, tagged with the request id
	out := buf.String()
	assert.Contains(t, out, `"msg":"handling ping"`)
	assert.Contains(t, out, `"req-id"`)
}

func TestLogMiddlewareRespectsConfiguredLevel(t *testing.T) {
	var buf bytes.Buffer
	ctx := log.NewContext(context.Background(), log.LevelInfo, log.OutputJSON, &buf)

	mux := chi.NewRouter()
	mux.Use(middleware.RequestID)
	mux.Use(LogMiddleware(ctx))
	mux.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		log.Debug(r.Context(), "too verbose for this configuration")
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, buf.String(), "too verbose")
}
