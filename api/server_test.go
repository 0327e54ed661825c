package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/podcast-catalog/api/types"
	"github.com/killallgit/podcast-catalog/internal/dataset"
	"github.com/killallgit/podcast-catalog/pkg/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Server:      config.ServerConfig{Host: "127.0.0.1", Port: 8080, Title: "Test Catalog"},
		Dataset:     config.DatasetConfig{Source: config.SourceEmbedded},
		Cache:       config.CacheConfig{Enabled: true, TTL: time.Minute, CleanupInterval: time.Minute, MaxSizeMB: 1},
		RateLimiting: config.RateLimitConfig{
			Enabled: true,
			RPS:     1,
			Burst:   5,
		},
		Security: config.SecurityConfig{CORSOrigins: []string{"*"}},
	}
}

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ds, err := dataset.LoadEmbedded()
	require.NoError(t, err)

	server := NewServer(cfg, types.NewDependencies(ds, zerolog.Nop()))
	require.NoError(t, server.Initialize())
	return server
}

func serve(s *Server, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.RemoteAddr = "10.0.0.1:4000"
	s.Engine().ServeHTTP(w, req)
	return w
}

func TestServer_Routes(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	cfg := testConfig()
	cfg.RateLimiting.Enabled = false
	server := newTestServer(t, cfg)
	assert.Equal(t, "127.0.0.1:8080", server.Addr())

	tests := []struct {
		name           string
		target         string
		expectedStatus int
		contentType    string
	}{
		{name: "health", target: "/health", expectedStatus: http.StatusOK, contentType: "application/json"},
		{name: "version", target: "/version", expectedStatus: http.StatusOK, contentType: "application/json"},
		{name: "catalog page", target: "/", expectedStatus: http.StatusOK, contentType: "text/html"},
		{name: "detail page", target: "/podcasts/9962", expectedStatus: http.StatusOK, contentType: "text/html"},
		{name: "podcast list", target: "/api/v1/podcasts?genre=4", expectedStatus: http.StatusOK, contentType: "application/json"},
		{name: "podcast detail", target: "/api/v1/podcasts/9962", expectedStatus: http.StatusOK, contentType: "application/json"},
		{name: "unknown podcast", target: "/api/v1/podcasts/0", expectedStatus: http.StatusNotFound, contentType: "application/json"},
		{name: "genres", target: "/api/v1/genres", expectedStatus: http.StatusOK, contentType: "application/json"},
		{name: "unknown route", target: "/api/v2/anything", expectedStatus: http.StatusNotFound, contentType: "application/json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(server, tt.target)
			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), tt.contentType)
			assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
		})
	}

	require.NoError(t, server.Shutdown(context.Background()))
	// a second shutdown must not panic on the closed channels
	require.NoError(t, server.Shutdown(context.Background()))
}

func TestServer_CachesAPIResponses(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	server := newTestServer(t, testConfig())
	defer server.Shutdown(context.Background())

	first := serve(server, "/api/v1/podcasts?sort=newest")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))

	second := serve(server, "/api/v1/podcasts?sort=newest")
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())

	// pages are rendered per request
	page := serve(server, "/")
	assert.Empty(t, page.Header().Get("X-Cache"))
}

func TestServer_RateLimitsClients(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	server := newTestServer(t, testConfig())
	defer server.Shutdown(context.Background())

	codes := map[int]int{}
	for i := 0; i < 8; i++ {
		codes[serve(server, "/api/v1/genres").Code]++
	}
	assert.Equal(t, 5, codes[http.StatusOK])
	assert.Equal(t, 3, codes[http.StatusTooManyRequests])

	// health checks are never limited
	assert.Equal(t, http.StatusOK, serve(server, "/health").Code)
}

func TestServer_HealthReportsCache(t *testing.T) {
	server := newTestServer(t, testConfig())
	defer server.Shutdown(context.Background())

	w := serve(server, "/health")
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "embedded", resp.Dataset["source"])
	assert.NotNil(t, resp.Dataset["cache"])
}

func TestServer_InitializeRequiresDataset(t *testing.T) {
	server := NewServer(testConfig(), &types.Dependencies{})
	assert.Error(t, server.Initialize())
	require.NoError(t, server.Shutdown(context.Background()))
}
