package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/podcast-catalog/api/types"
	"github.com/killallgit/podcast-catalog/internal/services/cache"
	"github.com/killallgit/podcast-catalog/pkg/config"
)

// Server represents the HTTP server
type Server struct {
	engine             *gin.Engine
	httpServer         *http.Server
	config             *config.Config
	responseCache      *cache.MemoryCache
	rateLimiters       *sync.Map
	cleanupInitialized sync.Once
	cleanupStop        chan struct{}
	stopOnce           sync.Once

	// Dependencies for handlers
	dependencies *types.Dependencies
}

// NewServer creates a new HTTP server for cfg. Initialize must be called
// before Start.
func NewServer(cfg *config.Config, deps *types.Dependencies) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if deps != nil {
		deps.Config = cfg
	}

	return &Server{
		engine:       engine,
		config:       cfg,
		rateLimiters: &sync.Map{},
		cleanupStop:  make(chan struct{}),
		dependencies: deps,
		httpServer: &http.Server{
			Addr:           fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler:        engine,
			ReadTimeout:    cfg.Server.ReadTimeout,
			WriteTimeout:   cfg.Server.WriteTimeout,
			IdleTimeout:    cfg.Server.ReadTimeout,
			MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		},
	}
}

// Engine returns the Gin engine for testing
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Addr is the address the server listens on
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Initialize sets up middleware and routes
func (s *Server) Initialize() error {
	if s.dependencies == nil || s.dependencies.Dataset == nil {
		return errors.New("server requires a dataset")
	}

	if s.config.Cache.Enabled && s.dependencies.Cache == nil {
		s.responseCache = cache.NewMemoryCache(int64(s.config.Cache.MaxSizeMB), s.config.Cache.CleanupInterval)
		s.dependencies.Cache = s.responseCache
	}

	s.setupMiddleware()
	return s.setupRoutes()
}

// setupMiddleware configures global middleware
func (s *Server) setupMiddleware() {
	logger := s.dependencies.Logger

	s.engine.Use(RequestLogger(logger))
	s.engine.Use(Recovery(logger))
	s.engine.Use(CORS(s.config.Security.CORSOrigins))
	s.engine.Use(Compression())
}

// setupRoutes delegates to the main route registration
func (s *Server) setupRoutes() error {
	var limit gin.HandlerFunc
	if s.config.RateLimiting.Enabled {
		limit = PerClientRateLimit(s.rateLimiters, s.cleanupStop, &s.cleanupInitialized,
			s.config.RateLimiting.RPS, s.config.RateLimiting.Burst)
	}
	return RegisterRoutes(s.engine, s.dependencies, s.config, limit)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server and stops background work
func (s *Server) Shutdown(ctx context.Context) error {
	s.stop()
	return s.httpServer.Shutdown(ctx)
}

// stop ends the cache sweeper and the rate limiter cleanup goroutine
func (s *Server) stop() {
	s.stopOnce.Do(func() {
		if s.responseCache != nil {
			s.responseCache.Stop()
		}
		close(s.cleanupStop)
	})
}
