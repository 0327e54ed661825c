package api

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/podcast-catalog/api/genres"
	"github.com/killallgit/podcast-catalog/api/health"
	"github.com/killallgit/podcast-catalog/api/middleware"
	"github.com/killallgit/podcast-catalog/api/pages"
	"github.com/killallgit/podcast-catalog/api/podcasts"
	"github.com/killallgit/podcast-catalog/api/types"
	"github.com/killallgit/podcast-catalog/api/version"
	"github.com/killallgit/podcast-catalog/pkg/config"
)

// RegisterRoutes registers the pages and the JSON API. limit is applied to
// both when not nil.
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, cfg *config.Config, limit gin.HandlerFunc) error {
	if deps == nil {
		return errors.New("dependencies are required")
	}
	if cfg == nil {
		return errors.New("config is required")
	}

	// Public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	engine.NoRoute(NotFoundHandler())

	site := engine.Group("")
	v1 := engine.Group("/api/v1")
	if limit != nil {
		site.Use(limit)
		v1.Use(limit)
	}

	v1.Use(middleware.CacheMiddleware(middleware.CacheConfig{
		Cache:      deps.Cache,
		DefaultTTL: cfg.Cache.TTL,
		Enabled:    cfg.Cache.Enabled,
	}))

	pages.RegisterRoutes(site, deps)
	podcasts.RegisterRoutes(v1.Group("/podcasts"), deps)
	genres.RegisterRoutes(v1.Group("/genres"), deps)

	return nil
}
