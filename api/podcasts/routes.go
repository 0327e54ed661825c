package podcasts

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/podcast-catalog/api/types"
)

// RegisterRoutes registers podcast routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	// GET /api/v1/podcasts?genre=&sort=
	router.GET("", ListPodcasts(deps))

	// GET /api/v1/podcasts/:id
	router.GET("/:id", GetPodcast(deps))
}
