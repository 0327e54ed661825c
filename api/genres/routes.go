package genres

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/podcast-catalog/api/types"
)

// RegisterRoutes registers genre routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	// GET /api/v1/genres
	router.GET("", Get(deps))
}
