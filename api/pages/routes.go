package pages

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/podcast-catalog/api/types"
)

// RegisterRoutes registers the HTML pages
func RegisterRoutes(router gin.IRoutes, deps *types.Dependencies) {
	router.GET("/", Index(deps))
	router.GET("/podcasts/:id", Show(deps))
}
