package version

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/podcast-catalog/api/types"
)

// Get handles version requests
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, types.VersionResponse{
			BaseResponse: types.BaseResponse{Status: "running"},
			BuildInfo:    deps.Build,
		})
	}
}
