package podcasts

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/podcast-catalog/api/types"
	apperrors "github.com/killallgit/podcast-catalog/pkg/errors"
)

// GetPodcast returns the detail view of one podcast
// @Summary      Get podcast details
// @Description  Everything the detail modal shows, including the season list.
// @Tags         podcasts
// @Produce      json
// @Param        id path string true "Podcast id"
// @Success      200 {object} types.PodcastResponse
// @Failure      404 {object} types.ErrorResponse "Podcast not found"
// @Router       /api/v1/podcasts/{id} [get]
func GetPodcast(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		session := deps.NewSession()
		if err := session.Select(id); err != nil {
			types.SendError(c, apperrors.NotFound("podcast", id).WithCause(err))
			return
		}

		view, _ := session.Modal.View()
		c.JSON(http.StatusOK, types.PodcastResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Podcast:      view,
		})
	}
}
