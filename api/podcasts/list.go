package podcasts

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/podcast-catalog/api/types"
)

// ListPodcasts returns the catalog filtered by genre and sorted
// @Summary      List podcasts
// @Description  Card views of every podcast matching the genre filter, in the requested order.
// @Tags         podcasts
// @Produce      json
// @Param        genre query string false "Genre id or \"all\"" default(all)
// @Param        sort  query string false "updated, newest or popular" default(updated)
// @Success      200 {object} types.PodcastsResponse
// @Failure      400 {object} types.ErrorResponse "Malformed genre"
// @Router       /api/v1/podcasts [get]
func ListPodcasts(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, filter, key, err := types.ParseCatalogQuery(c)
		if err != nil {
			types.SendError(c, err)
			return
		}

		session := deps.NewSession()
		session.Apply(filter, key)
		cards := session.Grid.Views()

		c.JSON(http.StatusOK, types.PodcastsResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Podcasts:     cards,
			Genre:        filter.String(),
			Sort:         string(key),
			Count:        len(cards),
		})
	}
}
