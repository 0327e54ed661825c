package genres

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/podcast-catalog/api/types"
)

// Get returns the genre table with the number of podcasts tagged with each
// @Summary      List genres
// @Description  Genres in table order. The ids are the values accepted by the genre filter.
// @Tags         genres
// @Produce      json
// @Success      200 {object} types.GenresResponse
// @Router       /api/v1/genres [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		podcasts := deps.Dataset.Podcasts()

		table := deps.Genres.All()
		genres := make([]types.Genre, 0, len(table))
		for _, g := range table {
			count := 0
			for _, p := range podcasts {
				if p.HasGenre(g.ID) {
					count++
				}
			}
			genres = append(genres, types.Genre{
				ID:           g.ID,
				Title:        g.Title,
				Description:  g.Description,
				PodcastCount: count,
			})
		}

		// the genre table never changes while the process runs
		c.Header("Cache-Control", "public, max-age=3600")
		c.JSON(http.StatusOK, types.GenresResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Genres:       genres,
			Count:        len(genres),
		})
	}
}
