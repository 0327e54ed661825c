package pages

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/podcast-catalog/api/types"
)

// Show renders the catalog page with the modal open for the podcast in the
// path. An unknown id renders the page with the modal hidden and a 404
// status.
func Show(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, filter, key, err := types.ParseCatalogQuery(c)
		if err != nil {
			types.SendError(c, err)
			return
		}

		session := deps.NewSession()
		session.Apply(filter, key)

		status := http.StatusOK
		if err := session.Select(c.Param("id")); err != nil {
			_ = c.Error(err)
			status = http.StatusNotFound
		}

		render(c, deps, session, status)
	}
}
