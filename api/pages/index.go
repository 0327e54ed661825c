package pages

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/podcast-catalog/api/types"
	"github.com/killallgit/podcast-catalog/internal/views"
)

const htmlContentType = "text/html; charset=utf-8"

// Index renders the catalog page. The genre and sort query parameters set
// the controls; open shows the detail modal for that podcast. An unknown
// open id leaves the modal hidden.
func Index(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		q, filter, key, err := types.ParseCatalogQuery(c)
		if err != nil {
			types.SendError(c, err)
			return
		}

		session := deps.NewSession()
		session.Apply(filter, key)
		if q.Open != "" {
			_ = session.Select(q.Open)
		}

		render(c, deps, session, http.StatusOK)
	}
}

func render(c *gin.Context, deps *types.Dependencies, session *views.Session, status int) {
	var buf bytes.Buffer
	if err := session.RenderPage(&buf, deps.PageTitle()); err != nil {
		types.SendError(c, err)
		return
	}
	c.Data(status, htmlContentType, buf.Bytes())
}
