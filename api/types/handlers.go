package types

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/podcast-catalog/internal/catalog"
	apperrors "github.com/killallgit/podcast-catalog/pkg/errors"
)

// RequestIDKey is the gin context key holding the request id
const RequestIDKey = "request_id"

// SendError aborts the request with an ErrorResponse built from err
func SendError(c *gin.Context, err error) {
	resp := ErrorResponse{
		Status:    StatusError,
		Message:   "internal server error",
		Error:     string(apperrors.ErrCodeInternal),
		RequestID: c.GetString(RequestIDKey),
	}
	if appErr, ok := apperrors.As(err); ok {
		resp.Message = appErr.Message
		resp.Error = string(appErr.Code)
		resp.Details = appErr.Details
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(apperrors.GetHTTPCode(err), resp)
}

// ParseCatalogQuery binds and validates the catalog controls. An unknown
// sort key falls back to the default order; a malformed genre is rejected.
func ParseCatalogQuery(c *gin.Context) (CatalogQuery, catalog.GenreFilter, catalog.SortKey, error) {
	var q CatalogQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return q, catalog.GenreFilter{}, "", apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "invalid query")
	}

	filter, err := catalog.ParseGenreFilter(q.Genre)
	if err != nil {
		return q, catalog.GenreFilter{}, "", apperrors.InvalidInput("genre", q.Genre, err)
	}

	return q, filter, catalog.ParseSortKey(q.Sort), nil
}
