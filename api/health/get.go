package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/podcast-catalog/api/types"
	"github.com/killallgit/podcast-catalog/internal/services/cache"
)

// Get handles health check requests. The service is unhealthy when the
// dataset is missing or a configured database stops answering.
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := http.StatusOK
		response := types.HealthResponse{
			BaseResponse: types.BaseResponse{Status: "healthy"},
			Timestamp:    time.Now().UTC().Format(time.RFC3339),
			Dataset:      getDatasetStatus(deps),
			Database:     getDatabaseStatus(c, deps),
		}

		if response.Dataset["status"] != "loaded" || response.Database["status"] == "unhealthy" {
			status = http.StatusServiceUnavailable
			response.Status = "unhealthy"
		}

		c.JSON(status, response)
	}
}

func getDatasetStatus(deps *types.Dependencies) map[string]any {
	if deps == nil || deps.Dataset == nil {
		return map[string]any{"status": "missing"}
	}

	status := map[string]any{
		"status":   "loaded",
		"podcasts": deps.Dataset.Len(),
		"genres":   len(deps.Dataset.Genres()),
	}
	if deps.Config != nil {
		status["source"] = deps.Config.Dataset.Source
	}
	if stats, ok := deps.Cache.(cache.StatsProvider); ok {
		status["cache"] = stats.Stats()
	}
	return status
}

func getDatabaseStatus(c *gin.Context, deps *types.Dependencies) map[string]any {
	if deps == nil || deps.DB == nil || deps.DB.DB == nil {
		return map[string]any{"status": "not configured"}
	}

	if err := deps.DB.HealthCheck(c.Request.Context()); err != nil {
		return map[string]any{"status": "unhealthy", "error": err.Error()}
	}

	return map[string]any{"status": "healthy", "path": deps.DB.Path()}
}
