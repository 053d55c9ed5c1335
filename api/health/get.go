package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/moviepreview/api/types"
)

// metricsReporter is implemented by searchers that keep counters
type metricsReporter interface {
	GetMetrics() map[string]int64
}

// Get handles health check requests
// @Summary      Health check
// @Description  Reports service liveness and search client counters
// @Tags         system
// @Produce      json
// @Success      200 {object} types.HealthResponse
// @Router       /health [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		response := types.HealthResponse{
			Status:    types.StatusOK,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}

		if deps != nil && deps.Searcher != nil {
			if r, ok := deps.Searcher.(metricsReporter); ok {
				response.Search = r.GetMetrics()
			}
		}

		c.JSON(http.StatusOK, response)
	}
}
