package version

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/moviepreview/api/types"
)

// Name is reported by the version endpoint
const Name = "moviepreview"

// Get handles version requests
// @Summary      Build information
// @Tags         system
// @Produce      json
// @Success      200 {object} types.VersionResponse
// @Router       /version [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		response := types.VersionResponse{
			Name:      Name,
			Version:   "dev",
			GitCommit: "unknown",
			BuildTime: "unknown",
		}
		if deps != nil {
			if deps.Version != "" {
				response.Version = deps.Version
			}
			if deps.GitCommit != "" {
				response.GitCommit = deps.GitCommit
			}
			if deps.BuildTime != "" {
				response.BuildTime = deps.BuildTime
			}
		}

		c.JSON(http.StatusOK, response)
	}
}
