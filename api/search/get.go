package search

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/moviepreview/api/types"
	"github.com/killallgit/moviepreview/internal/services/itunes"
	apperrors "github.com/killallgit/moviepreview/pkg/errors"
)

// Get handles movie search requests
// @Summary      Search for movies
// @Description  Search the iTunes movie catalog by term. Upstream failures are reported as an empty result list.
// @Tags         search
// @Produce      json
// @Param        term query string true "Search term"
// @Success      200 {object} types.MovieSearchResponse "Movie search results"
// @Failure      400 {object} types.ErrorResponse "Bad request - missing or blank term"
// @Failure      503 {object} types.ErrorResponse "Search service not available"
// @Router       /api/v1/search [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		term := c.Query("term")
		if strings.TrimSpace(term) == "" {
			err := apperrors.ValidationError("term", "search term is required")
			c.JSON(err.GetHTTPCode(), types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Search term is required",
				Error:   string(err.Code),
			})
			return
		}

		if deps == nil || deps.Searcher == nil {
			c.JSON(http.StatusServiceUnavailable, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Search service not available",
			})
			return
		}

		ctx := c.Request.Context()
		results := make(chan []itunes.MovieRecord, 1)
		deps.Searcher.Search(ctx, term, func(movies []itunes.MovieRecord) {
			results <- movies
		}, itunes.WithDispatcher(itunes.Immediate))

		var records []itunes.MovieRecord
		select {
		case records = <-results:
		case <-ctx.Done():
			// Client went away; nothing left to answer
			c.Abort()
			return
		}

		movies := types.FromMovieRecordList(records)
		c.JSON(http.StatusOK, types.MovieSearchResponse{
			BaseResponse: types.BaseResponse{
				Status:  types.StatusOK,
				Message: "Search results retrieved successfully",
			},
			Movies: movies,
			Query:  term,
			Count:  len(movies),
		})
	}
}
