package types

import (
	"log/slog"

	"github.com/killallgit/moviepreview/internal/services/itunes"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	Searcher  itunes.Searcher
	Logger    *slog.Logger
	Version   string
	GitCommit string
	BuildTime string
}
