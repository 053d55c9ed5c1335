package types

import "github.com/killallgit/moviepreview/internal/services/itunes"

// FromMovieRecord converts a search record to its API form
func FromMovieRecord(r itunes.MovieRecord) Movie {
	return Movie{
		Title:        r.Title,
		Director:     r.Director,
		ThumbnailURL: r.ThumbnailURL,
		PreviewURL:   r.PreviewURL,
	}
}

// FromMovieRecordList converts search records, keeping their order. The
// result is never nil so it encodes as [].
func FromMovieRecordList(records []itunes.MovieRecord) []Movie {
	movies := make([]Movie, 0, len(records))
	for _, r := range records {
		movies = append(movies, FromMovieRecord(r))
	}
	return movies
}
