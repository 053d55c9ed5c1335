package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/moviepreview/internal/services/itunes"
)

func TestFromMovieRecordList(t *testing.T) {
	records := []itunes.MovieRecord{
		{Title: "Batman Begins", Director: "Christopher Nolan", ThumbnailURL: "http://img/1.jpg", PreviewURL: "http://vid/1.mp4"},
		{Title: "The Dark Knight", Director: "Christopher Nolan", ThumbnailURL: "http://img/2.jpg", PreviewURL: "http://vid/2.mp4"},
	}

	movies := FromMovieRecordList(records)

	require.Len(t, movies, 2)
	assert.Equal(t, "Batman Begins", movies[0].Title)
	assert.Equal(t, "http://vid/2.mp4", movies[1].PreviewURL)
}

func TestFromMovieRecordList_EmptyEncodesAsArray(t *testing.T) {
	data, err := json.Marshal(MovieSearchResponse{Movies: FromMovieRecordList(nil)})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"movies":[]`)
}
