package itunes

import (
	"encoding/json"

	apperrors "github.com/killallgit/moviepreview/pkg/errors"
)

// DecodeResponse parses a search payload. Decoding is all-or-nothing: one bad
// entry fails the whole payload. Keys are matched case-sensitively.
func DecodeResponse(data []byte) (*SearchResponse, error) {
	var env wireObject
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, apperrors.DecodeError(err)
	}

	resp, err := transformToSearchResponse(env)
	if err != nil {
		return nil, apperrors.DecodeError(err)
	}

	return resp, nil
}

// DecodeMovies parses a search payload and returns its results in wire order
func DecodeMovies(data []byte) ([]MovieRecord, error) {
	resp, err := DecodeResponse(data)
	if err != nil {
		return nil, err
	}
	return resp.Results, nil
}
