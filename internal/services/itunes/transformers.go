package itunes

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// field decodes the value under key into v. The key must be present with
// exactly that spelling and must not be null.
func (o wireObject) field(key string, v any) error {
	raw, ok := o[key]
	if !ok {
		return fmt.Errorf("missing required field %q", key)
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return fmt.Errorf("field %q is null", key)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("field %q: %w", key, err)
	}
	return nil
}

// transformToMovieRecord converts a wire result into a MovieRecord. Every
// mapped key must be present.
func transformToMovieRecord(result wireObject) (MovieRecord, error) {
	var record MovieRecord
	fields := []struct {
		key string
		dst *string
	}{
		{keyTrackName, &record.Title},
		{keyArtistName, &record.Director},
		{keyArtworkURL100, &record.ThumbnailURL},
		{keyPreviewURL, &record.PreviewURL},
	}

	for _, f := range fields {
		if err := result.field(f.key, f.dst); err != nil {
			return MovieRecord{}, err
		}
	}
	return record, nil
}

// transformToSearchResponse converts the wire envelope, preserving result order
func transformToSearchResponse(env wireObject) (*SearchResponse, error) {
	var count int
	if err := env.field(keyResultCount, &count); err != nil {
		return nil, err
	}

	var results []wireObject
	if err := env.field(keyResults, &results); err != nil {
		return nil, err
	}

	resp := &SearchResponse{
		ResultCount: count,
		Results:     make([]MovieRecord, 0, len(results)),
	}

	for i, result := range results {
		// A null entry decodes to a nil map and fails on its first key
		record, err := transformToMovieRecord(result)
		if err != nil {
			return nil, fmt.Errorf("results[%d]: %w", i, err)
		}
		resp.Results = append(resp.Results, record)
	}

	return resp, nil
}
