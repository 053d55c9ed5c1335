package itunes

import "encoding/json"

// Wire keys of the iTunes search response. They are matched exactly; a key
// spelled with different case counts as missing.
const (
	keyResultCount   = "resultCount"
	keyResults       = "results"
	keyTrackName     = "trackName"
	keyArtistName    = "artistName"
	keyArtworkURL100 = "artworkUrl100"
	keyPreviewURL    = "previewUrl"
)

// wireObject is a JSON object keyed by its exact field names. Keys the
// catalog doesn't map are ignored.
type wireObject map[string]json.RawMessage

// MovieRecord is one decoded search result.
type MovieRecord struct {
	Title        string `json:"title"`
	Director     string `json:"director"`
	ThumbnailURL string `json:"thumbnailUrl"`
	PreviewURL   string `json:"previewUrl"`
}

// SearchResponse is the decoded envelope
type SearchResponse struct {
	ResultCount int
	Results     []MovieRecord
}
