package types

// Core data types used across API responses

// Movie is a search result as exposed over HTTP
type Movie struct {
	Title        string `json:"title"`
	Director     string `json:"director"`
	ThumbnailURL string `json:"thumbnailUrl"`
	PreviewURL   string `json:"previewUrl"`
}
