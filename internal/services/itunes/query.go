package itunes

import (
	"net/url"
	"strings"
)

const (
	// DefaultBaseURL is the public iTunes endpoint root
	DefaultBaseURL = "https://itunes.apple.com"

	mediaMovie  = "movie"
	entityMovie = "movie"
)

// SearchRequest describes a single movie search. Media and Entity are fixed.
type SearchRequest struct {
	Term    string
	Media   string
	Entity  string
	Country string // optional storefront, omitted when empty
}

// NewSearchRequest builds a movie search request for term
func NewSearchRequest(term string) SearchRequest {
	return SearchRequest{
		Term:   term,
		Media:  mediaMovie,
		Entity: entityMovie,
	}
}

// URL renders the request against baseURL. Parameters are written in a fixed
// order (media, entity, term) so the result is stable across calls.
func (r SearchRequest) URL(baseURL string) string {
	var b strings.Builder
	b.WriteString(strings.TrimSuffix(baseURL, "/"))
	b.WriteString("/search?media=")
	b.WriteString(escapeQuery(r.Media))
	b.WriteString("&entity=")
	b.WriteString(escapeQuery(r.Entity))
	b.WriteString("&term=")
	b.WriteString(escapeQuery(r.Term))
	if r.Country != "" {
		b.WriteString("&country=")
		b.WriteString(escapeQuery(r.Country))
	}
	return b.String()
}

// escapeQuery percent-encodes a query value. Spaces become %20 rather than '+';
// a literal '+' is already escaped to %2B by QueryEscape.
func escapeQuery(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
