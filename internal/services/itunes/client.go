package itunes

import (
	"compress/gzip"
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	apperrors "github.com/killallgit/moviepreview/pkg/errors"
)

const defaultUserAgent = "MoviePreview/1.0 (+https://github.com/killallgit/moviepreview)"

// Searcher finds movies for a term and reports them through onComplete.
// Implementations call onComplete exactly once and never block the caller.
type Searcher interface {
	Search(ctx context.Context, term string, onComplete func([]MovieRecord), opts ...SearchOption)
}

// Config holds configuration for the iTunes client
type Config struct {
	// Base URL (for testing)
	BaseURL string // Default: https://itunes.apple.com

	// HTTP configuration
	Timeout    time.Duration // Default: 0, the transport decides
	UserAgent  string
	Country    string       // optional storefront, e.g. "US"
	HTTPClient *http.Client // overrides Timeout when set

	// Dispatcher is where completions run unless a search overrides it.
	// Default: Immediate
	Dispatcher Dispatcher

	Logger *slog.Logger
}

// Client handles communication with the iTunes search endpoint
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	country    string
	dispatcher Dispatcher
	logger     *slog.Logger

	metrics *clientMetrics
}

var _ Searcher = (*Client)(nil)

// clientMetrics tracks search outcomes
type clientMetrics struct {
	requests        atomic.Int64
	successes       atomic.Int64
	transportErrors atomic.Int64
	statusErrors    atomic.Int64
	decodeErrors    atomic.Int64
}

// NewClient creates a new iTunes search client
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Dispatcher == nil {
		cfg.Dispatcher = Immediate
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    cfg.BaseURL,
		userAgent:  cfg.UserAgent,
		country:    cfg.Country,
		dispatcher: cfg.Dispatcher,
		logger:     cfg.Logger.With("component", "itunes"),
		metrics:    &clientMetrics{},
	}
}

// SearchOption customizes a single search call
type SearchOption func(*searchOptions)

type searchOptions struct {
	dispatcher Dispatcher
}

// WithDispatcher delivers the completion of one search through d
func WithDispatcher(d Dispatcher) SearchOption {
	return func(o *searchOptions) {
		if d != nil {
			o.dispatcher = d
		}
	}
}

// Search looks up movies matching term. It returns immediately; onComplete
// receives the results exactly once through the configured dispatcher. Any
// failure is reported as an empty list.
func (c *Client) Search(ctx context.Context, term string, onComplete func([]MovieRecord), opts ...SearchOption) {
	o := searchOptions{dispatcher: c.dispatcher}
	for _, opt := range opts {
		opt(&o)
	}

	go func() {
		movies := c.fetchMovies(ctx, term)
		if onComplete == nil {
			return
		}
		o.dispatcher.Dispatch(func() {
			onComplete(movies)
		})
	}()
}

// SearchAsync is Search with a channel instead of a callback. The channel
// yields exactly one list and is then closed.
func (c *Client) SearchAsync(ctx context.Context, term string) <-chan []MovieRecord {
	ch := make(chan []MovieRecord, 1)
	c.Search(ctx, term, func(movies []MovieRecord) {
		ch <- movies
		close(ch)
	}, WithDispatcher(Immediate))
	return ch
}

// SearchSync blocks until the search completes
func (c *Client) SearchSync(ctx context.Context, term string) []MovieRecord {
	return <-c.SearchAsync(ctx, term)
}

// fetchMovies runs the request/decode pipeline and collapses every failure
// into an empty, non-nil list.
func (c *Client) fetchMovies(ctx context.Context, term string) []MovieRecord {
	if strings.TrimSpace(term) == "" {
		c.logger.Debug("skipping blank search term")
		return []MovieRecord{}
	}

	movies, err := c.doRequest(ctx, term)
	if err != nil {
		c.recordFailure(term, err)
		return []MovieRecord{}
	}

	c.metrics.successes.Add(1)
	c.logger.Debug("search completed", "term", term, "results", len(movies))
	return movies
}

// doRequest performs a single HTTP request and decodes the body
func (c *Client) doRequest(ctx context.Context, term string) ([]MovieRecord, error) {
	searchReq := NewSearchRequest(term)
	searchReq.Country = c.country
	searchURL := searchReq.URL(c.baseURL)

	c.metrics.requests.Add(1)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, apperrors.TransportError(err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.TransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.HTTPStatusError(resp.StatusCode)
	}

	var reader io.Reader = resp.Body
	if strings.Contains(resp.Header.Get("Content-Encoding"), "gzip") {
		gzReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, apperrors.DecodeError(err)
		}
		defer gzReader.Close()
		reader = gzReader
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, apperrors.TransportError(err)
	}

	return DecodeMovies(body)
}

// recordFailure is the diagnostic side channel for failures the caller never sees
func (c *Client) recordFailure(term string, err error) {
	kind := "unknown"
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeTransport:
		c.metrics.transportErrors.Add(1)
		kind = "transport"
	case apperrors.ErrCodeHTTPStatus:
		c.metrics.statusErrors.Add(1)
		kind = "http_status"
	case apperrors.ErrCodeDecode:
		c.metrics.decodeErrors.Add(1)
		kind = "decode"
	}

	c.logger.Warn("search failed, returning no results", "term", term, "kind", kind, "error", err)
}

// GetMetrics returns current client metrics
func (c *Client) GetMetrics() map[string]int64 {
	return map[string]int64{
		"requests":         c.metrics.requests.Load(),
		"successes":        c.metrics.successes.Load(),
		"transport_errors": c.metrics.transportErrors.Load(),
		"status_errors":    c.metrics.statusErrors.Load(),
		"decode_errors":    c.metrics.decodeErrors.Load(),
	}
}
