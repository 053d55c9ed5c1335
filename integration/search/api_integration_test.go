package search_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/moviepreview/api"
	"github.com/killallgit/moviepreview/api/types"
	"github.com/killallgit/moviepreview/internal/services/itunes"
	"github.com/killallgit/moviepreview/pkg/logging"
)

type IntegrationTestSuite struct {
	t        *testing.T
	upstream *httptest.Server
	client   *itunes.Client
	router   *gin.Engine

	// requests seen by the fake iTunes endpoint
	mu       sync.Mutex
	queries  []url.Values
	status   int
	body     string
	requests atomic.Int64
}

func setupIntegrationTestSuite(t *testing.T) *IntegrationTestSuite {
	// Set Gin to test mode
	gin.SetMode(gin.TestMode)

	suite := &IntegrationTestSuite{
		t:      t,
		status: http.StatusOK,
		body:   `{"resultCount":0,"results":[]}`,
	}

	suite.upstream = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		suite.requests.Add(1)
		suite.mu.Lock()
		suite.queries = append(suite.queries, r.URL.Query())
		status, body := suite.status, suite.body
		suite.mu.Unlock()

		w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(suite.upstream.Close)

	suite.client = itunes.NewClient(itunes.Config{
		BaseURL: suite.upstream.URL,
		Logger:  logging.Discard(),
	})

	// Setup router with all routes like the real application
	server := api.NewServer(api.ServerConfig{}, &types.Dependencies{
		Searcher: suite.client,
		Logger:   logging.Discard(),
	})
	server.Initialize()
	suite.router = server.Engine()

	return suite
}

func (suite *IntegrationTestSuite) respondWith(status int, body string) {
	suite.mu.Lock()
	defer suite.mu.Unlock()
	suite.status = status
	suite.body = body
}

func (suite *IntegrationTestSuite) search(term string) (*httptest.ResponseRecorder, types.MovieSearchResponse) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?term="+url.QueryEscape(term), nil)
	suite.router.ServeHTTP(w, req)

	var resp types.MovieSearchResponse
	if w.Code == http.StatusOK {
		require.NoError(suite.t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func TestSearchIntegration(t *testing.T) {
	suite := setupIntegrationTestSuite(t)

	t.Run("full pipeline maps records", func(t *testing.T) {
		suite.respondWith(http.StatusOK, `{"resultCount":2,"results":[
			{"wrapperType":"track","kind":"feature-movie","trackName":"Batman Begins","artistName":"Christopher Nolan","artworkUrl100":"https://is1.mzstatic.com/1/100x100bb.jpg","previewUrl":"https://video.itunes.apple.com/1.m4v","trackPrice":9.99},
			{"wrapperType":"track","kind":"feature-movie","trackName":"Batman","artistName":"Tim Burton","artworkUrl100":"https://is1.mzstatic.com/2/100x100bb.jpg","previewUrl":"https://video.itunes.apple.com/2.m4v"}
		]}`)

		w, resp := suite.search("batman")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 2, resp.Count)
		assert.Equal(t, []types.Movie{
			{Title: "Batman Begins", Director: "Christopher Nolan", ThumbnailURL: "https://is1.mzstatic.com/1/100x100bb.jpg", PreviewURL: "https://video.itunes.apple.com/1.m4v"},
			{Title: "Batman", Director: "Tim Burton", ThumbnailURL: "https://is1.mzstatic.com/2/100x100bb.jpg", PreviewURL: "https://video.itunes.apple.com/2.m4v"},
		}, resp.Movies)
	})

	t.Run("query parameters reach upstream", func(t *testing.T) {
		suite.respondWith(http.StatusOK, `{"resultCount":0,"results":[]}`)

		w, _ := suite.search("the dark knight")
		require.Equal(t, http.StatusOK, w.Code)

		suite.mu.Lock()
		last := suite.queries[len(suite.queries)-1]
		suite.mu.Unlock()

		assert.Equal(t, "movie", last.Get("media"))
		assert.Equal(t, "movie", last.Get("entity"))
		assert.Equal(t, "the dark knight", last.Get("term"))
	})

	t.Run("record missing a field fails the whole batch", func(t *testing.T) {
		suite.respondWith(http.StatusOK, `{"resultCount":2,"results":[
			{"trackName":"Batman Begins","artistName":"Christopher Nolan","artworkUrl100":"http://img/1.jpg","previewUrl":"http://vid/1.mp4"},
			{"trackName":"Batman","artistName":"Tim Burton","artworkUrl100":"http://img/2.jpg"}
		]}`)

		w, resp := suite.search("batman")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 0, resp.Count)
		assert.Empty(t, resp.Movies)
	})

	t.Run("upstream error status is an empty result", func(t *testing.T) {
		suite.respondWith(http.StatusServiceUnavailable, "")

		w, resp := suite.search("batman")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 0, resp.Count)
	})

	t.Run("blank term never reaches upstream", func(t *testing.T) {
		before := suite.requests.Load()

		w, _ := suite.search("  ")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, before, suite.requests.Load())
	})

	t.Run("client metrics surface on health", func(t *testing.T) {
		w := httptest.NewRecorder()
		suite.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var health types.HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
		assert.Equal(t, suite.requests.Load(), health.Search["requests"])
		assert.Equal(t, int64(1), health.Search["status_errors"])
		assert.Equal(t, int64(1), health.Search["decode_errors"])
	})
}

func TestSearchIntegration_ConcurrentRequests(t *testing.T) {
	suite := setupIntegrationTestSuite(t)
	suite.respondWith(http.StatusOK, `{"resultCount":1,"results":[{"trackName":"Heat","artistName":"Michael Mann","artworkUrl100":"http://img/h.jpg","previewUrl":"http://vid/h.mp4"}]}`)

	const n = 10
	var wg sync.WaitGroup
	codes := make([]int, n)
	counts := make([]int, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w := httptest.NewRecorder()
			suite.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/search?term=heat", nil))
			codes[i] = w.Code

			var resp types.MovieSearchResponse
			if json.Unmarshal(w.Body.Bytes(), &resp) == nil {
				counts[i] = resp.Count
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		assert.Equal(t, http.StatusOK, codes[i])
		assert.Equal(t, 1, counts[i])
	}
	// Every search is its own request
	assert.Equal(t, int64(n), suite.requests.Load())
}
