package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/newsscreen/internal/config"
)

func testConfig() config.NewsAPIConfig {
	return config.NewsAPIConfig{APIKey: "test-key", Country: "us"}
}

func writeArticles(t *testing.T, w http.ResponseWriter, articles []map[string]any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
		"status":       "ok",
		"totalResults": len(articles),
		"articles":     articles,
	}))
}

func TestTopHeadlines(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/v2/top-headlines", r.URL.Path)
		require.Equal(t, "us", r.URL.Query().Get("country"))
		require.Equal(t, "test-key", r.URL.Query().Get("apiKey"))
		require.Empty(t, r.URL.Query().Get("q"))
		writeArticles(t, w, []map[string]any{
			{
				"url":         "https://example.com/a",
				"title":       "Markets rally",
				"description": "Stocks closed higher.",
				"urlToImage":  "https://example.com/a.jpg",
				"author":      "ignored",
			},
			{
				"url":         "https://example.com/b",
				"title":       "Storm warning",
				"description": nil,
				"urlToImage":  nil,
			},
		})
	}))
	defer srv.Close()

	c := New(testConfig(), WithBaseURL(srv.URL))
	articles, err := c.TopHeadlines(context.Background())
	require.NoError(t, err)
	require.Len(t, articles, 2)

	require.Equal(t, Article{
		URL:         "https://example.com/a",
		Title:       "Markets rally",
		Description: "Stocks closed higher.",
		URLToImage:  "https://example.com/a.jpg",
	}, articles[0])
	require.True(t, articles[0].HasImage())

	require.Equal(t, "Storm warning", articles[1].Title)
	require.Empty(t, articles[1].Description)
	require.False(t, articles[1].HasImage())
}

func TestEverythingEncodesQuery(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/everything", r.URL.Path)
		require.Equal(t, "bitcoin & ether", r.URL.Query().Get("q"))
		require.Empty(t, r.URL.Query().Get("country"))
		writeArticles(t, w, nil)
	}))
	defer srv.Close()

	c := New(testConfig(), WithBaseURL(srv.URL+"/"))
	articles, err := c.Everything(context.Background(), "bitcoin & ether")
	require.NoError(t, err)
	require.Empty(t, articles)
}

func TestFetchChoosesEndpoint(t *testing.T) {
	t.Parallel()

	var (
		mu    sync.Mutex
		paths []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		writeArticles(t, w, nil)
	}))
	defer srv.Close()

	c := New(testConfig(), WithBaseURL(srv.URL))
	_, err := c.Fetch(context.Background(), "")
	require.NoError(t, err)
	_, err = c.Fetch(context.Background(), "golang")
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"/v2/top-headlines", "/v2/everything"}, paths)
}

func TestStatusError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status":"error","code":"apiKeyInvalid","message":"Your API key is invalid."}`))
	}))
	defer srv.Close()

	c := New(testConfig(), WithBaseURL(srv.URL))
	_, err := c.TopHeadlines(context.Background())
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrStatus))

	var se *StatusError
	require.True(t, errors.As(err, &se))
	require.Equal(t, http.StatusUnauthorized, se.StatusCode)
	require.Equal(t, "apiKeyInvalid", se.Code)
	require.Equal(t, "request failed with status code 401: Your API key is invalid.", err.Error())
}

func TestStatusErrorWithoutBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(testConfig(), WithBaseURL(srv.URL))
	_, err := c.TopHeadlines(context.Background())
	require.EqualError(t, err, "request failed with status code 500")
}

func TestDecodeError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	c := New(testConfig(), WithBaseURL(srv.URL))
	_, err := c.TopHeadlines(context.Background())
	require.ErrorContains(t, err, "newsapi decode")
}

func TestMissingAPIKeySkipsRequest(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	c := New(config.NewsAPIConfig{APIKey: "   "}, WithBaseURL(srv.URL))
	_, err := c.Fetch(context.Background(), "anything")
	require.ErrorIs(t, err, ErrMissingAPIKey)
	require.Zero(t, hits.Load())
}

func TestTransportErrorRedactsKey(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	c := New(config.NewsAPIConfig{APIKey: "s3cret-key"}, WithBaseURL(base))
	_, err := c.TopHeadlines(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "newsapi fetch")
	require.NotContains(t, err.Error(), "s3cret-key")
	require.Contains(t, err.Error(), "REDACTED")
}

func TestContextCancelled(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c := New(testConfig(), WithBaseURL(srv.URL))
	_, err := c.TopHeadlines(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDefaultBaseURL(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/top-headlines", r.URL.Path)
		require.Equal(t, "gb", r.URL.Query().Get("country"))
		writeArticles(t, w, []map[string]any{{"url": "https://example.com/x", "title": "x"}})
	}))
	defer srv.Close()

	hc := srv.Client()
	hc.Transport = &rewriteTransport{base: srv.URL, inner: http.DefaultTransport}

	c := New(config.NewsAPIConfig{APIKey: "test-key", Country: "gb"}, WithHTTPClient(hc))
	require.Equal(t, "https://newsapi.org", c.baseURL)

	articles, err := c.TopHeadlines(context.Background())
	require.NoError(t, err)
	require.Len(t, articles, 1)
}

// rewriteTransport redirects all requests to a fixed base URL (test server).
type rewriteTransport struct {
	base  string
	inner http.RoundTripper
}

func (rt *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req2 := req.Clone(req.Context())
	parsed, _ := http.NewRequest("GET", rt.base, nil)
	req2.URL.Host = parsed.URL.Host
	req2.URL.Scheme = parsed.URL.Scheme
	return rt.inner.RoundTrip(req2)
}
