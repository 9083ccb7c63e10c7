package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jask/newsscreen/internal/config"
	"github.com/jask/newsscreen/internal/logger"
)

const (
	topHeadlinesPath = "/v2/top-headlines"
	everythingPath   = "/v2/everything"
)

var ErrMissingAPIKey = errors.New("newsapi: api key not configured")

// ErrStatus matches any *StatusError via errors.Is.
var ErrStatus = errors.New("newsapi: unexpected status")

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("request failed with status code %d", e.StatusCode)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

func (e *StatusError) Is(target error) bool {
	return target == ErrStatus
}

// Client talks to the two NewsAPI endpoints the screen uses.
type Client struct {
	apiKey     string
	baseURL    string
	country    string
	httpClient *http.Client
	log        *logger.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default http client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL points the client at another host, e.g. a test server.
func WithBaseURL(base string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(base, "/") }
}

func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New builds a client from config. A zero timeout means requests never time
// out on their own.
func New(cfg config.NewsAPIConfig, opts ...Option) *Client {
	c := &Client{
		apiKey:     strings.TrimSpace(cfg.APIKey),
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		country:    cfg.Country,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger.Discard(),
	}
	if c.baseURL == "" {
		c.baseURL = "https://newsapi.org"
	}
	if c.country == "" {
		c.country = "us"
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns search results for a non-empty query and top headlines
// otherwise.
func (c *Client) Fetch(ctx context.Context, query string) ([]Article, error) {
	if query != "" {
		return c.Everything(ctx, query)
	}
	return c.TopHeadlines(ctx)
}

// TopHeadlines fetches the headline feed for the configured country.
func (c *Client) TopHeadlines(ctx context.Context) ([]Article, error) {
	params := url.Values{}
	params.Set("country", c.country)
	return c.get(ctx, topHeadlinesPath, params)
}

// Everything fetches articles matching q.
func (c *Client) Everything(ctx context.Context, q string) ([]Article, error) {
	params := url.Values{}
	params.Set("q", q)
	return c.get(ctx, everythingPath, params)
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]Article, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	params.Set("apiKey", c.apiKey)
	endpoint := c.baseURL + path + "?" + params.Encode()

	log := c.log.With("request_id", uuid.NewString(), "endpoint", path)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("newsapi request: %w", c.redact(err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "newsscreen")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = c.redact(err)
		log.Warn("request failed", "err", err, "elapsed", time.Since(start))
		return nil, fmt.Errorf("newsapi fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var raw response
		// error bodies are best effort; the status alone is enough
		_ = json.NewDecoder(resp.Body).Decode(&raw)
		log.Warn("unexpected status", "status", resp.StatusCode, "code", raw.Code)
		return nil, &StatusError{StatusCode: resp.StatusCode, Code: raw.Code, Message: raw.Message}
	}

	var raw response
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("newsapi decode: %w", err)
	}

	log.Info("fetched", "articles", len(raw.Articles), "elapsed", time.Since(start))
	return raw.Articles, nil
}

// redact strips the api key from urls embedded in transport errors so it
// never reaches the screen or the log.
func (c *Client) redact(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		ue.URL = strings.ReplaceAll(ue.URL, url.QueryEscape(c.apiKey), "REDACTED")
	}
	return err
}
