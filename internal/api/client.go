// Package api holds the typed REST clients for the OpsSight backend:
// pipelines, clusters, alerts, webhooks, terraform changes, AWS costs,
// dashboard metrics, and RBAC. All endpoints live under /api/v1 and report
// failures as a JSON body {"detail": "..."} on non-2xx responses.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/PavanAnganna90/OpsSight-DevOpsVisibilityPlatform-sub003/internal/pkg/metrics"
)

const basePath = "/api/v1"

// Error is a non-2xx backend response.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("api: %s", http.StatusText(e.Status))
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// Options configures a Client. BaseURL and Token are required.
type Options struct {
	BaseURL string

	// Token returns the bearer token attached to every request.
	Token func() (string, error)

	Timeout time.Duration

	// RateLimit throttles outbound calls (req/s); 0 disables.
	RateLimit      float64
	RateLimitBurst int

	// CacheTTL enables response caching of idempotent GETs; 0 disables.
	CacheTTL time.Duration

	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client is the backend REST client. Safe for concurrent use.
type Client struct {
	base    string
	token   func() (string, error)
	http    *http.Client
	limiter *rate.Limiter
	cache   *responseCache
	log     *slog.Logger
}

// NewClient validates options and returns a client.
func NewClient(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("api: BaseURL is required")
	}
	if opts.Token == nil {
		return nil, fmt.Errorf("api: Token is required")
	}
	if _, err := url.Parse(opts.BaseURL); err != nil {
		return nil, fmt.Errorf("api: parse base url: %w", err)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	c := &Client{
		base:  strings.TrimRight(opts.BaseURL, "/"),
		token: opts.Token,
		http:  httpClient,
		log:   opts.Logger,
	}
	if opts.RateLimit > 0 {
		burst := opts.RateLimitBurst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}
	if opts.CacheTTL > 0 {
		c.cache = newResponseCache(opts.CacheTTL)
	}
	return c, nil
}

// get fetches path (plus query) and decodes the JSON body into out. Cached
// when a cache is configured; the cache key is the full request URL.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.requestURL(path, query)
	if c.cache != nil {
		if body, ok := c.cache.get(u); ok {
			return json.Unmarshal(body, out)
		}
	}
	body, err := c.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	if c.cache != nil {
		c.cache.put(u, body)
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(body, out)
}

// post sends in as JSON and decodes the response into out (either may be nil).
func (c *Client) post(ctx context.Context, path string, in, out any) error {
	return c.send(ctx, http.MethodPost, path, in, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.send(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) send(ctx context.Context, method, path string, in, out any) error {
	var payload io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("api: encode request: %w", err)
		}
		payload = bytes.NewReader(b)
	}
	body, err := c.do(ctx, method, c.requestURL(path, nil), payload)
	if err != nil {
		return err
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func (c *Client) requestURL(path string, query url.Values) string {
	u := c.base + basePath + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) do(ctx context.Context, method, fullURL string, body io.Reader) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("api: rate limit wait: %w", err)
		}
	}
	token, err := c.token()
	if err != nil {
		return nil, fmt.Errorf("api: load token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	metricPath := req.URL.Path
	if err != nil {
		metrics.APIRequestTotal.WithLabelValues(method, metricPath, "error").Inc()
		return nil, fmt.Errorf("api: %s %s: %w", method, metricPath, err)
	}
	defer resp.Body.Close()

	metrics.APIRequestTotal.WithLabelValues(method, metricPath, strconv.Itoa(resp.StatusCode)).Inc()
	metrics.APIRequestDurationSeconds.WithLabelValues(method, metricPath).Observe(time.Since(start).Seconds())

	data, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("api: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeError(resp.StatusCode, data)
	}
	return data, nil
}

// decodeError parses the backend's {"detail": "..."} error convention,
// falling back to the raw body when the shape is off.
func decodeError(status int, body []byte) error {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return &Error{Status: status, Detail: payload.Detail}
	}
	detail := strings.TrimSpace(string(body))
	if len(detail) > 200 {
		detail = detail[:200]
	}
	return &Error{Status: status, Detail: detail}
}
