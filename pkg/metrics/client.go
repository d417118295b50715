// Package metrics talks to the panda-backend-api analytics service. It
// covers the proprietary divine-dip signal and the orderbook workbench
// metrics, with request validation mirroring what the backend accepts.
package metrics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"panda-api/pkg/exchange"
)

const (
	// EnvBaseURL configures the backend endpoint when no explicit
	// option is given.
	EnvBaseURL = "PANDA_BACKEND_API_URL"
	// EnvAPIKey supplies the X-API-KEY credential.
	EnvAPIKey = "PANDA_API_KEY"

	defaultTimeout = 30 * time.Second
)

// Client fetches analytics from the metrics backend. The underlying
// HTTP client is created on first use.
type Client struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	retry   *retryHandler

	mu         sync.Mutex
	httpClient *http.Client
}

// Option adjusts client construction.
type Option func(*Client)

// WithBaseURL overrides the backend endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithAPIKey overrides the API credential.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithHTTPClient injects a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetryConfig overrides the backoff behavior.
func WithRetryConfig(cfg RetryConfig) Option {
	return func(c *Client) { c.retry = newRetryHandler(cfg) }
}

// NewClient builds a metrics client. The base URL and API key fall back
// to PANDA_BACKEND_API_URL and PANDA_API_KEY when not set explicitly; a
// missing base URL is a configuration error.
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{
		timeout: defaultTimeout,
		retry:   newRetryHandler(RetryConfig{MaxRetries: defaultMaxRetries}),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.baseURL == "" {
		c.baseURL = os.Getenv(EnvBaseURL)
	}
	c.baseURL = strings.TrimRight(strings.TrimSpace(c.baseURL), "/")
	if c.baseURL == "" {
		return nil, &ConfigError{
			Msg:  "metrics backend URL is not configured",
			Hint: "set " + EnvBaseURL + " or configure Metrics.BaseURL",
		}
	}

	if c.apiKey == "" {
		c.apiKey = os.Getenv(EnvAPIKey)
	}
	return c, nil
}

// Close releases idle connections.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.httpClient != nil {
		c.httpClient.CloseIdleConnections()
	}
}

func (c *Client) client() *http.Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}
	return c.httpClient
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	reqURL := c.baseURL + path + "?" + params.Encode()
	logx.WithContext(ctx).Infof("metrics: fetching %s", reqURL)

	err := c.retry.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		if c.apiKey != "" {
			req.Header.Set("X-API-KEY", c.apiKey)
		}

		resp, err := c.client().Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return &statusError{Code: resp.StatusCode}
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &decodeError{err: err}
		}
		return nil
	})
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	var de *decodeError
	if errors.As(err, &de) {
		return fmt.Errorf("metrics: decode response from %s: %w", reqURL, de.err)
	}
	return &exchange.TransportError{URL: reqURL, Err: err}
}
