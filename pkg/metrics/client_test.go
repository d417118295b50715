package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panda-api/pkg/exchange"
)

func TestNewClientRequiresBaseURL(t *testing.T) {
	t.Setenv(EnvBaseURL, "")

	_, err := NewClient()
	require.Error(t, err)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, cfgErr.Hint, EnvBaseURL)
}

func TestNewClientEnvFallback(t *testing.T) {
	t.Setenv(EnvBaseURL, "https://metrics.example.com/")
	t.Setenv(EnvAPIKey, "env-key")

	c, err := NewClient()
	require.NoError(t, err)
	assert.Equal(t, "https://metrics.example.com", c.baseURL)
	assert.Equal(t, "env-key", c.apiKey)
}

func TestNewClientOptionsOverrideEnv(t *testing.T) {
	t.Setenv(EnvBaseURL, "https://env.example.com")
	t.Setenv(EnvAPIKey, "env-key")

	c, err := NewClient(WithBaseURL("https://explicit.example.com"), WithAPIKey("explicit-key"))
	require.NoError(t, err)
	assert.Equal(t, "https://explicit.example.com", c.baseURL)
	assert.Equal(t, "explicit-key", c.apiKey)
}

func TestGetJSONSendsAPIKeyHeader(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-KEY")
		w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, WithAPIKey("secret"))

	var out struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, c.getJSON(context.Background(), "/workbench/orderbook/", url.Values{}, &out))
	assert.Equal(t, "secret", gotKey)
}

func TestGetJSONRetriesServerErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	var out struct{}
	require.NoError(t, c.getJSON(context.Background(), "/metrics/panda_jlabs_metrics/", url.Values{}, &out))
	assert.Equal(t, 3, calls)
}

func TestGetJSONDoesNotRetryClientErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	var out struct{}
	err := c.getJSON(context.Background(), "/metrics/panda_jlabs_metrics/", url.Values{}, &out)
	require.Error(t, err)
	assert.Equal(t, 1, calls)

	var tErr *exchange.TransportError
	require.True(t, errors.As(err, &tErr))
}

func TestGetJSONDoesNotRetryDecodeErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	var out struct{}
	err := c.getJSON(context.Background(), "/workbench/orderbook/", url.Values{}, &out)
	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Contains(t, err.Error(), "decode response")

	var tErr *exchange.TransportError
	assert.False(t, errors.As(err, &tErr), "decode failures are not transport errors")
}

func newTestClient(t *testing.T, baseURL string, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{
		WithBaseURL(baseURL),
		WithRetryConfig(RetryConfig{
			MaxRetries:     2,
			InitialBackoff: time.Millisecond,
			MaxBackoff:     2 * time.Millisecond,
		}),
	}, opts...)
	c, err := NewClient(opts...)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}
