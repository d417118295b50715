package exchange

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/zeromicro/go-zero/core/logx"
	"golang.org/x/time/rate"
)

const (
	defaultMaxAttempts    = 3
	defaultBackoffBase    = 2 * time.Second
	defaultBackoffCap     = 10 * time.Second
	defaultRequestTimeout = 30 * time.Second

	// Outbound smoothing applied before every attempt.
	defaultRateLimit = rate.Limit(20)
	defaultRateBurst = 20
)

// Fetcher performs vendor HTTP calls with bounded retries and owns the
// underlying client. The client is created on first use and released by
// Close. A finalizer closes it as a backstop if Close was skipped, logging
// the omission; it is unset once Close runs.
type Fetcher struct {
	mu     sync.Mutex
	client *http.Client
	closed bool

	maxAttempts int
	backoffBase time.Duration
	backoffCap  time.Duration
	timeout     time.Duration
	limiter     *rate.Limiter
}

// FetcherOption customises a Fetcher.
type FetcherOption func(*Fetcher)

// WithHTTPClient substitutes the lazily-created HTTP client.
func WithHTTPClient(client *http.Client) FetcherOption {
	return func(f *Fetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// WithMaxAttempts bounds the total attempts per request, first try
// included.
func WithMaxAttempts(n int) FetcherOption {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxAttempts = n
		}
	}
}

// WithBackoff overrides the wait between attempts: base doubles after
// every retry and never exceeds ceil.
func WithBackoff(base, ceil time.Duration) FetcherOption {
	return func(f *Fetcher) {
		if base > 0 {
			f.backoffBase = base
		}
		if ceil > 0 {
			f.backoffCap = ceil
		}
	}
}

// WithTimeout bounds each individual attempt.
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithRateLimit replaces the default outbound request limiter.
func WithRateLimit(limit rate.Limit, burst int) FetcherOption {
	return func(f *Fetcher) {
		if limit > 0 && burst > 0 {
			f.limiter = rate.NewLimiter(limit, burst)
		}
	}
}

// NewFetcher builds a Fetcher with the vendor retry defaults.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		maxAttempts: defaultMaxAttempts,
		backoffBase: defaultBackoffBase,
		backoffCap:  defaultBackoffCap,
		timeout:     defaultRequestTimeout,
		limiter:     rate.NewLimiter(defaultRateLimit, defaultRateBurst),
	}
	for _, opt := range opts {
		opt(f)
	}
	runtime.SetFinalizer(f, (*Fetcher).finalize)
	return f
}

// GetJSON fetches url and decodes the JSON response into out.
func (f *Fetcher) GetJSON(ctx context.Context, url string, out any) error {
	logx.WithContext(ctx).Infof("exchange: fetching %s", url)
	return f.do(ctx, http.MethodGet, url, nil, out)
}

// PostJSON posts payload as a JSON body to url and decodes the response
// into out.
func (f *Fetcher) PostJSON(ctx context.Context, url string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("exchange: encode request: %w", err)
	}
	logx.WithContext(ctx).Infof("exchange: fetching %s payload=%s", url, body)
	return f.do(ctx, http.MethodPost, url, body, out)
}

// Close releases the HTTP client and unsets the finalizer backstop.
// Subsequent requests fail with ErrClosed.
func (f *Fetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true
	if f.client != nil {
		f.client.CloseIdleConnections()
		f.client = nil
	}
	runtime.SetFinalizer(f, nil)
	return nil
}

func (f *Fetcher) finalize() {
	f.mu.Lock()
	closed := f.closed
	f.mu.Unlock()
	if closed {
		return
	}
	logx.Errorf("exchange: fetcher reclaimed without Close, releasing http client")
	_ = f.Close()
}

func (f *Fetcher) acquire() (*http.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil, ErrClosed
	}
	if f.client == nil {
		f.client = &http.Client{Timeout: f.timeout}
	}
	return f.client, nil
}

// do runs one request with the retry budget. Transport failures and
// non-2xx statuses consume attempts; a malformed JSON body is terminal.
func (f *Fetcher) do(ctx context.Context, method, url string, payload []byte, out any) error {
	client, err := f.acquire()
	if err != nil {
		return err
	}

	var lastErr error
	backoff := f.backoffBase
	for attempt := 1; attempt <= f.maxAttempts; attempt++ {
		if f.limiter != nil {
			if err := f.limiter.Wait(ctx); err != nil {
				return err
			}
		}

		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, body)
		if err != nil {
			return fmt.Errorf("exchange: build request: %w", err)
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
		} else {
			data, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("read response: %w", readErr)
			} else if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				lastErr = fmt.Errorf("http status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
			} else {
				if out == nil {
					return nil
				}
				if err := json.Unmarshal(data, out); err != nil {
					return fmt.Errorf("exchange: decode response: %w", err)
				}
				return nil
			}
		}

		if attempt < f.maxAttempts {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
			if backoff > f.backoffCap {
				backoff = f.backoffCap
			}
		}
	}

	if lastErr == nil {
		lastErr = errors.New("request failed without error detail")
	}
	return &TransportError{URL: url, Err: lastErr}
}
