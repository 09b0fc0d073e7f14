package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"slices"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// ErrRetriesExhausted is returned when every retry of a request failed.
var ErrRetriesExhausted = errors.New("retries exhausted")

const defaultUserAgent = "ExercicesDownloader"

// StatusError reports a response with a non-2xx status code.
type StatusError struct {
	URL        string
	StatusCode int

	// RetryAfter is the delay the server asked for, zero if none.
	RetryAfter time.Duration
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s (%s)", e.StatusCode, http.StatusText(e.StatusCode), e.URL)
}

// ClientConfig holds the retry and timeout settings of a Client.
//
// Zero values are taken literally: MaxRetries 0 disables retries and
// BackoffFactor 0 retries without sleeping. Use DefaultClientConfig for the
// usual values.
type ClientConfig struct {
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int

	// BackoffFactor is the base of the exponential backoff. The sleep before
	// retry n (1-based) is BackoffFactor * 2^(n-1).
	BackoffFactor time.Duration

	// BackoffMax caps a single sleep, including one asked for by Retry-After.
	// Zero means no cap.
	BackoffMax time.Duration

	// RetryStatuses lists the response codes that are retried.
	RetryStatuses []int

	// ConnectTimeout bounds dialing and the TLS handshake.
	ConnectTimeout time.Duration

	// ReadTimeout bounds the wait for response headers and every read of
	// the response body.
	ReadTimeout time.Duration

	// UserAgent is sent with every request.
	UserAgent string

	// Logger receives retry attempts at debug level. Nil disables logging.
	Logger *zap.Logger
}

// DefaultClientConfig returns 5 retries with a 1s backoff factor on
// 500/502/503/504, a 3s connect timeout and a 30s read timeout.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		MaxRetries:    5,
		BackoffFactor: time.Second,
		BackoffMax:    2 * time.Minute,
		RetryStatuses: []int{
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout,
		},
		ConnectTimeout: 3 * time.Second,
		ReadTimeout:    30 * time.Second,
		UserAgent:      defaultUserAgent,
	}
}

// Client performs GET requests with retries over one shared connection pool.
//
// A Client is created once per run and passed to whoever needs it; call
// Close when the run is over to release pooled connections.
//
// Example usage:
//
//	client := NewClient(DefaultClientConfig())
//	defer client.Close()
//
//	resp, err := client.Get(ctx, "https://www.ecoles.com.tn/devoirs/9eme")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(resp.ContentType, len(resp.Body))
type Client struct {
	httpClient *http.Client
	cfg        ClientConfig
	logger     *zap.Logger
	sleep      func(ctx context.Context, d time.Duration) error
}

// Response is a fully read successful response.
type Response struct {
	// URL is the final URL after redirects.
	URL string

	StatusCode  int
	ContentType string
	Body        []byte
}

// NewClient creates a new Client from cfg.
func NewClient(cfg ClientConfig) *Client {
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	dialer := &net.Dialer{
		Timeout:   cfg.ConnectTimeout,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   cfg.ConnectTimeout,
		ResponseHeaderTimeout: cfg.ReadTimeout,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		ForceAttemptHTTP2:     true,
	}

	return &Client{
		httpClient: &http.Client{Transport: transport},
		cfg:        cfg,
		logger:     logger,
		sleep:      sleepContext,
	}
}

// Close releases the idle connections held by the client.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// Get performs a GET request and returns the fully read body.
//
// Transport errors and responses whose status is in RetryStatuses are
// retried up to MaxRetries times with exponential backoff. Any other
// non-2xx response fails immediately with a *StatusError.
//
// Returns an error wrapping ErrRetriesExhausted and the last failure when
// all retries are used up.
func (c *Client) Get(ctx context.Context, url string) (*Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			wait := c.backoff(attempt, lastErr)
			c.logger.Debug("retrying request",
				zap.String("url", url),
				zap.Int("attempt", attempt),
				zap.Int("max_retries", c.cfg.MaxRetries),
				zap.Duration("backoff", wait),
				zap.Error(lastErr),
			)
			if err := c.sleep(ctx, wait); err != nil {
				return nil, err
			}
		}

		resp, err := c.do(ctx, url)
		if err == nil {
			return resp, nil
		}
		if !c.retryable(ctx, err) {
			return nil, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("%w after %d retries: %w", ErrRetriesExhausted, c.cfg.MaxRetries, lastErr)
}

// do performs a single request.
func (c *Client) do(ctx context.Context, url string) (*Response, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			URL:        url,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}

	body, err := io.ReadAll(newIdleTimeoutReader(resp.Body, c.cfg.ReadTimeout, cancel))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{
		URL:         resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

// retryable reports whether err is worth another attempt.
func (c *Client) retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return slices.Contains(c.cfg.RetryStatuses, statusErr.StatusCode)
	}

	return true
}

// backoff returns the sleep before the given retry (1-based).
func (c *Client) backoff(retry int, lastErr error) time.Duration {
	wait := time.Duration(float64(c.cfg.BackoffFactor) * math.Pow(2, float64(retry-1)))

	var statusErr *StatusError
	if errors.As(lastErr, &statusErr) && statusErr.RetryAfter > wait {
		wait = statusErr.RetryAfter
	}

	if c.cfg.BackoffMax > 0 && wait > c.cfg.BackoffMax {
		wait = c.cfg.BackoffMax
	}
	return wait
}

// parseRetryAfter understands the delay-seconds form of Retry-After.
func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
