// Package client is a small JSON-over-HTTP client with a per-attempt timeout
// and exponential-backoff retries.
//
// Network errors, non-2xx responses and undecodable bodies are retried up to
// the configured attempt count, waiting 100ms, 200ms, 400ms, ... between
// attempts. An attempt that exceeds its timeout, or a cancelled context, ends
// the call immediately.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"net/url"
	"reflect"
	"time"
)

const (
	// DefaultTimeout bounds each attempt.
	DefaultTimeout = 10 * time.Second

	// DefaultRetries is the default maximum number of attempts.
	DefaultRetries = 3

	// retryBaseDelay is the wait after the first failed attempt; it doubles
	// after each subsequent one.
	retryBaseDelay = 100 * time.Millisecond

	// maxResponseSize caps how much of a response body is read.
	maxResponseSize = 10 * 1024 * 1024
)

var (
	// ErrTimeout is returned when a single attempt exceeds the timeout.
	ErrTimeout = errors.New("request timed out")

	// ErrUnknown is returned when every attempt failed without recording a cause.
	ErrUnknown = errors.New("request failed with unknown error")
)

// StatusError is returned for a non-2xx response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, e.Body)
}

// Options configures a Client. Zero Timeout and Retries take the defaults.
type Options struct {
	BaseURL    string
	Headers    map[string]string
	Timeout    time.Duration
	Retries    int
	HTTPClient *http.Client
}

type Client struct {
	baseURL    string
	headers    map[string]string
	timeout    time.Duration
	retries    int
	httpClient *http.Client

	// sleep waits between attempts; replaced in tests
	sleep func(ctx context.Context, d time.Duration) error

	// OnAttempt, if set, is called after every attempt with its 0-based index
	// and error (nil on success).
	OnAttempt func(method, endpoint string, attempt int, err error)
}

func New(opts Options) *Client {
	c := &Client{
		baseURL:    opts.BaseURL,
		headers:    make(map[string]string, len(opts.Headers)),
		timeout:    opts.Timeout,
		retries:    opts.Retries,
		httpClient: opts.HTTPClient,
		sleep:      sleepContext,
	}
	for k, v := range opts.Headers {
		c.headers[k] = v
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.retries <= 0 {
		c.retries = DefaultRetries
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	return c
}

func (c *Client) Timeout() time.Duration { return c.timeout }

func (c *Client) Retries() int { return c.retries }

// Request sends method to baseURL+endpoint with body JSON-encoded (when not
// nil) and params appended as query values, and decodes the JSON response
// into out (when not nil).
func (c *Client) Request(ctx context.Context, method, endpoint string, body any, params map[string]any, out any) error {
	target, err := c.buildURL(endpoint, params)
	if err != nil {
		return err
	}

	var payload []byte
	if body != nil {
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
	}

	var lastErr error
	for attempt := 0; attempt < c.retries; attempt++ {
		err := c.attempt(ctx, method, target, payload, out)
		if c.OnAttempt != nil {
			c.OnAttempt(method, endpoint, attempt, err)
		}
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt >= c.retries-1 || !retryable(ctx, err) {
			break
		}

		delay := backoff(attempt)
		log.Printf("%s %s attempt %d failed, retrying in %v: %v", method, endpoint, attempt+1, delay, err)
		if err := c.sleep(ctx, delay); err != nil {
			lastErr = err
			break
		}
	}

	if lastErr == nil {
		return ErrUnknown
	}
	return lastErr
}

func (c *Client) attempt(ctx context.Context, method, target string, payload []byte, out any) error {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(attemptCtx, method, target, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classify(ctx, attemptCtx, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return classify(ctx, attemptCtx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	if out == nil {
		return nil
	}
	// decode into a fresh value so a failed attempt leaves out untouched
	dst := reflect.ValueOf(out)
	decodeInto := out
	var fresh reflect.Value
	if dst.Kind() == reflect.Pointer && !dst.IsNil() {
		fresh = reflect.New(dst.Elem().Type())
		decodeInto = fresh.Interface()
	}
	if err := json.Unmarshal(data, decodeInto); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	if fresh.IsValid() {
		dst.Elem().Set(fresh.Elem())
	}
	return nil
}

// classify turns an attempt deadline into ErrTimeout while leaving caller
// cancellation as the context's own error.
func classify(parent, attemptCtx context.Context, err error) error {
	if parent.Err() != nil {
		return parent.Err()
	}
	if errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return err
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	if errors.Is(err, ErrTimeout) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}

// backoff returns 2^attempt * 100ms.
func backoff(attempt int) time.Duration {
	return time.Duration(math.Pow(2, float64(attempt))) * retryBaseDelay
}

func (c *Client) buildURL(endpoint string, params map[string]any) (string, error) {
	u, err := url.Parse(c.baseURL + endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid request url: %w", err)
	}
	if len(params) > 0 {
		q := u.Query()
		for k, v := range params {
			q.Add(k, fmt.Sprint(v))
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Do is the typed form of Client.Request.
func Do[T any](ctx context.Context, c *Client, method, endpoint string, body any, params map[string]any) (T, error) {
	var out T
	err := c.Request(ctx, method, endpoint, body, params, &out)
	return out, err
}

func Get[T any](ctx context.Context, c *Client, endpoint string, params map[string]any) (T, error) {
	return Do[T](ctx, c, http.MethodGet, endpoint, nil, params)
}

func Post[T any](ctx context.Context, c *Client, endpoint string, body any) (T, error) {
	return Do[T](ctx, c, http.MethodPost, endpoint, body, nil)
}

func Put[T any](ctx context.Context, c *Client, endpoint string, body any) (T, error) {
	return Do[T](ctx, c, http.MethodPut, endpoint, body, nil)
}

func Delete[T any](ctx context.Context, c *Client, endpoint string) (T, error) {
	return Do[T](ctx, c, http.MethodDelete, endpoint, nil, nil)
}
