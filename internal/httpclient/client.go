// Package httpclient wraps fasthttp with retry logic and exponential
// backoff for the API calls made by the surrounding tools.
package httpclient

import (
	"fmt"
	"time"

	"github.com/baditaflorin/go_music_similarity/internal/ports"
	"github.com/valyala/fasthttp"
)

// Default request behaviour.
const (
	DefaultMaxRetries = 3
	DefaultTimeout    = 30 * time.Second
)

// Client issues HTTP requests with retries and exponential backoff.
type Client struct {
	client     *fasthttp.Client
	logger     ports.Logger
	maxRetries int
	timeout    time.Duration
}

// Option configures the client.
type Option func(*Client)

// WithMaxRetries sets a custom retry count.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		c.maxRetries = n
	}
}

// WithTimeout sets a custom per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// New creates a client logging through the given logger.
func New(logger ports.Logger, opts ...Option) *Client {
	c := &Client{
		client:     &fasthttp.Client{},
		logger:     logger,
		maxRetries: DefaultMaxRetries,
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get issues a GET request and returns the response body and status code.
func (c *Client) Get(url string) ([]byte, int, error) {
	return c.do(fasthttp.MethodGet, url, "", nil)
}

// Post issues a POST request with the given body and returns the response
// body and status code.
func (c *Client) Post(url, contentType string, body []byte) ([]byte, int, error) {
	return c.do(fasthttp.MethodPost, url, contentType, body)
}

func (c *Client) do(method, url, contentType string, body []byte) ([]byte, int, error) {
	var lastErr error

	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt-1)) * time.Second
			c.logger.Warn("Retrying request",
				"method", method,
				"url", url,
				"attempt", attempt+1,
				"max_retries", c.maxRetries,
				"backoff", backoff,
			)
			time.Sleep(backoff)
		}

		req := fasthttp.AcquireRequest()
		resp := fasthttp.AcquireResponse()

		req.Header.SetMethod(method)
		req.SetRequestURI(url)
		if contentType != "" {
			req.Header.SetContentType(contentType)
		}
		if body != nil {
			req.SetBody(body)
		}

		c.logger.Debug("Making request", "method", method, "url", url)
		err := c.client.DoTimeout(req, resp, c.timeout)
		if err != nil {
			lastErr = err
			c.logger.Warn("Request failed", "url", url, "error", err)
			fasthttp.ReleaseRequest(req)
			fasthttp.ReleaseResponse(resp)
			continue
		}

		status := resp.StatusCode()
		out := append([]byte(nil), resp.Body()...)
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)

		c.logger.Debug("Response received", "url", url, "status", status)
		if status >= 500 {
			lastErr = fmt.Errorf("server error: status %d", status)
			continue
		}
		if status >= 400 {
			return out, status, fmt.Errorf("request failed: status %d", status)
		}
		return out, status, nil
	}

	c.logger.Error("Request failed after retries",
		"method", method,
		"url", url,
		"max_retries", c.maxRetries,
		"error", lastErr,
	)
	return nil, 0, fmt.Errorf("request to %s failed after %d attempts: %w", url, c.maxRetries, lastErr)
}
