// Package http provides the GraphQL-over-HTTP transport used by the
// FPbase client. It issues a single POST per request; retries are off by
// default and only enabled when a caller opts in through WithRetryConfig.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/tlambert03/fpbase-go/internal/constants"
	"github.com/tlambert03/fpbase-go/pkg/fpbase"
)

// Request is one GraphQL request: a query document, its variables, and
// any extra headers.
type Request struct {
	Query     string
	Variables map[string]interface{}
	Headers   map[string]string
}

// Response carries the raw response body along with status and headers.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client posts GraphQL requests to a single endpoint.
type Client struct {
	endpoint   string
	httpClient *retryablehttp.Client
	userAgent  string
	logger     fpbase.Logger
	debug      bool
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for debug output.
func WithLogger(logger fpbase.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithHTTPTimeout bounds each request attempt.
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.HTTPClient.Timeout = timeout
		}
	}
}

// WithRetryConfig opts in to retrying transient failures (5xx and 429).
// The default is zero retries: one attempt per request.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		if waitMin > 0 {
			c.httpClient.RetryWaitMin = waitMin
		}

		if waitMax > 0 {
			c.httpClient.RetryWaitMax = waitMax
		}
	}
}

// WithHTTPClient replaces the underlying standard HTTP client, for
// callers needing custom transports or TLS settings.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient.HTTPClient = httpClient
		}
	}
}

// NewClient creates a transport for the given GraphQL endpoint.
func NewClient(endpoint string, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = constants.DefaultRetryMax
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	retryClient.Logger = nil
	// Hand back the final response instead of a "giving up" error so
	// non-2xx statuses surface as *fpbase.HTTPError with the body intact.
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	client := &Client{
		endpoint:   endpoint,
		httpClient: retryClient,
		userAgent:  constants.ClientName + "/" + constants.ClientVersion,
		logger:     fpbase.NoopLogger{},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Endpoint returns the configured GraphQL endpoint.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Do posts the request and returns the raw response. Non-2xx statuses
// fail with *fpbase.HTTPError; the response is still returned for
// inspection. Connectivity failures return a wrapped transport error.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	variables := req.Variables
	if variables == nil {
		variables = map[string]interface{}{}
	}

	payload, err := json.Marshal(map[string]interface{}{
		"query":     req.Query,
		"variables": variables,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding request payload: %w", err)
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if c.debug {
		c.logger.Debug("GraphQL request", map[string]interface{}{
			"endpoint":  c.endpoint,
			"variables": variables,
			"bytes":     len(payload),
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("posting query: %w", err)
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}

	if c.debug {
		c.logger.Debug("GraphQL response", map[string]interface{}{
			"status": httpResp.StatusCode,
			"bytes":  len(body),
		})
	}

	if httpResp.StatusCode < http.StatusOK || httpResp.StatusCode >= http.StatusMultipleChoices {
		return resp, &fpbase.HTTPError{
			StatusCode: httpResp.StatusCode,
			Status:     httpResp.Status,
			Body:       body,
		}
	}

	return resp, nil
}
