package httpclient

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// StatusError is returned for responses outside the 2xx range.
// The response body is kept so callers can extract API error messages.
type StatusError struct {
	StatusCode int
	URL        string
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error %d for %s", e.StatusCode, e.URL)
}

// Client wraps resty.Client with timeout handling and optional debug logging
type Client struct {
	resty      *resty.Client
	maxRetries int
	timeout    time.Duration
	debug      bool
	logger     *slog.Logger
}

// ClientConfig holds configuration for the HTTP client
type ClientConfig struct {
	Timeout time.Duration
	// MaxRetries is the number of extra attempts on network errors, 5xx and 429.
	// Zero disables retrying.
	MaxRetries int
	UserAgent  string
	Debug      bool
	Logger     *slog.Logger
	// HTTPClient supplies the underlying transport, e.g. an oauth2 client
	// that attaches credentials. Nil uses a plain http.Client.
	HTTPClient *http.Client
}

// DefaultClientConfig returns sensible defaults for the HTTP client
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Timeout:   30 * time.Second,
		UserAgent: "marquee/1.0",
	}
}

// NewClient creates a new HTTP client with the given configuration
func NewClient(config ClientConfig) *Client {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.MaxRetries < 0 {
		config.MaxRetries = 0
	}
	if config.UserAgent == "" {
		config.UserAgent = "marquee/1.0"
	}

	var restyClient *resty.Client
	if config.HTTPClient != nil {
		restyClient = resty.NewWithClient(config.HTTPClient)
	} else {
		restyClient = resty.New()
	}

	restyClient.
		SetTimeout(config.Timeout).
		SetRetryCount(config.MaxRetries).
		SetHeader("User-Agent", config.UserAgent).
		SetHeader("Accept", "application/json")

	if config.MaxRetries > 0 {
		restyClient.
			SetRetryWaitTime(1 * time.Second).
			SetRetryMaxWaitTime(5 * time.Second).
			AddRetryCondition(func(r *resty.Response, err error) bool {
				if err != nil {
					return true
				}
				return r.StatusCode() >= 500 || r.StatusCode() == http.StatusTooManyRequests
			})
	}

	client := &Client{
		resty:      restyClient,
		maxRetries: config.MaxRetries,
		timeout:    config.Timeout,
		debug:      config.Debug,
		logger:     config.Logger,
	}

	if config.Debug && config.Logger != nil {
		restyClient.OnBeforeRequest(func(c *resty.Client, r *resty.Request) error {
			client.logRequest(r)
			return nil
		})
		restyClient.OnAfterResponse(func(c *resty.Client, r *resty.Response) error {
			client.logResponse(r)
			return nil
		})
	}

	return client
}

// Get performs a GET request with query parameters and context support.
// Transport failures are returned wrapped; non-2xx responses return the
// response together with a *StatusError.
func (c *Client) Get(ctx context.Context, url string, params map[string]string, headers map[string]string) (*resty.Response, error) {
	req := c.resty.R().SetContext(ctx)

	if len(params) > 0 {
		req.SetQueryParams(params)
	}
	for key, value := range headers {
		req.SetHeader(key, value)
	}

	resp, err := req.Get(url)
	if err != nil {
		return nil, fmt.Errorf("GET request failed for %s: %w", url, err)
	}

	if !resp.IsSuccess() {
		return resp, &StatusError{
			StatusCode: resp.StatusCode(),
			URL:        url,
			Body:       resp.Body(),
		}
	}

	return resp, nil
}

// SetHeader sets a default header for all requests
func (c *Client) SetHeader(key, value string) {
	c.resty.SetHeader(key, value)
}

// GetTimeout returns the configured timeout
func (c *Client) GetTimeout() time.Duration {
	return c.timeout
}

// GetMaxRetries returns the configured max retries
func (c *Client) GetMaxRetries() int {
	return c.maxRetries
}

func (c *Client) logRequest(r *resty.Request) {
	c.logger.Debug("HTTP Request",
		"method", r.Method,
		"url", r.URL,
		"query", r.QueryParam.Encode(),
	)
}

func (c *Client) logResponse(r *resty.Response) {
	bodyStr := r.String()
	if len(bodyStr) > 1000 {
		bodyStr = bodyStr[:1000] + "... (truncated)"
	}

	c.logger.Debug("HTTP Response",
		"status", r.StatusCode(),
		"url", r.Request.URL,
		"time", r.Time(),
		"body", bodyStr,
	)
}
