package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/justchokingaround/marquee/internal/config"
	"github.com/justchokingaround/marquee/internal/httpclient"
)

var (
	ErrEmptyQuery        = errors.New("search query is empty")
	ErrTokenMissing      = errors.New("TMDB token is not configured")
	ErrNetwork           = errors.New("network failure")
	ErrUpstream          = errors.New("TMDB API error")
	ErrMalformedResponse = errors.New("malformed TMDB response")
)

// StatusError describes a non-2xx answer from TMDB. It matches ErrUpstream
// with errors.Is.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: status %d: %s", ErrUpstream, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: status %d", ErrUpstream, e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return ErrUpstream
}

// Searcher is the catalog contract used by the UI and the CLI
type Searcher interface {
	Search(ctx context.Context, query string, page int) (*ResultPage, error)
}

// Config configures the catalog client
type Config struct {
	BaseURL      string
	Language     string
	IncludeAdult bool
	Timeout      time.Duration
	Debug        bool
}

// ConfigFrom builds a client Config from the application settings
func ConfigFrom(cfg config.TMDBConfig, debug bool) Config {
	return Config{
		BaseURL:      cfg.BaseURL,
		Language:     cfg.Language,
		IncludeAdult: cfg.IncludeAdult,
		Timeout:      cfg.Timeout,
		Debug:        debug,
	}
}

// StaticToken wraps a bearer token as a token source
func StaticToken(token string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: strings.TrimSpace(token),
		TokenType:   "Bearer",
	})
}

// Client searches the TMDB movie catalog. It never retries and never caches.
type Client struct {
	cfg    Config
	tokens oauth2.TokenSource
	http   *httpclient.Client
	logger *slog.Logger
}

// NewClient creates a catalog client. The credential comes from tokens and is
// attached as an Authorization: Bearer header by the oauth2 transport.
func NewClient(cfg Config, tokens oauth2.TokenSource, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = config.DefaultConfig().TMDB.BaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout == 0 {
		cfg.Timeout = config.DefaultConfig().TMDB.Timeout
	}
	if tokens == nil {
		tokens = StaticToken("")
	}

	// oauth2.NewClient only reads ctx for a custom base client
	httpClient := httpclient.NewClient(httpclient.ClientConfig{
		Timeout:    cfg.Timeout,
		MaxRetries: 0,
		UserAgent:  "marquee/1.0",
		Debug:      cfg.Debug,
		Logger:     logger,
		HTTPClient: oauth2.NewClient(context.Background(), tokens),
	})

	return &Client{
		cfg:    cfg,
		tokens: tokens,
		http:   httpClient,
		logger: logger.With("component", "catalog"),
	}
}

// Search fetches one page of movies matching query. Page numbers below 1 are
// sent as 1.
func (c *Client) Search(ctx context.Context, query string, page int) (*ResultPage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if page < 1 {
		page = 1
	}

	token, err := c.tokens.Token()
	if err != nil || token == nil || token.AccessToken == "" {
		return nil, ErrTokenMissing
	}

	requestID := uuid.NewString()
	params := map[string]string{
		"query":         query,
		"page":          strconv.Itoa(page),
		"include_adult": strconv.FormatBool(c.cfg.IncludeAdult),
	}
	if c.cfg.Language != "" {
		params["language"] = c.cfg.Language
	}

	start := time.Now()
	resp, err := c.http.Get(ctx, c.cfg.BaseURL+"/search/movie", params, nil)
	if err != nil {
		var statusErr *httpclient.StatusError
		if errors.As(err, &statusErr) {
			upstream := &StatusError{
				StatusCode: statusErr.StatusCode,
				Message:    parseErrorMessage(statusErr.Body),
			}
			c.logger.Error("catalog search rejected",
				"request_id", requestID,
				"query", query,
				"page", page,
				"status", upstream.StatusCode,
				"message", upstream.Message,
			)
			return nil, upstream
		}

		c.logger.Error("catalog search failed",
			"request_id", requestID,
			"query", query,
			"page", page,
			"error", err,
		)
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}

	result, err := decodeResultPage(resp.Body())
	if err != nil {
		c.logger.Error("catalog search returned malformed body",
			"request_id", requestID,
			"query", query,
			"page", page,
			"error", err,
		)
		return nil, err
	}

	c.logger.Debug("catalog search completed",
		"request_id", requestID,
		"query", query,
		"page", page,
		"results", len(result.Results),
		"total_pages", result.TotalPages,
		"elapsed", time.Since(start),
	)

	return result, nil
}

func decodeResultPage(body []byte) (*ResultPage, error) {
	var wire wireResultPage
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if wire.Results == nil {
		return nil, fmt.Errorf("%w: missing results", ErrMalformedResponse)
	}
	if wire.TotalPages == nil {
		return nil, fmt.Errorf("%w: missing total_pages", ErrMalformedResponse)
	}
	if *wire.TotalPages < 0 {
		return nil, fmt.Errorf("%w: negative total_pages", ErrMalformedResponse)
	}

	return &ResultPage{
		Page:         wire.Page,
		Results:      *wire.Results,
		TotalPages:   *wire.TotalPages,
		TotalResults: wire.TotalResults,
	}, nil
}

func parseErrorMessage(body []byte) string {
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		return ""
	}
	return errResp.StatusMessage
}
