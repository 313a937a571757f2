package feed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/backlinkreport/internal/model"
)

// Defaults for the affiliate feed.
const (
	// DefaultBaseURL is the feed endpoint.
	DefaultBaseURL = "https://admin.throneneataffiliates.com/feeds.php"

	// DefaultSummaryURL is the affiliate summary page linked from reports.
	DefaultSummaryURL = "https://admin.throneneataffiliates.com/affiliate_summary.php"

	// DefaultFeedID selects the token feed.
	DefaultFeedID = 4

	// DefaultMaxBodySize limits how much of a response is read.
	DefaultMaxBodySize = 32 * 1024 * 1024 // 32MB
)

// Client fetches enrichment records for affiliate tokens.
type Client struct {
	baseURL     string
	summaryURL  string
	username    string
	password    string
	feedID      int
	userAgent   string
	maxBodySize int64
	httpClient  *http.Client
	logger      *slog.Logger
}

// Option configures Client behavior.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the HTTP client timeout. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithFeedID sets the FEED_ID query parameter.
func WithFeedID(id int) Option {
	return func(c *Client) {
		c.feedID = id
	}
}

// WithSummaryURL sets the page affiliate links point to.
func WithSummaryURL(u string) Option {
	return func(c *Client) {
		c.summaryURL = u
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithMaxBodySize limits the number of response bytes read.
func WithMaxBodySize(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBodySize = n
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a Client for the feed at baseURL using Basic auth.
// The default HTTP client has no timeout.
func New(baseURL, username, password string, opts ...Option) *Client {
	c := &Client{
		baseURL:     baseURL,
		summaryURL:  DefaultSummaryURL,
		username:    username,
		password:    password,
		feedID:      DefaultFeedID,
		maxBodySize: DefaultMaxBodySize,
		httpClient:  &http.Client{},
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch sends all tokens in a single request and parses the response.
// It returns ErrUnauthorized on 401, *APIError on any other non-200 status,
// and ErrMalformedResponse when the body is not valid XML.
func (c *Client) Fetch(ctx context.Context, tokens []model.Token) (model.Lookup, error) {
	reqURL, err := c.requestURL(tokens)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create feed request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/xml, text/xml")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug("sending tokens to feed",
		"batch_size", len(tokens),
		"feed_id", c.feedID,
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read feed response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return Parse(bytes.NewReader(body), c.summaryURL)
	case http.StatusUnauthorized:
		return nil, ErrUnauthorized
	default:
		return nil, newAPIError(resp.StatusCode, body)
	}
}

// Enrich is the best-effort form of Fetch used by the report pipeline.
// Any failure is logged and produces an empty, non-nil lookup. The error is
// still returned so callers can surface it as a warning.
func (c *Client) Enrich(ctx context.Context, tokens []model.Token) (model.Lookup, error) {
	lookup, err := c.Fetch(ctx, tokens)
	if err == nil {
		c.logger.Info("feed enrichment completed",
			"requested", len(tokens),
			"returned", len(lookup),
		)
		return lookup, nil
	}

	var apiErr *APIError
	switch {
	case errors.Is(err, ErrUnauthorized):
		c.logger.Error("feed rejected credentials", "status", http.StatusUnauthorized)
	case errors.As(err, &apiErr):
		c.logger.Error("feed returned an error status", "status", apiErr.StatusCode)
	case errors.Is(err, ErrMalformedResponse):
		c.logger.Error("failed to parse feed response", "error", err)
	default:
		c.logger.Error("feed request failed", "error", err)
	}
	return model.Lookup{}, err
}

// requestURL builds <base>?FEED_ID=<id>&TOKENS=<t1,t2,...>.
// Commas are kept literal; each token is query-escaped on its own.
func (c *Client) requestURL(tokens []model.Token) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.baseURL)
	}

	escaped := make([]string, len(tokens))
	for i, t := range tokens {
		escaped[i] = url.QueryEscape(string(t))
	}

	query := u.RawQuery
	if query != "" {
		query += "&"
	}
	query += "FEED_ID=" + strconv.Itoa(c.feedID) + "&TOKENS=" + strings.Join(escaped, ",")
	u.RawQuery = query

	return u.String(), nil
}
