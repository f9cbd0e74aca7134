package httpcache

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Fetcher retrieves the body of a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Client is the default Fetcher: a GET with retry, per-host rate limiting
// and an optional response cache.
type Client struct {
	httpClient *http.Client
	cache      Cacher
	logger     *slog.Logger
	limiter    *domainRateLimiter
	accept     string
}

// Option configures a Client.
type Option func(*Client)

// WithCache sets the response cache. Without one every call goes upstream.
func WithCache(cache Cacher) Option {
	return func(c *Client) { c.cache = cache }
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithMinDelay sets the minimum spacing between requests to one host.
// Zero disables rate limiting.
func WithMinDelay(d time.Duration) Option {
	return func(c *Client) { c.limiter = newDomainRateLimiter(d) }
}

// NewClient creates a Client. Clients share one rate limiter unless
// WithMinDelay is given.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     slog.Default(),
		limiter:    globalRateLimiter,
		accept:     "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Fetch GETs url and returns its body. Non-200 responses yield *HTTPError.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", c.accept)

	return fetchURL(ctx, c.cache, c.httpClient, req, c.logger, c.limiter)
}
