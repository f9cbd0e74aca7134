package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/stackscope/pkg/httpcache"
	"github.com/codeGROOVE-dev/stackscope/pkg/profile"
)

const defaultBaseURL = "https://api.github.com"

// API is the subset of the GitHub REST API the analyzer needs.
type API interface {
	User(ctx context.Context, username string) (*User, error)
	Repos(ctx context.Context, username string) ([]Repo, error)
	Languages(ctx context.Context, owner, repo string) (map[string]int, error)
	Contributors(ctx context.Context, owner, repo string) ([]string, error)
}

// User is the subset of a GitHub user payload used for analysis.
type User struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	Bio         string `json:"bio"`
	Company     string `json:"company"`
	Blog        string `json:"blog"`
	Location    string `json:"location"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
}

// Repo is the subset of a GitHub repository payload used for analysis.
type Repo struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Language        string   `json:"language"`
	Topics          []string `json:"topics"`
	StargazersCount int      `json:"stargazers_count"`
	Fork            bool     `json:"fork"`
	ContributorsURL string   `json:"contributors_url"`

	// Contributors holds the logins resolved from ContributorsURL.
	Contributors []string `json:"contributors,omitempty"`
}

type contributor struct {
	Login string `json:"login"`
}

// APIError is a non-200 response from the GitHub API.
//
//nolint:govet // fieldalignment: intentional layout for readability
type APIError struct {
	StatusCode      int
	RateLimitRemain int
	RateLimitReset  time.Time
	Message         string
	IsRateLimit     bool
}

func (e *APIError) Error() string {
	if e.IsRateLimit {
		return fmt.Sprintf("GitHub API rate limited (resets at %s): %s", e.RateLimitReset.Format(time.RFC3339), e.Message)
	}
	return fmt.Sprintf("GitHub API error %d: %s", e.StatusCode, e.Message)
}

// Unwrap maps well-known statuses onto the profile error taxonomy.
func (e *APIError) Unwrap() error {
	switch {
	case e.IsRateLimit || e.StatusCode == http.StatusTooManyRequests:
		return profile.ErrRateLimited
	case e.StatusCode == http.StatusNotFound:
		return profile.ErrProfileNotFound
	default:
		return nil
	}
}

// Client handles GitHub API requests.
type Client struct {
	httpClient *http.Client
	cache      httpcache.Cacher
	logger     *slog.Logger
	baseURL    string
	token      string
}

// Option configures a Client.
type Option func(*config)

type config struct {
	cache   httpcache.Cacher
	logger  *slog.Logger
	baseURL string
	token   string
}

// WithHTTPCache sets the HTTP cache.
func WithHTTPCache(httpCache httpcache.Cacher) Option {
	return func(c *config) { c.cache = httpCache }
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithToken sets the GitHub API token.
func WithToken(token string) Option {
	return func(c *config) { c.token = token }
}

// WithBaseURL points the client at a different API root.
func WithBaseURL(u string) Option {
	return func(c *config) { c.baseURL = strings.TrimSuffix(u, "/") }
}

// New creates a GitHub client. Without a token, GITHUB_TOKEN is consulted;
// without either, requests are unauthenticated.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &config{logger: slog.Default(), baseURL: defaultBaseURL}
	for _, opt := range opts {
		opt(cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	token := cfg.token
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	if token == "" {
		logger.WarnContext(ctx, "GITHUB_TOKEN not set - GitHub API requests will be rate-limited to 60/hour")
	}

	if _, err := url.Parse(cfg.baseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		cache:      cfg.cache,
		logger:     logger,
		baseURL:    cfg.baseURL,
		token:      token,
	}, nil
}

// User fetches a user profile.
func (c *Client) User(ctx context.Context, username string) (*User, error) {
	var u User
	if err := c.getJSON(ctx, "/users/"+url.PathEscape(username), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Repos lists up to 100 of the user's own repositories, most recently
// updated first.
func (c *Client) Repos(ctx context.Context, username string) ([]Repo, error) {
	var repos []Repo
	path := "/users/" + url.PathEscape(username) + "/repos?type=owner&sort=updated&per_page=100"
	if err := c.getJSON(ctx, path, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// Languages returns byte counts per language for one repository.
func (c *Client) Languages(ctx context.Context, owner, repo string) (map[string]int, error) {
	langs := map[string]int{}
	path := "/repos/" + url.PathEscape(owner) + "/" + url.PathEscape(repo) + "/languages"
	if err := c.getJSON(ctx, path, &langs); err != nil {
		return nil, err
	}
	return langs, nil
}

// Contributors returns the logins of up to 100 contributors to one
// repository.
func (c *Client) Contributors(ctx context.Context, owner, repo string) ([]string, error) {
	var list []contributor
	path := "/repos/" + url.PathEscape(owner) + "/" + url.PathEscape(repo) + "/contributors?per_page=100"
	if err := c.getJSON(ctx, path, &list); err != nil {
		return nil, err
	}
	logins := make([]string, 0, len(list))
	for _, ct := range list {
		if ct.Login != "" {
			logins = append(logins, ct.Login)
		}
	}
	return logins, nil
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	req.Header.Set("User-Agent", httpcache.UserAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	body, err := c.doAPIRequest(ctx, req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) doAPIRequest(ctx context.Context, req *http.Request) ([]byte, error) {
	cacheKey := req.URL.String()
	if c.token != "" {
		cacheKey += "|auth"
	}

	if c.cache == nil {
		return c.executeAPIRequest(ctx, req)
	}

	data, err := c.cache.GetSet(ctx, httpcache.URLToKey(cacheKey), func(_ context.Context) ([]byte, error) {
		body, fetchErr := c.executeAPIRequest(ctx, req)
		if fetchErr != nil {
			// Cache API errors to avoid hammering servers, except rate limits.
			var apiErr *APIError
			if errors.As(fetchErr, &apiErr) && !apiErr.IsRateLimit {
				return fmt.Appendf(nil, "ERROR:%d", apiErr.StatusCode), nil
			}
			return nil, fetchErr
		}
		return body, nil
	}, c.cache.TTL())
	if err != nil {
		return nil, err
	}

	if code, found := strings.CutPrefix(string(data), "ERROR:"); found {
		status, _ := strconv.Atoi(code) //nolint:errcheck // 0 is acceptable default
		return nil, &APIError{StatusCode: status, Message: "cached error"}
	}

	return data, nil
}

func (c *Client) executeAPIRequest(ctx context.Context, req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck // best effort close

	// Parse rate limit headers (parse errors default to 0).
	rateLimitRemain, _ := strconv.Atoi(resp.Header.Get("X-Ratelimit-Remaining"))        //nolint:errcheck // 0 is acceptable default
	rateLimitReset, _ := strconv.ParseInt(resp.Header.Get("X-Ratelimit-Reset"), 10, 64) //nolint:errcheck // 0 is acceptable default
	resetTime := time.Unix(rateLimitReset, 0)

	// Empty repositories answer the contributors endpoint with 204.
	if resp.StatusCode == http.StatusNoContent {
		return []byte("null"), nil
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096)) //nolint:errcheck // best effort read of error body
		isRateLimit := resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-Ratelimit-Remaining") == "0"

		c.logger.WarnContext(ctx, "GitHub API request failed",
			"url", req.URL.String(),
			"status", resp.StatusCode,
			"rate_limit_remaining", rateLimitRemain,
			"rate_limit_reset", resetTime.Format(time.RFC3339),
			"is_rate_limit", isRateLimit,
		)

		return nil, &APIError{
			StatusCode:      resp.StatusCode,
			RateLimitRemain: rateLimitRemain,
			RateLimitReset:  resetTime,
			Message:         strings.TrimSpace(string(body)),
			IsRateLimit:     isRateLimit,
		}
	}

	return io.ReadAll(resp.Body)
}
