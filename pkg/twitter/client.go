package twitter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/stackscope/pkg/httpcache"
	"github.com/codeGROOVE-dev/stackscope/pkg/profile"
)

const defaultBaseURL = "https://api.twitter.com"

// maxTimeline is the most posts requested from the timeline endpoint.
const maxTimeline = 100

// API is the subset of the X API v2 the analyzer needs.
type API interface {
	// Authenticated reports whether a bearer token is configured. Without
	// one the analyzer makes no calls at all.
	Authenticated() bool
	UserByUsername(ctx context.Context, username string) (*User, error)
	Timeline(ctx context.Context, userID string) ([]Tweet, error)
}

// User is the subset of an X user object used for analysis.
type User struct {
	ID            string      `json:"id"`
	Username      string      `json:"username"`
	Name          string      `json:"name"`
	Description   string      `json:"description"`
	PublicMetrics UserMetrics `json:"public_metrics"`
}

// UserMetrics are a user's public counters.
type UserMetrics struct {
	FollowersCount int `json:"followers_count"`
	FollowingCount int `json:"following_count"`
	TweetCount     int `json:"tweet_count"`
}

// Tweet is the subset of a post object used for analysis.
type Tweet struct {
	ID               string       `json:"id"`
	Text             string       `json:"text"`
	CreatedAt        time.Time    `json:"created_at"`
	Entities         Entities     `json:"entities"`
	ReferencedTweets []Reference  `json:"referenced_tweets"`
	PublicMetrics    TweetMetrics `json:"public_metrics"`
}

// Entities are the structured parts of a post.
type Entities struct {
	Hashtags []Hashtag `json:"hashtags"`
	Mentions []Mention `json:"mentions"`
}

// Hashtag is a #tag entity, without the leading '#'.
type Hashtag struct {
	Tag string `json:"tag"`
}

// Mention is an @user entity, without the leading '@'.
type Mention struct {
	Username string `json:"username"`
}

// Reference links a post to the post it reposts, quotes or replies to.
type Reference struct {
	Type string `json:"type"` // "retweeted", "quoted" or "replied_to"
	ID   string `json:"id"`
}

// TweetMetrics are a post's engagement counters.
type TweetMetrics struct {
	RetweetCount int `json:"retweet_count"`
	ReplyCount   int `json:"reply_count"`
	LikeCount    int `json:"like_count"`
	QuoteCount   int `json:"quote_count"`
}

// IsRepost reports whether the post is a plain repost.
func (t Tweet) IsRepost() bool { return t.references("retweeted") }

// IsReply reports whether the post replies to another post.
func (t Tweet) IsReply() bool { return t.references("replied_to") }

func (t Tweet) references(kind string) bool {
	for _, r := range t.ReferencedTweets {
		if r.Type == kind {
			return true
		}
	}
	return false
}

// APIError is an error response from the X API, either a non-200 status or
// a 200 carrying only an errors array.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("X API error %d: %s", e.StatusCode, e.Message)
}

// Unwrap maps well-known statuses onto the profile error taxonomy.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusTooManyRequests:
		return profile.ErrRateLimited
	case http.StatusNotFound:
		return profile.ErrProfileNotFound
	default:
		return nil
	}
}

// Client handles X API v2 requests.
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

// WithBearerToken sets the app-only bearer token.
func WithBearerToken(token string) Option {
	return func(c *config) { c.token = token }
}

// WithBaseURL points the client at a different API root.
func WithBaseURL(u string) Option {
	return func(c *config) { c.baseURL = strings.TrimSuffix(u, "/") }
}

// New creates an X API client. A client without a bearer token is valid but
// reports Authenticated() == false.
func New(ctx context.Context, opts ...Option) *Client {
	cfg := &config{logger: slog.Default(), baseURL: defaultBaseURL}
	for _, opt := range opts {
		opt(cfg)
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.token == "" {
		logger.InfoContext(ctx, "TWITTER_BEARER_TOKEN not set - X profiles will be analyzed without post data")
	}
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		cache:      cfg.cache,
		logger:     logger,
		baseURL:    cfg.baseURL,
		token:      cfg.token,
	}
}

// Authenticated reports whether a bearer token is configured.
func (c *Client) Authenticated() bool { return c.token != "" }

// UserByUsername looks up a user with description and public metrics.
func (c *Client) UserByUsername(ctx context.Context, username string) (*User, error) {
	var resp struct {
		Data   *User      `json:"data"`
		Errors []apiIssue `json:"errors"`
	}
	path := "/2/users/by/username/" + url.PathEscape(username) + "?user.fields=description,public_metrics"
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, issuesError(resp.Errors)
	}
	return resp.Data, nil
}

// Timeline returns up to 100 of the user's most recent posts.
func (c *Client) Timeline(ctx context.Context, userID string) ([]Tweet, error) {
	var resp struct {
		Data   []Tweet    `json:"data"`
		Errors []apiIssue `json:"errors"`
	}
	q := url.Values{}
	q.Set("max_results", strconv.Itoa(maxTimeline))
	q.Set("tweet.fields", "created_at,public_metrics,entities,referenced_tweets")
	path := "/2/users/" + url.PathEscape(userID) + "/tweets?" + q.Encode()
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil && len(resp.Errors) > 0 {
		return nil, issuesError(resp.Errors)
	}
	return resp.Data, nil
}

type apiIssue struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Type   string `json:"type"`
}

func issuesError(issues []apiIssue) error {
	if len(issues) == 0 {
		return &APIError{StatusCode: http.StatusNotFound, Message: "empty response"}
	}
	status := http.StatusBadRequest
	if issues[0].Title == "Not Found Error" || strings.HasSuffix(issues[0].Type, "/resource-not-found") {
		status = http.StatusNotFound
	}
	return &APIError{StatusCode: status, Message: issues[0].Detail}
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	if !c.Authenticated() {
		return errors.New("no bearer token configured")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", httpcache.UserAgent)

	body, err := c.doAPIRequest(ctx, req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s: %w", req.URL.Path, err)
	}
	return nil
}

func (c *Client) doAPIRequest(ctx context.Context, req *http.Request) ([]byte, error) {
	if c.cache == nil {
		return c.executeAPIRequest(ctx, req)
	}
	return c.cache.GetSet(ctx, httpcache.URLToKey("x:"+req.URL.String()), func(_ context.Context) ([]byte, error) {
		return c.executeAPIRequest(ctx, req)
	}, c.cache.TTL())
}

func (c *Client) executeAPIRequest(ctx context.Context, req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck // best effort close

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096)) //nolint:errcheck // best effort read of error body
		c.logger.WarnContext(ctx, "X API request failed",
			"path", req.URL.Path,
			"status", resp.StatusCode,
			"rate_limit_reset", resp.Header.Get("X-Rate-Limit-Reset"),
		)
		return nil, &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	return io.ReadAll(resp.Body)
}
