// Package twitter analyzes X (formerly Twitter) profiles through the official
// API. Without a bearer token the profile is reported with no post-derived
// data.
package twitter

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/codeGROOVE-dev/stackscope/pkg/profile"
	"github.com/codeGROOVE-dev/stackscope/pkg/style"
	"github.com/codeGROOVE-dev/stackscope/pkg/taxonomy"
	"github.com/codeGROOVE-dev/stackscope/pkg/techstack"
)

const communicationTopics = 10

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{1,15}$`)
	hosts           = map[string]bool{"twitter.com": true, "x.com": true, "mobile.twitter.com": true, "mobile.x.com": true}
	reserved        = map[string]bool{
		"home": true, "explore": true, "search": true, "i": true, "settings": true,
		"intent": true, "share": true, "hashtag": true, "notifications": true, "messages": true,
	}
)

// Match returns true if the URL is an X or Twitter profile URL.
func Match(urlStr string) bool {
	return extractUsername(urlStr) != ""
}

// extractUsername returns the first path segment of an X/Twitter URL when
// it is a valid handle. Trailing segments such as /status/123 are ignored.
func extractUsername(urlStr string) string {
	urlStr = strings.TrimSpace(urlStr)
	if !strings.Contains(urlStr, "://") {
		urlStr = "https://" + urlStr
	}
	u, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	if !hosts[strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")] {
		return ""
	}
	name, _, _ := strings.Cut(strings.Trim(u.Path, "/"), "/")
	name = strings.TrimPrefix(name, "@")
	if !usernamePattern.MatchString(name) || reserved[strings.ToLower(name)] {
		return ""
	}
	return name
}

// Raw is the upstream data retained for diagnostics.
type Raw struct {
	User   *User
	Tweets []Tweet
}

// Analyzer implements profile.Analyzer for X.
type Analyzer struct {
	api       API
	extractor *techstack.Extractor
	logger    *slog.Logger
}

// NewAnalyzer creates an Analyzer. A nil api behaves like an unauthenticated one.
func NewAnalyzer(api API, extractor *techstack.Extractor, logger *slog.Logger) *Analyzer {
	if extractor == nil {
		extractor = techstack.New()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{api: api, extractor: extractor, logger: logger}
}

// Platform returns profile.PlatformTwitter.
func (*Analyzer) Platform() profile.Platform { return profile.PlatformTwitter }

// Validate checks that urlStr names an X or Twitter user.
func (*Analyzer) Validate(urlStr string) error {
	if extractUsername(urlStr) == "" {
		return fmt.Errorf("%w: X URL %q must look like https://x.com/<username> or https://twitter.com/<username>", profile.ErrInvalidInput, urlStr)
	}
	return nil
}

// Analyze fetches the user and their recent posts. Without credentials it
// returns an analysis with no post data instead of an error.
func (a *Analyzer) Analyze(ctx context.Context, urlStr string) (*profile.PlatformAnalysis, error) {
	username := extractUsername(urlStr)
	if username == "" {
		return nil, a.Validate(urlStr)
	}
	logger := a.logger.With("platform", profile.PlatformTwitter, "username", username)

	pa := &profile.PlatformAnalysis{
		Platform: profile.PlatformTwitter,
		URL:      "https://x.com/" + username,
	}

	if a.api == nil || !a.api.Authenticated() {
		logger.InfoContext(ctx, "no bearer token; skipping X API")
		pa.Personality.Communication.Style = style.Insufficient
		return pa, nil
	}

	logger.InfoContext(ctx, "analyzing x profile")
	user, err := a.api.UserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%w: x user %s: %w", profile.ErrExtractorFailure, username, err)
	}
	tweets, err := a.api.Timeline(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: x timeline for %s: %w", profile.ErrExtractorFailure, username, err)
	}

	a.fill(pa, user, tweets)
	pa.Raw = Raw{User: user, Tweets: tweets}

	logger.DebugContext(ctx, "x analysis complete", "posts", len(tweets), "topics", len(pa.TechStack.Topics))
	return pa, nil
}

func (a *Analyzer) fill(pa *profile.PlatformAnalysis, user *User, tweets []Tweet) {
	stack := &pa.TechStack
	pers := &pa.Personality

	stats := style.MicroblogStats{
		HasProfile: user != nil,
		Followers:  user.PublicMetrics.FollowersCount,
		Posts:      len(tweets),
	}
	var times []time.Time
	for _, t := range tweets {
		a.extractor.ScanTopics(stack, t.Text)
		for _, h := range t.Entities.Hashtags {
			if a.extractor.IsTechTopic(h.Tag) {
				stack.AddTopic(h.Tag)
			}
			pers.Interests = profile.AppendUnique(pers.Interests, strings.ToLower(h.Tag))
		}
		for _, m := range t.Entities.Mentions {
			if slices.Contains(taxonomy.TechAccounts, strings.ToLower(m.Username)) {
				stack.AddTopic(m.Username)
			}
		}

		stats.TotalLength += utf8.RuneCountInString(t.Text)
		if t.IsRepost() {
			stats.Reposts++
		}
		if t.IsReply() {
			stats.Replies++
		}
		if !t.CreatedAt.IsZero() {
			times = append(times, t.CreatedAt)
		}
	}
	a.extractor.FoldTopics(stack)

	pers.Communication.Style = style.Microblog(stats)
	pers.Communication.Topics = profile.Head(stack.Topics, communicationTopics)
	if len(tweets) > 0 {
		pers.Communication.Frequency = profile.Ptr(style.PostsPerDay(len(tweets), times))
	}
	pers.AddActivity(user.Description)
	pers.AddActivity(fmt.Sprintf("%d posts analyzed", len(tweets)))
	pers.AddActivity(fmt.Sprintf("%d followers", user.PublicMetrics.FollowersCount))
}
