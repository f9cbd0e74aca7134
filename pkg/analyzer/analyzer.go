// Package analyzer runs the platform analyzers for one request, merges their
// results and caches the rendered summary.
//
// Basic usage:
//
//	svc, err := analyzer.New(ctx, analyzer.WithGitHubToken(token))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer svc.Close()
//	summary, err := svc.Summary(ctx, analyzer.Request{GitHubURL: "https://github.com/octocat"})
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/codeGROOVE-dev/stackscope/pkg/aggregate"
	"github.com/codeGROOVE-dev/stackscope/pkg/blog"
	"github.com/codeGROOVE-dev/stackscope/pkg/github"
	"github.com/codeGROOVE-dev/stackscope/pkg/httpcache"
	"github.com/codeGROOVE-dev/stackscope/pkg/profile"
	"github.com/codeGROOVE-dev/stackscope/pkg/speakerdeck"
	"github.com/codeGROOVE-dev/stackscope/pkg/techstack"
	"github.com/codeGROOVE-dev/stackscope/pkg/twitter"
)

// Option configures a Service.
type Option func(*config)

//nolint:govet // fieldalignment: intentional layout for readability
type config struct {
	httpCache    httpcache.Cacher
	fetcher      httpcache.Fetcher
	summaryCache SummaryCache
	extractor    *techstack.Extractor
	logger       *slog.Logger
	analyzers    []profile.Analyzer
	githubToken  string
	twitterToken string
	cacheSize    int
	cacheTTL     time.Duration
}

// WithHTTPCache sets the cache for raw upstream responses.
func WithHTTPCache(httpCache httpcache.Cacher) Option {
	return func(c *config) { c.httpCache = httpCache }
}

// WithFetcher replaces the HTTP fetcher used by the page-based analyzers.
func WithFetcher(f httpcache.Fetcher) Option {
	return func(c *config) { c.fetcher = f }
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithGitHubToken sets the GitHub API token.
func WithGitHubToken(token string) Option {
	return func(c *config) { c.githubToken = token }
}

// WithTwitterToken sets the X API bearer token. Without one, X profiles are
// reported with no post data.
func WithTwitterToken(token string) Option {
	return func(c *config) { c.twitterToken = token }
}

// WithExtractor replaces the shared technology extractor.
func WithExtractor(e *techstack.Extractor) Option {
	return func(c *config) { c.extractor = e }
}

// WithAnalyzers replaces the analyzers for the platforms they report.
// Platforms not covered keep their default analyzer.
func WithAnalyzers(analyzers ...profile.Analyzer) Option {
	return func(c *config) { c.analyzers = append(c.analyzers, analyzers...) }
}

// WithSummaryCache injects the summary cache. The Service closes it.
func WithSummaryCache(sc SummaryCache) Option {
	return func(c *config) { c.summaryCache = sc }
}

// WithCacheLimits bounds the default summary cache.
func WithCacheLimits(size int, ttl time.Duration) Option {
	return func(c *config) {
		c.cacheSize = size
		c.cacheTTL = ttl
	}
}

// Service analyzes requests. It is safe for concurrent use.
type Service struct {
	analyzers map[profile.Platform]profile.Analyzer
	cache     SummaryCache
	logger    *slog.Logger
}

// New creates a Service with analyzers for every supported platform.
func New(ctx context.Context, opts ...Option) (*Service, error) {
	cfg := &config{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.extractor == nil {
		cfg.extractor = techstack.New()
	}
	if cfg.fetcher == nil {
		cfg.fetcher = httpcache.NewClient(httpcache.WithCache(cfg.httpCache), httpcache.WithLogger(cfg.logger))
	}

	gh, err := github.New(ctx,
		github.WithHTTPCache(cfg.httpCache),
		github.WithLogger(cfg.logger),
		github.WithToken(cfg.githubToken))
	if err != nil {
		return nil, fmt.Errorf("github client: %w", err)
	}
	tw := twitter.New(ctx,
		twitter.WithHTTPCache(cfg.httpCache),
		twitter.WithLogger(cfg.logger),
		twitter.WithBearerToken(cfg.twitterToken))

	s := &Service{
		analyzers: map[profile.Platform]profile.Analyzer{
			profile.PlatformGitHub:      github.NewAnalyzer(gh, cfg.extractor, cfg.logger),
			profile.PlatformTwitter:     twitter.NewAnalyzer(tw, cfg.extractor, cfg.logger),
			profile.PlatformSpeakerDeck: speakerdeck.NewAnalyzer(cfg.fetcher, cfg.extractor, cfg.logger),
			profile.PlatformBlog:        blog.NewAnalyzer(cfg.fetcher, cfg.extractor, cfg.logger),
		},
		cache:  cfg.summaryCache,
		logger: cfg.logger,
	}
	for _, a := range cfg.analyzers {
		s.analyzers[a.Platform()] = a
	}

	if s.cache == nil {
		if s.cache, err = NewSummaryCache(cfg.cacheSize, cfg.cacheTTL); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Close releases the summary cache.
func (s *Service) Close() error {
	return s.cache.Close()
}

// Validate checks every URL in req without network access. Errors wrap
// profile.ErrInvalidInput.
func (s *Service) Validate(req Request) error {
	targets := req.targets()
	if len(targets) == 0 {
		return fmt.Errorf("%w: at least one of github_url, twitter_url, speakerdeck_url or blog_url is required", profile.ErrInvalidInput)
	}
	for _, t := range targets {
		if err := s.analyzers[t.platform].Validate(t.url); err != nil {
			return fmt.Errorf("%s: %w", t.platform.DisplayName(), err)
		}
	}
	return nil
}

// Analyze validates req, runs the requested analyzers concurrently and merges
// whatever succeeded. A failing platform is logged and left out; if all fail,
// the result is empty and its summary says so. Only invalid input is an error.
// Analyze does not consult the summary cache.
func (s *Service) Analyze(ctx context.Context, req Request) (*profile.AnalysisResult, error) {
	if err := s.Validate(req); err != nil {
		return nil, err
	}
	logger := s.logger.With("request_id", uuid.NewString())
	return s.analyze(ctx, logger, req.targets()), nil
}

func (s *Service) analyze(ctx context.Context, logger *slog.Logger, targets []target) *profile.AnalysisResult {
	start := time.Now()
	slots := make([]*profile.PlatformAnalysis, len(targets))

	var g errgroup.Group
	for i, t := range targets {
		g.Go(func() error {
			pa, err := s.analyzers[t.platform].Analyze(ctx, t.url)
			if err != nil {
				logger.WarnContext(ctx, "platform analysis failed",
					"platform", t.platform, "url", t.url, "error", err,
					"not_found", errors.Is(err, profile.ErrProfileNotFound),
					"rate_limited", errors.Is(err, profile.ErrRateLimited))
				return nil
			}
			slots[i] = pa
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // goroutines never return errors

	var done []profile.PlatformAnalysis
	for _, pa := range slots {
		if pa != nil {
			done = append(done, *pa)
		}
	}
	r := aggregate.Merge(done)
	logger.InfoContext(ctx, "analysis complete",
		"requested", len(targets), "analyzed", len(done), "duration", time.Since(start).String())
	return r
}

// errNoData carries an uncacheable summary out of the cache's fetch function.
type errNoData struct{ summary string }

func (*errNoData) Error() string { return "no platform could be analyzed" }

// Summary returns the rendered summary for req. A request with the same URL
// set as an earlier one is answered from the cache without running any
// analyzer. Summaries for which no platform succeeded are not cached.
func (s *Service) Summary(ctx context.Context, req Request) (string, error) {
	if err := s.Validate(req); err != nil {
		return "", err
	}
	key := req.Key()
	logger := s.logger.With("request_id", uuid.NewString())

	var computed bool
	data, err := s.cache.GetSet(ctx, key, func(ctx context.Context) ([]byte, error) {
		computed = true
		r := s.analyze(ctx, logger, req.targets())
		if len(r.Platforms) == 0 {
			return nil, &errNoData{summary: r.Summary}
		}
		return []byte(r.Summary), nil
	})
	if !computed {
		logger.DebugContext(ctx, "summary cache hit", "key", key)
	}

	var noData *errNoData
	if errors.As(err, &noData) {
		return noData.summary, nil
	}
	if err != nil {
		return "", fmt.Errorf("summary cache: %w", err)
	}
	return string(data), nil
}
