// Package blog analyzes an arbitrary blog page: metadata, articles, tags and
// code samples.
package blog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/codeGROOVE-dev/stackscope/pkg/htmlutil"
	"github.com/codeGROOVE-dev/stackscope/pkg/httpcache"
	"github.com/codeGROOVE-dev/stackscope/pkg/profile"
	"github.com/codeGROOVE-dev/stackscope/pkg/style"
	"github.com/codeGROOVE-dev/stackscope/pkg/techstack"
)

const communicationTopics = 10

// Analyzer implements profile.Analyzer for blogs.
type Analyzer struct {
	fetcher   httpcache.Fetcher
	extractor *techstack.Extractor
	logger    *slog.Logger
}

// NewAnalyzer creates an Analyzer that fetches pages through fetcher.
func NewAnalyzer(fetcher httpcache.Fetcher, extractor *techstack.Extractor, logger *slog.Logger) *Analyzer {
	if extractor == nil {
		extractor = techstack.New()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{fetcher: fetcher, extractor: extractor, logger: logger}
}

// Platform returns profile.PlatformBlog.
func (*Analyzer) Platform() profile.Platform { return profile.PlatformBlog }

// Validate checks that urlStr is an http(s) URL with a public host.
func (*Analyzer) Validate(urlStr string) error {
	_, err := normalize(urlStr)
	return err
}

func normalize(urlStr string) (string, error) {
	s := strings.TrimSpace(urlStr)
	if s != "" && !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: blog URL %q: %w", profile.ErrInvalidInput, urlStr, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: blog URL %q must use http or https", profile.ErrInvalidInput, urlStr)
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("%w: blog URL %q has no host", profile.ErrInvalidInput, urlStr)
	}
	if err := validateHost(u.Hostname()); err != nil {
		return "", fmt.Errorf("%w: blog URL %q: %w", profile.ErrInvalidInput, urlStr, err)
	}
	return u.String(), nil
}

// validateHost rejects hosts that would let a caller reach internal services.
func validateHost(host string) error {
	host = strings.ToLower(host)

	if host == "localhost" || strings.HasSuffix(host, ".localhost") ||
		strings.HasSuffix(host, ".local") || strings.HasSuffix(host, ".internal") {
		return errors.New("blocked: local host")
	}
	if ip := net.ParseIP(host); ip != nil {
		if ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() ||
			ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() {
			return errors.New("blocked: private IP")
		}
	}
	if host == "metadata.google.internal" || host == "metadata.azure.com" {
		return errors.New("blocked: metadata service")
	}
	return nil
}

// Analyze fetches the page, following one meta refresh or script redirect,
// and analyzes the articles it lists.
func (a *Analyzer) Analyze(ctx context.Context, urlStr string) (*profile.PlatformAnalysis, error) {
	pageURL, err := normalize(urlStr)
	if err != nil {
		return nil, err
	}
	logger := a.logger.With("platform", profile.PlatformBlog, "url", pageURL)
	logger.InfoContext(ctx, "analyzing blog")

	page, err := a.fetchPage(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	if len(page.Articles) == 0 {
		if target := page.redirect; target != "" {
			target = htmlutil.ResolveURL(pageURL, target)
			if next, nerr := normalize(target); nerr != nil {
				logger.WarnContext(ctx, "ignoring redirect", "target", target, "error", nerr)
			} else if next != pageURL {
				logger.DebugContext(ctx, "following redirect", "target", next)
				if page, err = a.fetchPage(ctx, next); err != nil {
					return nil, err
				}
			}
		}
	}

	pa := &profile.PlatformAnalysis{
		Platform: profile.PlatformBlog,
		URL:      page.URL,
		Raw:      page.Page,
	}
	a.fill(pa, page.Page)

	logger.DebugContext(ctx, "blog analysis complete",
		"articles", len(page.Articles), "stubs", page.Stubs, "code_blocks", len(page.CodeBlocks))
	return pa, nil
}

type fetchedPage struct {
	Page
	redirect string
}

func (a *Analyzer) fetchPage(ctx context.Context, pageURL string) (fetchedPage, error) {
	body, err := a.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return fetchedPage{}, fmt.Errorf("%w: blog %s: %w", profile.ErrExtractorFailure, pageURL, err)
	}
	if isBotProtectionPage(body) {
		return fetchedPage{}, fmt.Errorf("%w: blog %s: bot protection page detected", profile.ErrExtractorFailure, pageURL)
	}
	doc, err := htmlutil.Parse(body)
	if err != nil {
		return fetchedPage{}, fmt.Errorf("%w: blog %s: %w", profile.ErrExtractorFailure, pageURL, err)
	}
	return fetchedPage{Page: parsePage(doc, pageURL), redirect: htmlutil.RedirectURL(doc)}, nil
}

func (a *Analyzer) fill(pa *profile.PlatformAnalysis, page Page) {
	stack := &pa.TechStack
	pers := &pa.Personality

	for _, tag := range page.Tags {
		stack.AddTopic(tag)
	}

	stats := style.BlogStats{
		Articles:   len(page.Articles),
		CodeBlocks: len(page.CodeBlocks),
		Images:     page.Images,
	}
	corpus := []string{page.Title, page.Description}
	var dates []time.Time
	for _, art := range page.Articles {
		text := art.Title + " " + art.Content
		a.extractor.Scan(stack, text)
		stats.TotalTitle += utf8.RuneCountInString(art.Title)
		stats.TotalContent += utf8.RuneCountInString(art.Content)
		corpus = append(corpus, text)
		if !art.Date.IsZero() {
			dates = append(dates, art.Date)
		}
	}
	for _, block := range page.CodeBlocks {
		a.extractor.ScanCodeBlock(stack, block)
	}
	a.extractor.FoldTopics(stack)

	pers.Interests = append([]string(nil), stack.Topics...)
	pers.Communication = profile.Communication{
		Style:  style.Blog(stats),
		Topics: profile.Head(stack.Topics, communicationTopics),
	}
	if len(page.Articles) > 0 {
		pers.Communication.Frequency = profile.Ptr(style.PostsPerDay(len(page.Articles), dates))
	}
	pers.WorkStyle = style.BlogWorkStyle(style.DetectKeywords(a.extractor, strings.Join(corpus, " ")))
	pers.AddActivity(page.Title)
	pers.AddActivity(page.Description)
	pers.AddActivity(fmt.Sprintf("%d articles", len(page.Articles)))
}

// isBotProtectionPage detects challenge pages that come back as 200 OK.
func isBotProtectionPage(body []byte) bool {
	content := strings.ToLower(string(body))

	if len(body) < 500 && strings.Contains(content, "javascript") && strings.Contains(content, "enable") {
		return true
	}
	if strings.Contains(content, "checking your browser") ||
		strings.Contains(content, "cf-browser-verification") ||
		strings.Contains(content, "cf_chl_opt") {
		return true
	}
	if strings.Contains(content, "please verify you are a human") ||
		strings.Contains(content, "verify you are human") {
		return true
	}
	return strings.Contains(content, "datadome") && strings.Contains(content, "captcha")
}
