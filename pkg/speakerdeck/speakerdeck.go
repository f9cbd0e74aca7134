// Package speakerdeck analyzes Speaker Deck profiles by parsing the public
// profile page.
package speakerdeck

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/codeGROOVE-dev/stackscope/pkg/htmlutil"
	"github.com/codeGROOVE-dev/stackscope/pkg/httpcache"
	"github.com/codeGROOVE-dev/stackscope/pkg/profile"
	"github.com/codeGROOVE-dev/stackscope/pkg/style"
	"github.com/codeGROOVE-dev/stackscope/pkg/taxonomy"
	"github.com/codeGROOVE-dev/stackscope/pkg/techstack"
)

const communicationTopics = 10

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// reserved are site sections that share the profile URL shape.
var reserved = map[string]bool{
	"c": true, "p": true, "features": true, "signin": true, "signup": true,
	"search": true, "pro": true, "account": true, "categories": true,
}

// Match returns true if the URL is a Speaker Deck profile URL.
func Match(urlStr string) bool {
	return extractUsername(urlStr) != ""
}

func extractUsername(urlStr string) string {
	urlStr = strings.TrimSpace(urlStr)
	if !strings.Contains(urlStr, "://") {
		urlStr = "https://" + urlStr
	}
	u, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	if strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.") != "speakerdeck.com" {
		return ""
	}
	path := strings.Trim(u.Path, "/")
	if path == "" || strings.Contains(path, "/") {
		return ""
	}
	if reserved[strings.ToLower(path)] || !usernamePattern.MatchString(path) {
		return ""
	}
	return path
}

// Deck is one presentation card from a profile page.
type Deck struct {
	Title       string
	URL         string
	Description string
	Date        string // as displayed; not used for frequency
}

// Page is the parsed profile page.
type Page struct {
	Name  string
	Bio   string
	Decks []Deck
}

// parsePage extracts the header and presentation cards. Relative deck
// links are resolved against base.
func parsePage(doc *goquery.Document, base string) Page {
	header := doc.Find(".profile-header").First()
	p := Page{
		Name: htmlutil.Text(header.Find("h1").First()),
		Bio:  htmlutil.Text(header.Find(".bio").First()),
	}
	doc.Find(".deck-preview").Each(func(_ int, card *goquery.Selection) {
		link := card.Find("a.deck-preview-link").First()
		d := Deck{
			Title:       htmlutil.Text(card.Find(".deck-title").First()),
			Description: htmlutil.Text(card.Find(".deck-description").First()),
			Date:        htmlutil.Text(card.Find(".deck-date").First()),
		}
		if d.Title == "" {
			d.Title = htmlutil.CollapseSpace(link.AttrOr("title", ""))
		}
		if href := link.AttrOr("href", ""); href != "" {
			d.URL = htmlutil.ResolveURL(base, href)
		}
		if d.Title == "" && d.URL == "" {
			return
		}
		p.Decks = append(p.Decks, d)
	})
	return p
}

// Analyzer implements profile.Analyzer for Speaker Deck.
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

// Platform returns profile.PlatformSpeakerDeck.
func (*Analyzer) Platform() profile.Platform { return profile.PlatformSpeakerDeck }

// Validate checks that urlStr names a Speaker Deck user.
func (*Analyzer) Validate(urlStr string) error {
	if extractUsername(urlStr) == "" {
		return fmt.Errorf("%w: Speaker Deck URL %q must look like https://speakerdeck.com/<username>", profile.ErrInvalidInput, urlStr)
	}
	return nil
}

// Analyze fetches the profile page and analyzes its presentations.
func (a *Analyzer) Analyze(ctx context.Context, urlStr string) (*profile.PlatformAnalysis, error) {
	username := extractUsername(urlStr)
	if username == "" {
		return nil, a.Validate(urlStr)
	}
	profileURL := "https://speakerdeck.com/" + username
	logger := a.logger.With("platform", profile.PlatformSpeakerDeck, "username", username)
	logger.InfoContext(ctx, "analyzing speaker deck profile")

	body, err := a.fetcher.Fetch(ctx, profileURL)
	if err != nil {
		return nil, fmt.Errorf("%w: speaker deck profile %s: %w", profile.ErrExtractorFailure, username, err)
	}
	doc, err := htmlutil.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("%w: speaker deck profile %s: %w", profile.ErrExtractorFailure, username, err)
	}
	page := parsePage(doc, profileURL)
	if len(page.Decks) == 0 && page.Name == "" && htmlutil.IsNotFound(htmlutil.Title(doc)) {
		return nil, fmt.Errorf("%w: speaker deck profile %s: %w", profile.ErrExtractorFailure, username, profile.ErrProfileNotFound)
	}

	pa := &profile.PlatformAnalysis{
		Platform: profile.PlatformSpeakerDeck,
		URL:      profileURL,
		Raw:      page,
	}
	a.fill(pa, page)

	logger.DebugContext(ctx, "speaker deck analysis complete", "decks", len(page.Decks), "topics", len(pa.TechStack.Topics))
	return pa, nil
}

func (a *Analyzer) fill(pa *profile.PlatformAnalysis, page Page) {
	stack := &pa.TechStack
	pers := &pa.Personality

	stats := style.SlideStats{Decks: len(page.Decks)}
	corpus := make([]string, 0, len(page.Decks))
	for _, d := range page.Decks {
		text := d.Title + " " + d.Description
		a.extractor.Scan(stack, text)
		if a.extractor.ContainsAny(text, taxonomy.SlideTechnicalKeywords) {
			stats.Technical++
		}
		stats.TotalTitle += utf8.RuneCountInString(d.Title)
		stats.TotalDescription += utf8.RuneCountInString(d.Description)
		corpus = append(corpus, text)
	}
	a.extractor.FoldTopics(stack)

	pers.Interests = append([]string(nil), stack.Topics...)
	pers.Communication = profile.Communication{
		Style:     style.SlideDeck(stats),
		Frequency: profile.Ptr(style.PerMonthOverYear(len(page.Decks))),
		Topics:    profile.Head(stack.Topics, communicationTopics),
	}
	pers.WorkStyle = style.SlideWorkStyle(style.DetectKeywords(a.extractor, strings.Join(corpus, " ")))
	pers.AddActivity(page.Bio)
	pers.AddActivity(fmt.Sprintf("%d presentations", len(page.Decks)))
}
