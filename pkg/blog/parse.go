package blog

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/codeGROOVE-dev/stackscope/pkg/htmlutil"
	"github.com/codeGROOVE-dev/stackscope/pkg/profile"
)

// articleSelectors are tried in order. The first that matches any element
// is used and later ones are ignored.
var articleSelectors = []string{"article", ".post", ".entry", ".blog-post", ".post-item", ".article"}

const (
	headingSelector = "h1, h2, h3, .title, .entry-title, .post-title"
	tagSelector     = `a[rel="tag"], .tags a, .tag, .categories a, .category, a[href*="/tags/"], a[href*="/category/"]`
	dateSelector    = "time[datetime], .date, .published"

	// minStubText is the anchor text length a relative link needs to be
	// treated as an article when no article markup exists.
	minStubText = 20
)

// Article is one post discovered on the page.
type Article struct {
	Title   string
	URL     string
	Content string
	Date    time.Time
}

// Page is the parsed blog page.
type Page struct {
	URL         string
	Title       string
	Description string
	Articles    []Article
	Stubs       bool // Articles came from the link fallback
	Tags        []string
	CodeBlocks  []string
	Images      int
}

func parsePage(doc *goquery.Document, pageURL string) Page {
	p := Page{
		URL:         pageURL,
		Title:       htmlutil.Title(doc),
		Description: htmlutil.Description(doc),
		Images:      doc.Find("img").Length(),
	}

	p.Articles = findArticles(doc, pageURL)
	if len(p.Articles) == 0 {
		p.Articles = linkStubs(doc, pageURL)
		p.Stubs = len(p.Articles) > 0
	}

	doc.Find(tagSelector).Each(func(_ int, s *goquery.Selection) {
		if tag := strings.ToLower(htmlutil.Text(s)); tag != "" {
			p.Tags = profile.AppendUnique(p.Tags, tag)
		}
	})
	doc.Find("pre, code").Each(func(_ int, s *goquery.Selection) {
		p.CodeBlocks = append(p.CodeBlocks, s.Text())
	})
	return p
}

func findArticles(doc *goquery.Document, pageURL string) []Article {
	for _, sel := range articleSelectors {
		matches := doc.Find(sel)
		if matches.Length() == 0 {
			continue
		}
		var out []Article
		matches.Each(func(_ int, s *goquery.Selection) {
			heading := s.Find(headingSelector).First()
			a := Article{
				Title:   htmlutil.Text(heading),
				Content: htmlutil.Text(s),
				Date:    articleDate(s),
			}
			if a.Title == "" || a.Content == "" {
				return
			}
			link := heading.Find("a[href]").First()
			if link.Length() == 0 {
				link = s.Find("a[href]").First()
			}
			if href := link.AttrOr("href", ""); href != "" {
				a.URL = htmlutil.ResolveURL(pageURL, href)
			}
			out = append(out, a)
		})
		return out
	}
	return nil
}

func linkStubs(doc *goquery.Document, pageURL string) []Article {
	var out []Article
	seen := map[string]bool{}
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := s.AttrOr("href", "")
		text := htmlutil.Text(s)
		if !htmlutil.IsRelative(href) || utf8.RuneCountInString(text) <= minStubText {
			return
		}
		u := htmlutil.ResolveURL(pageURL, href)
		if seen[u] {
			return
		}
		seen[u] = true
		out = append(out, Article{Title: text, URL: u})
	})
	return out
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"2006年1月2日",
}

func articleDate(s *goquery.Selection) time.Time {
	el := s.Find(dateSelector).First()
	if el.Length() == 0 {
		return time.Time{}
	}
	if t, ok := parseDate(el.AttrOr("datetime", "")); ok {
		return t
	}
	t, _ := parseDate(htmlutil.Text(el))
	return t
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
