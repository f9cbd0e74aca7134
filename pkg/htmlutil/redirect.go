package htmlutil

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// RedirectURL returns the target of a meta refresh or JavaScript redirect
// in doc, or "" if the page does not redirect. Meta refresh wins.
func RedirectURL(doc *goquery.Document) string {
	var target string
	doc.Find("meta").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		equiv, _ := s.Attr("http-equiv")
		if !strings.EqualFold(strings.TrimSpace(equiv), "refresh") {
			return true
		}
		content, _ := s.Attr("content")
		if m := refreshContent.FindStringSubmatch(content); len(m) > 1 {
			target = cleanRedirectURL(m[1])
		}
		return target == ""
	})
	if target != "" {
		return target
	}

	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		target = jsRedirect(s.Text())
		return target == ""
	})
	return target
}

// refreshContent matches "0;url=...", "5; URL='...'" and similar.
var refreshContent = regexp.MustCompile(`(?i)^\s*\d+\s*;\s*url\s*=\s*["']?([^"'\s]+)`)

var jsRedirectPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)window\.location(?:\.href)?\s*=\s*["']([^"']+)["']`),
	regexp.MustCompile(`(?i)(?:^|[^\w.])location(?:\.href)?\s*=\s*["']([^"']+)["']`),
	regexp.MustCompile(`(?i)document\.location(?:\.href)?\s*=\s*["']([^"']+)["']`),
	regexp.MustCompile(`(?i)window\.location\.replace\s*\(\s*["']([^"']+)["']\s*\)`),
	regexp.MustCompile(`(?i)(?:^|[^\w.])location\.replace\s*\(\s*["']([^"']+)["']\s*\)`),
	regexp.MustCompile(`(?i)window\.location\.assign\s*\(\s*["']([^"']+)["']\s*\)`),
}

func jsRedirect(script string) string {
	for _, p := range jsRedirectPatterns {
		if m := p.FindStringSubmatch(script); len(m) > 1 {
			u := cleanRedirectURL(m[1])
			// Skip self-referential or fragment-only redirects.
			if u != "" && !strings.HasPrefix(u, "#") && u != "." && u != "./" {
				return u
			}
		}
	}
	return ""
}

func cleanRedirectURL(u string) string {
	u = strings.TrimSpace(u)
	u = strings.TrimSuffix(u, `"`)
	u = strings.TrimSuffix(u, `'`)
	return strings.TrimSuffix(u, `>`)
}
