// Package htmlutil provides HTML parsing helpers shared by the page extractors.
package htmlutil

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Parse parses an HTML body into a queryable document.
func Parse(body []byte) (*goquery.Document, error) {
	root, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return goquery.NewDocumentFromNode(root), nil
}

// Text returns the selection's text with runs of whitespace collapsed.
func Text(sel *goquery.Selection) string {
	return CollapseSpace(sel.Text())
}

// CollapseSpace trims s and collapses internal whitespace to single spaces.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Meta returns the content of the first non-empty meta tag whose name or
// property equals one of keys, trying keys in order.
func Meta(doc *goquery.Document, keys ...string) string {
	for _, key := range keys {
		var found string
		doc.Find("meta").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			name, _ := s.Attr("name")
			prop, _ := s.Attr("property")
			if !strings.EqualFold(name, key) && !strings.EqualFold(prop, key) {
				return true
			}
			content, _ := s.Attr("content")
			found = CollapseSpace(content)
			return found == ""
		})
		if found != "" {
			return found
		}
	}
	return ""
}

// Title returns og:title, then twitter:title, then <title>, then the first h1.
func Title(doc *goquery.Document) string {
	if t := Meta(doc, "og:title", "twitter:title"); t != "" {
		return t
	}
	if t := Text(doc.Find("title").First()); t != "" {
		return t
	}
	return Text(doc.Find("h1").First())
}

// Description returns description, then og:description, then twitter:description.
func Description(doc *goquery.Document) string {
	return Meta(doc, "description", "og:description", "twitter:description")
}

// ResolveURL resolves a potentially relative reference against base.
// Unparsable input is returned unchanged.
func ResolveURL(base, ref string) string {
	ref = strings.TrimSpace(ref)
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	if strings.HasPrefix(ref, "//") {
		return b.Scheme + ":" + ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}

// IsRelative reports whether href points into the same site without naming
// a scheme or host.
func IsRelative(href string) bool {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "//") {
		return false
	}
	u, err := url.Parse(href)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == ""
}

// IsNotFound detects common "404 Not Found" or "Page not found" patterns in page text.
func IsNotFound(text string) bool {
	lower := strings.ToLower(text)
	patterns := []string{
		"404 not found",
		"page not found",
		"error 404",
		"user not found",
		"profile not found",
		"account not found",
		"this page doesn't exist",
		"the page you were looking for doesn't exist",
	}
	for _, p := range patterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
