package analyzer

import (
	"fmt"
	"strings"

	"github.com/codeGROOVE-dev/stackscope/pkg/profile"
)

// Request names the profiles to analyze. Every field is optional but at
// least one must be set.
type Request struct {
	GitHubURL      string `json:"github_url,omitempty"`
	TwitterURL     string `json:"twitter_url,omitempty"`
	SpeakerDeckURL string `json:"speakerdeck_url,omitempty"`
	BlogURL        string `json:"blog_url,omitempty"`
}

// target is one platform URL of a request.
type target struct {
	platform profile.Platform
	url      string
}

// targets returns the non-blank URLs in reporting order.
func (r Request) targets() []target {
	all := []target{
		{profile.PlatformGitHub, r.GitHubURL},
		{profile.PlatformTwitter, r.TwitterURL},
		{profile.PlatformSpeakerDeck, r.SpeakerDeckURL},
		{profile.PlatformBlog, r.BlogURL},
	}
	var out []target
	for _, t := range all {
		t.url = strings.TrimSpace(t.url)
		if t.url != "" {
			out = append(out, t)
		}
	}
	return out
}

// Key is the summary cache key: the exact URL set of the request.
func (r Request) Key() string {
	return fmt.Sprintf("github=%s|twitter=%s|speakerdeck=%s|blog=%s",
		strings.TrimSpace(r.GitHubURL), strings.TrimSpace(r.TwitterURL),
		strings.TrimSpace(r.SpeakerDeckURL), strings.TrimSpace(r.BlogURL))
}
