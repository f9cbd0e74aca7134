// Platform identifiers and the extractor contract.

package profile

import (
	"context"
)

// Platform identifies one of the supported external services.
type Platform string

// Supported platforms, in the order they are analyzed and reported.
const (
	PlatformGitHub      Platform = "github"
	PlatformTwitter     Platform = "twitter"
	PlatformSpeakerDeck Platform = "speakerdeck"
	PlatformBlog        Platform = "blog"
)

// Platforms returns all supported platforms in reporting order.
func Platforms() []Platform {
	return []Platform{PlatformGitHub, PlatformTwitter, PlatformSpeakerDeck, PlatformBlog}
}

var displayNames = map[Platform]string{
	PlatformGitHub:      "GitHub",
	PlatformTwitter:     "X (Twitter)",
	PlatformSpeakerDeck: "Speaker Deck",
	PlatformBlog:        "Blog",
}

// DisplayName returns the human-readable platform name used in summaries.
func (p Platform) DisplayName() string {
	if name, ok := displayNames[p]; ok {
		return name
	}
	return string(p)
}

// Analyzer turns one platform URL into a PlatformAnalysis.
// Each platform package provides an implementation.
type Analyzer interface {
	// Platform returns the platform identifier.
	Platform() Platform

	// Validate checks the URL shape without network access.
	// Errors wrap ErrInvalidInput.
	Validate(url string) error

	// Analyze fetches and analyzes the profile at url.
	// Errors wrap ErrExtractorFailure unless the URL itself is invalid.
	Analyze(ctx context.Context, url string) (*PlatformAnalysis, error)
}
