// Package style maps aggregate statistics to human-readable style labels.
//
// Every classifier is a fixed decision tree evaluated top to bottom; the
// first rule that matches wins.
package style

// Insufficient is used whenever there is nothing to classify.
const Insufficient = "insufficient information"

// Code host communication styles.
const (
	CodeHostOpen          = "open, documentation-focused"
	CodeHostCollaborative = "collaborative"
	CodeHostProlific      = "prolific/exploratory"
	CodeHostPersonal      = "focused on personal development"
)

// CodeHostStats summarizes a user's repositories.
type CodeHostStats struct {
	Repos              int
	MaxStars           int
	LongestDescription int // in characters
	MaxContributors    int
}

// CodeHost classifies communication style from repository statistics.
func CodeHost(s CodeHostStats) string {
	switch {
	case s.MaxStars > 50 && s.LongestDescription > 100:
		return CodeHostOpen
	case s.MaxContributors > 1:
		return CodeHostCollaborative
	case s.Repos > 20:
		return CodeHostProlific
	default:
		return CodeHostPersonal
	}
}

// Microblog communication styles.
const (
	MicroblogInfluential = "influential voice"
	MicroblogSharing     = "information-sharing type"
	MicroblogDialogue    = "dialogue-focused type"
	MicroblogDetailed    = "prefers detailed explanation"
	MicroblogConcise     = "prefers concise output"
	MicroblogBalanced    = "balanced communication style"
)

// MicroblogStats summarizes a user's recent posts.
type MicroblogStats struct {
	HasProfile  bool
	Followers   int
	Posts       int
	Reposts     int
	Replies     int
	TotalLength int // in characters, summed over all posts
}

// Microblog classifies communication style from post statistics.
func Microblog(s MicroblogStats) string {
	if !s.HasProfile || s.Posts == 0 {
		return Insufficient
	}
	posts := float64(s.Posts)
	avgLen := float64(s.TotalLength) / posts
	switch {
	case s.Followers > 5000:
		return MicroblogInfluential
	case float64(s.Reposts)/posts > 0.7:
		return MicroblogSharing
	case float64(s.Replies)/posts > 0.5:
		return MicroblogDialogue
	case avgLen > 200:
		return MicroblogDetailed
	case avgLen < 100:
		return MicroblogConcise
	default:
		return MicroblogBalanced
	}
}

// Slide deck communication styles.
const (
	SlidesActive      = "actively shares knowledge"
	SlidesDetailed    = "favors detailed explanation"
	SlidesDescriptive = "uses specific, descriptive titles"
	SlidesTechnical   = "specializes in technical content"
	SlidesBalanced    = "balanced topic coverage"
)

// SlideStats summarizes a user's presentations.
type SlideStats struct {
	Decks            int
	TotalDescription int // characters
	TotalTitle       int // characters
	Technical        int // decks mentioning a technical keyword
}

// SlideDeck classifies communication style from presentation statistics.
func SlideDeck(s SlideStats) string {
	avgDesc := ratio(s.TotalDescription, s.Decks)
	avgTitle := ratio(s.TotalTitle, s.Decks)
	switch {
	case s.Decks > 20:
		return SlidesActive
	case avgDesc > 200:
		return SlidesDetailed
	case avgTitle > 50:
		return SlidesDescriptive
	case ratio(s.Technical, s.Decks) > 0.7:
		return SlidesTechnical
	default:
		return SlidesBalanced
	}
}

// Blog communication styles.
const (
	BlogTechnical = "technical-explanation focused"
	BlogVisual    = "visual-focused"
	BlogDetailed  = "detailed"
	BlogConcise   = "concise"
	BlogTitles    = "specific-titles"
	BlogBalanced  = "balanced"
)

// BlogStats summarizes a blog page. CodeBlocks and Images are page-wide.
type BlogStats struct {
	Articles     int
	CodeBlocks   int
	Images       int
	TotalContent int // characters
	TotalTitle   int // characters
}

// Blog classifies communication style from page statistics.
func Blog(s BlogStats) string {
	articles := float64(s.Articles)
	avgContent := ratio(s.TotalContent, s.Articles)
	switch {
	case float64(s.CodeBlocks) > 0.7*articles:
		return BlogTechnical
	case float64(s.Images) > 2*articles:
		return BlogVisual
	case avgContent > 3000:
		return BlogDetailed
	case avgContent < 1000:
		return BlogConcise
	case ratio(s.TotalTitle, s.Articles) > 50:
		return BlogTitles
	default:
		return BlogBalanced
	}
}

// ratio returns n/d, or 0 when d is 0.
func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}
