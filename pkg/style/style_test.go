package style

import (
	"math"
	"testing"
	"time"

	"github.com/codeGROOVE-dev/stackscope/pkg/techstack"
)

func TestCodeHost(t *testing.T) {
	tests := []struct {
		name  string
		stats CodeHostStats
		want  string
	}{
		{"stars and docs", CodeHostStats{Repos: 30, MaxStars: 51, LongestDescription: 101, MaxContributors: 3}, CodeHostOpen},
		{"stars without docs", CodeHostStats{Repos: 3, MaxStars: 500, LongestDescription: 20, MaxContributors: 2}, CodeHostCollaborative},
		{"many repos", CodeHostStats{Repos: 21}, CodeHostProlific},
		{"boundary", CodeHostStats{Repos: 20, MaxStars: 50, LongestDescription: 500, MaxContributors: 1}, CodeHostPersonal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeHost(tt.stats); got != tt.want {
				t.Errorf("CodeHost() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMicroblog(t *testing.T) {
	tests := []struct {
		name  string
		stats MicroblogStats
		want  string
	}{
		{"no profile", MicroblogStats{Posts: 10}, Insufficient},
		{"no posts", MicroblogStats{HasProfile: true, Followers: 9000}, Insufficient},
		{"influential", MicroblogStats{HasProfile: true, Followers: 5001, Posts: 10, Reposts: 10}, MicroblogInfluential},
		{"reposts", MicroblogStats{HasProfile: true, Posts: 10, Reposts: 8, TotalLength: 1500}, MicroblogSharing},
		{"replies", MicroblogStats{HasProfile: true, Posts: 10, Replies: 6, TotalLength: 1500}, MicroblogDialogue},
		{"long", MicroblogStats{HasProfile: true, Posts: 2, TotalLength: 500}, MicroblogDetailed},
		{"short", MicroblogStats{HasProfile: true, Posts: 2, TotalLength: 100}, MicroblogConcise},
		{"balanced", MicroblogStats{HasProfile: true, Posts: 2, TotalLength: 300}, MicroblogBalanced},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Microblog(tt.stats); got != tt.want {
				t.Errorf("Microblog() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSlideDeck(t *testing.T) {
	tests := []struct {
		name  string
		stats SlideStats
		want  string
	}{
		{"many decks", SlideStats{Decks: 21}, SlidesActive},
		{"long descriptions", SlideStats{Decks: 2, TotalDescription: 401}, SlidesDetailed},
		{"long titles", SlideStats{Decks: 2, TotalTitle: 102}, SlidesDescriptive},
		{"technical", SlideStats{Decks: 10, TotalTitle: 100, Technical: 8}, SlidesTechnical},
		{"none", SlideStats{}, SlidesBalanced},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SlideDeck(tt.stats); got != tt.want {
				t.Errorf("SlideDeck() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBlog(t *testing.T) {
	tests := []struct {
		name  string
		stats BlogStats
		want  string
	}{
		{"code heavy", BlogStats{Articles: 10, CodeBlocks: 8}, BlogTechnical},
		{"image heavy", BlogStats{Articles: 2, Images: 5}, BlogVisual},
		{"long", BlogStats{Articles: 2, TotalContent: 7000}, BlogDetailed},
		{"short", BlogStats{Articles: 2, TotalContent: 1000}, BlogConcise},
		{"titles", BlogStats{Articles: 2, TotalContent: 4000, TotalTitle: 120}, BlogTitles},
		{"balanced", BlogStats{Articles: 2, TotalContent: 4000, TotalTitle: 40}, BlogBalanced},
		{"no articles but code", BlogStats{CodeBlocks: 1}, BlogTechnical},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Blog(tt.stats); got != tt.want {
				t.Errorf("Blog() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWorkStyles(t *testing.T) {
	tests := []struct {
		name      string
		keywords  Keywords
		wantSlide string
		wantBlog  string
	}{
		{"leadership and team", Keywords{Leadership: true, Team: true, Technical: true}, WorkTeamLeadership, WorkTeamLeadership},
		{"team", Keywords{Team: true}, WorkCollaboration, WorkCollaboration},
		{"solo technical", Keywords{Individual: true, Technical: true}, WorkSoloTechnical, WorkSoloTechnical},
		{"technical", Keywords{Technical: true}, WorkDetailOriented, WorkDetailOriented},
		{"leadership", Keywords{Leadership: true}, WorkVision, WorkVision},
		{"educational technical", Keywords{Educational: true, Technical: true, Team: true, Leadership: true}, WorkTeamLeadership, WorkEducational},
		{"educational only", Keywords{Educational: true}, WorkBalanced, WorkEducationFocus},
		{"nothing", Keywords{}, WorkBalanced, WorkBalanced},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SlideWorkStyle(tt.keywords); got != tt.wantSlide {
				t.Errorf("SlideWorkStyle() = %q, want %q", got, tt.wantSlide)
			}
			if got := BlogWorkStyle(tt.keywords); got != tt.wantBlog {
				t.Errorf("BlogWorkStyle() = %q, want %q", got, tt.wantBlog)
			}
		})
	}
}

func TestDetectKeywordsBilingual(t *testing.T) {
	k := DetectKeywords(techstack.New(), "Go入門: チームで学ぶ実装パターン")
	want := Keywords{Team: true, Technical: true, Educational: true}
	if k != want {
		t.Errorf("DetectKeywords() = %+v, want %+v", k, want)
	}
}

func TestPostsPerDay(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		count int
		times []time.Time
		want  float64
	}{
		{"no timestamps", 7, nil, 7},
		{"one timestamp", 3, []time.Time{base}, 3},
		{"five day span", 10, []time.Time{base.AddDate(0, 0, 5), base, base.AddDate(0, 0, 2)}, 2},
		{"half day span", 10, []time.Time{base, base.Add(12 * time.Hour)}, 20},
		{"one hour span", 4, []time.Time{base.Add(time.Hour), base}, 96},
		{"identical timestamps", 4, []time.Time{base, base, base}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PostsPerDay(tt.count, tt.times); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("PostsPerDay() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPerMonthOverYear(t *testing.T) {
	if got := PerMonthOverYear(6); got != 0.5 {
		t.Errorf("PerMonthOverYear(6) = %v, want 0.5", got)
	}
}

func TestCompose(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		want   string
	}{
		{"none", nil, Insufficient},
		{"single", []string{"influential voice"}, "influential voice"},
		{"two categories tie", []string{SlidesTechnical, BlogDetailed}, "technical and detailed style"},
		{"shared categories", []string{MicroblogDetailed, SlidesDetailed}, "educational and detailed style"},
		{"ranked by count", []string{BlogBalanced, SlidesBalanced, BlogConcise}, "balanced and concise style"},
		{"one category", []string{BlogConcise, MicroblogConcise}, "concise style"},
		{"no category", []string{"visual-focused", "specific-titles"}, "visual-focused"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compose(tt.labels); got != tt.want {
				t.Errorf("Compose(%q) = %q, want %q", tt.labels, got, tt.want)
			}
		})
	}
}
