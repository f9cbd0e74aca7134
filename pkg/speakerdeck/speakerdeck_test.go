package speakerdeck

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/codeGROOVE-dev/stackscope/pkg/htmlutil"
	"github.com/codeGROOVE-dev/stackscope/pkg/profile"
	"github.com/codeGROOVE-dev/stackscope/pkg/style"
)

type fakeFetcher struct {
	pages map[string]string
	err   error
	calls []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	f.calls = append(f.calls, url)
	if f.err != nil {
		return nil, f.err
	}
	return []byte(f.pages[url]), nil
}

const profilePage = `<html><head><title>Gopher Jane - Speaker Deck</title></head><body>
<div class="profile-header"><h1> Gopher  Jane </h1><div class="bio">Team lead who loves Go</div></div>
<div class="deck-preview">
  <a class="deck-preview-link" href="/jane/building-apis-in-go" title="Building APIs in Go"></a>
  <div class="deck-title">Building APIs in Go</div>
  <div class="deck-description">Architecture of our Docker based services</div>
  <div class="deck-date">Mar 1, 2024</div>
</div>
<div class="deck-preview">
  <a class="deck-preview-link" href="https://speakerdeck.com/jane/team-notes" title="Team retrospective notes"></a>
  <div class="deck-description">How our team works together</div>
</div>
</body></html>`

func TestMatch(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://speakerdeck.com/jane", true},
		{"speakerdeck.com/jane_doe/", true},
		{"https://www.speakerdeck.com/jane-doe", true},
		{"https://speakerdeck.com/jane/some-deck", false},
		{"https://speakerdeck.com/c/technology", false},
		{"https://speakerdeck.com/", false},
		{"https://slideshare.net/jane", false},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := Match(tt.url); got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestParsePage(t *testing.T) {
	doc, err := htmlutil.Parse([]byte(profilePage))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	got := parsePage(doc, "https://speakerdeck.com/jane")
	want := Page{
		Name: "Gopher Jane",
		Bio:  "Team lead who loves Go",
		Decks: []Deck{
			{
				Title:       "Building APIs in Go",
				URL:         "https://speakerdeck.com/jane/building-apis-in-go",
				Description: "Architecture of our Docker based services",
				Date:        "Mar 1, 2024",
			},
			{
				Title:       "Team retrospective notes",
				URL:         "https://speakerdeck.com/jane/team-notes",
				Description: "How our team works together",
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parsePage() mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyze(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{"https://speakerdeck.com/jane": profilePage}}
	a := NewAnalyzer(f, nil, nil)

	got, err := a.Analyze(context.Background(), "https://speakerdeck.com/jane/")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if got.URL != "https://speakerdeck.com/jane" {
		t.Errorf("URL = %q", got.URL)
	}
	if got.TechStack.Languages.Score("go") == 0 {
		t.Errorf("languages = %v, want go", got.TechStack.Languages.Map())
	}
	if got.TechStack.Tools.Score("docker") == 0 {
		t.Errorf("tools = %v, want docker", got.TechStack.Tools.Map())
	}
	for _, topic := range []string{"go", "docker", "api", "architecture"} {
		if !got.TechStack.HasTopic(topic) {
			t.Errorf("topic %q missing from %v", topic, got.TechStack.Topics)
		}
	}
	freq := got.Personality.Communication.Frequency
	if freq == nil || *freq != 2.0/12 {
		t.Errorf("frequency = %v, want 2/12", freq)
	}
	if got.Personality.Communication.Style != style.SlidesBalanced {
		t.Errorf("style = %q, want %q", got.Personality.Communication.Style, style.SlidesBalanced)
	}
	// "team" and "architecture" appear, "lead" only in the bio.
	if got.Personality.WorkStyle != style.WorkCollaboration {
		t.Errorf("work style = %q, want %q", got.Personality.WorkStyle, style.WorkCollaboration)
	}
	if diff := cmp.Diff([]string{"Team lead who loves Go", "2 presentations"}, got.Personality.Activities); diff != "" {
		t.Errorf("activities mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyzeTechnicalStyle(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<div class="profile-header"><h1>x</h1></div>`)
	for range 4 {
		b.WriteString(`<div class="deck-preview"><div class="deck-title">API design</div></div>`)
	}
	b.WriteString(`<div class="deck-preview"><div class="deck-title">Holiday</div></div>`)
	f := &fakeFetcher{pages: map[string]string{"https://speakerdeck.com/x": b.String()}}

	got, err := NewAnalyzer(f, nil, nil).Analyze(context.Background(), "https://speakerdeck.com/x")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if got.Personality.Communication.Style != style.SlidesTechnical {
		t.Errorf("style = %q, want %q", got.Personality.Communication.Style, style.SlidesTechnical)
	}
}

func TestAnalyzeErrors(t *testing.T) {
	f := &fakeFetcher{err: errors.New("connection refused")}
	a := NewAnalyzer(f, nil, nil)

	if _, err := a.Analyze(context.Background(), "https://speakerdeck.com/"); !errors.Is(err, profile.ErrInvalidInput) {
		t.Errorf("Analyze(invalid) error = %v, want ErrInvalidInput", err)
	}
	if len(f.calls) != 0 {
		t.Errorf("fetches before validation: %v", f.calls)
	}
	if _, err := a.Analyze(context.Background(), "https://speakerdeck.com/jane"); !errors.Is(err, profile.ErrExtractorFailure) {
		t.Errorf("Analyze(fetch failure) error = %v, want ErrExtractorFailure", err)
	}

	f = &fakeFetcher{pages: map[string]string{"https://speakerdeck.com/ghost": `<title>404 Not Found</title>`}}
	_, err := NewAnalyzer(f, nil, nil).Analyze(context.Background(), "https://speakerdeck.com/ghost")
	if !errors.Is(err, profile.ErrProfileNotFound) {
		t.Errorf("Analyze(missing) error = %v, want ErrProfileNotFound", err)
	}
}
