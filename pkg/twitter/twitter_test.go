package twitter

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/codeGROOVE-dev/stackscope/pkg/profile"
	"github.com/codeGROOVE-dev/stackscope/pkg/style"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://twitter.com/johndoe", true},
		{"https://x.com/johndoe", true},
		{"https://www.twitter.com/johndoe", true},
		{"x.com/johndoe", true},
		{"https://TWITTER.COM/johndoe", true},
		{"https://x.com/johndoe/status/123", true},
		{"https://x.com/this_name_is_too_long", false},
		{"https://x.com/explore", false},
		{"https://x.com/", false},
		{"https://linkedin.com/in/johndoe", false},
		{"https://example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := Match(tt.url); got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestExtractUsername(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"https://twitter.com/johndoe", "johndoe"},
		{"https://x.com/John_Doe", "John_Doe"},
		{"https://twitter.com/johndoe/status/123", "johndoe"},
		{"https://x.com/@johndoe", "johndoe"},
		{"https://x.com/john-doe", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := extractUsername(tt.input); got != tt.want {
				t.Errorf("extractUsername(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

type fakeAPI struct {
	authenticated bool
	user          *User
	tweets        []Tweet
	err           error
	calls         int
}

func (f *fakeAPI) Authenticated() bool { return f.authenticated }

func (f *fakeAPI) UserByUsername(context.Context, string) (*User, error) {
	f.calls++
	return f.user, f.err
}

func (f *fakeAPI) Timeline(context.Context, string) ([]Tweet, error) {
	f.calls++
	return f.tweets, nil
}

func TestAnalyzeWithoutCredentials(t *testing.T) {
	api := &fakeAPI{}
	for _, a := range []*Analyzer{NewAnalyzer(api, nil, nil), NewAnalyzer(nil, nil, nil)} {
		got, err := a.Analyze(context.Background(), "https://twitter.com/someone")
		if err != nil {
			t.Fatalf("Analyze() error = %v", err)
		}
		if got.Personality.Communication.Style != style.Insufficient {
			t.Errorf("style = %q, want %q", got.Personality.Communication.Style, style.Insufficient)
		}
		if len(got.TechStack.Topics) != 0 || len(got.Personality.Interests) != 0 || got.Personality.Communication.Frequency != nil {
			t.Errorf("expected empty post-derived fields, got %+v", got)
		}
		if got.URL != "https://x.com/someone" {
			t.Errorf("URL = %q", got.URL)
		}
	}
	if api.calls != 0 {
		t.Errorf("API calls = %d, want 0", api.calls)
	}
}

func TestAnalyze(t *testing.T) {
	day := 24 * time.Hour
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	api := &fakeAPI{
		authenticated: true,
		user:          &User{ID: "1", Username: "gopher", Description: "Gopher at large", PublicMetrics: UserMetrics{FollowersCount: 120}},
		tweets: []Tweet{
			{
				Text:      "Shipping a new Kubernetes operator today",
				CreatedAt: base,
				Entities: Entities{
					Hashtags: []Hashtag{{Tag: "GoLang"}, {Tag: "Sunday"}},
					Mentions: []Mention{{Username: "golang"}, {Username: "friend"}},
				},
			},
			{
				Text:             "RT cloud news",
				CreatedAt:        base.Add(-2 * day),
				ReferencedTweets: []Reference{{Type: "retweeted", ID: "9"}},
			},
			{
				Text:             "@friend agreed",
				CreatedAt:        base.Add(-4 * day),
				ReferencedTweets: []Reference{{Type: "replied_to", ID: "8"}},
				Entities:         Entities{Hashtags: []Hashtag{{Tag: "sunday"}}},
			},
			{Text: "no timestamp"},
		},
	}

	got, err := NewAnalyzer(api, nil, nil).Analyze(context.Background(), "https://x.com/gopher")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	for _, topic := range []string{"kubernetes", "cloud", "golang"} {
		if !got.TechStack.HasTopic(topic) {
			t.Errorf("topic %q missing from %v", topic, got.TechStack.Topics)
		}
	}
	if got.TechStack.HasTopic("sunday") {
		t.Errorf("non-tech hashtag leaked into topics: %v", got.TechStack.Topics)
	}
	if diff := cmp.Diff([]string{"golang", "sunday"}, got.Personality.Interests); diff != "" {
		t.Errorf("interests mismatch (-want +got):\n%s", diff)
	}
	if got.TechStack.Tools.Score("kubernetes") == 0 {
		t.Errorf("expected folded kubernetes tool, got %v", got.TechStack.Tools.Map())
	}
	freq := got.Personality.Communication.Frequency
	if freq == nil || *freq != 1 {
		t.Errorf("frequency = %v, want 1 (4 posts over 4 days)", freq)
	}
	if got.Personality.Communication.Style != style.MicroblogConcise {
		t.Errorf("style = %q, want %q", got.Personality.Communication.Style, style.MicroblogConcise)
	}
	wantActivities := []string{"Gopher at large", "4 posts analyzed", "120 followers"}
	if diff := cmp.Diff(wantActivities, got.Personality.Activities); diff != "" {
		t.Errorf("activities mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyzeZeroPosts(t *testing.T) {
	api := &fakeAPI{authenticated: true, user: &User{ID: "1", PublicMetrics: UserMetrics{FollowersCount: 9000}}}
	got, err := NewAnalyzer(api, nil, nil).Analyze(context.Background(), "https://x.com/quiet")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if got.Personality.Communication.Style != style.Insufficient {
		t.Errorf("style = %q, want %q", got.Personality.Communication.Style, style.Insufficient)
	}
	if got.Personality.Communication.Frequency != nil {
		t.Errorf("frequency = %v, want nil", *got.Personality.Communication.Frequency)
	}
}

func TestAnalyzeFailure(t *testing.T) {
	api := &fakeAPI{authenticated: true, err: &APIError{StatusCode: http.StatusNotFound, Message: "gone"}}
	_, err := NewAnalyzer(api, nil, nil).Analyze(context.Background(), "https://x.com/ghost")
	if !errors.Is(err, profile.ErrExtractorFailure) || !errors.Is(err, profile.ErrProfileNotFound) {
		t.Errorf("Analyze() error = %v, want ErrExtractorFailure wrapping ErrProfileNotFound", err)
	}
}

func TestValidate(t *testing.T) {
	a := NewAnalyzer(nil, nil, nil)
	if err := a.Validate("https://x.com/"); !errors.Is(err, profile.ErrInvalidInput) {
		t.Errorf("Validate() = %v, want ErrInvalidInput", err)
	}
	if err := a.Validate("https://twitter.com/ok_name"); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch {
		case r.URL.Path == "/2/users/by/username/gopher":
			if !strings.Contains(r.URL.Query().Get("user.fields"), "public_metrics") {
				t.Errorf("user.fields = %q", r.URL.Query().Get("user.fields"))
			}
			w.Write([]byte(`{"data":{"id":"42","username":"gopher","description":"hi","public_metrics":{"followers_count":7}}}`)) //nolint:errcheck // test
		case r.URL.Path == "/2/users/by/username/ghost":
			w.Write([]byte(`{"errors":[{"title":"Not Found Error","detail":"Could not find user","type":"https://api.twitter.com/2/problems/resource-not-found"}]}`)) //nolint:errcheck // test
		case r.URL.Path == "/2/users/42/tweets":
			if r.URL.Query().Get("max_results") != "100" {
				t.Errorf("max_results = %q", r.URL.Query().Get("max_results"))
			}
			w.Write([]byte(`{"data":[{"id":"1","text":"hello #go","created_at":"2024-01-02T03:04:05.000Z","entities":{"hashtags":[{"tag":"go"}]},"referenced_tweets":[{"type":"replied_to","id":"0"}]}]}`)) //nolint:errcheck // test
		default:
			w.WriteHeader(http.StatusTooManyRequests)
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	c := New(ctx, WithBaseURL(srv.URL), WithBearerToken("tok"))
	if !c.Authenticated() {
		t.Fatal("Authenticated() = false")
	}

	u, err := c.UserByUsername(ctx, "gopher")
	if err != nil {
		t.Fatalf("UserByUsername() error = %v", err)
	}
	if u.ID != "42" || u.PublicMetrics.FollowersCount != 7 {
		t.Errorf("UserByUsername() = %+v", u)
	}

	tweets, err := c.Timeline(ctx, "42")
	if err != nil {
		t.Fatalf("Timeline() error = %v", err)
	}
	if len(tweets) != 1 || !tweets[0].IsReply() || tweets[0].IsRepost() || tweets[0].CreatedAt.IsZero() {
		t.Errorf("Timeline() = %+v", tweets)
	}
	if tweets[0].Entities.Hashtags[0].Tag != "go" {
		t.Errorf("hashtags = %+v", tweets[0].Entities.Hashtags)
	}

	if _, err := c.UserByUsername(ctx, "ghost"); !errors.Is(err, profile.ErrProfileNotFound) {
		t.Errorf("UserByUsername(ghost) error = %v, want ErrProfileNotFound", err)
	}
	if _, err := c.Timeline(ctx, "999"); !errors.Is(err, profile.ErrRateLimited) {
		t.Errorf("Timeline(999) error = %v, want ErrRateLimited", err)
	}

	if New(ctx).Authenticated() {
		t.Error("client without token reports Authenticated() = true")
	}
}
