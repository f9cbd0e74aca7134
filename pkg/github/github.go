// Package github analyzes GitHub profiles: repositories, languages and topics.
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/codeGROOVE-dev/stackscope/pkg/profile"
	"github.com/codeGROOVE-dev/stackscope/pkg/style"
	"github.com/codeGROOVE-dev/stackscope/pkg/techstack"
)

// repoFetchLimit bounds concurrent per-repository requests.
const repoFetchLimit = 4

// communicationTopics is how many topics are reported as communication topics.
const communicationTopics = 10

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9-]{0,38})$`)

// nonProfiles are first path segments that are GitHub pages, not users.
var nonProfiles = map[string]bool{
	"features": true, "security": true, "enterprise": true, "team": true,
	"marketplace": true, "sponsors": true, "topics": true, "trending": true,
	"collections": true, "orgs": true, "solutions": true, "resources": true,
	"login": true, "join": true, "pricing": true, "about": true,
	"explore": true, "new": true, "settings": true, "notifications": true,
	"issues": true, "pulls": true, "codespaces": true, "copilot": true,
	"actions": true, "projects": true, "packages": true, "discussions": true,
	"search": true, "site": true, "apps": true,
}

// Match returns true if the URL is a GitHub profile URL.
func Match(urlStr string) bool {
	return extractUsername(urlStr) != ""
}

// extractUsername returns the username of a github.com/<user> URL, or "".
// Repository URLs and site pages are not profiles.
func extractUsername(urlStr string) string {
	urlStr = strings.TrimSpace(urlStr)
	if !strings.Contains(urlStr, "://") {
		urlStr = "https://" + urlStr
	}
	u, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if host != "github.com" {
		return ""
	}
	path := strings.Trim(u.Path, "/")
	if path == "" || strings.Contains(path, "/") {
		return ""
	}
	if nonProfiles[strings.ToLower(path)] || !usernamePattern.MatchString(path) {
		return ""
	}
	return path
}

// Raw is the upstream data retained for diagnostics.
type Raw struct {
	User      *User
	Repos     []Repo
	Languages []map[string]int
}

// Analyzer implements profile.Analyzer for GitHub.
type Analyzer struct {
	api       API
	extractor *techstack.Extractor
	logger    *slog.Logger
}

// NewAnalyzer creates an Analyzer backed by api.
func NewAnalyzer(api API, extractor *techstack.Extractor, logger *slog.Logger) *Analyzer {
	if extractor == nil {
		extractor = techstack.New()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{api: api, extractor: extractor, logger: logger}
}

// Platform returns profile.PlatformGitHub.
func (*Analyzer) Platform() profile.Platform { return profile.PlatformGitHub }

// Validate checks that urlStr names a GitHub user.
func (*Analyzer) Validate(urlStr string) error {
	if extractUsername(urlStr) == "" {
		return fmt.Errorf("%w: GitHub URL %q must look like https://github.com/<username>", profile.ErrInvalidInput, urlStr)
	}
	return nil
}

// Analyze fetches the user and their repositories and derives a profile.
// A failure fetching one repository's languages or contributors is logged
// and skipped.
func (a *Analyzer) Analyze(ctx context.Context, urlStr string) (*profile.PlatformAnalysis, error) {
	username := extractUsername(urlStr)
	if username == "" {
		return nil, a.Validate(urlStr)
	}
	logger := a.logger.With("platform", profile.PlatformGitHub, "username", username)
	logger.InfoContext(ctx, "analyzing github profile")

	user, err := a.api.User(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%w: github user %s: %w", profile.ErrExtractorFailure, username, err)
	}
	all, err := a.api.Repos(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%w: github repos for %s: %w", profile.ErrExtractorFailure, username, err)
	}

	var repos []Repo
	for _, r := range all {
		if !r.Fork {
			repos = append(repos, r)
		}
	}

	langs := a.fetchRepoDetails(ctx, logger, username, repos)

	var stack profile.TechStack
	for _, l := range langs {
		for _, name := range sortedLanguages(l) {
			stack.Languages.Add(strings.ToLower(name), l[name])
		}
	}
	for _, r := range repos {
		a.extractor.ClassifyTags(&stack, r.Topics)
	}

	pers := profile.Personality{
		Interests: append([]string(nil), stack.Topics...),
		Communication: profile.Communication{
			Style:  style.CodeHost(repoStats(repos)),
			Topics: profile.Head(stack.Topics, communicationTopics),
		},
	}
	pers.AddActivity(user.Bio)
	pers.AddActivity(user.Company)
	pers.AddActivity(fmt.Sprintf("%d public repositories", user.PublicRepos))
	pers.AddActivity(fmt.Sprintf("%d followers", user.Followers))

	logger.DebugContext(ctx, "github analysis complete",
		"repos", len(repos), "languages", stack.Languages.Len(), "topics", len(stack.Topics))

	return &profile.PlatformAnalysis{
		Platform:    profile.PlatformGitHub,
		URL:         "https://github.com/" + username,
		TechStack:   stack,
		Personality: pers,
		Raw:         Raw{User: user, Repos: repos, Languages: langs},
	}, nil
}

// fetchRepoDetails fetches languages and contributors for every repo with
// bounded concurrency. Languages land in the slot matching their repo and
// contributors are stored on the repo itself; failed lookups stay empty.
func (a *Analyzer) fetchRepoDetails(ctx context.Context, logger *slog.Logger, owner string, repos []Repo) []map[string]int {
	out := make([]map[string]int, len(repos))
	var g errgroup.Group
	g.SetLimit(repoFetchLimit)
	for i, r := range repos {
		g.Go(func() error {
			l, err := a.api.Languages(ctx, owner, r.Name)
			if err != nil {
				logger.WarnContext(ctx, "skipping repository languages", "repo", r.Name, "error", err)
				return nil
			}
			out[i] = l
			return nil
		})
		g.Go(func() error {
			c, err := a.api.Contributors(ctx, owner, r.Name)
			if err != nil {
				logger.WarnContext(ctx, "skipping repository contributors", "repo", r.Name, "error", err)
				return nil
			}
			repos[i].Contributors = c
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // goroutines never return errors
	return out
}

// sortedLanguages orders names by byte count descending, then by name.
func sortedLanguages(l map[string]int) []string {
	names := make([]string, 0, len(l))
	for name := range l {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if l[names[i]] != l[names[j]] {
			return l[names[i]] > l[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

func repoStats(repos []Repo) style.CodeHostStats {
	s := style.CodeHostStats{Repos: len(repos)}
	for _, r := range repos {
		s.MaxStars = max(s.MaxStars, r.StargazersCount)
		s.LongestDescription = max(s.LongestDescription, utf8.RuneCountInString(r.Description))
		s.MaxContributors = max(s.MaxContributors, len(r.Contributors))
	}
	return s
}
