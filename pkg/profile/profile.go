// Package profile defines the common types for cross-platform tech profile analysis.
package profile

import (
	"errors"
	"strings"
)

// Common errors returned by platform packages.
var (
	// ErrInvalidInput marks a malformed or missing URL. It is surfaced to the
	// caller before any extractor runs.
	ErrInvalidInput = errors.New("invalid input")
	// ErrExtractorFailure marks a single platform's fetch, parse or API failure.
	ErrExtractorFailure = errors.New("extractor failure")
	ErrProfileNotFound  = errors.New("profile not found")
	ErrRateLimited      = errors.New("rate limited")
)

// TechStack is a technology profile for one platform or for the merged result.
type TechStack struct {
	Languages  Tally    `json:"languages"`
	Frameworks Tally    `json:"frameworks"`
	Tools      Tally    `json:"tools"`
	Topics     []string `json:"topics"`
}

// AddTopic records a topic. Topics are lower-cased and deduplicated.
func (s *TechStack) AddTopic(topic string) {
	topic = strings.ToLower(strings.TrimSpace(topic))
	if topic == "" {
		return
	}
	s.Topics = AppendUnique(s.Topics, topic)
}

// HasTopic reports whether topic was already collected.
func (s *TechStack) HasTopic(topic string) bool {
	topic = strings.ToLower(strings.TrimSpace(topic))
	for _, t := range s.Topics {
		if t == topic {
			return true
		}
	}
	return false
}

// Communication describes how a person communicates on a platform.
type Communication struct {
	Style     string   `json:"style,omitempty"`
	Frequency *float64 `json:"frequency,omitempty"` // posts per platform-specific unit of time
	Topics    []string `json:"topics,omitempty"`
}

// Personality is a behavioral profile for one platform or for the merged result.
type Personality struct {
	Interests     []string      `json:"interests,omitempty"`
	Activities    []string      `json:"activities,omitempty"`
	Communication Communication `json:"communication"`
	WorkStyle     string        `json:"workStyle,omitempty"`
}

// AddActivity records an activity fact. Blank entries and duplicates are dropped.
func (p *Personality) AddActivity(activity string) {
	activity = strings.TrimSpace(activity)
	if activity == "" {
		return
	}
	p.Activities = AppendUnique(p.Activities, activity)
}

// PlatformAnalysis is the analysis result for a single platform.
type PlatformAnalysis struct {
	Platform    Platform    `json:"platform"`
	URL         string      `json:"url"`
	TechStack   TechStack   `json:"techStack"`
	Personality Personality `json:"personality"`

	// Raw holds the upstream payload for diagnostics. It is not part of the
	// published result.
	Raw any `json:"-"`
}

// AnalysisResult is the merged output of one analysis request.
type AnalysisResult struct {
	Platforms   []PlatformAnalysis `json:"platforms"`
	TechStack   TechStack          `json:"techStack"`
	Personality Personality        `json:"personality"`
	Summary     string             `json:"summary"`
}

// AppendUnique appends the non-empty values not already present in dst,
// preserving first-seen order.
func AppendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		if v == "" {
			continue
		}
		found := false
		for _, existing := range dst {
			if existing == v {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, v)
		}
	}
	return dst
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// Head returns a copy of at most the first n elements of s.
func Head(s []string, n int) []string {
	if len(s) > n {
		s = s[:n]
	}
	return append([]string(nil), s...)
}
