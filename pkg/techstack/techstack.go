// Package techstack detects technologies and topics in short text items.
//
// One Extractor is shared by every platform analyzer. Platforms differ only
// in which methods they call and what they feed them: post text, deck titles,
// repository tags or code blocks.
package techstack

import (
	"strings"

	"github.com/codeGROOVE-dev/stackscope/pkg/profile"
	"github.com/codeGROOVE-dev/stackscope/pkg/taxonomy"
)

// Extractor applies keyword vocabularies to text.
type Extractor struct {
	matcher    Matcher
	languages  []string
	frameworks []string
	tools      []string
	topics     []string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMatcher replaces the default substring matching strategy.
func WithMatcher(m Matcher) Option {
	return func(e *Extractor) { e.matcher = m }
}

// WithVocabulary replaces the default taxonomy lists.
func WithVocabulary(languages, frameworks, tools, topics []string) Option {
	return func(e *Extractor) {
		e.languages = languages
		e.frameworks = frameworks
		e.tools = tools
		e.topics = topics
	}
}

// New creates an Extractor using the taxonomy package vocabularies and
// substring matching.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		matcher:    Substring{},
		languages:  taxonomy.Languages,
		frameworks: taxonomy.Frameworks,
		tools:      taxonomy.Tools,
		topics:     taxonomy.TechTopics,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Scan runs both the topic scan and the tech-stack scan over one text item.
func (e *Extractor) Scan(stack *profile.TechStack, text string) {
	e.ScanTopics(stack, text)
	e.ScanStack(stack, text)
}

// ScanTopics adds every tech-topic term found in text to the topic set.
func (e *Extractor) ScanTopics(stack *profile.TechStack, text string) {
	lower := strings.ToLower(text)
	for _, term := range e.topics {
		if e.matcher.Match(lower, term) {
			stack.AddTopic(term)
		}
	}
}

// ScanStack increments the language, framework and tool tallies once for
// every vocabulary term found in text.
func (e *Extractor) ScanStack(stack *profile.TechStack, text string) {
	lower := strings.ToLower(text)
	e.tallyAll(&stack.Languages, e.languages, lower)
	e.tallyAll(&stack.Frameworks, e.frameworks, lower)
	e.tallyAll(&stack.Tools, e.tools, lower)
}

// FoldTopics feeds the collected topics back into the tallies. Each topic
// adds at most one point per category: to the first term of that category
// it contains.
func (e *Extractor) FoldTopics(stack *profile.TechStack) {
	for _, topic := range stack.Topics {
		if term := e.first(e.languages, topic); term != "" {
			stack.Languages.Add(term, 1)
		}
		if term := e.first(e.frameworks, topic); term != "" {
			stack.Frameworks.Add(term, 1)
		}
		if term := e.first(e.tools, topic); term != "" {
			stack.Tools.Add(term, 1)
		}
	}
}

// ClassifyTags records tags as topics and tallies the frameworks and tools
// they mention. Languages are not derived from tags.
func (e *Extractor) ClassifyTags(stack *profile.TechStack, tags []string) {
	for _, tag := range tags {
		stack.AddTopic(tag)
		lower := strings.ToLower(tag)
		e.tallyAll(&stack.Frameworks, e.frameworks, lower)
		e.tallyAll(&stack.Tools, e.tools, lower)
	}
}

// ScanCodeBlock credits languages whose signature appears in a code block.
// Nothing is credited unless the block also carries a generic code marker.
// It returns the number of language increments.
func (e *Extractor) ScanCodeBlock(stack *profile.TechStack, block string) int {
	lower := strings.ToLower(block)
	if !containsAny(lower, taxonomy.CodeMarkers) {
		return 0
	}
	n := 0
	for _, sig := range taxonomy.LanguageSignatures {
		if containsAny(lower, sig.Markers) {
			stack.Languages.Add(sig.Language, 1)
			n++
		}
	}
	return n
}

// IsTechTopic reports whether text contains any tech-topic term.
func (e *Extractor) IsTechTopic(text string) bool {
	lower := strings.ToLower(text)
	return e.first(e.topics, lower) != ""
}

// ContainsAny reports whether the lower-cased text contains any of terms,
// using the configured matching strategy.
func (e *Extractor) ContainsAny(text string, terms []string) bool {
	return e.first(terms, strings.ToLower(text)) != ""
}

func (e *Extractor) tallyAll(t *profile.Tally, terms []string, lower string) {
	for _, term := range terms {
		if e.matcher.Match(lower, term) {
			t.Add(term, 1)
		}
	}
}

func (e *Extractor) first(terms []string, lower string) string {
	for _, term := range terms {
		if e.matcher.Match(lower, term) {
			return term
		}
	}
	return ""
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
