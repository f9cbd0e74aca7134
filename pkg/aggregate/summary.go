package aggregate

import (
	"fmt"
	"strings"

	"github.com/codeGROOVE-dev/stackscope/pkg/profile"
)

const (
	topStack      = 3
	topInterests  = 5
	topActivities = 3
)

// NoData is the summary for a request in which no platform could be analyzed.
const NoData = "No data: none of the requested profiles could be analyzed."

// Render produces the fixed-template text report for r. The output depends
// only on r.
func Render(r *profile.AnalysisResult) string {
	if len(r.Platforms) == 0 {
		return NoData
	}

	names := make([]string, len(r.Platforms))
	for i, p := range r.Platforms {
		names[i] = p.Platform.DisplayName()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Tech profile based on %s\n\n", strings.Join(names, ", "))

	b.WriteString("Tech stack\n")
	writeTally(&b, "Languages", r.TechStack.Languages)
	writeTally(&b, "Frameworks", r.TechStack.Frameworks)
	writeTally(&b, "Tools", r.TechStack.Tools)

	pers := r.Personality
	b.WriteString("\nPersonality\n")
	fmt.Fprintf(&b, "- Interests: %s\n", orNone(strings.Join(profile.Head(pers.Interests, topInterests), ", ")))
	fmt.Fprintf(&b, "- Communication style: %s\n", orNone(pers.Communication.Style))
	fmt.Fprintf(&b, "- Work style: %s\n", orNone(pers.WorkStyle))

	var acts []string
	for _, a := range pers.Activities {
		if strings.TrimSpace(a) == "" {
			continue
		}
		acts = append(acts, a)
		if len(acts) == topActivities {
			break
		}
	}
	if len(acts) > 0 {
		b.WriteString("\nActivities\n")
		for _, a := range acts {
			fmt.Fprintf(&b, "- %s\n", a)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeTally(b *strings.Builder, label string, t profile.Tally) {
	ranked := t.Ranked()
	if len(ranked) > topStack {
		ranked = ranked[:topStack]
	}
	parts := make([]string, len(ranked))
	for i, s := range ranked {
		parts[i] = fmt.Sprintf("%s (%d)", s.Name, s.Score)
	}
	fmt.Fprintf(b, "- %s: %s\n", label, orNone(strings.Join(parts, ", ")))
}

func orNone(s string) string {
	if s == "" {
		return "none detected"
	}
	return s
}
