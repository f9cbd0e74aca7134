// Package aggregate merges per-platform analyses into one result and renders
// the text summary.
package aggregate

import (
	"github.com/codeGROOVE-dev/stackscope/pkg/profile"
	"github.com/codeGROOVE-dev/stackscope/pkg/style"
)

// Merge combines the analyses of every platform that succeeded. Platforms
// that failed are simply absent from platforms. The result is never nil,
// and an empty input yields an empty result with a "no data" summary.
func Merge(platforms []profile.PlatformAnalysis) *profile.AnalysisResult {
	r := &profile.AnalysisResult{
		Platforms: append([]profile.PlatformAnalysis(nil), platforms...),
	}
	r.TechStack = mergeStacks(platforms)
	r.Personality = mergePersonalities(platforms)
	r.Summary = Render(r)
	return r
}

func mergeStacks(platforms []profile.PlatformAnalysis) profile.TechStack {
	var s profile.TechStack
	for _, p := range platforms {
		s.Languages.Merge(p.TechStack.Languages)
		s.Frameworks.Merge(p.TechStack.Frameworks)
		s.Tools.Merge(p.TechStack.Tools)
		s.Topics = profile.AppendUnique(s.Topics, p.TechStack.Topics...)
	}
	return s
}

func mergePersonalities(platforms []profile.PlatformAnalysis) profile.Personality {
	var (
		out        profile.Personality
		styles     []string
		workStyles []string
		freqSum    float64
		reported   bool
	)
	for _, p := range platforms {
		pers := p.Personality
		out.Interests = profile.AppendUnique(out.Interests, pers.Interests...)
		out.Activities = profile.AppendUnique(out.Activities, pers.Activities...)
		out.Communication.Topics = profile.AppendUnique(out.Communication.Topics, pers.Communication.Topics...)
		if pers.Communication.Style != "" {
			styles = append(styles, pers.Communication.Style)
		}
		if pers.WorkStyle != "" {
			workStyles = append(workStyles, pers.WorkStyle)
		}
		if f := pers.Communication.Frequency; f != nil {
			freqSum += *f
			reported = true
		}
	}

	out.Communication.Style = style.Compose(styles)
	// Platforms without a frequency still count toward the divisor.
	if reported {
		out.Communication.Frequency = profile.Ptr(freqSum / float64(len(platforms)))
	}
	out.WorkStyle = plurality(workStyles)
	return out
}

// plurality returns the most frequent label. Ties go to the label seen first.
func plurality(labels []string) string {
	counts := make(map[string]int, len(labels))
	best := ""
	for _, l := range labels {
		counts[l]++
	}
	for _, l := range labels {
		if counts[l] > counts[best] {
			best = l
		}
	}
	return best
}
