package style

import (
	"sort"
	"strings"

	"github.com/codeGROOVE-dev/stackscope/pkg/taxonomy"
)

// Compose merges per-platform style labels into one label.
//
// No labels yields Insufficient and a single label is returned verbatim.
// Otherwise each label is matched against the taxonomy style categories and
// the one or two categories matched by the most labels name the result,
// e.g. "technical and detailed style". When no category matches, the first
// label is returned.
func Compose(labels []string) string {
	switch len(labels) {
	case 0:
		return Insufficient
	case 1:
		return labels[0]
	}

	type hit struct {
		name  string
		count int
	}
	var hits []hit
	for _, cat := range taxonomy.StyleCategories {
		n := 0
		for _, label := range labels {
			if matchesAny(strings.ToLower(label), cat.Patterns) {
				n++
			}
		}
		if n > 0 {
			hits = append(hits, hit{name: cat.Name, count: n})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].count > hits[j].count })

	switch len(hits) {
	case 0:
		return labels[0]
	case 1:
		return hits[0].name + " style"
	default:
		return hits[0].name + " and " + hits[1].name + " style"
	}
}

func matchesAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
