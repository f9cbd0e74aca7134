package style

import (
	"github.com/codeGROOVE-dev/stackscope/pkg/taxonomy"
	"github.com/codeGROOVE-dev/stackscope/pkg/techstack"
)

// Work styles.
const (
	WorkTeamLeadership = "team-leadership oriented"
	WorkCollaboration  = "collaboration oriented"
	WorkSoloTechnical  = "solo deep-technical worker"
	WorkDetailOriented = "detail-oriented technically"
	WorkVision         = "vision/strategy oriented"
	WorkEducational    = "educational technical writer"
	WorkEducationFocus = "education oriented"
	WorkBalanced       = "balanced work style"
)

// Keywords records which work-style keyword categories occur in a corpus.
type Keywords struct {
	Leadership  bool
	Team        bool
	Individual  bool
	Technical   bool
	Educational bool
}

// DetectKeywords tests the corpus against every work-style keyword set.
func DetectKeywords(e *techstack.Extractor, corpus string) Keywords {
	return Keywords{
		Leadership:  e.ContainsAny(corpus, taxonomy.LeadershipKeywords),
		Team:        e.ContainsAny(corpus, taxonomy.TeamKeywords),
		Individual:  e.ContainsAny(corpus, taxonomy.IndividualKeywords),
		Technical:   e.ContainsAny(corpus, taxonomy.TechnicalKeywords),
		Educational: e.ContainsAny(corpus, taxonomy.EducationalKeywords),
	}
}

// SlideWorkStyle classifies work style for presentation corpora.
// The educational category is not considered.
func SlideWorkStyle(k Keywords) string {
	switch {
	case k.Leadership && k.Team:
		return WorkTeamLeadership
	case k.Team:
		return WorkCollaboration
	case k.Individual && k.Technical:
		return WorkSoloTechnical
	case k.Technical:
		return WorkDetailOriented
	case k.Leadership:
		return WorkVision
	default:
		return WorkBalanced
	}
}

// BlogWorkStyle classifies work style for blog corpora. Educational plus
// technical content outranks every other combination.
func BlogWorkStyle(k Keywords) string {
	if k.Educational && k.Technical {
		return WorkEducational
	}
	if s := SlideWorkStyle(k); s != WorkBalanced {
		return s
	}
	if k.Educational {
		return WorkEducationFocus
	}
	return WorkBalanced
}
