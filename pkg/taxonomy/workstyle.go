package taxonomy

// Work-style keyword sets. Each set mixes English and Japanese terms because
// the corpora these are matched against are frequently bilingual.
var (
	LeadershipKeywords = []string{
		"lead", "leader", "manage", "management", "strategy", "vision", "organization",
		"リーダー", "マネジメント", "戦略", "組織",
	}
	TeamKeywords = []string{
		"team", "collaborat", "together", "pair", "community",
		"チーム", "協力", "コミュニティ",
	}
	IndividualKeywords = []string{
		"personal", "solo", "individual", "side project", "myself",
		"個人", "趣味",
	}
	TechnicalKeywords = []string{
		"implement", "architecture", "performance", "algorithm", "optimiz", "internals", "deep dive",
		"実装", "設計", "最適化", "アルゴリズム",
	}
	EducationalKeywords = []string{
		"teach", "learn", "tutorial", "guide", "introduction", "beginner", "how to",
		"入門", "解説", "学習", "チュートリアル", "初心者",
	}
)

// StyleCategory is a named group of patterns used to classify free-form
// style labels when several platforms are merged.
type StyleCategory struct {
	Name     string
	Patterns []string
}

// StyleCategories are evaluated in order; the order also breaks ties.
var StyleCategories = []StyleCategory{
	{Name: "technical", Patterns: []string{"technical", "technically", "specializes"}},
	{Name: "educational", Patterns: []string{"documentation", "knowledge", "explanation", "educational"}},
	{Name: "leadership", Patterns: []string{"leadership", "vision", "strategy"}},
	{Name: "team-oriented", Patterns: []string{"collaborat", "dialogue", "team"}},
	{Name: "individual", Patterns: []string{"personal", "solo", "individual"}},
	{Name: "concise", Patterns: []string{"concise"}},
	{Name: "detailed", Patterns: []string{"detailed", "detail"}},
	{Name: "balanced", Patterns: []string{"balanced"}},
	{Name: "influential", Patterns: []string{"influential", "prolific", "actively shares"}},
}
