// Package taxonomy holds the static keyword vocabularies used to detect
// technologies, topics and working styles in free text.
//
// All entries are lower-case. Slice order is significant: several
// heuristics pick the first matching entry.
package taxonomy

// Languages are programming languages. Single-letter and short names such
// as "r" and "go" are kept even though substring matching makes them noisy.
var Languages = []string{
	"javascript",
	"typescript",
	"python",
	"java",
	"go",
	"rust",
	"ruby",
	"php",
	"c++",
	"c#",
	"swift",
	"kotlin",
	"scala",
	"dart",
	"elixir",
	"haskell",
	"r",
}

// Frameworks are application frameworks and major libraries.
var Frameworks = []string{
	"react",
	"vue",
	"angular",
	"svelte",
	"next.js",
	"nuxt",
	"express",
	"django",
	"flask",
	"fastapi",
	"rails",
	"spring",
	"laravel",
	"gin",
	"echo",
	"flutter",
	"tensorflow",
	"pytorch",
}

// Tools are infrastructure, data stores and developer tooling.
var Tools = []string{
	"docker",
	"kubernetes",
	"terraform",
	"git",
	"aws",
	"gcp",
	"azure",
	"jenkins",
	"circleci",
	"ansible",
	"webpack",
	"vite",
	"graphql",
	"postgresql",
	"mysql",
	"mongodb",
	"redis",
	"nginx",
	"linux",
}

// TechTopics is the broad technology vocabulary. It is a superset of the
// three category lists plus generic subject terms.
var TechTopics = concat(Languages, Frameworks, Tools, []string{
	"ai",
	"machine learning",
	"deep learning",
	"llm",
	"cloud",
	"testing",
	"ui",
	"ux",
	"devops",
	"security",
	"frontend",
	"backend",
	"database",
	"api",
	"microservices",
	"serverless",
	"web",
	"mobile",
	"data science",
	"performance",
	"architecture",
	"open source",
})

// CodeMarkers are generic substrings indicating a block contains source code.
var CodeMarkers = []string{
	"function",
	"class",
	"import",
	"from",
	"def ",
	"var ",
	"const ",
	"let ",
}

// LanguageSignature pairs a language with substrings that identify it in a
// code block.
type LanguageSignature struct {
	Language string
	Markers  []string
}

// LanguageSignatures are checked in order against code blocks that already
// contain a CodeMarker.
var LanguageSignatures = []LanguageSignature{
	{Language: "python", Markers: []string{"def ", "import "}},
	{Language: "go", Markers: []string{"func ", "package "}},
	{Language: "javascript", Markers: []string{"function", "const ", "=>"}},
	{Language: "typescript", Markers: []string{"interface ", ": string", ": number"}},
	{Language: "java", Markers: []string{"public class", "system.out"}},
	{Language: "rust", Markers: []string{"fn ", "let mut"}},
	{Language: "ruby", Markers: []string{"require '", "puts "}},
	{Language: "php", Markers: []string{"<?php", "echo "}},
}

// TechAccounts are well-known technical microblog accounts. A mention of one
// counts as interest in the account's subject.
var TechAccounts = []string{
	"golang",
	"rustlang",
	"typescript",
	"reactjs",
	"vuejs",
	"nodejs",
	"docker",
	"kubernetesio",
	"github",
	"python_tip",
	"awscloud",
	"googlecloud",
}

// SlideTechnicalKeywords mark a presentation as technical content.
var SlideTechnicalKeywords = []string{
	"implementation",
	"architecture",
	"performance",
	"design",
	"api",
	"code",
	"実装",
	"設計",
}

func concat(lists ...[]string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, l := range lists {
		for _, s := range l {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}
