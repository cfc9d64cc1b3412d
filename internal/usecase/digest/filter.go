package digest

import "strings"

// excludeKeywords marks non-research editorial content. Matching is a
// case-insensitive substring check against the combined title and abstract,
// so "News & Views" and "Research Highlights" both match.
var excludeKeywords = []string{
	"news",
	"editorial",
	"perspective",
	"comment",
	"correspondence",
	"viewpoint",
	"opinion",
	"highlight",
	"policy",
	"correction",
	"erratum",
	"retraction",
	"protocol",
	"methods",
	"methodology",
	"in brief",
	"brief communication",
	"obituary",
	"news feature",
	"book review",
	"conference report",
	"in this issue",
	"research highlight",
	"research news",
	"technical report",
}

// IsCoreResearch reports whether an entry looks like a primary research
// article. Entries whose title or abstract contain any exclusion keyword
// are editorial or administrative content and are dropped before the
// model ever sees them.
func IsCoreResearch(title, abstract string) bool {
	text := strings.ToLower(title + " " + abstract)
	for _, kw := range excludeKeywords {
		if strings.Contains(text, kw) {
			return false
		}
	}
	return true
}
