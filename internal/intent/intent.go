// Package intent classifies free-text queries into a closed set of intent
// categories via priority-ordered pattern matching.
package intent

import (
	"regexp"
	"strings"
)

// Intent is one of the closed query intent categories.
type Intent int

const (
	General Intent = iota
	Definition
	Section
	Explanation
	Comparison
	Why
	Fact
	DocumentSummary
)

var names = map[Intent]string{
	General:         "GENERAL",
	Definition:      "DEFINITION",
	Section:         "SECTION",
	Explanation:     "EXPLANATION",
	Comparison:      "COMPARISON",
	Why:             "WHY",
	Fact:            "FACT",
	DocumentSummary: "DOCUMENT_SUMMARY",
}

func (i Intent) String() string {
	if n, ok := names[i]; ok {
		return n
	}
	return "GENERAL"
}

// rule pairs an intent with its match predicate. Rules are evaluated in
// order and the first match wins; there is no scoring, only precedence.
// Structural routing (SECTION) outranks rhetorical framing (WHY etc.), so
// "why is section 3.2 important" resolves to SECTION.
type rule struct {
	intent   Intent
	patterns []*regexp.Regexp
	keywords []string
}

var sectionPattern = regexp.MustCompile(`\bsection\s+\d+(\.\d+)*|\b\d+(\.\d+)+\b`)

var rules = []rule{
	{intent: Section, patterns: []*regexp.Regexp{sectionPattern}},
	{intent: DocumentSummary, keywords: []string{
		"summarize",
		"summary",
		"overview",
		"abstract",
		"what does this paper propose",
		"main contribution",
		"key idea of this paper",
	}},
	{intent: Comparison, patterns: compile(`\bcompare\b`, `\bdifference\b`, `\bvs\b`, `\bversus\b`)},
	{intent: Why, patterns: compile(`\bwhy\b`, `\breason\b`)},
	{intent: Definition, patterns: compile(`\bdefine\b`, `\bwhat is\b`, `\bwhat are\b`, `\bmeaning of\b`)},
	{intent: Fact, patterns: compile(`\bhow many\b`, `\bhow much\b`, `\bwhat score\b`, `\bwhat value\b`, `\bwhat rate\b`)},
	{intent: Explanation, patterns: compile(`\bexplain\b`, `\bdescribe\b`, `\bhow does\b`, `\bhow do\b`)},
}

func compile(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

func (r rule) matches(q string) bool {
	for _, p := range r.patterns {
		if p.MatchString(q) {
			return true
		}
	}
	for _, k := range r.keywords {
		if strings.Contains(q, k) {
			return true
		}
	}
	return false
}

// Detect classifies a query. Classification is deterministic, stateless and
// case-insensitive.
func Detect(query string) Intent {
	q := strings.ToLower(strings.TrimSpace(query))
	for _, r := range rules {
		if r.matches(q) {
			return r.intent
		}
	}
	return General
}

var sectionIDChars = regexp.MustCompile(`[^0-9.]`)

// ExtractSectionID pulls the digits and dots out of a section query,
// e.g. "summarize section 3.2" -> "3.2". Empty means no section number
// was present; the caller must report that rather than aggregate against
// an empty id.
func ExtractSectionID(query string) string {
	return strings.Trim(sectionIDChars.ReplaceAllString(query, ""), ".")
}
