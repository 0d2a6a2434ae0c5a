// Package aggregate composes ranked retrieval candidates into a single
// evidence context, with a strategy per query intent.
package aggregate

import (
	"sort"
	"strconv"
	"strings"

	"document-copilot/internal/retriever"
	"document-copilot/internal/section"
)

const (
	maxSectionChunks = 8
	maxGlobalChunks  = 12

	// Document-summary pass caps: early pages, low sections, remainder.
	summaryEarlyPageCap  = 6
	summaryLowSectionCap = 8
	summaryTotalCap      = 10
)

// Result is the final evidence payload handed to answer generation.
type Result struct {
	Pages      []int
	Text       string
	Section    string
	ChunksUsed int
}

// Section assembles evidence for a numbered-section query: the root section
// chunk first, then its subsections in dotted-numeric order. Zero collected
// chunks is a distinct condition the caller must surface as "no content for
// this section".
func Section(candidates []retriever.Candidate, sectionID string) Result {
	var root, subs []retriever.Candidate
	for _, c := range candidates {
		switch {
		case c.SectionID == sectionID:
			root = append(root, c)
		case strings.HasPrefix(c.SectionID, sectionID+"."):
			subs = append(subs, c)
		}
	}

	// Numeric segment ordering: 3.2 before 3.10, never lexical.
	sort.SliceStable(subs, func(i, j int) bool {
		return section.Compare(subs[i].SectionID, subs[j].SectionID) < 0
	})

	ordered := append(root, subs...)
	if len(ordered) > maxSectionChunks {
		ordered = ordered[:maxSectionChunks]
	}

	texts := make([]string, 0, len(ordered))
	pages := map[int]struct{}{}
	for _, c := range ordered {
		texts = append(texts, c.Text)
		unionPages(pages, c.Pages)
	}

	return Result{
		Pages:      sortedPages(pages),
		Text:       strings.Join(texts, "\n\n"),
		Section:    sectionID,
		ChunksUsed: len(texts),
	}
}

// DocumentSummary fills the context with a deterministic bias toward the
// document's front matter: papers conventionally put motivation and
// contributions on early pages and in low-numbered sections, so those are
// preferred before falling back to pure relevance order.
func DocumentSummary(candidates []retriever.Candidate) Result {
	var collected []string
	pages := map[int]struct{}{}

	seen := func(text string) bool {
		for _, t := range collected {
			if t == text {
				return true
			}
		}
		return false
	}

	// Pass 1: candidates touching page 1 or 2.
	for _, c := range candidates {
		if touchesEarlyPage(c.Pages) {
			collected = append(collected, c.Text)
			unionPages(pages, c.Pages)
		}
		if len(collected) >= summaryEarlyPageCap {
			break
		}
	}

	// Pass 2: low section numbers (introduction, background, method).
	if len(collected) < summaryEarlyPageCap {
		for _, c := range candidates {
			if hasLowSection(c.SectionID) && !seen(c.Text) {
				collected = append(collected, c.Text)
				unionPages(pages, c.Pages)
			}
			if len(collected) >= summaryLowSectionCap {
				break
			}
		}
	}

	// Pass 3: remainder in rank order.
	if len(collected) < summaryEarlyPageCap {
		for _, c := range candidates {
			if !seen(c.Text) {
				collected = append(collected, c.Text)
				unionPages(pages, c.Pages)
			}
			if len(collected) >= summaryTotalCap {
				break
			}
		}
	}

	return Result{
		Pages:      sortedPages(pages),
		Text:       strings.Join(collected, "\n\n"),
		ChunksUsed: len(collected),
	}
}

// Global takes the top-ranked candidates as-is. Simplest and the default
// for all non-structural intents.
func Global(candidates []retriever.Candidate) Result {
	if len(candidates) > maxGlobalChunks {
		candidates = candidates[:maxGlobalChunks]
	}

	texts := make([]string, 0, len(candidates))
	pages := map[int]struct{}{}
	for _, c := range candidates {
		texts = append(texts, c.Text)
		unionPages(pages, c.Pages)
	}

	return Result{
		Pages:      sortedPages(pages),
		Text:       strings.Join(texts, "\n\n"),
		ChunksUsed: len(texts),
	}
}

func touchesEarlyPage(pages []string) bool {
	for _, p := range pages {
		if p == "1" || p == "2" {
			return true
		}
	}
	return false
}

func hasLowSection(id string) bool {
	return strings.HasPrefix(id, "1") ||
		strings.HasPrefix(id, "2") ||
		strings.HasPrefix(id, "3")
}

// unionPages folds page-number strings into the set, skipping anything
// non-numeric.
func unionPages(set map[int]struct{}, pages []string) {
	for _, p := range pages {
		if n, err := strconv.Atoi(strings.TrimSpace(p)); err == nil {
			set[n] = struct{}{}
		}
	}
}

func sortedPages(set map[int]struct{}) []int {
	pages := make([]int, 0, len(set))
	for p := range set {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	return pages
}
