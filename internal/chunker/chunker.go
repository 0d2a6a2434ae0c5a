// Package chunker converts ordered pages of document text into bounded-size
// chunks annotated with heuristically recovered section lineage.
package chunker

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"document-copilot/internal/models"
	"document-copilot/internal/section"
)

// Section heuristics. Detection is best-effort: headings may be missed or
// false-positive, so every chunk carries a structure confidence instead of
// a boolean.
var (
	// Inline dotted numeral followed by a capitalized phrase, e.g. "4.1 Related Work".
	// The leading group rejects numerals glued to a preceding word character.
	inlineSectionPattern = regexp.MustCompile(`(?:^|[^0-9A-Za-z_])(\d+(?:\.\d+)*)\s+([A-Z][A-Za-z0-9 \-]{3,80})`)

	// Standalone all-uppercase line of at least 6 characters, e.g. "RELATED WORK".
	allCapsPattern = regexp.MustCompile(`^[A-Z][A-Z\s]{5,}$`)

	levelThreePattern = regexp.MustCompile(`^\d+\.\d+\.\d+`)
	levelTwoPattern   = regexp.MustCompile(`^\d+\.\d+`)

	blockSeparator   = regexp.MustCompile(`\n{2,}`)
	sentenceBoundary = regexp.MustCompile(`\.\s+[A-Z]`)
)

// scanState is the accumulator threaded through the page scan. Section
// continuity is strictly sequential by page order, so the scan itself must
// not be parallelized.
type scanState struct {
	chunks  []models.Chunk
	chunkID int

	currentSection string // "" when no section is active
	currentLevel   int

	buffer      string
	bufferPages map[int]struct{}
}

// ChunkPages performs a single left-to-right scan over the pages and returns
// the emitted chunks in order. Identical input always yields identical output.
func ChunkPages(pages []models.Page) []models.Chunk {
	state := &scanState{bufferPages: map[int]struct{}{}}

	for _, page := range pages {
		for _, block := range splitIntoBlocks(page.Text) {
			if title, ok := detectHeading(block); ok {
				// A heading closes the running buffer and never
				// contributes text to a chunk itself.
				state.flush()
				state.currentSection = title
				state.currentLevel = inferLevel(title)
				continue
			}

			state.buffer += " " + block
			state.bufferPages[page.Number] = struct{}{}

			if len(state.buffer) >= models.TargetChunkChars {
				state.flush()
			}
		}
	}

	state.flush()
	return state.chunks
}

// flush emits the buffered text as a chunk carrying the active section
// context. Buffers below the minimum size are dropped silently.
func (s *scanState) flush() {
	if len(s.buffer) < models.MinChunkChars {
		return
	}

	chunk := models.Chunk{
		ID:                  fmt.Sprintf("chunk_%05d", s.chunkID),
		Pages:               sortedPages(s.bufferPages),
		SectionTitle:        models.UnknownSection,
		SectionParents:      []string{},
		SectionLevel:        -1,
		StructureConfidence: models.UnstructuredConfidence,
		Text:                strings.TrimSpace(s.buffer),
	}

	if s.currentSection != "" {
		chunk.SectionTitle = s.currentSection
		chunk.SectionLevel = s.currentLevel
		chunk.StructureConfidence = models.StructuredConfidence
		if id, ok := section.ParseID(s.currentSection); ok {
			chunk.SectionID = id
			chunk.SectionParents = section.ParentChain(id)
		}
	}

	s.chunks = append(s.chunks, chunk)
	s.chunkID++
	s.buffer = ""
	s.bufferPages = map[int]struct{}{}
}

// splitIntoBlocks cuts page text at blank lines, splits oversized blocks at
// sentence boundaries, and drops sub-threshold fragments as noise.
func splitIntoBlocks(text string) []string {
	var refined []string
	for _, block := range blockSeparator.Split(text, -1) {
		block = strings.TrimSpace(block)
		if len(block) < models.MinBlockChars {
			continue
		}
		if len(block) > models.MaxChunkChars {
			for _, s := range splitSentences(block) {
				s = strings.TrimSpace(s)
				if len(s) >= models.MinBlockChars {
					refined = append(refined, s)
				}
			}
			continue
		}
		refined = append(refined, block)
	}
	return refined
}

// splitSentences cuts at a period followed by whitespace and a capital
// letter, keeping the period with the left part.
func splitSentences(block string) []string {
	var parts []string
	start := 0
	for _, loc := range sentenceBoundary.FindAllStringIndex(block, -1) {
		parts = append(parts, block[start:loc[0]+1])
		start = loc[1] - 1
	}
	parts = append(parts, block[start:])
	return parts
}

// detectHeading applies the two heading heuristics in fixed priority order.
// The inline pattern wins because it carries a structural id; the all-caps
// fallback yields an id-less heading.
func detectHeading(block string) (string, bool) {
	if m := inlineSectionPattern.FindStringSubmatch(block); m != nil {
		return m[1] + " " + strings.TrimSpace(m[2]), true
	}
	trimmed := strings.TrimSpace(block)
	if allCapsPattern.MatchString(trimmed) {
		return trimmed, true
	}
	return "", false
}

func inferLevel(title string) int {
	switch {
	case levelThreePattern.MatchString(title):
		return 3
	case levelTwoPattern.MatchString(title):
		return 2
	default:
		return 1
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
