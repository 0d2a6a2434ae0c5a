package aggregate

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"document-copilot/internal/retriever"
)

func cand(text, sectionID string, pages ...string) retriever.Candidate {
	return retriever.Candidate{Text: text, SectionID: sectionID, Pages: pages}
}

func TestSectionRootBeforeSubsections(t *testing.T) {
	candidates := []retriever.Candidate{
		cand("sub ten", "3.10", "12"),
		cand("sub two", "3.2", "8"),
		cand("root", "3", "7"),
		cand("unrelated", "5.1", "20"),
	}

	res := Section(candidates, "3")
	assert.Equal(t, "3", res.Section)
	assert.Equal(t, 3, res.ChunksUsed)

	parts := strings.Split(res.Text, "\n\n")
	require.Len(t, parts, 3)
	assert.Equal(t, "root", parts[0])
	assert.Equal(t, "sub two", parts[1])
	assert.Equal(t, "sub ten", parts[2])
	assert.Equal(t, []int{7, 8, 12}, res.Pages)
}

func TestSectionNoMatches(t *testing.T) {
	res := Section([]retriever.Candidate{cand("other", "5.1", "3")}, "7")
	assert.Zero(t, res.ChunksUsed)
	assert.Empty(t, res.Text)
}

func TestSectionDoesNotMatchSharedPrefix(t *testing.T) {
	// "3.10" is not a subsection of "3.1".
	candidates := []retriever.Candidate{
		cand("target root", "3.1", "4"),
		cand("cousin", "3.10", "9"),
		cand("child", "3.1.2", "5"),
	}

	res := Section(candidates, "3.1")
	assert.Equal(t, 2, res.ChunksUsed)
	assert.NotContains(t, res.Text, "cousin")
}

func TestSectionCap(t *testing.T) {
	var candidates []retriever.Candidate
	candidates = append(candidates, cand("root", "4", "1"))
	for i := 1; i <= 10; i++ {
		candidates = append(candidates, cand(fmt.Sprintf("sub %d", i), fmt.Sprintf("4.%d", i), "2"))
	}

	res := Section(candidates, "4")
	assert.Equal(t, maxSectionChunks, res.ChunksUsed)
}

func TestDocumentSummaryPrefersEarlyPages(t *testing.T) {
	candidates := []retriever.Candidate{
		cand("late", "6.1", "14"),
		cand("intro", "1", "1"),
		cand("abstract", "", "1", "2"),
	}

	res := DocumentSummary(candidates)
	parts := strings.Split(res.Text, "\n\n")
	assert.Equal(t, "intro", parts[0])
	assert.Equal(t, "abstract", parts[1])
}

func TestDocumentSummaryFallbackFill(t *testing.T) {
	// Only 3 of 20 candidates touch pages 1-2; passes 2 and 3 must still
	// fill the summary without duplicates.
	var candidates []retriever.Candidate
	for i := 0; i < 3; i++ {
		candidates = append(candidates, cand(fmt.Sprintf("early %d", i), "7.1", "1"))
	}
	for i := 0; i < 17; i++ {
		candidates = append(candidates, cand(fmt.Sprintf("body %d", i), fmt.Sprintf("2.%d", i), "5"))
	}

	res := DocumentSummary(candidates)
	parts := strings.Split(res.Text, "\n\n")
	assert.GreaterOrEqual(t, len(parts), 6)

	seen := map[string]bool{}
	for _, p := range parts {
		assert.False(t, seen[p], "duplicate entry %q", p)
		seen[p] = true
	}
}

func TestDocumentSummaryStopsAfterEarlyPageCap(t *testing.T) {
	var candidates []retriever.Candidate
	for i := 0; i < 10; i++ {
		candidates = append(candidates, cand(fmt.Sprintf("early %d", i), "1.1", "1"))
	}

	res := DocumentSummary(candidates)
	assert.Equal(t, summaryEarlyPageCap, res.ChunksUsed)
}

func TestGlobal(t *testing.T) {
	candidates := []retriever.Candidate{
		cand("first", "2.1", "3"),
		cand("second", "", "1", "oops", "4"),
	}

	res := Global(candidates)
	assert.Equal(t, "first\n\nsecond", res.Text)
	assert.Equal(t, []int{1, 3, 4}, res.Pages)
	assert.Equal(t, 2, res.ChunksUsed)
}

func TestGlobalCap(t *testing.T) {
	var candidates []retriever.Candidate
	for i := 0; i < 20; i++ {
		candidates = append(candidates, cand(fmt.Sprintf("c%d", i), "", "1"))
	}
	res := Global(candidates)
	assert.Equal(t, maxGlobalChunks, res.ChunksUsed)
}

func TestGlobalEmpty(t *testing.T) {
	res := Global(nil)
	assert.Empty(t, res.Text)
	assert.Empty(t, res.Pages)
	assert.Zero(t, res.ChunksUsed)
}
