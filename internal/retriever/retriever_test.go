package retriever

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"document-copilot/internal/intent"
)

func hit(text, sectionID string, distance float64) RawHit {
	return RawHit{
		Text:     text,
		Metadata: map[string]string{"section_id": sectionID, "pages": "1,2"},
		Distance: distance,
	}
}

func TestScoreHitsBaseTerm(t *testing.T) {
	cands := ScoreHits("anything", intent.General, []RawHit{hit("plain text", "", 0.4)})
	require.Len(t, cands, 1)
	assert.InDelta(t, 0.65*0.6, cands[0].Confidence, 0.001)
}

func TestScoreHitsMonotonicInDistance(t *testing.T) {
	var prev float64 = 2.0
	for d := 0.0; d <= 1.0; d += 0.1 {
		cands := ScoreHits("q", intent.General, []RawHit{hit("text", "", d)})
		require.Len(t, cands, 1)
		assert.Less(t, cands[0].Confidence, prev, "distance %f", d)
		prev = cands[0].Confidence
	}
}

func TestScoreHitsDefinitionBonus(t *testing.T) {
	with := ScoreHits("what is x", intent.Definition, []RawHit{hit("X is a method", "", 0.2)})
	without := ScoreHits("what is x", intent.Definition, []RawHit{hit("a method", "", 0.2)})
	assert.InDelta(t, 0.15, with[0].Confidence-without[0].Confidence, 0.001)
}

func TestScoreHitsWhyBonus(t *testing.T) {
	with := ScoreHits("why x", intent.Why, []RawHit{hit("because of y", "", 0.2)})
	without := ScoreHits("why x", intent.Why, []RawHit{hit("owing to y", "", 0.2)})
	assert.InDelta(t, 0.15, with[0].Confidence-without[0].Confidence, 0.001)
}

func TestScoreHitsSectionBonuses(t *testing.T) {
	// Unconditional +0.10 for section intent.
	base := ScoreHits("section query", intent.Section, []RawHit{hit("text", "", 0.2)})
	assert.InDelta(t, 0.65*0.8+0.10, base[0].Confidence, 0.001)

	// Further +0.15 when the candidate's section id appears in the query.
	matched := ScoreHits("summarize section 3.2", intent.Section, []RawHit{hit("text", "3.2", 0.2)})
	assert.InDelta(t, 0.65*0.8+0.10+0.15, matched[0].Confidence, 0.001)
}

func TestScoreHitsReferencesPenalty(t *testing.T) {
	penalized := ScoreHits("q", intent.General, []RawHit{hit("ref entry", "9.1", 0.2)})
	clean := ScoreHits("q", intent.General, []RawHit{hit("ref entry", "8.1", 0.2)})
	assert.InDelta(t, 0.25, clean[0].Confidence-penalized[0].Confidence, 0.001)
}

func TestScoreHitsFloorAtZero(t *testing.T) {
	cands := ScoreHits("q", intent.General, []RawHit{hit("far away", "9.2", 2.0)})
	require.Len(t, cands, 1)
	assert.GreaterOrEqual(t, cands[0].Confidence, 0.0)
	assert.Equal(t, 0.0, cands[0].Confidence)
}

func TestScoreHitsStableOrderOnTies(t *testing.T) {
	hits := make([]RawHit, 4)
	for i := range hits {
		hits[i] = hit(fmt.Sprintf("tied %d", i), "", 0.5)
	}
	cands := ScoreHits("q", intent.General, hits)
	require.Len(t, cands, 4)
	for i, c := range cands {
		assert.Equal(t, fmt.Sprintf("tied %d", i), c.Text)
	}
}

func TestScoreHitsTruncatesToTopFive(t *testing.T) {
	var hits []RawHit
	for i := 0; i < 12; i++ {
		hits = append(hits, hit(fmt.Sprintf("hit %d", i), "", float64(i)*0.05))
	}
	cands := ScoreHits("q", intent.General, hits)
	require.Len(t, cands, 5)
	// Lowest distance ranks first.
	assert.Equal(t, "hit 0", cands[0].Text)
}

func TestScoreHitsMalformedMetadata(t *testing.T) {
	cands := ScoreHits("q", intent.Section, []RawHit{{Text: "bare", Distance: 0.3}})
	require.Len(t, cands, 1)
	assert.Empty(t, cands[0].SectionID)
	assert.Empty(t, cands[0].Pages)
	assert.InDelta(t, 0.65*0.7+0.10, cands[0].Confidence, 0.001)
}

func TestSplitPages(t *testing.T) {
	assert.Equal(t, []string{"1", "2", "10"}, splitPages("1,2,10"))
	assert.Equal(t, []string{"3"}, splitPages(" 3 "))
	assert.Nil(t, splitPages(""))
}
