// Package retriever turns raw nearest-neighbor hits into a ranked, capped
// candidate list by blending semantic similarity with intent-conditional
// lexical and structural priors.
package retriever

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/embeddings"

	"document-copilot/internal/intent"
)

const (
	// Weight of the semantic similarity term in the blended score.
	semanticWeight = 0.65

	// Number of candidates handed to aggregation.
	maxCandidates = 5
)

// RawHit is one nearest-neighbor result from the vector store. Distance is
// a dissimilarity, 0 meaning identical.
type RawHit struct {
	Text     string
	Metadata map[string]string
	Distance float64
}

// Candidate is a scored retrieval result prior to aggregation.
type Candidate struct {
	Text       string
	Pages      []string
	SectionID  string
	Confidence float64
}

// Searcher answers embedding nearest-neighbor queries. Implemented by the
// chromem wrapper and the Postgres chunk store.
type Searcher interface {
	Query(ctx context.Context, embedding []float32, k int) ([]RawHit, error)
}

// Retriever embeds queries and scores the resulting hits.
type Retriever struct {
	searcher Searcher
	embedder *embeddings.EmbedderImpl
}

func New(searcher Searcher, embedder *embeddings.EmbedderImpl) *Retriever {
	return &Retriever{searcher: searcher, embedder: embedder}
}

// Search embeds the query, fetches up to k raw hits and returns the scored
// top candidates for the given intent.
func (r *Retriever) Search(ctx context.Context, query string, it intent.Intent, k int) ([]Candidate, error) {
	embedding, err := r.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	hits, err := r.searcher.Query(ctx, embedding, k)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	candidates := ScoreHits(query, it, hits)
	log.Debug().
		Str("intent", it.String()).
		Int("hits", len(hits)).
		Int("candidates", len(candidates)).
		Msg("Scored retrieval candidates")
	return candidates, nil
}

// ScoreHits computes the blended relevance score for each hit, sorts by
// descending score keeping the vector search's order on ties, and truncates
// to the top candidates. Malformed metadata means no bonus applies; it is
// never an error.
func ScoreHits(query string, it intent.Intent, hits []RawHit) []Candidate {
	candidates := make([]Candidate, 0, len(hits))
	for _, hit := range hits {
		sectionID := hit.Metadata["section_id"]
		candidates = append(candidates, Candidate{
			Text:       hit.Text,
			Pages:      splitPages(hit.Metadata["pages"]),
			SectionID:  sectionID,
			Confidence: score(query, it, hit.Text, sectionID, hit.Distance),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})

	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}
	return candidates
}

// score blends the semantic base term with additive intent bonuses. The
// bonuses steer ranking around known failure modes (citation sections
// polluting results, definitional phrasing) without ever replacing the
// semantic term.
func score(query string, it intent.Intent, text, sectionID string, distance float64) float64 {
	s := semanticWeight * (1.0 - distance)

	lower := strings.ToLower(text)
	switch {
	case it == intent.Definition && strings.Contains(lower, "is"):
		s += 0.15
	case it == intent.Why && strings.Contains(lower, "because"):
		s += 0.15
	case it == intent.Section:
		s += 0.10
	}

	if it == intent.Section && sectionID != "" && strings.Contains(query, sectionID) {
		s += 0.15
	}

	// Section 9 is the references/bibliography by convention; penalize it
	// regardless of intent.
	if strings.HasPrefix(sectionID, "9") {
		s -= 0.25
	}

	if s < 0 {
		s = 0
	}
	return math.Round(s*1000) / 1000
}

func splitPages(csv string) []string {
	if csv == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	pages := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			pages = append(pages, p)
		}
	}
	return pages
}
