// Package rag orchestrates the pipeline: document ingestion into a chunk
// index, and intent-aware query answering over it.
package rag

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/embeddings"

	"document-copilot/internal/aggregate"
	"document-copilot/internal/chunker"
	"document-copilot/internal/config"
	"document-copilot/internal/embedding"
	"document-copilot/internal/helper"
	"document-copilot/internal/intent"
	"document-copilot/internal/llmservice"
	"document-copilot/internal/models"
	"document-copilot/internal/parser"
	"document-copilot/internal/retriever"
)

type RAG struct {
	store     Store
	retriever *retriever.Retriever
	embedder  *embeddings.EmbedderImpl
	cfg       *config.Config

	// retrievalOnly skips answer generation and returns the aggregated
	// context verbatim.
	retrievalOnly bool
}

func NewRAG(store Store, embedder *embeddings.EmbedderImpl, cfg *config.Config, retrievalOnly bool) *RAG {
	return &RAG{
		store:         store,
		retriever:     retriever.New(store, embedder),
		embedder:      embedder,
		cfg:           cfg,
		retrievalOnly: retrievalOnly,
	}
}

// Index extracts, chunks and embeds the document, then replaces the store
// contents with the result.
func (r *RAG) Index(ctx context.Context, filePath string) error {
	docID, err := parser.DocumentID(filePath)
	if err != nil {
		return fmt.Errorf("hashing document: %w", err)
	}

	pages, err := parser.ExtractPages(filePath)
	if err != nil {
		return fmt.Errorf("extracting pages: %w", err)
	}
	if len(pages) == 0 {
		return fmt.Errorf("%s: no extractable text: %w", filePath, ErrNoChunks)
	}

	chunks := chunker.ChunkPages(pages)
	if len(chunks) == 0 {
		return fmt.Errorf("%s: %w", filePath, ErrNoChunks)
	}

	structured := 0
	for _, c := range chunks {
		if c.SectionTitle != models.UnknownSection {
			structured++
		}
	}
	log.Info().
		Str("document_id", docID).
		Int("pages", len(pages)).
		Int("chunks", len(chunks)).
		Int("structured", structured).
		Int("unstructured", len(chunks)-structured).
		Msg("Chunked document")

	embedded, err := embedding.EmbedChunks(ctx, r.embedder, filepath.Base(filePath), chunks)
	if err != nil {
		return fmt.Errorf("embedding chunks: %w", err)
	}

	if err := r.store.Reset(ctx); err != nil {
		return fmt.Errorf("resetting store: %w", err)
	}
	if err := r.store.Store(ctx, docID, embedded); err != nil {
		return fmt.Errorf("storing chunks: %w", err)
	}
	return nil
}

// Query runs the full retrieval pipeline for one question: intent
// detection, scored vector search, intent-specific aggregation and,
// unless retrieval-only mode is on, grounded answer generation.
func (r *RAG) Query(ctx context.Context, query string) (*models.Response, error) {
	requestID, err := helper.GenerateUUID()
	if err != nil {
		return nil, err
	}
	logger := log.With().Str("request_id", requestID).Logger()

	it := intent.Detect(query)
	logger.Info().Str("intent", it.String()).Str("query", query).Msg("Detected query intent")

	candidates, err := r.retriever.Search(ctx, query, it, r.cfg.RAG.TopK)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, ErrNoResults
	}

	result, source, err := r.aggregate(query, it, candidates)
	if err != nil {
		return nil, err
	}
	logger.Debug().
		Int("chunks_used", result.ChunksUsed).
		Ints("pages", result.Pages).
		Msg("Aggregated context")

	content := result.Text
	if !r.retrievalOnly {
		content, err = llmservice.Answer(ctx, &r.cfg.AnswerLLM, query, result.Text, it)
		if err != nil {
			return nil, fmt.Errorf("generating answer: %w", err)
		}
	}

	return &models.Response{
		Query:   query,
		Intent:  it.String(),
		Source:  source,
		Pages:   result.Pages,
		Content: content,
	}, nil
}

func (r *RAG) aggregate(query string, it intent.Intent, candidates []retriever.Candidate) (aggregate.Result, string, error) {
	switch it {
	case intent.Section:
		id := intent.ExtractSectionID(query)
		if id == "" {
			return aggregate.Result{}, "", ErrNoSectionID
		}
		result := aggregate.Section(candidates, id)
		if result.ChunksUsed == 0 {
			return aggregate.Result{}, "", fmt.Errorf("section %s: %w", id, ErrSectionNotFound)
		}
		return result, "section " + id, nil
	case intent.DocumentSummary:
		return aggregate.DocumentSummary(candidates), "document", nil
	default:
		return aggregate.Global(candidates), "document", nil
	}
}
