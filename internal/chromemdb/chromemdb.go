// Package chromemdb wraps the embedded chromem-go vector database behind
// the operations the pipeline needs: bulk chunk indexing, embedding
// nearest-neighbor search, and collection lifecycle.
package chromemdb

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/philippgille/chromem-go"
	"github.com/rs/zerolog/log"

	"document-copilot/internal/models"
	"document-copilot/internal/retriever"
)

// VectorDBManager encapsulates chromem-go database operations.
type VectorDBManager struct {
	db             *chromem.DB
	collection     *chromem.Collection
	dbPath         string
	collectionName string
	compress       bool
	encryptionKey  string
}

const compress = false

// NewVectorDBManager opens (or creates) the vector database. With inMemory
// set, nothing is persisted until Export is called.
func NewVectorDBManager(dbPath, collectionName string, inMemory bool, encryptionKey string) (*VectorDBManager, error) {
	var db *chromem.DB
	var err error
	if inMemory {
		db = chromem.NewDB()
	} else {
		db, err = chromem.NewPersistentDB(dbPath, compress)
		if err != nil {
			return nil, fmt.Errorf("failed to create database: %w", err)
		}
	}

	m := &VectorDBManager{
		db:             db,
		dbPath:         dbPath,
		collectionName: collectionName,
		compress:       compress,
		encryptionKey:  encryptionKey,
	}
	if m.collection, err = db.GetOrCreateCollection(collectionName, nil, nil); err != nil {
		return nil, fmt.Errorf("failed to create/get collection: %w", err)
	}
	return m, nil
}

// Reset drops and recreates the collection so a document can be re-indexed
// from scratch.
func (m *VectorDBManager) Reset() error {
	if err := m.db.DeleteCollection(m.collectionName); err != nil {
		return fmt.Errorf("failed to drop collection: %w", err)
	}
	c, err := m.db.GetOrCreateCollection(m.collectionName, nil, nil)
	if err != nil {
		return fmt.Errorf("failed to recreate collection: %w", err)
	}
	m.collection = c
	return nil
}

// AddChunks stores pre-embedded chunks with their canonical flat metadata.
func (m *VectorDBManager) AddChunks(ctx context.Context, docID string, embeddings []models.ChunkEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}

	docs := make([]chromem.Document, 0, len(embeddings))
	for _, ce := range embeddings {
		docs = append(docs, chromem.Document{
			ID:        docID + "-" + ce.Chunk.ID,
			Content:   ce.Chunk.Text,
			Metadata:  ChunkMetadata(ce.Chunk),
			Embedding: ce.Embedding,
		})
	}

	log.Info().Int("chunks", len(docs)).Str("document_id", docID).Msg("Adding chunks to vector database")
	if err := m.collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("failed to add documents: %w", err)
	}
	return nil
}

// Query runs an embedding nearest-neighbor search and returns raw hits with
// similarity converted to distance. k is capped at the collection size.
func (m *VectorDBManager) Query(ctx context.Context, embedding []float32, k int) ([]retriever.RawHit, error) {
	count := m.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}

	results, err := m.collection.QueryWithOptions(ctx, chromem.QueryOptions{
		QueryEmbedding: embedding,
		NResults:       k,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query by similarity: %w", err)
	}

	hits := make([]retriever.RawHit, len(results))
	for i, r := range results {
		hits[i] = retriever.RawHit{
			Text:     r.Content,
			Metadata: r.Metadata,
			Distance: 1.0 - float64(r.Similarity),
		}
	}
	return hits, nil
}

// Count reports the number of indexed chunks.
func (m *VectorDBManager) Count() int {
	return m.collection.Count()
}

// Export writes the collection to an encrypted file, for in-memory mode.
func (m *VectorDBManager) Export(ctx context.Context) error {
	if m.encryptionKey == "" {
		return fmt.Errorf("encryption key is required")
	}
	path := m.dbPath + "/" + m.collectionName + ".chromem"
	log.Debug().Str("path", path).Str("collection", m.collectionName).Msg("Exporting collection")
	if err := m.db.ExportToFile(path, m.compress, m.encryptionKey, m.collectionName); err != nil {
		return fmt.Errorf("failed to export database: %w", err)
	}
	return nil
}

// Import restores a previously exported collection.
func (m *VectorDBManager) Import(ctx context.Context) error {
	path := m.dbPath + "/" + m.collectionName + ".chromem"
	if err := m.db.ImportFromFile(path, m.encryptionKey); err != nil {
		return fmt.Errorf("failed to import database: %w", err)
	}
	if c := m.db.GetCollection(m.collectionName, nil); c != nil {
		m.collection = c
	}
	return nil
}

// ChunkMetadata flattens a chunk into the canonical metadata schema. Every
// key exists on every record; values are scalar strings.
func ChunkMetadata(chunk models.Chunk) map[string]string {
	pages := make([]string, len(chunk.Pages))
	for i, p := range chunk.Pages {
		pages[i] = strconv.Itoa(p)
	}
	return map[string]string{
		"pages":                strings.Join(pages, ","),
		"section_id":           chunk.SectionID,
		"section_title":        chunk.SectionTitle,
		"section_parents":      strings.Join(chunk.SectionParents, "|"),
		"section_level":        strconv.Itoa(chunk.SectionLevel),
		"structure_confidence": strconv.FormatFloat(chunk.StructureConfidence, 'f', -1, 64),
		"source":               "document",
	}
}
