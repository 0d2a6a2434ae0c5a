package rag

import (
	"context"

	"github.com/uptrace/bun"

	"document-copilot/internal/chromemdb"
	"document-copilot/internal/db"
	"document-copilot/internal/models"
	"document-copilot/internal/retriever"
)

// Store is a chunk index backend: it can be wiped, loaded with embedded
// chunks, and searched by embedding.
type Store interface {
	Reset(ctx context.Context) error
	Store(ctx context.Context, docID string, embeddings []models.ChunkEmbedding) error
	Query(ctx context.Context, embedding []float32, k int) ([]retriever.RawHit, error)
}

// ChromemStore backs the index with the embedded chromem-go database.
type ChromemStore struct {
	manager *chromemdb.VectorDBManager
}

func NewChromemStore(manager *chromemdb.VectorDBManager) *ChromemStore {
	return &ChromemStore{manager: manager}
}

func (s *ChromemStore) Reset(ctx context.Context) error {
	return s.manager.Reset()
}

func (s *ChromemStore) Store(ctx context.Context, docID string, embeddings []models.ChunkEmbedding) error {
	return s.manager.AddChunks(ctx, docID, embeddings)
}

func (s *ChromemStore) Query(ctx context.Context, embedding []float32, k int) ([]retriever.RawHit, error) {
	return s.manager.Query(ctx, embedding, k)
}

// PostgresStore backs the index with a pgvector chunks table.
type PostgresStore struct {
	db *bun.DB
}

func NewPostgresStore(bunDB *bun.DB) *PostgresStore {
	return &PostgresStore{db: bunDB}
}

func (s *PostgresStore) Reset(ctx context.Context) error {
	if err := db.DropChunks(ctx, s.db); err != nil {
		return err
	}
	return db.InitDB(ctx, s.db)
}

func (s *PostgresStore) Store(ctx context.Context, docID string, embeddings []models.ChunkEmbedding) error {
	return db.StoreChunks(ctx, s.db, docID, embeddings)
}

func (s *PostgresStore) Query(ctx context.Context, embedding []float32, k int) ([]retriever.RawHit, error) {
	return db.SearchChunks(ctx, s.db, embedding, k)
}
