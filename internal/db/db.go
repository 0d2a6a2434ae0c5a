// Package db persists chunks and their embeddings in Postgres (pgvector)
// as an alternative to the embedded chromem store.
package db

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"document-copilot/internal/models"
	"document-copilot/internal/retriever"
)

// ChunkRecord is the persisted form of a chunk plus its embedding.
type ChunkRecord struct {
	bun.BaseModel `bun:"table:chunks,alias:c"`

	ID                  int64     `bun:"id,pk,autoincrement"`
	ChunkID             string    `bun:"chunk_id,notnull"`
	DocumentID          string    `bun:"document_id,notnull"`
	Content             string    `bun:"content,notnull"`
	Pages               string    `bun:"pages,notnull"`
	SectionTitle        string    `bun:"section_title,notnull"`
	SectionID           string    `bun:"section_id"`
	SectionParents      string    `bun:"section_parents"`
	SectionLevel        int       `bun:"section_level,notnull"`
	StructureConfidence float64   `bun:"structure_confidence,notnull"`
	Embedding           []float32 `bun:"embedding,notnull,type:vector(768)"`
	Distance            float64   `bun:"distance,scanonly"`
}

func NewDB(sqldb *sql.DB, debug bool) *bun.DB {
	db := bun.NewDB(sqldb, pgdialect.New())
	if debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}
	return db
}

func ConnectDB(dsn, password string) (*sql.DB, error) {
	return sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn), pgdriver.WithPassword(password))), nil
}

func InitDB(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*ChunkRecord)(nil)).IfNotExists().Exec(ctx)
	return err
}

func DropChunks(ctx context.Context, db *bun.DB) error {
	_, err := db.NewDropTable().Model((*ChunkRecord)(nil)).IfExists().Exec(ctx)
	return err
}

// StoreChunks batch-inserts chunk embeddings for one document.
func StoreChunks(ctx context.Context, db *bun.DB, docID string, embeddings []models.ChunkEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}
	records := make([]ChunkRecord, len(embeddings))
	for i, ce := range embeddings {
		records[i] = toRecord(docID, ce)
	}
	_, err := db.NewInsert().Model(&records).Exec(ctx)
	return err
}

// SearchChunks runs a nearest-neighbor scan ordered by vector distance and
// converts the rows into raw retrieval hits.
func SearchChunks(ctx context.Context, db *bun.DB, embedding []float32, k int) ([]retriever.RawHit, error) {
	var records []ChunkRecord
	err := db.NewSelect().
		Model(&records).
		ColumnExpr("c.*").
		ColumnExpr("embedding <-> ? AS distance", embedding).
		OrderExpr("embedding <-> ?", embedding).
		Limit(k).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	hits := make([]retriever.RawHit, len(records))
	for i, r := range records {
		hits[i] = retriever.RawHit{
			Text: r.Content,
			Metadata: map[string]string{
				"pages":                r.Pages,
				"section_id":           r.SectionID,
				"section_title":        r.SectionTitle,
				"section_parents":      r.SectionParents,
				"section_level":        strconv.Itoa(r.SectionLevel),
				"structure_confidence": strconv.FormatFloat(r.StructureConfidence, 'f', -1, 64),
				"source":               "document",
			},
			Distance: r.Distance,
		}
	}
	return hits, nil
}

func toRecord(docID string, ce models.ChunkEmbedding) ChunkRecord {
	chunk := ce.Chunk
	pages := make([]string, len(chunk.Pages))
	for i, p := range chunk.Pages {
		pages[i] = strconv.Itoa(p)
	}
	return ChunkRecord{
		ChunkID:             chunk.ID,
		DocumentID:          docID,
		Content:             chunk.Text,
		Pages:               strings.Join(pages, ","),
		SectionTitle:        chunk.SectionTitle,
		SectionID:           chunk.SectionID,
		SectionParents:      strings.Join(chunk.SectionParents, "|"),
		SectionLevel:        chunk.SectionLevel,
		StructureConfidence: chunk.StructureConfidence,
		Embedding:           ce.Embedding,
	}
}
