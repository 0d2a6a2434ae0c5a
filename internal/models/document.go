package models

// Page is one page of extracted document text, whitespace-normalized.
type Page struct {
	Number int    `json:"page"`
	Text   string `json:"text"`
}

// Chunk is the retrieval unit: a bounded span of document text carrying
// the section lineage recovered by the chunker.
type Chunk struct {
	ID                  string   `json:"id"`
	Pages               []int    `json:"pages"`
	SectionTitle        string   `json:"section_title"`
	SectionID           string   `json:"section_id,omitempty"`
	SectionParents      []string `json:"section_parents"`
	SectionLevel        int      `json:"section_level"`
	StructureConfidence float64  `json:"structure_confidence"`
	Text                string   `json:"text"`
}

// ChunkEmbedding pairs a chunk with its embedding vector and source file.
type ChunkEmbedding struct {
	Chunk          Chunk
	Embedding      []float32
	SourceFilename string
}

// Response is the final answer payload for one query.
type Response struct {
	Query   string
	Intent  string
	Source  string
	Pages   []int
	Content string
}
