package chromemdb

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"document-copilot/internal/models"
)

func TestChunkMetadata(t *testing.T) {
	chunk := models.Chunk{
		ID:                  "chunk_00003",
		Pages:               []int{1, 2, 10},
		SectionTitle:        "3.2 Method",
		SectionID:           "3.2",
		SectionParents:      []string{"3"},
		SectionLevel:        2,
		StructureConfidence: 0.9,
		Text:                "body",
	}

	md := ChunkMetadata(chunk)
	assert.Equal(t, "1,2,10", md["pages"])
	assert.Equal(t, "3.2", md["section_id"])
	assert.Equal(t, "3.2 Method", md["section_title"])
	assert.Equal(t, "3", md["section_parents"])
	assert.Equal(t, "2", md["section_level"])
	assert.Equal(t, "0.9", md["structure_confidence"])
	assert.Equal(t, "document", md["source"])
}

func TestChunkMetadataUnstructured(t *testing.T) {
	chunk := models.Chunk{
		ID:                  "chunk_00000",
		Pages:               []int{4},
		SectionTitle:        models.UnknownSection,
		SectionLevel:        -1,
		StructureConfidence: 0.2,
	}

	md := ChunkMetadata(chunk)
	assert.Equal(t, "", md["section_id"])
	assert.Equal(t, "", md["section_parents"])
	assert.Equal(t, "-1", md["section_level"])
	assert.Equal(t, "0.2", md["structure_confidence"])
}
