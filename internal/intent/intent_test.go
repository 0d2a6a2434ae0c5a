package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		query string
		want  Intent
	}{
		{"what is attention", Definition},
		{"define tokenization", Definition},
		{"meaning of perplexity", Definition},
		{"explain the training loop", Explanation},
		{"how does the encoder work", Explanation},
		{"describe the architecture", Explanation},
		{"compare cnn and rnn models", Comparison},
		{"transformers vs lstm", Comparison},
		{"difference between the baselines", Comparison},
		{"why does dropout help", Why},
		{"reason for the regularization term", Why},
		{"how many parameters does the model have", Fact},
		{"what score did it reach", Fact},
		{"summarize this paper", DocumentSummary},
		{"what does this paper propose", DocumentSummary},
		{"main contribution of the work", DocumentSummary},
		{"give me an overview", DocumentSummary},
		{"section 3.2", Section},
		{"tell me about 4.1.2", Section},
		{"something completely unrelated", General},
		{"", General},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Detect(tt.query), "query %q", tt.query)
	}
}

// Structural routing must take priority over rhetorical framing.
func TestDetectPrecedence(t *testing.T) {
	assert.Equal(t, Section, Detect("why section 4.2 matters"))
	assert.Equal(t, Section, Detect("summarize section 2"))
	assert.Equal(t, Section, Detect("explain 3.1 in detail"))
	assert.Equal(t, DocumentSummary, Detect("why not summarize the abstract"))
}

func TestDetectCaseInsensitive(t *testing.T) {
	assert.Equal(t, Why, Detect("WHY does this work"))
	assert.Equal(t, DocumentSummary, Detect("SUMMARIZE the document"))
}

func TestString(t *testing.T) {
	assert.Equal(t, "SECTION", Section.String())
	assert.Equal(t, "DOCUMENT_SUMMARY", DocumentSummary.String())
	assert.Equal(t, "GENERAL", General.String())
	assert.Equal(t, "GENERAL", Intent(99).String())
}

func TestExtractSectionID(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"summarize section 3.2", "3.2"},
		{"what is in 4.1.2 exactly", "4.1.2"},
		{"explain section 5.", "5"},
		{"no numbers here", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractSectionID(tt.query), "query %q", tt.query)
	}
}
