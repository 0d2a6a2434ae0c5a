package models

const (
	// Chunk size bounds in characters. Larger chunks carry more context,
	// smaller chunks retrieve more precisely; these are fixed, not adaptive.
	MinChunkChars    = 250
	TargetChunkChars = 400
	MaxChunkChars    = 700

	// Blocks shorter than this after trimming are treated as extraction noise.
	MinBlockChars = 40

	// Pages with less extracted text than this are skipped during ingest.
	MinPageChars = 100

	// UnknownSection marks chunks produced outside any detected section.
	UnknownSection = "UNKNOWN"

	// Structure confidence attached to every chunk. Section detection is
	// heuristic, so downstream ranking treats structure as a soft prior
	// rather than a boolean.
	StructuredConfidence   = 0.9
	UnstructuredConfidence = 0.2
)

// Sentinel answer strings surfaced to the user instead of an LLM call.
const (
	MsgNoRelevantContent = "No relevant content found in the document."
	MsgNoSectionContent  = "No content found for that section."
	MsgNoSectionNumber   = "Could not detect a section number in the question."
	MsgNoContext         = "No relevant information found in the document."
)
