package rag

import "errors"

var (
	// ErrNoChunks means the document text produced no retrievable chunks.
	ErrNoChunks = errors.New("document produced no chunks")

	// ErrNoResults means the vector search returned nothing for the query.
	ErrNoResults = errors.New("no relevant content found")

	// ErrNoSectionID means a section query carried no parseable section number.
	ErrNoSectionID = errors.New("no section number in query")

	// ErrSectionNotFound means no retrieved chunk belongs to the requested
	// section or its subsections.
	ErrSectionNotFound = errors.New("section not found")
)
