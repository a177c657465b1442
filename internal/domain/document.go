package domain

import "time"

// Document is a single ingested piece of source text: pasted prose, the
// full extracted text of one PDF, or one crawled web page. Documents are created
// once per ingest call and are never mutated or deleted.
type Document struct {
	DocID     string
	Title     string
	CreatedAt time.Time
}

// NewDocument constructs a Document, defaulting an empty title to
// "Untitled" per the data model (§3).
func NewDocument(docID, title string, createdAt time.Time) *Document {
	if title == "" {
		title = "Untitled"
	}
	return &Document{DocID: docID, Title: title, CreatedAt: createdAt}
}
