package domain

import "time"

// DocumentType distinguishes top-level documents from their comments.
type DocumentType string

const (
	// TypeDocument is a top-level document (a Basecamp to-do).
	TypeDocument DocumentType = "DOCUMENT"

	// TypeComment is a comment attached to a parent document.
	TypeComment DocumentType = "COMMENT"
)

// Document is the normalised representation handed to the sink queue.
// A DOCUMENT carries its comments as Children, one level deep; a COMMENT
// never has children.
type Document struct {
	// ID is the source-assigned identifier, unique within a source.
	ID string

	// SourceID links to the Source that produced this document.
	SourceID string

	// Type is DOCUMENT or COMMENT.
	Type DocumentType

	// Title is the human-readable title (the creator's name for to-dos
	// and comments alike).
	Title string

	// Content is the plain-text body, or nil when the raw content was
	// empty or absent. Never an empty-string placeholder.
	Content *string

	// Author is the creator's display name.
	Author string

	// AuthorImageURL is the creator's avatar URL.
	AuthorImageURL string

	// Location is the name of the project the document belongs to.
	Location string

	// URL is the web location of the document. Comments point at the
	// parent's URL with a fragment identifier.
	URL string

	// Timestamp is the last-updated instant reported by the source.
	Timestamp time.Time

	// Children holds the comment documents in source order.
	// Only populated on DOCUMENT parents.
	Children []Document
}

// Project is a remote workspace grouping to-dos.
type Project struct {
	// ID is the remote project identifier.
	ID int64

	// Name is the project display name.
	Name string
}
