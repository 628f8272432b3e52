package domain

import "time"

// EmbeddingDimensions is the canonical embedding vector size.
// Every persisted chunk carries a vector of exactly this length.
const EmbeddingDimensions = 1536

// MaxDocumentBytes is the upload size ceiling (10 MiB).
// Checked against the declared size before the file is read in full.
const MaxDocumentBytes = 10 * 1024 * 1024

// DocumentKind distinguishes how a document entered the knowledge base.
type DocumentKind string

// Available document kinds.
const (
	// DocumentKindFile is an uploaded file processed through extraction.
	DocumentKindFile DocumentKind = "file"

	// DocumentKindFact is a question/answer pair added directly.
	DocumentKindFact DocumentKind = "fact"
)

// Document represents one uploaded source file after text extraction.
// It is owned exclusively by a tenant; deletion is logical.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// TenantID identifies the business profile that owns this document.
	TenantID string

	// Filename is the original upload filename.
	Filename string

	// MediaType is the detected (not declared) content type.
	MediaType string

	// SizeBytes is the raw upload size.
	SizeBytes int64

	// Content is the full extracted text.
	Content string

	// StoragePath is where the raw bytes live in the file store.
	// Empty for fact documents, which have no backing file.
	StoragePath string

	// Kind records how the document was created.
	Kind DocumentKind

	// CreatedAt is when the document was ingested.
	CreatedAt time.Time

	// DeletedAt marks logical deletion. A non-nil value excludes
	// the document's chunks from search without physical removal.
	DeletedAt *time.Time
}

// Deleted reports whether the document has been soft-deleted.
func (d *Document) Deleted() bool {
	return d.DeletedAt != nil
}

// Chunk is a contiguous, overlap-bounded slice of a document's text
// together with its embedding vector.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the exclusive parent document.
	DocumentID string

	// TenantID is denormalised from the document for query locality.
	TenantID string

	// Content is the text content of this chunk.
	Content string

	// Embedding is the vector representation, always
	// EmbeddingDimensions long. Chunks whose embedding could not be
	// generated are never persisted.
	Embedding []float32

	// Position is the ordinal position within the document.
	Position int

	// Synthetic is true when the embedding came from the naive
	// character-code fallback and carries no semantic meaning.
	Synthetic bool

	// CreatedAt is when the chunk was created.
	CreatedAt time.Time
}
