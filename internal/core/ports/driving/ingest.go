package driving

import "context"

// IngestReceipt summarises a successful ingestion.
type IngestReceipt struct {
	// DocumentID is the new document's identifier.
	DocumentID string

	// ChunkCount is how many chunks were embedded and persisted.
	ChunkCount int

	// SkippedChunks is how many chunks were dropped because their
	// embedding could not be generated.
	SkippedChunks int
}

// IngestService takes an uploaded file through extraction, chunking,
// embedding and persistence.
type IngestService interface {
	// Ingest processes raw upload bytes for a tenant. Fails with
	// domain.ErrUnsupportedType, ErrSizeExceeded, ErrExtractionFailed
	// or ErrEmptyContent; nothing is persisted on failure.
	Ingest(ctx context.Context, tenantID string, data []byte, filename string) (*IngestReceipt, error)
}
