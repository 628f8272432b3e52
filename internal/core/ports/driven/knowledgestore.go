package driven

import (
	"context"

	"github.com/arcadia-labs/bizkb/internal/core/domain"
)

// KnowledgeStore persists documents and their embedded chunks and
// serves tenant-scoped similarity search.
type KnowledgeStore interface {
	// SaveDocument stores a document and its chunks atomically.
	// Partially-processed documents are never visible: the whole
	// pipeline runs before this is called.
	SaveDocument(ctx context.Context, doc *domain.Document, chunks []domain.Chunk) error

	// GetDocument retrieves a document by ID, scoped to the tenant.
	GetDocument(ctx context.Context, tenantID, id string) (*domain.Document, error)

	// ListDocuments returns the tenant's non-deleted documents.
	ListDocuments(ctx context.Context, tenantID string) ([]domain.Document, error)

	// SoftDeleteDocument marks a document deleted. Its chunks drop out
	// of search immediately; nothing is physically removed.
	SoftDeleteDocument(ctx context.Context, tenantID, id string) error

	// Search returns the tenant's chunks most similar to the query
	// vector. Results are ordered by descending cosine similarity with
	// ties broken by newer chunk creation time; anything below
	// minSimilarity is dropped; soft-deleted documents are excluded.
	// A tenant with no chunks yields an empty list, not an error.
	Search(ctx context.Context, tenantID string, query []float32, topK int, minSimilarity float64) ([]domain.RetrievalResult, error)

	// Close releases resources.
	Close() error
}
