package driving

import (
	"context"

	"github.com/arcadia-labs/bizkb/internal/core/domain"
)

// ChatService answers tenant questions grounded in the knowledge base.
type ChatService interface {
	// Answer runs the retrieval pipeline and generates a response.
	// It never propagates provider failures: exhaustion degrades to a
	// safe apology answer with State set to FAILED_SAFE.
	Answer(ctx context.Context, tenantID, query string, profile *domain.TenantProfile, history []domain.ConversationTurn) (*domain.Answer, error)
}

// FactService manages directly-added question/answer knowledge.
type FactService interface {
	// AddFact embeds the question and persists the pair as a
	// single-chunk fact document. Fails with domain.ErrEmbeddingFailed
	// when no real embedding could be generated.
	AddFact(ctx context.Context, tenantID, question, answer string) (string, error)
}

// DocumentService manages the tenant's ingested documents.
type DocumentService interface {
	// List returns the tenant's non-deleted documents.
	List(ctx context.Context, tenantID string) ([]domain.Document, error)

	// Preview returns one document with its extracted text.
	Preview(ctx context.Context, tenantID, documentID string) (*domain.Document, error)

	// Delete soft-deletes a document; its chunks leave search
	// immediately.
	Delete(ctx context.Context, tenantID, documentID string) error
}
