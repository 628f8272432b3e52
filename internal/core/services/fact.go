package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arcadia-labs/bizkb/internal/core/domain"
	"github.com/arcadia-labs/bizkb/internal/core/ports/driven"
	"github.com/arcadia-labs/bizkb/internal/core/ports/driving"
	"github.com/arcadia-labs/bizkb/internal/logger"
)

// factNameLimit caps the document name derived from a fact's question.
const factNameLimit = 64

// Ensure FactService implements the interface.
var _ driving.FactService = (*FactService)(nil)

// FactService manages directly-added question/answer knowledge. A fact
// is stored as a single-chunk document: the question is what gets
// embedded, the chunk carries both question and answer for context.
type FactService struct {
	embedder driven.EmbeddingService
	store    driven.KnowledgeStore
}

// NewFactService creates a new fact service.
func NewFactService(embedder driven.EmbeddingService, store driven.KnowledgeStore) *FactService {
	return &FactService{
		embedder: embedder,
		store:    store,
	}
}

// AddFact embeds the question and persists the pair. Questions whose
// embedding would be synthetic are rejected: a fact nobody can find is
// worse than an error the operator can retry.
func (s *FactService) AddFact(ctx context.Context, tenantID, question, answer string) (string, error) {
	question = strings.TrimSpace(question)
	answer = strings.TrimSpace(answer)

	if strings.TrimSpace(tenantID) == "" {
		return "", domain.ErrTenantRequired
	}
	if question == "" || answer == "" {
		return "", fmt.Errorf("question and answer are both required: %w", domain.ErrInvalidInput)
	}

	result, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return "", fmt.Errorf("embedding fact question: %w", err)
	}
	if result.Synthetic {
		return "", fmt.Errorf("no real embedding available for fact: %w", domain.ErrEmbeddingFailed)
	}

	now := time.Now().UTC()
	content := fmt.Sprintf("Question: %s\nAnswer: %s", question, answer)
	doc := &domain.Document{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Filename:  factName(question),
		MediaType: "text/plain",
		SizeBytes: int64(len(content)),
		Content:   content,
		Kind:      domain.DocumentKindFact,
		CreatedAt: now,
	}
	chunk := domain.Chunk{
		ID:         uuid.New().String(),
		DocumentID: doc.ID,
		TenantID:   tenantID,
		Content:    content,
		Embedding:  result.Vector,
		Position:   0,
		CreatedAt:  now,
	}

	if err := s.store.SaveDocument(ctx, doc, []domain.Chunk{chunk}); err != nil {
		return "", fmt.Errorf("persisting fact: %w", err)
	}

	logger.Info("Added fact %s for tenant %s", doc.ID, tenantID)
	return doc.ID, nil
}

// factName derives a display name from the question.
func factName(question string) string {
	if len(question) <= factNameLimit {
		return question
	}
	return question[:factNameLimit-3] + "..."
}
