package services

import (
	"context"
	"strings"

	"github.com/arcadia-labs/bizkb/internal/core/domain"
	"github.com/arcadia-labs/bizkb/internal/core/ports/driven"
	"github.com/arcadia-labs/bizkb/internal/core/ports/driving"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService manages the tenant's ingested documents.
type DocumentService struct {
	store driven.KnowledgeStore
}

// NewDocumentService creates a new document service.
func NewDocumentService(store driven.KnowledgeStore) *DocumentService {
	return &DocumentService{store: store}
}

// List returns the tenant's non-deleted documents, newest first.
func (s *DocumentService) List(ctx context.Context, tenantID string) ([]domain.Document, error) {
	if strings.TrimSpace(tenantID) == "" {
		return nil, domain.ErrTenantRequired
	}
	return s.store.ListDocuments(ctx, tenantID)
}

// Preview returns one document with its extracted text.
func (s *DocumentService) Preview(ctx context.Context, tenantID, documentID string) (*domain.Document, error) {
	if strings.TrimSpace(tenantID) == "" {
		return nil, domain.ErrTenantRequired
	}
	if strings.TrimSpace(documentID) == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.store.GetDocument(ctx, tenantID, documentID)
}

// Delete soft-deletes a document; its chunks leave search immediately.
func (s *DocumentService) Delete(ctx context.Context, tenantID, documentID string) error {
	if strings.TrimSpace(tenantID) == "" {
		return domain.ErrTenantRequired
	}
	if strings.TrimSpace(documentID) == "" {
		return domain.ErrInvalidInput
	}
	return s.store.SoftDeleteDocument(ctx, tenantID, documentID)
}
