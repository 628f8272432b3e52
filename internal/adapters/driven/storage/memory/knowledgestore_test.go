package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcadia-labs/bizkb/internal/core/domain"
)

func storeDocument(t *testing.T, s *KnowledgeStore, tenantID, filename string, embedding []float32) *domain.Document {
	t.Helper()
	doc := &domain.Document{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Filename:  filename,
		MediaType: "text/plain",
		Content:   "content",
		Kind:      domain.DocumentKindFile,
		CreatedAt: time.Now().UTC(),
	}
	chunks := []domain.Chunk{{
		ID:         uuid.New().String(),
		DocumentID: doc.ID,
		TenantID:   tenantID,
		Content:    "chunk",
		Embedding:  embedding,
		CreatedAt:  doc.CreatedAt,
	}}
	require.NoError(t, s.SaveDocument(context.Background(), doc, chunks))
	return doc
}

func TestSaveAndGetDocument(t *testing.T) {
	s := NewKnowledgeStore()
	doc := storeDocument(t, s, "tenant-1", "menu.txt", []float32{1, 0})

	got, err := s.GetDocument(context.Background(), "tenant-1", doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "menu.txt", got.Filename)

	_, err = s.GetDocument(context.Background(), "tenant-2", doc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSoftDelete(t *testing.T) {
	s := NewKnowledgeStore()
	ctx := context.Background()
	doc := storeDocument(t, s, "tenant-1", "menu.txt", []float32{1, 0})

	require.NoError(t, s.SoftDeleteDocument(ctx, "tenant-1", doc.ID))

	_, err := s.GetDocument(ctx, "tenant-1", doc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	results, err := s.Search(ctx, "tenant-1", []float32{1, 0}, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, results)

	assert.ErrorIs(t, s.SoftDeleteDocument(ctx, "tenant-1", doc.ID), domain.ErrNotFound)
}

func TestSearch_TenantScoped(t *testing.T) {
	s := NewKnowledgeStore()
	ctx := context.Background()
	storeDocument(t, s, "tenant-1", "a.txt", []float32{1, 0})
	storeDocument(t, s, "tenant-2", "b.txt", []float32{1, 0})

	results, err := s.Search(ctx, "tenant-1", []float32{1, 0}, 10, 0.4)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "a.txt", results[0].DocumentName)
}

func TestSearch_ThresholdAndOrder(t *testing.T) {
	s := NewKnowledgeStore()
	ctx := context.Background()
	storeDocument(t, s, "tenant-1", "close.txt", []float32{1, 0})
	storeDocument(t, s, "tenant-1", "near.txt", []float32{0.9, 0.1})
	storeDocument(t, s, "tenant-1", "far.txt", []float32{0, 1})

	results, err := s.Search(ctx, "tenant-1", []float32{1, 0}, 10, 0.4)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "close.txt", results[0].DocumentName)
	assert.Equal(t, "near.txt", results[1].DocumentName)
}
