// Package memory provides in-memory implementations of driven port
// interfaces, primarily for tests and ephemeral runs.
package memory

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/arcadia-labs/bizkb/internal/core/domain"
	"github.com/arcadia-labs/bizkb/internal/core/ports/driven"
)

// Ensure KnowledgeStore implements the interface.
var _ driven.KnowledgeStore = (*KnowledgeStore)(nil)

// KnowledgeStore is an in-memory implementation of driven.KnowledgeStore.
type KnowledgeStore struct {
	mu        sync.RWMutex
	documents map[string]domain.Document
	chunks    map[string][]domain.Chunk // keyed by document ID
}

// NewKnowledgeStore creates a new in-memory knowledge store.
func NewKnowledgeStore() *KnowledgeStore {
	return &KnowledgeStore{
		documents: make(map[string]domain.Document),
		chunks:    make(map[string][]domain.Chunk),
	}
}

// SaveDocument stores a document and its chunks.
func (s *KnowledgeStore) SaveDocument(_ context.Context, doc *domain.Document, chunks []domain.Chunk) error {
	if doc == nil {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[doc.ID] = *doc
	s.chunks[doc.ID] = append([]domain.Chunk(nil), chunks...)
	return nil
}

// GetDocument retrieves a non-deleted document by ID, scoped to the tenant.
func (s *KnowledgeStore) GetDocument(_ context.Context, tenantID, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok || doc.TenantID != tenantID || doc.Deleted() {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// ListDocuments returns the tenant's non-deleted documents, newest first.
func (s *KnowledgeStore) ListDocuments(_ context.Context, tenantID string) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var docs []domain.Document
	for _, doc := range s.documents {
		if doc.TenantID == tenantID && !doc.Deleted() {
			docs = append(docs, doc)
		}
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
	return docs, nil
}

// SoftDeleteDocument marks a document deleted.
func (s *KnowledgeStore) SoftDeleteDocument(_ context.Context, tenantID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.documents[id]
	if !ok || doc.TenantID != tenantID || doc.Deleted() {
		return domain.ErrNotFound
	}
	now := time.Now().UTC()
	doc.DeletedAt = &now
	s.documents[id] = doc
	return nil
}

// Search returns the tenant's chunks most similar to the query vector.
func (s *KnowledgeStore) Search(_ context.Context, tenantID string, query []float32, topK int, minSimilarity float64) ([]domain.RetrievalResult, error) {
	if topK <= 0 {
		topK = domain.DefaultTopK
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []domain.RetrievalResult
	for docID, chunks := range s.chunks {
		doc, ok := s.documents[docID]
		if !ok || doc.TenantID != tenantID || doc.Deleted() {
			continue
		}
		for _, chunk := range chunks {
			sim := cosineSimilarity(query, chunk.Embedding)
			if sim < minSimilarity {
				continue
			}
			results = append(results, domain.RetrievalResult{
				Chunk:        chunk,
				DocumentName: doc.Filename,
				Similarity:   sim,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Similarity != results[j].Similarity {
			return results[i].Similarity > results[j].Similarity
		}
		return results[i].Chunk.CreatedAt.After(results[j].Chunk.CreatedAt)
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// Close releases resources.
func (s *KnowledgeStore) Close() error {
	return nil
}

// cosineSimilarity computes the cosine similarity of two vectors.
// Mismatched or empty vectors score zero.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
