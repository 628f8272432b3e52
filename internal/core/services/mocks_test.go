package services

import (
	"context"
	"path/filepath"

	"github.com/arcadia-labs/bizkb/internal/core/domain"
	"github.com/arcadia-labs/bizkb/internal/core/ports/driven"
)

// Hand-rolled mocks shared by the service tests. Each mock records
// calls and delegates to an optional override function.

// ==================== Extractors ====================

type mockExtractor struct {
	text string
	err  error
}

func (m *mockExtractor) SupportedMediaTypes() []string { return []string{"text/plain"} }

func (m *mockExtractor) Extract(_ context.Context, _ []byte) (string, error) {
	return m.text, m.err
}

type mockRegistry struct {
	mediaType string
	extractor driven.Extractor
	found     bool
}

func newMockRegistry(text string) *mockRegistry {
	return &mockRegistry{
		mediaType: "text/plain",
		extractor: &mockExtractor{text: text},
		found:     true,
	}
}

func (m *mockRegistry) Detect(_ []byte, _ string) string { return m.mediaType }

func (m *mockRegistry) ForMediaType(_ string) (driven.Extractor, bool) {
	return m.extractor, m.found
}

// ==================== Embedding ====================

type mockEmbedder struct {
	embedFn func(ctx context.Context, text string) (*driven.EmbeddingResult, error)
	texts   []string
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (*driven.EmbeddingResult, error) {
	m.texts = append(m.texts, text)
	if m.embedFn != nil {
		return m.embedFn(ctx, text)
	}
	return &driven.EmbeddingResult{
		Vector: []float32{1, 0, 0},
		Tier:   domain.TierLocal,
	}, nil
}

func (m *mockEmbedder) Close() error { return nil }

// ==================== Knowledge store ====================

type mockKnowledgeStore struct {
	saveFn   func(ctx context.Context, doc *domain.Document, chunks []domain.Chunk) error
	searchFn func(ctx context.Context, tenantID string, query []float32, topK int, minSimilarity float64) ([]domain.RetrievalResult, error)
	getFn    func(ctx context.Context, tenantID, id string) (*domain.Document, error)
	listFn   func(ctx context.Context, tenantID string) ([]domain.Document, error)
	deleteFn func(ctx context.Context, tenantID, id string) error

	savedDoc    *domain.Document
	savedChunks []domain.Chunk
	saveCalls   int
	searchCalls int
}

func (m *mockKnowledgeStore) SaveDocument(ctx context.Context, doc *domain.Document, chunks []domain.Chunk) error {
	m.saveCalls++
	m.savedDoc = doc
	m.savedChunks = chunks
	if m.saveFn != nil {
		return m.saveFn(ctx, doc, chunks)
	}
	return nil
}

func (m *mockKnowledgeStore) GetDocument(ctx context.Context, tenantID, id string) (*domain.Document, error) {
	if m.getFn != nil {
		return m.getFn(ctx, tenantID, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockKnowledgeStore) ListDocuments(ctx context.Context, tenantID string) ([]domain.Document, error) {
	if m.listFn != nil {
		return m.listFn(ctx, tenantID)
	}
	return nil, nil
}

func (m *mockKnowledgeStore) SoftDeleteDocument(ctx context.Context, tenantID, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, tenantID, id)
	}
	return nil
}

func (m *mockKnowledgeStore) Search(ctx context.Context, tenantID string, query []float32, topK int, minSimilarity float64) ([]domain.RetrievalResult, error) {
	m.searchCalls++
	if m.searchFn != nil {
		return m.searchFn(ctx, tenantID, query, topK, minSimilarity)
	}
	return nil, nil
}

func (m *mockKnowledgeStore) Close() error { return nil }

// ==================== File store ====================

type mockFileStore struct {
	saveErr error
	saved   map[string][]byte
	deleted []string
}

func newMockFileStore() *mockFileStore {
	return &mockFileStore{saved: make(map[string][]byte)}
}

func (m *mockFileStore) Save(_ context.Context, tenantID, filename string, data []byte) (string, error) {
	if m.saveErr != nil {
		return "", m.saveErr
	}
	path := filepath.Join("knowledge_base", tenantID, filename)
	m.saved[path] = data
	return path, nil
}

func (m *mockFileStore) Open(_ context.Context, path string) ([]byte, error) {
	data, ok := m.saved[path]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return data, nil
}

func (m *mockFileStore) Delete(_ context.Context, path string) error {
	m.deleted = append(m.deleted, path)
	delete(m.saved, path)
	return nil
}

// ==================== Generation ====================

type mockGenerationService struct {
	generateFn func(ctx context.Context, req driven.GenerationRequest) (string, error)
	calls      int
	lastReq    driven.GenerationRequest
}

func (m *mockGenerationService) Generate(ctx context.Context, req driven.GenerationRequest) (string, error) {
	m.calls++
	m.lastReq = req
	if m.generateFn != nil {
		return m.generateFn(ctx, req)
	}
	return "generated answer", nil
}

func (m *mockGenerationService) Close() error { return nil }

// ==================== Cache ====================

type mockCache struct {
	entries map[string]string
	hits    int
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string]string)}
}

func (m *mockCache) Get(key string) (string, bool) {
	val, ok := m.entries[key]
	if ok {
		m.hits++
	}
	return val, ok
}

func (m *mockCache) Set(key, value string) {
	m.entries[key] = value
}
