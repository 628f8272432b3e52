package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arcadia-labs/bizkb/internal/chunker"
	"github.com/arcadia-labs/bizkb/internal/core/domain"
	"github.com/arcadia-labs/bizkb/internal/core/ports/driven"
	"github.com/arcadia-labs/bizkb/internal/core/ports/driving"
	"github.com/arcadia-labs/bizkb/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService takes uploads through extraction, chunking, embedding
// and persistence.
type IngestService struct {
	extractors  driven.ExtractorRegistry
	embedder    driven.EmbeddingService
	store       driven.KnowledgeStore
	files       driven.FileStore
	chunker     *chunker.Chunker
	persistence domain.PersistenceSettings
}

// IngestOption configures an IngestService.
type IngestOption func(*IngestService)

// WithFileStore enables raw upload retention.
func WithFileStore(files driven.FileStore) IngestOption {
	return func(s *IngestService) {
		s.files = files
	}
}

// WithChunker overrides the default chunker.
func WithChunker(c *chunker.Chunker) IngestOption {
	return func(s *IngestService) {
		if c != nil {
			s.chunker = c
		}
	}
}

// WithPersistence overrides persistence behaviour.
func WithPersistence(p domain.PersistenceSettings) IngestOption {
	return func(s *IngestService) {
		s.persistence = p
	}
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	extractors driven.ExtractorRegistry,
	embedder driven.EmbeddingService,
	store driven.KnowledgeStore,
	opts ...IngestOption,
) *IngestService {
	s := &IngestService{
		extractors: extractors,
		embedder:   embedder,
		store:      store,
		chunker:    chunker.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ingest processes raw upload bytes for a tenant. The document and its
// chunks become visible atomically; any failure before persistence
// leaves no trace.
func (s *IngestService) Ingest(ctx context.Context, tenantID string, data []byte, filename string) (*driving.IngestReceipt, error) {
	logger.Section("Document Ingestion")
	logger.Debug("Tenant: %s, file: %s, size: %d bytes", tenantID, filename, len(data))

	if strings.TrimSpace(tenantID) == "" {
		return nil, domain.ErrTenantRequired
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty upload: %w", domain.ErrEmptyContent)
	}
	if int64(len(data)) > domain.MaxDocumentBytes {
		return nil, fmt.Errorf("upload is %d bytes, limit %d: %w", len(data), domain.MaxDocumentBytes, domain.ErrSizeExceeded)
	}

	// Content sniffing decides the type; the filename only breaks the
	// markdown/plaintext tie.
	mediaType := s.extractors.Detect(data, filename)
	extractor, ok := s.extractors.ForMediaType(mediaType)
	if !ok {
		return nil, fmt.Errorf("media type %s: %w", mediaType, domain.ErrUnsupportedType)
	}
	logger.Debug("Detected media type: %s", mediaType)

	text, err := extractor.Extract(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", filename, err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("no usable text in %s: %w", filename, domain.ErrEmptyContent)
	}

	doc := &domain.Document{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Filename:  filename,
		MediaType: mediaType,
		SizeBytes: int64(len(data)),
		Content:   text,
		Kind:      domain.DocumentKindFile,
		CreatedAt: time.Now().UTC(),
	}

	candidates := s.chunker.Chunk(doc)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no chunks from %s: %w", filename, domain.ErrEmptyContent)
	}
	logger.Debug("Chunked into %d pieces", len(candidates))

	// Embed chunk by chunk. A chunk whose embedding fails is skipped,
	// not fatal; losing every chunk is.
	chunks := make([]domain.Chunk, 0, len(candidates))
	skipped := 0
	for _, chunk := range candidates {
		result, err := s.embedder.Embed(ctx, chunk.Content)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.Warn("skipping chunk %d of %s: %v", chunk.Position, filename, err)
			skipped++
			continue
		}
		if result.Synthetic && !s.persistence.KeepSynthetic {
			logger.Warn("skipping chunk %d of %s: only a synthetic embedding was available", chunk.Position, filename)
			skipped++
			continue
		}

		chunk.Embedding = result.Vector
		chunk.Synthetic = result.Synthetic
		chunks = append(chunks, chunk)
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no chunk of %s could be embedded: %w", filename, domain.ErrEmbeddingFailed)
	}

	// Retain the raw upload before committing, so the stored path is
	// part of the document record.
	if s.files != nil {
		path, err := s.files.Save(ctx, tenantID, filename, data)
		if err != nil {
			return nil, fmt.Errorf("retaining upload %s: %w", filename, err)
		}
		doc.StoragePath = path
	}

	if err := s.store.SaveDocument(ctx, doc, chunks); err != nil {
		if s.files != nil && doc.StoragePath != "" {
			if cleanupErr := s.files.Delete(ctx, doc.StoragePath); cleanupErr != nil {
				logger.Warn("orphaned upload %s: %v", doc.StoragePath, cleanupErr)
			}
		}
		return nil, fmt.Errorf("persisting %s: %w", filename, err)
	}

	logger.Info("Ingested %s: %d chunks (%d skipped)", filename, len(chunks), skipped)
	return &driving.IngestReceipt{
		DocumentID:    doc.ID,
		ChunkCount:    len(chunks),
		SkippedChunks: skipped,
	}, nil
}
