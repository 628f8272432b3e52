package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/arcadia-labs/bizkb/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/arcadia-labs/bizkb/internal/core/domain"
	"github.com/arcadia-labs/bizkb/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.KnowledgeStore = (*Store)(nil)

// Store is a SQLite-backed knowledge store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.bizkb/data/knowledge.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".bizkb", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "knowledge.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// SaveDocument stores a document and its chunks in one transaction.
func (s *Store) SaveDocument(ctx context.Context, doc *domain.Document, chunks []domain.Chunk) error {
	if doc == nil {
		return domain.ErrInvalidInput
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx, `
		INSERT INTO documents (id, tenant_id, filename, media_type, size_bytes, content, storage_path, kind, created_at, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			filename = excluded.filename,
			media_type = excluded.media_type,
			size_bytes = excluded.size_bytes,
			content = excluded.content,
			storage_path = excluded.storage_path,
			kind = excluded.kind,
			deleted_at = excluded.deleted_at
	`, doc.ID, doc.TenantID, doc.Filename, doc.MediaType, doc.SizeBytes,
		doc.Content, doc.StoragePath, string(doc.Kind), doc.CreatedAt, doc.DeletedAt)
	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, document_id, tenant_id, content, embedding, position, synthetic, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			content = excluded.content,
			embedding = excluded.embedding,
			position = excluded.position,
			synthetic = excluded.synthetic
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		embeddingBlob := float32SliceToBytes(chunk.Embedding)

		if _, err := stmt.ExecContext(ctx, chunk.ID, chunk.DocumentID, chunk.TenantID,
			chunk.Content, embeddingBlob, chunk.Position, chunk.Synthetic, chunk.CreatedAt); err != nil {
			return fmt.Errorf("saving chunk: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetDocument retrieves a non-deleted document by ID, scoped to the tenant.
func (s *Store) GetDocument(ctx context.Context, tenantID, id string) (*domain.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, tenant_id, filename, media_type, size_bytes, content, storage_path, kind, created_at, deleted_at
		FROM documents WHERE tenant_id = ? AND id = ? AND deleted_at IS NULL
	`, tenantID, id)

	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting document: %w", err)
	}
	return doc, nil
}

// ListDocuments returns the tenant's non-deleted documents, newest first.
func (s *Store) ListDocuments(ctx context.Context, tenantID string) ([]domain.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, tenant_id, filename, media_type, size_bytes, content, storage_path, kind, created_at, deleted_at
		FROM documents WHERE tenant_id = ? AND deleted_at IS NULL
		ORDER BY created_at DESC, id
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanDocumentRows(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}

// SoftDeleteDocument marks a document deleted. Its chunks drop out of
// search immediately; nothing is physically removed.
func (s *Store) SoftDeleteDocument(ctx context.Context, tenantID, id string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE documents SET deleted_at = ?
		WHERE tenant_id = ? AND id = ? AND deleted_at IS NULL
	`, time.Now().UTC(), tenantID, id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Search returns the tenant's chunks most similar to the query vector.
// Candidate vectors are loaded and compared in process; soft-deleted
// documents are excluded at the query level.
func (s *Store) Search(ctx context.Context, tenantID string, query []float32, topK int, minSimilarity float64) ([]domain.RetrievalResult, error) {
	if topK <= 0 {
		topK = domain.DefaultTopK
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.document_id, c.tenant_id, c.content, c.embedding, c.position, c.synthetic, c.created_at, d.filename
		FROM chunks c
		JOIN documents d ON d.id = c.document_id
		WHERE c.tenant_id = ? AND d.deleted_at IS NULL
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var results []domain.RetrievalResult
	for rows.Next() {
		var chunk domain.Chunk
		var embeddingBlob []byte
		var filename string

		if err := rows.Scan(&chunk.ID, &chunk.DocumentID, &chunk.TenantID, &chunk.Content,
			&embeddingBlob, &chunk.Position, &chunk.Synthetic, &chunk.CreatedAt, &filename); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}

		chunk.Embedding = bytesToFloat32Slice(embeddingBlob)
		sim := cosineSimilarity(query, chunk.Embedding)
		if sim < minSimilarity {
			continue
		}

		results = append(results, domain.RetrievalResult{
			Chunk:        chunk,
			DocumentName: filename,
			Similarity:   sim,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	// Descending similarity, newer chunks first on ties.
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

// ==================== Helper Functions ====================

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
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

// scanDocument scans a single document row.
func scanDocument(row *sql.Row) (*domain.Document, error) {
	var doc domain.Document
	var kind string
	var deletedAt sql.NullTime

	if err := row.Scan(&doc.ID, &doc.TenantID, &doc.Filename, &doc.MediaType, &doc.SizeBytes,
		&doc.Content, &doc.StoragePath, &kind, &doc.CreatedAt, &deletedAt); err != nil {
		return nil, err
	}

	doc.Kind = domain.DocumentKind(kind)
	if deletedAt.Valid {
		doc.DeletedAt = &deletedAt.Time
	}
	return &doc, nil
}

// scanDocumentRows scans a document from a multi-row result.
func scanDocumentRows(rows *sql.Rows) (*domain.Document, error) {
	var doc domain.Document
	var kind string
	var deletedAt sql.NullTime

	if err := rows.Scan(&doc.ID, &doc.TenantID, &doc.Filename, &doc.MediaType, &doc.SizeBytes,
		&doc.Content, &doc.StoragePath, &kind, &doc.CreatedAt, &deletedAt); err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	doc.Kind = domain.DocumentKind(kind)
	if deletedAt.Valid {
		doc.DeletedAt = &deletedAt.Time
	}
	return &doc, nil
}
