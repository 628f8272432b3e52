package driven

import "context"

// FileStore retains raw upload bytes, addressed by a tenant-scoped path.
type FileStore interface {
	// Save writes the bytes and returns the storage path.
	Save(ctx context.Context, tenantID, filename string, data []byte) (string, error)

	// Open reads back previously saved bytes.
	Open(ctx context.Context, path string) ([]byte, error)

	// Delete removes stored bytes. Used only for cleanup when
	// persistence fails after the file was written.
	Delete(ctx context.Context, path string) error
}
