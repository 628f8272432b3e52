// Package filestore retains raw upload bytes on the local filesystem.
// Files live under <root>/knowledge_base/<tenant>/<filename> so the
// original upload can be re-examined or re-ingested later.
package filestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arcadia-labs/bizkb/internal/core/domain"
	"github.com/arcadia-labs/bizkb/internal/core/ports/driven"
)

// Ensure Local implements the interface.
var _ driven.FileStore = (*Local)(nil)

// Local stores files on the local filesystem.
type Local struct {
	root string
}

// NewLocal creates a file store rooted at the given directory.
// If root is empty, defaults to ~/.bizkb.
func NewLocal(root string) (*Local, error) {
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		root = filepath.Join(home, ".bizkb")
	}

	if err := os.MkdirAll(root, 0700); err != nil {
		return nil, fmt.Errorf("creating storage root: %w", err)
	}
	return &Local{root: root}, nil
}

// Save writes the bytes under the tenant's directory and returns the
// storage path relative to the root.
func (l *Local) Save(_ context.Context, tenantID, filename string, data []byte) (string, error) {
	if tenantID == "" {
		return "", domain.ErrTenantRequired
	}
	if sanitize(tenantID) != tenantID {
		return "", fmt.Errorf("unusable tenant id %q: %w", tenantID, domain.ErrInvalidInput)
	}
	name := sanitize(filename)
	if name == "" {
		return "", fmt.Errorf("unusable filename %q: %w", filename, domain.ErrInvalidInput)
	}

	rel := filepath.Join("knowledge_base", tenantID, name)
	abs := filepath.Join(l.root, rel)

	if err := os.MkdirAll(filepath.Dir(abs), 0700); err != nil {
		return "", fmt.Errorf("creating tenant directory: %w", err)
	}
	if err := os.WriteFile(abs, data, 0600); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}
	return rel, nil
}

// Open reads back previously saved bytes.
func (l *Local) Open(_ context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(l.root, path))
	if os.IsNotExist(err) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return data, nil
}

// Delete removes stored bytes. Missing files are not an error.
func (l *Local) Delete(_ context.Context, path string) error {
	err := os.Remove(filepath.Join(l.root, path))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing file: %w", err)
	}
	return nil
}

// Root returns the storage root directory.
func (l *Local) Root() string {
	return l.root
}

// sanitize strips path components and traversal from a filename.
func sanitize(filename string) string {
	name := filepath.Base(strings.TrimSpace(filename))
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return ""
	}
	return name
}
