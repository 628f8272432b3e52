// Package plaintext extracts text from plain text uploads.
package plaintext

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/arcadia-labs/bizkb/internal/core/domain"
	"github.com/arcadia-labs/bizkb/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles plain text documents.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedMediaTypes returns the media types this extractor handles.
func (e *Extractor) SupportedMediaTypes() []string {
	return []string{"text/plain", "text/csv"}
}

// Extract decodes the bytes as UTF-8 text, dropping invalid sequences.
func (e *Extractor) Extract(_ context.Context, data []byte) (string, error) {
	text := string(data)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "")
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("plaintext: %w", domain.ErrExtractionFailed)
	}
	return text, nil
}
