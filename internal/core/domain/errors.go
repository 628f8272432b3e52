package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTenantRequired indicates an operation was attempted without a tenant id.
	// Every knowledge-base operation is scoped to exactly one tenant.
	ErrTenantRequired = errors.New("tenant id required")

	// Ingestion errors. Reported to the caller synchronously, never retried.

	// ErrUnsupportedType indicates the detected media type has no extractor.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrSizeExceeded indicates the upload exceeds MaxDocumentBytes.
	ErrSizeExceeded = errors.New("file size exceeded")

	// ErrExtractionFailed indicates an extractor ran but produced no usable text.
	ErrExtractionFailed = errors.New("text extraction failed")

	// ErrEmptyContent indicates extracted text contained no paragraphs to chunk.
	ErrEmptyContent = errors.New("document has no content")

	// Provider errors.

	// ErrEmbeddingFailed indicates every enabled embedding tier was exhausted.
	ErrEmbeddingFailed = errors.New("embedding generation failed")

	// ErrDimensionMismatch indicates a provider returned a vector whose
	// dimension cannot be reconciled to EmbeddingDimensions.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrGenerationFailed indicates every answer generation tier was exhausted.
	ErrGenerationFailed = errors.New("answer generation failed")

	// ErrProviderUnavailable indicates no provider tier is enabled for an operation.
	ErrProviderUnavailable = errors.New("no provider available")
)
