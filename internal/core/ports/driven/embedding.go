package driven

import (
	"context"

	"github.com/arcadia-labs/bizkb/internal/core/domain"
)

// EmbeddingProvider is one tier of the embedding fallback chain.
//
// Implementations may include:
//   - Ollama (nomic-embed-text, local)
//   - OpenAI (text-embedding-3-small, cloud)
//   - Naive character-code fallback (never fails)
type EmbeddingProvider interface {
	// Embed generates a vector embedding for the given text.
	// Input is truncated to the provider's input ceiling before sending.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the native vector size the provider produces.
	Dimensions() int

	// Tier identifies the provider's position in the chain.
	Tier() domain.ProviderTier

	// Close releases resources.
	Close() error
}

// EmbeddingResult is the outcome of a chain embed call.
type EmbeddingResult struct {
	// Vector is exactly domain.EmbeddingDimensions long.
	Vector []float32

	// Tier is the provider that produced the vector.
	Tier domain.ProviderTier

	// Synthetic is true when the vector came from the naive fallback
	// and must be treated as a marker, not a real embedding.
	Synthetic bool
}

// EmbeddingService embeds text through an ordered chain of providers
// with per-tier retry. With the naive tier enabled the call is total:
// it always returns a vector.
type EmbeddingService interface {
	// Embed returns the first successful tier's vector, reconciled to
	// domain.EmbeddingDimensions.
	Embed(ctx context.Context, text string) (*EmbeddingResult, error)

	// Close releases all tiers.
	Close() error
}
