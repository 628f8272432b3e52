// Package naive provides a deterministic last-resort embedding
// provider that needs no model or network access. Its vectors capture
// only crude character statistics, so they are useful for keeping the
// pipeline alive when every real provider is down, not for quality
// retrieval.
package naive

import (
	"context"
	"math"

	"github.com/arcadia-labs/bizkb/internal/core/domain"
	"github.com/arcadia-labs/bizkb/internal/core/ports/driven"
)

// Ensure Provider implements the interface.
var _ driven.EmbeddingProvider = (*Provider)(nil)

// Provider derives embeddings from character codes.
type Provider struct {
	dimensions int
}

// New creates a naive embedding provider producing vectors of the
// standard dimensionality.
func New() *Provider {
	return &Provider{dimensions: domain.EmbeddingDimensions}
}

// Embed folds the text's runes into a fixed-size vector and
// L2-normalises it. The same text always yields the same vector.
func (p *Provider) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, p.dimensions)
	for i, r := range text {
		idx := (i + int(r)) % p.dimensions
		vec[idx] += float32(r%97) / 97.0
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		scale := float32(1.0 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= scale
		}
	}

	return vec, nil
}

// Dimensions returns the embedding vector size.
func (p *Provider) Dimensions() int {
	return p.dimensions
}

// Tier identifies this provider as the naive tier.
func (p *Provider) Tier() domain.ProviderTier {
	return domain.TierNaive
}

// Close releases resources.
func (p *Provider) Close() error {
	return nil
}
