// Package embedding provides the tiered embedding service that fronts
// the individual providers. Providers are tried in order, each with
// retries, so a local model outage degrades to the cloud API and then
// to the naive fallback instead of failing ingestion.
package embedding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/arcadia-labs/bizkb/internal/core/domain"
	"github.com/arcadia-labs/bizkb/internal/core/ports/driven"
	"github.com/arcadia-labs/bizkb/internal/logger"
)

// MaxEmbedChars caps the text sent to a provider. Longer inputs are
// truncated, not rejected.
const MaxEmbedChars = 8000

// Ensure Chain implements the interface.
var _ driven.EmbeddingService = (*Chain)(nil)

// Chain tries embedding providers in order until one returns a usable
// vector.
type Chain struct {
	providers []driven.EmbeddingProvider
	retry     domain.RetryPolicy
	limiter   *rate.Limiter
	sleep     func(time.Duration)
}

// Option configures a Chain.
type Option func(*Chain)

// WithRetryPolicy overrides the per-provider retry policy.
func WithRetryPolicy(p domain.RetryPolicy) Option {
	return func(c *Chain) {
		if p.MaxAttempts > 0 {
			c.retry = p
		}
	}
}

// WithRateLimit caps outbound embedding requests per second.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Chain) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

// NewChain creates a tiered embedding service. Providers are consulted
// in the order given.
func NewChain(providers []driven.EmbeddingProvider, opts ...Option) (*Chain, error) {
	if len(providers) == 0 {
		return nil, fmt.Errorf("embedding: at least one provider is required")
	}

	c := &Chain{
		providers: providers,
		retry:     domain.DefaultRetryPolicy,
		sleep:     time.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Embed generates an embedding for the text, walking the provider
// tiers until one succeeds. The returned result carries the tier that
// produced the vector so callers can decide whether to persist it.
func (c *Chain) Embed(ctx context.Context, text string) (*driven.EmbeddingResult, error) {
	if len(text) > MaxEmbedChars {
		text = text[:MaxEmbedChars]
	}

	var lastErr error
	for _, provider := range c.providers {
		vec, err := c.embedWithRetry(ctx, provider, text)
		if err != nil {
			logger.Warn("embedding tier %s failed: %v", provider.Tier(), err)
			lastErr = err
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}

		vec, err = repairDimensions(vec)
		if err != nil {
			logger.Warn("embedding tier %s returned unusable vector: %v", provider.Tier(), err)
			lastErr = err
			continue
		}

		return &driven.EmbeddingResult{
			Vector:    vec,
			Tier:      provider.Tier(),
			Synthetic: provider.Tier() == domain.TierNaive,
		}, nil
	}

	return nil, fmt.Errorf("all embedding tiers exhausted: %w", errors.Join(domain.ErrEmbeddingFailed, lastErr))
}

// embedWithRetry calls a single provider with the configured retry
// policy.
func (c *Chain) embedWithRetry(ctx context.Context, provider driven.EmbeddingProvider, text string) ([]float32, error) {
	var lastErr error
	for attempt := 1; attempt <= c.retry.MaxAttempts; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		vec, err := provider.Embed(ctx, text)
		if err == nil {
			if len(vec) == 0 {
				err = fmt.Errorf("empty vector: %w", domain.ErrEmbeddingFailed)
			} else {
				return vec, nil
			}
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if attempt < c.retry.MaxAttempts {
			c.sleep(c.retry.Backoff * time.Duration(attempt))
		}
	}
	return nil, lastErr
}

// repairDimensions coerces a vector to the standard dimensionality.
// Vectors whose size divides the target evenly are repaired by
// repetition (a 768-dim local model vector becomes 1536 by repeating
// itself); anything else is rejected.
func repairDimensions(vec []float32) ([]float32, error) {
	n := len(vec)
	if n == domain.EmbeddingDimensions {
		return vec, nil
	}
	if n > 0 && n < domain.EmbeddingDimensions && domain.EmbeddingDimensions%n == 0 {
		repaired := make([]float32, 0, domain.EmbeddingDimensions)
		for len(repaired) < domain.EmbeddingDimensions {
			repaired = append(repaired, vec...)
		}
		return repaired, nil
	}
	return nil, fmt.Errorf("got %d dimensions, want %d: %w", n, domain.EmbeddingDimensions, domain.ErrDimensionMismatch)
}

// Close closes every provider in the chain.
func (c *Chain) Close() error {
	var errs []error
	for _, provider := range c.providers {
		if err := provider.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
