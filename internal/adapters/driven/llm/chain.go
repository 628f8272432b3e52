// Package llm provides the tiered generation service that fronts the
// individual generators. Tiers are tried in order with per-tier retry;
// only when every tier is exhausted does generation fail.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arcadia-labs/bizkb/internal/core/domain"
	"github.com/arcadia-labs/bizkb/internal/core/ports/driven"
	"github.com/arcadia-labs/bizkb/internal/logger"
)

// Ensure Chain implements the interface.
var _ driven.GenerationService = (*Chain)(nil)

// Chain tries generators in order until one produces an answer.
type Chain struct {
	generators []driven.Generator
	retry      domain.RetryPolicy
	sleep      func(time.Duration)
}

// Option configures a Chain.
type Option func(*Chain)

// WithRetryPolicy overrides the per-tier retry policy.
func WithRetryPolicy(p domain.RetryPolicy) Option {
	return func(c *Chain) {
		if p.MaxAttempts > 0 {
			c.retry = p
		}
	}
}

// NewChain creates a tiered generation service. Generators are
// consulted in the order given.
func NewChain(generators []driven.Generator, opts ...Option) (*Chain, error) {
	if len(generators) == 0 {
		return nil, fmt.Errorf("llm: at least one generator is required")
	}

	c := &Chain{
		generators: generators,
		retry:      domain.DefaultRetryPolicy,
		sleep:      time.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Generate walks the generator tiers until one answers. On exhaustion
// it returns domain.ErrGenerationFailed wrapped around the terminal
// error so callers can degrade safely.
func (c *Chain) Generate(ctx context.Context, req driven.GenerationRequest) (string, error) {
	var lastErr error
	for _, gen := range c.generators {
		answer, err := c.generateWithRetry(ctx, gen, req)
		if err != nil {
			logger.Warn("generation tier %s failed: %v", gen.Tier(), err)
			lastErr = err
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			continue
		}
		return answer, nil
	}

	return "", fmt.Errorf("all generation tiers exhausted: %w", errors.Join(domain.ErrGenerationFailed, lastErr))
}

// generateWithRetry calls a single generator with the configured retry
// policy.
func (c *Chain) generateWithRetry(ctx context.Context, gen driven.Generator, req driven.GenerationRequest) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= c.retry.MaxAttempts; attempt++ {
		answer, err := gen.Generate(ctx, req)
		if err == nil {
			if answer == "" {
				err = fmt.Errorf("empty answer: %w", domain.ErrGenerationFailed)
			} else {
				return answer, nil
			}
		}
		lastErr = err

		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if attempt < c.retry.MaxAttempts {
			c.sleep(c.retry.Backoff * time.Duration(attempt))
		}
	}
	return "", lastErr
}

// Close closes every generator in the chain.
func (c *Chain) Close() error {
	var errs []error
	for _, gen := range c.generators {
		if err := gen.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
