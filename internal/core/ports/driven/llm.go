package driven

import (
	"context"

	"github.com/arcadia-labs/bizkb/internal/core/domain"
)

// GenerationRequest carries everything one answer generation needs.
type GenerationRequest struct {
	// Query is the user's question.
	Query string

	// Context is the assembled prompt context block.
	Context string

	// History is the bounded recent conversation, oldest first,
	// forwarded verbatim as role-tagged messages.
	History []domain.ConversationTurn
}

// Generator is one tier of the answer generation fallback chain.
// Each tier has its own request timeout.
//
// Implementations may include:
//   - OpenAI (gpt-4o-mini)
//   - Anthropic (Claude)
//   - Ollama (local models)
type Generator interface {
	// Generate produces a grounded natural-language answer.
	Generate(ctx context.Context, req GenerationRequest) (string, error)

	// Tier identifies the generator's position in the chain.
	Tier() domain.ProviderTier

	// Close releases resources.
	Close() error
}

// GenerationService produces answers through an ordered chain of
// generators with per-tier retry. On exhaustion of all tiers it
// returns domain.ErrGenerationFailed wrapped around the terminal
// error; callers convert that into a user-safe degraded response.
type GenerationService interface {
	Generate(ctx context.Context, req GenerationRequest) (string, error)

	// Close releases all tiers.
	Close() error
}
