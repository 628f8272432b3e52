package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcadia-labs/bizkb/internal/core/domain"
	"github.com/arcadia-labs/bizkb/internal/core/ports/driven"
)

// stubGenerator is a scriptable generator for tests.
type stubGenerator struct {
	tier     domain.ProviderTier
	answer   string
	err      error
	failures int
	calls    int
	lastReq  driven.GenerationRequest
}

func (s *stubGenerator) Generate(_ context.Context, req driven.GenerationRequest) (string, error) {
	s.calls++
	s.lastReq = req
	if s.failures > 0 {
		s.failures--
		return "", errors.New("stub failure")
	}
	if s.err != nil {
		return "", s.err
	}
	return s.answer, nil
}

func (s *stubGenerator) Tier() domain.ProviderTier { return s.tier }
func (s *stubGenerator) Close() error              { return nil }

func newTestChain(t *testing.T, generators ...driven.Generator) *Chain {
	t.Helper()
	chain, err := NewChain(generators)
	require.NoError(t, err)
	chain.sleep = func(time.Duration) {}
	return chain
}

func TestNewChain_NoGenerators(t *testing.T) {
	_, err := NewChain(nil)
	assert.Error(t, err)
}

func TestGenerate_PrimarySucceeds(t *testing.T) {
	primary := &stubGenerator{tier: domain.TierPrimary, answer: "We open at 9am."}
	secondary := &stubGenerator{tier: domain.TierSecondary, answer: "unused"}
	chain := newTestChain(t, primary, secondary)

	answer, err := chain.Generate(context.Background(), driven.GenerationRequest{Query: "opening hours?"})
	require.NoError(t, err)

	assert.Equal(t, "We open at 9am.", answer)
	assert.Equal(t, 0, secondary.calls)
}

func TestGenerate_RetriesThenSucceeds(t *testing.T) {
	primary := &stubGenerator{tier: domain.TierPrimary, answer: "ok", failures: 2}
	chain := newTestChain(t, primary)

	answer, err := chain.Generate(context.Background(), driven.GenerationRequest{Query: "q"})
	require.NoError(t, err)

	assert.Equal(t, "ok", answer)
	assert.Equal(t, 3, primary.calls)
}

func TestGenerate_FallsBackAfterRetriesExhausted(t *testing.T) {
	primary := &stubGenerator{tier: domain.TierPrimary, err: errors.New("quota exceeded")}
	secondary := &stubGenerator{tier: domain.TierSecondary, answer: "fallback answer"}
	chain := newTestChain(t, primary, secondary)

	answer, err := chain.Generate(context.Background(), driven.GenerationRequest{Query: "q"})
	require.NoError(t, err)

	assert.Equal(t, "fallback answer", answer)
	assert.Equal(t, 3, primary.calls)
	assert.Equal(t, 1, secondary.calls)
}

func TestGenerate_AllTiersExhausted(t *testing.T) {
	primary := &stubGenerator{tier: domain.TierPrimary, err: errors.New("down")}
	secondary := &stubGenerator{tier: domain.TierSecondary, err: errors.New("also down")}
	chain := newTestChain(t, primary, secondary)

	_, err := chain.Generate(context.Background(), driven.GenerationRequest{Query: "q"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGenerationFailed)
}

func TestGenerate_EmptyAnswerTreatedAsFailure(t *testing.T) {
	primary := &stubGenerator{tier: domain.TierPrimary, answer: ""}
	secondary := &stubGenerator{tier: domain.TierSecondary, answer: "real answer"}
	chain := newTestChain(t, primary, secondary)

	answer, err := chain.Generate(context.Background(), driven.GenerationRequest{Query: "q"})
	require.NoError(t, err)
	assert.Equal(t, "real answer", answer)
}

func TestGenerate_ContextCancelled(t *testing.T) {
	primary := &stubGenerator{tier: domain.TierPrimary, err: errors.New("down")}
	chain := newTestChain(t, primary)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := chain.Generate(ctx, driven.GenerationRequest{Query: "q"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerate_RequestForwarded(t *testing.T) {
	primary := &stubGenerator{tier: domain.TierPrimary, answer: "ok"}
	chain := newTestChain(t, primary)

	req := driven.GenerationRequest{
		Query:   "what are your rates?",
		Context: "Business Profile:\nName: Acme Plumbing",
		History: []domain.ConversationTurn{
			{Role: domain.RoleUser, Content: "hi"},
			{Role: domain.RoleAssistant, Content: "hello"},
		},
	}

	_, err := chain.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, req, primary.lastReq)
}
