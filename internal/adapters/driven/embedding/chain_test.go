package embedding

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcadia-labs/bizkb/internal/core/domain"
	"github.com/arcadia-labs/bizkb/internal/core/ports/driven"
)

// stubProvider is a scriptable embedding provider for tests.
type stubProvider struct {
	tier     domain.ProviderTier
	vec      []float32
	err      error
	failures int // fail this many calls before succeeding
	calls    int
	lastText string
}

func (s *stubProvider) Embed(_ context.Context, text string) ([]float32, error) {
	s.calls++
	s.lastText = text
	if s.failures > 0 {
		s.failures--
		return nil, errors.New("stub failure")
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.vec, nil
}

func (s *stubProvider) Dimensions() int           { return len(s.vec) }
func (s *stubProvider) Tier() domain.ProviderTier { return s.tier }
func (s *stubProvider) Close() error              { return nil }

func makeVec(n int) []float32 {
	vec := make([]float32, n)
	for i := range vec {
		vec[i] = float32(i) / float32(n)
	}
	return vec
}

func newTestChain(t *testing.T, providers ...driven.EmbeddingProvider) *Chain {
	t.Helper()
	chain, err := NewChain(providers)
	require.NoError(t, err)
	chain.sleep = func(time.Duration) {}
	return chain
}

func TestNewChain_NoProviders(t *testing.T) {
	_, err := NewChain(nil)
	assert.Error(t, err)
}

func TestEmbed_PrimarySucceeds(t *testing.T) {
	primary := &stubProvider{tier: domain.TierLocal, vec: makeVec(domain.EmbeddingDimensions)}
	fallback := &stubProvider{tier: domain.TierCloud, vec: makeVec(domain.EmbeddingDimensions)}
	chain := newTestChain(t, primary, fallback)

	result, err := chain.Embed(context.Background(), "hello")
	require.NoError(t, err)

	assert.Equal(t, domain.TierLocal, result.Tier)
	assert.False(t, result.Synthetic)
	assert.Len(t, result.Vector, domain.EmbeddingDimensions)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 0, fallback.calls)
}

func TestEmbed_RetriesBeforeFallingBack(t *testing.T) {
	// Primary fails twice then succeeds; the retry policy allows it.
	primary := &stubProvider{tier: domain.TierLocal, vec: makeVec(domain.EmbeddingDimensions), failures: 2}
	chain := newTestChain(t, primary)

	result, err := chain.Embed(context.Background(), "hello")
	require.NoError(t, err)

	assert.Equal(t, domain.TierLocal, result.Tier)
	assert.Equal(t, 3, primary.calls)
}

func TestEmbed_FallsBackAfterRetriesExhausted(t *testing.T) {
	primary := &stubProvider{tier: domain.TierLocal, err: errors.New("down")}
	fallback := &stubProvider{tier: domain.TierCloud, vec: makeVec(domain.EmbeddingDimensions)}
	chain := newTestChain(t, primary, fallback)

	result, err := chain.Embed(context.Background(), "hello")
	require.NoError(t, err)

	assert.Equal(t, domain.TierCloud, result.Tier)
	assert.Equal(t, 3, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}

func TestEmbed_RepairsHalfDimensionVector(t *testing.T) {
	// Local models commonly emit 768 dims; the chain doubles them up.
	half := makeVec(domain.EmbeddingDimensions / 2)
	primary := &stubProvider{tier: domain.TierLocal, vec: half}
	chain := newTestChain(t, primary)

	result, err := chain.Embed(context.Background(), "hello")
	require.NoError(t, err)

	require.Len(t, result.Vector, domain.EmbeddingDimensions)
	assert.Equal(t, half[0], result.Vector[0])
	assert.Equal(t, half[0], result.Vector[len(half)])
}

func TestEmbed_RejectsUnrepairableDimensions(t *testing.T) {
	primary := &stubProvider{tier: domain.TierLocal, vec: makeVec(1000)}
	fallback := &stubProvider{tier: domain.TierCloud, vec: makeVec(domain.EmbeddingDimensions)}
	chain := newTestChain(t, primary, fallback)

	result, err := chain.Embed(context.Background(), "hello")
	require.NoError(t, err)

	assert.Equal(t, domain.TierCloud, result.Tier)
}

func TestEmbed_TruncatesLongText(t *testing.T) {
	primary := &stubProvider{tier: domain.TierLocal, vec: makeVec(domain.EmbeddingDimensions)}
	chain := newTestChain(t, primary)

	_, err := chain.Embed(context.Background(), strings.Repeat("x", MaxEmbedChars+500))
	require.NoError(t, err)

	assert.Len(t, primary.lastText, MaxEmbedChars)
}

func TestEmbed_NaiveTierIsSynthetic(t *testing.T) {
	primary := &stubProvider{tier: domain.TierLocal, err: errors.New("down")}
	naive := &stubProvider{tier: domain.TierNaive, vec: makeVec(domain.EmbeddingDimensions)}
	chain := newTestChain(t, primary, naive)

	result, err := chain.Embed(context.Background(), "hello")
	require.NoError(t, err)

	assert.True(t, result.Synthetic)
	assert.Equal(t, domain.TierNaive, result.Tier)
}

func TestEmbed_AllTiersFail(t *testing.T) {
	primary := &stubProvider{tier: domain.TierLocal, err: errors.New("down")}
	secondary := &stubProvider{tier: domain.TierCloud, err: errors.New("also down")}
	chain := newTestChain(t, primary, secondary)

	_, err := chain.Embed(context.Background(), "hello")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmbeddingFailed)
}

func TestEmbed_ContextCancelled(t *testing.T) {
	primary := &stubProvider{tier: domain.TierLocal, err: errors.New("down")}
	chain := newTestChain(t, primary)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := chain.Embed(ctx, "hello")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRepairDimensions(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		want    int
		wantErr bool
	}{
		{name: "exact", size: domain.EmbeddingDimensions, want: domain.EmbeddingDimensions},
		{name: "half repaired", size: domain.EmbeddingDimensions / 2, want: domain.EmbeddingDimensions},
		{name: "quarter repaired", size: domain.EmbeddingDimensions / 4, want: domain.EmbeddingDimensions},
		{name: "uneven rejected", size: 1000, wantErr: true},
		{name: "oversized rejected", size: domain.EmbeddingDimensions * 2, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repairDimensions(makeVec(tt.size))
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}
