package domain

import "time"

// ProviderTier identifies one variant in an ordered fallback chain.
// Selection order is fixed (local, cloud, naive for embeddings;
// primary, secondary, tertiary for generation); configuration can
// enable or disable tiers but never reorder them.
type ProviderTier string

// Embedding tiers.
const (
	TierLocal ProviderTier = "local"
	TierCloud ProviderTier = "cloud"
	TierNaive ProviderTier = "naive"
)

// Generation tiers.
const (
	TierPrimary   ProviderTier = "primary"
	TierSecondary ProviderTier = "secondary"
	TierTertiary  ProviderTier = "tertiary"
)

// RetryPolicy bounds transient-failure retries for one provider tier.
type RetryPolicy struct {
	// MaxAttempts is the total number of tries, including the first.
	MaxAttempts int

	// Backoff is the wait between attempts.
	Backoff time.Duration
}

// DefaultRetryPolicy is applied when a tier has no explicit policy.
var DefaultRetryPolicy = RetryPolicy{MaxAttempts: 3, Backoff: 500 * time.Millisecond}

// ChunkingSettings holds the text segmentation parameters.
type ChunkingSettings struct {
	// MaxSize is the chunk size ceiling in characters.
	MaxSize int

	// MinSize is the smallest chunk worth emitting, except for a
	// sole trailing chunk.
	MinSize int

	// Overlap is how many tail characters seed the next chunk.
	Overlap int
}

// DefaultChunking is the standard segmentation configuration.
var DefaultChunking = ChunkingSettings{MaxSize: 2000, MinSize: 200, Overlap: 100}

// RetrievalSettings holds knowledge-base search parameters.
type RetrievalSettings struct {
	// TopK is the per-query result limit.
	TopK int

	// MinSimilarity is the bulk inclusion threshold.
	MinSimilarity float64

	// ContextMinSimilarity applies when assembling LLM context.
	ContextMinSimilarity float64

	// Dedup controls pooling of paraphrase results.
	Dedup DedupPolicy
}

// DefaultRetrieval is the standard retrieval configuration.
var DefaultRetrieval = RetrievalSettings{
	TopK:                 DefaultTopK,
	MinSimilarity:        DefaultMinSimilarity,
	ContextMinSimilarity: ContextMinSimilarity,
	Dedup:                DedupNone,
}

// ContextSettings bounds prompt context assembly.
type ContextSettings struct {
	// CharBudget caps the assembled knowledge block. Chunks are
	// dropped whole, lowest similarity first, until it fits.
	// Zero selects the default budget.
	CharBudget int
}

// DefaultContext is the standard assembly configuration.
var DefaultContext = ContextSettings{CharBudget: 12000}

// PersistenceSettings controls what ingestion persists.
type PersistenceSettings struct {
	// KeepSynthetic persists chunks whose embedding came from the
	// naive fallback. Off by default: synthetic vectors are markers,
	// not embeddings, and pollute similarity search.
	KeepSynthetic bool
}
