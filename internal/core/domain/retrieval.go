package domain

import "time"

// Default retrieval parameters.
const (
	// DefaultTopK is how many chunks a single vector search returns.
	DefaultTopK = 20

	// DefaultMinSimilarity is the bulk search inclusion threshold.
	DefaultMinSimilarity = 0.4

	// ContextMinSimilarity is the stricter threshold applied when
	// retrieved chunks are assembled into LLM context.
	ContextMinSimilarity = 0.6
)

// DedupPolicy controls how pooled paraphrase results are combined.
type DedupPolicy string

// Available dedup policies.
const (
	// DedupNone keeps duplicate chunks retrieved by different
	// paraphrases, weighting frequently-hit chunks by repetition.
	DedupNone DedupPolicy = "none"

	// DedupByChunk keeps only the highest-similarity occurrence of
	// each chunk across paraphrase queries.
	DedupByChunk DedupPolicy = "by_chunk"
)

// IsValid returns true if the dedup policy is recognised.
func (p DedupPolicy) IsValid() bool {
	return p == DedupNone || p == DedupByChunk
}

// RetrievalResult is a single knowledge-base search hit.
type RetrievalResult struct {
	// Chunk is the matched chunk.
	Chunk Chunk

	// DocumentName is the originating document's filename,
	// carried for provenance display.
	DocumentName string

	// Similarity is the cosine similarity to the query (0-1).
	Similarity float64
}

// ProvenanceMarker is the fixed prefix of the provenance suffix
// appended to grounded answers. Callers detect or strip the suffix by
// locating this marker; everything after it is the source detail.
const ProvenanceMarker = "\n\nSources: "

// QueryState tracks a chat query through the answer pipeline.
type QueryState string

// Pipeline states, in order of progression.
const (
	StateEmbeddingQuery    QueryState = "EMBEDDING_QUERY"
	StateSearching         QueryState = "SEARCHING"
	StateAssemblingContext QueryState = "ASSEMBLING_CONTEXT"
	StateGenerating        QueryState = "GENERATING"
	StateAnswered          QueryState = "ANSWERED"
	StateDegradedAnswered  QueryState = "DEGRADED_ANSWERED"
	StateFailedSafe        QueryState = "FAILED_SAFE"
)

// Answer is the outcome of a chat query.
type Answer struct {
	// Text is the generated response.
	Text string

	// Grounded is true when at least one retrieved chunk above the
	// context threshold backed the response.
	Grounded bool

	// State is the terminal pipeline state.
	State QueryState

	// GeneratedAt is when the answer was produced.
	GeneratedAt time.Time
}
