package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/arcadia-labs/bizkb/internal/core/domain"
	"github.com/arcadia-labs/bizkb/internal/core/ports/driven"
	"github.com/arcadia-labs/bizkb/internal/logger"
)

// paraphraseFormats rephrase the user's question before embedding.
// Different phrasings land in different regions of the embedding
// space, so the union catches chunks the literal query misses.
var paraphraseFormats = []string{
	"Information about: %s",
	"Details regarding: %s",
	"Find content related to: %s",
}

// Retriever pools knowledge-base hits for the literal query and its
// paraphrases.
type Retriever struct {
	embedder driven.EmbeddingService
	store    driven.KnowledgeStore
	settings domain.RetrievalSettings
}

// NewRetriever creates a retriever with the given settings. Zero-value
// settings fields fall back to the defaults.
func NewRetriever(embedder driven.EmbeddingService, store driven.KnowledgeStore, settings domain.RetrievalSettings) *Retriever {
	if settings.TopK <= 0 {
		settings.TopK = domain.DefaultRetrieval.TopK
	}
	if settings.MinSimilarity == 0 {
		settings.MinSimilarity = domain.DefaultRetrieval.MinSimilarity
	}
	if settings.ContextMinSimilarity == 0 {
		settings.ContextMinSimilarity = domain.DefaultRetrieval.ContextMinSimilarity
	}
	if !settings.Dedup.IsValid() {
		settings.Dedup = domain.DefaultRetrieval.Dedup
	}
	return &Retriever{
		embedder: embedder,
		store:    store,
		settings: settings,
	}
}

// Settings returns the effective retrieval settings.
func (r *Retriever) Settings() domain.RetrievalSettings {
	return r.settings
}

// Retrieve searches the tenant's knowledge base with the literal query
// and each paraphrase, pooling the hits. A paraphrase whose embedding
// fails is dropped from the pool; only losing the literal query and
// every paraphrase is an error.
func (r *Retriever) Retrieve(ctx context.Context, tenantID, query string, minSimilarity float64) ([]domain.RetrievalResult, error) {
	queries := make([]string, 0, len(paraphraseFormats)+1)
	queries = append(queries, query)
	for _, format := range paraphraseFormats {
		queries = append(queries, fmt.Sprintf(format, query))
	}

	var pooled []domain.RetrievalResult
	embedded := 0
	for _, q := range queries {
		result, err := r.embedder.Embed(ctx, q)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.Warn("query variant dropped: %v", err)
			continue
		}
		embedded++

		hits, err := r.store.Search(ctx, tenantID, result.Vector, r.settings.TopK, minSimilarity)
		if err != nil {
			return nil, fmt.Errorf("searching knowledge base: %w", err)
		}
		pooled = append(pooled, hits...)
	}
	if embedded == 0 {
		return nil, fmt.Errorf("no query variant could be embedded: %w", domain.ErrEmbeddingFailed)
	}

	pooled = r.dedup(pooled)

	// Descending similarity, newer chunks first on ties.
	sort.SliceStable(pooled, func(i, j int) bool {
		if pooled[i].Similarity != pooled[j].Similarity {
			return pooled[i].Similarity > pooled[j].Similarity
		}
		return pooled[i].Chunk.CreatedAt.After(pooled[j].Chunk.CreatedAt)
	})

	logger.Debug("Retrieved %d pooled results from %d query variants", len(pooled), embedded)
	return pooled, nil
}

// dedup applies the configured pooling policy.
func (r *Retriever) dedup(results []domain.RetrievalResult) []domain.RetrievalResult {
	if r.settings.Dedup != domain.DedupByChunk {
		return results
	}

	best := make(map[string]domain.RetrievalResult, len(results))
	order := make([]string, 0, len(results))
	for _, res := range results {
		existing, seen := best[res.Chunk.ID]
		if !seen {
			order = append(order, res.Chunk.ID)
		}
		if !seen || res.Similarity > existing.Similarity {
			best[res.Chunk.ID] = res
		}
	}

	deduped := make([]domain.RetrievalResult, 0, len(order))
	for _, id := range order {
		deduped = append(deduped, best[id])
	}
	return deduped
}
