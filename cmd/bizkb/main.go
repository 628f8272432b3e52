// bizkb is a multi-tenant business knowledge base with
// retrieval-augmented chat.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/arcadia-labs/bizkb/internal/adapters/driven/cache"
	configfile "github.com/arcadia-labs/bizkb/internal/adapters/driven/config/file"
	"github.com/arcadia-labs/bizkb/internal/adapters/driven/embedding"
	embeddingnaive "github.com/arcadia-labs/bizkb/internal/adapters/driven/embedding/naive"
	embeddingollama "github.com/arcadia-labs/bizkb/internal/adapters/driven/embedding/ollama"
	embeddingopenai "github.com/arcadia-labs/bizkb/internal/adapters/driven/embedding/openai"
	"github.com/arcadia-labs/bizkb/internal/adapters/driven/filestore"
	"github.com/arcadia-labs/bizkb/internal/adapters/driven/llm"
	llmanthropic "github.com/arcadia-labs/bizkb/internal/adapters/driven/llm/anthropic"
	llmollama "github.com/arcadia-labs/bizkb/internal/adapters/driven/llm/ollama"
	llmopenai "github.com/arcadia-labs/bizkb/internal/adapters/driven/llm/openai"
	"github.com/arcadia-labs/bizkb/internal/adapters/driven/storage/sqlite"
	"github.com/arcadia-labs/bizkb/internal/adapters/driving/cli"
	"github.com/arcadia-labs/bizkb/internal/chunker"
	"github.com/arcadia-labs/bizkb/internal/core/domain"
	"github.com/arcadia-labs/bizkb/internal/core/ports/driven"
	"github.com/arcadia-labs/bizkb/internal/core/services"
	"github.com/arcadia-labs/bizkb/internal/extractors"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := sqlite.NewStore(cfg.GetString("storage.data_dir"))
	if err != nil {
		return fmt.Errorf("opening knowledge store: %w", err)
	}
	defer store.Close()

	files, err := filestore.NewLocal(cfg.GetString("storage.upload_dir"))
	if err != nil {
		return fmt.Errorf("opening file store: %w", err)
	}

	embedder, err := buildEmbeddingChain(cfg)
	if err != nil {
		return fmt.Errorf("building embedding chain: %w", err)
	}
	defer embedder.Close()

	generator, err := buildGenerationChain(cfg)
	if err != nil {
		return fmt.Errorf("building generation chain: %w", err)
	}
	defer generator.Close()

	retriever := services.NewRetriever(embedder, store, retrievalSettings(cfg))
	assembler := services.NewAssembler(domain.ContextSettings{
		CharBudget: cfg.GetInt("context.char_budget"),
	})

	chat := services.NewChatService(retriever, assembler, generator,
		services.WithResponseCache(cache.NewTTL()))

	ingest := services.NewIngestService(extractors.Defaults(), embedder, store,
		services.WithFileStore(files),
		services.WithChunker(chunker.New(chunker.FromSettings(chunkingSettings(cfg)))),
		services.WithPersistence(domain.PersistenceSettings{
			KeepSynthetic: cfg.GetBool("persistence.keep_synthetic"),
		}))

	cli.SetServices(cli.Services{
		Ingest:    ingest,
		Chat:      chat,
		Facts:     services.NewFactService(embedder, store),
		Documents: services.NewDocumentService(store),
	})

	return cli.Execute()
}

// buildEmbeddingChain assembles the ordered embedding tiers: Ollama
// when reachable config-wise, OpenAI when a key is present, and the
// naive fallback unless disabled.
func buildEmbeddingChain(cfg driven.ConfigStore) (*embedding.Chain, error) {
	var providers []driven.EmbeddingProvider

	if !cfg.GetBool("embedding.ollama.disabled") {
		providers = append(providers, embeddingollama.New(embeddingollama.Config{
			BaseURL: cfg.GetString("embedding.ollama.base_url"),
			Model:   cfg.GetString("embedding.ollama.model"),
		}))
	}

	if key := secret(cfg, "OPENAI_API_KEY", "openai.api_key"); key != "" {
		provider, err := embeddingopenai.New(embeddingopenai.Config{
			APIKey: key,
			Model:  cfg.GetString("embedding.openai.model"),
		})
		if err != nil {
			return nil, err
		}
		providers = append(providers, provider)
	}

	if !cfg.GetBool("embedding.naive.disabled") {
		providers = append(providers, embeddingnaive.New())
	}

	opts := []embedding.Option{
		embedding.WithRetryPolicy(retryPolicy(cfg, "embedding")),
	}
	if rps := cfg.GetFloat("embedding.rate_limit.rps"); rps > 0 {
		burst := cfg.GetInt("embedding.rate_limit.burst")
		opts = append(opts, embedding.WithRateLimit(rps, burst))
	}

	return embedding.NewChain(providers, opts...)
}

// buildGenerationChain assembles the ordered generation tiers. The
// local Ollama tier is always present so the chain is never empty.
func buildGenerationChain(cfg driven.ConfigStore) (*llm.Chain, error) {
	var generators []driven.Generator

	if key := secret(cfg, "OPENAI_API_KEY", "openai.api_key"); key != "" {
		generator, err := llmopenai.New(llmopenai.Config{
			APIKey: key,
			Model:  cfg.GetString("llm.openai.model"),
		})
		if err != nil {
			return nil, err
		}
		generators = append(generators, generator)
	}

	if key := secret(cfg, "ANTHROPIC_API_KEY", "anthropic.api_key"); key != "" {
		generator, err := llmanthropic.New(llmanthropic.Config{
			APIKey: key,
			Model:  cfg.GetString("llm.anthropic.model"),
		})
		if err != nil {
			return nil, err
		}
		generators = append(generators, generator)
	}

	generators = append(generators, llmollama.New(llmollama.Config{
		BaseURL: cfg.GetString("llm.ollama.base_url"),
		Model:   cfg.GetString("llm.ollama.model"),
	}))

	return llm.NewChain(generators, llm.WithRetryPolicy(retryPolicy(cfg, "llm")))
}

// secret resolves a credential from the environment first, the config
// file second.
func secret(cfg driven.ConfigStore, envKey, cfgKey string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return cfg.GetString(cfgKey)
}

// retryPolicy reads a section's retry configuration, falling back to
// the default policy.
func retryPolicy(cfg driven.ConfigStore, section string) domain.RetryPolicy {
	policy := domain.DefaultRetryPolicy
	if attempts := cfg.GetInt(section + ".retry.max_attempts"); attempts > 0 {
		policy.MaxAttempts = attempts
	}
	if backoff := cfg.GetInt(section + ".retry.backoff_ms"); backoff > 0 {
		policy.Backoff = time.Duration(backoff) * time.Millisecond
	}
	return policy
}

func retrievalSettings(cfg driven.ConfigStore) domain.RetrievalSettings {
	return domain.RetrievalSettings{
		TopK:                 cfg.GetInt("retrieval.top_k"),
		MinSimilarity:        cfg.GetFloat("retrieval.min_similarity"),
		ContextMinSimilarity: cfg.GetFloat("retrieval.context_min_similarity"),
		Dedup:                domain.DedupPolicy(cfg.GetString("retrieval.dedup")),
	}
}

func chunkingSettings(cfg driven.ConfigStore) domain.ChunkingSettings {
	return domain.ChunkingSettings{
		MaxSize: cfg.GetInt("chunking.max_size"),
		MinSize: cfg.GetInt("chunking.min_size"),
		Overlap: cfg.GetInt("chunking.overlap"),
	}
}
