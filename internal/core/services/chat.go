package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/arcadia-labs/bizkb/internal/core/domain"
	"github.com/arcadia-labs/bizkb/internal/core/ports/driven"
	"github.com/arcadia-labs/bizkb/internal/core/ports/driving"
	"github.com/arcadia-labs/bizkb/internal/logger"
)

// User-safe canned responses.
const (
	// apologyResponse is returned when every generation tier failed.
	apologyResponse = "I apologize, but I'm unable to generate a response at the moment."

	// noContextResponse is returned when there is nothing to ground an
	// answer in: no profile and no knowledge above the threshold.
	noContextResponse = "I don't have enough information to answer that question."
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// ChatService answers tenant questions grounded in the knowledge base.
type ChatService struct {
	retriever *Retriever
	assembler *Assembler
	generator driven.GenerationService
	cache     driven.ResponseCache
	now       func() time.Time
}

// ChatOption configures a ChatService.
type ChatOption func(*ChatService)

// WithResponseCache enables answer caching.
func WithResponseCache(cache driven.ResponseCache) ChatOption {
	return func(s *ChatService) {
		s.cache = cache
	}
}

// NewChatService creates a new chat service.
func NewChatService(retriever *Retriever, assembler *Assembler, generator driven.GenerationService, opts ...ChatOption) *ChatService {
	s := &ChatService{
		retriever: retriever,
		assembler: assembler,
		generator: generator,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Answer runs the query pipeline: embed the query, search, assemble
// context, generate. Provider failures never escape; they degrade the
// answer instead.
func (s *ChatService) Answer(ctx context.Context, tenantID, query string, profile *domain.TenantProfile, history []domain.ConversationTurn) (*domain.Answer, error) {
	logger.Section("Chat Query")

	query = strings.TrimSpace(query)
	if strings.TrimSpace(tenantID) == "" {
		return nil, domain.ErrTenantRequired
	}
	if query == "" {
		return nil, fmt.Errorf("empty query: %w", domain.ErrInvalidInput)
	}

	cacheKey := answerCacheKey(tenantID, query, history)
	if s.cache != nil {
		if cached, ok := s.cache.Get(cacheKey); ok {
			logger.Debug("Answer served from cache")
			// Only grounded ANSWERED responses are ever cached.
			return &domain.Answer{
				Text:        cached,
				Grounded:    true,
				State:       domain.StateAnswered,
				GeneratedAt: s.now().UTC(),
			}, nil
		}
	}

	state := domain.StateEmbeddingQuery
	logger.Debug("State: %s", state)

	// Retrieval failures degrade to an ungrounded answer; the chat
	// must stay responsive even with the knowledge base unreachable.
	minSim := s.retriever.Settings().ContextMinSimilarity
	state = domain.StateSearching
	logger.Debug("State: %s", state)
	results, err := s.retriever.Retrieve(ctx, tenantID, query, minSim)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logger.Warn("retrieval degraded to empty: %v", err)
		results = nil
	}

	state = domain.StateAssemblingContext
	logger.Debug("State: %s", state)
	contextBlock, used := s.assembler.Build(profile, results, history, minSim)

	if contextBlock == "" {
		logger.Info("Nothing to ground the answer in")
		return &domain.Answer{
			Text:        noContextResponse,
			Grounded:    false,
			State:       domain.StateDegradedAnswered,
			GeneratedAt: s.now().UTC(),
		}, nil
	}

	state = domain.StateGenerating
	logger.Debug("State: %s", state)
	text, err := s.generator.Generate(ctx, driven.GenerationRequest{
		Query:   query,
		Context: contextBlock,
		History: history,
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !errors.Is(err, domain.ErrGenerationFailed) {
			logger.Warn("unexpected generation error treated as exhaustion: %v", err)
		}
		return &domain.Answer{
			Text:        apologyResponse,
			Grounded:    false,
			State:       domain.StateFailedSafe,
			GeneratedAt: s.now().UTC(),
		}, nil
	}

	grounded := len(used) > 0
	if grounded {
		text += provenanceSuffix(used)
	}

	finalState := domain.StateAnswered
	if !grounded {
		finalState = domain.StateDegradedAnswered
	}

	if s.cache != nil && finalState == domain.StateAnswered {
		s.cache.Set(cacheKey, text)
	}

	logger.Info("State: %s (grounded=%t)", finalState, grounded)
	return &domain.Answer{
		Text:        text,
		Grounded:    grounded,
		State:       finalState,
		GeneratedAt: s.now().UTC(),
	}, nil
}

// provenanceSuffix lists the source documents that grounded the
// answer, best similarity per document, in retrieval order.
func provenanceSuffix(used []domain.RetrievalResult) string {
	best := make(map[string]float64)
	var order []string
	for _, res := range used {
		if _, seen := best[res.DocumentName]; !seen {
			order = append(order, res.DocumentName)
		}
		if res.Similarity > best[res.DocumentName] {
			best[res.DocumentName] = res.Similarity
		}
	}

	parts := make([]string, 0, len(order))
	for _, name := range order {
		parts = append(parts, fmt.Sprintf("%s (%d%%)", name, confidencePercent(best[name])))
	}
	return domain.ProvenanceMarker + strings.Join(parts, ", ")
}

// answerCacheKey derives a bounded cache key from the query inputs.
// History participates so a cached answer is only reused for the same
// conversational context.
func answerCacheKey(tenantID, query string, history []domain.ConversationTurn) string {
	h := sha256.New()
	h.Write([]byte(query))
	for _, turn := range domain.RecentTurns(history) {
		h.Write([]byte{0})
		h.Write([]byte(turn.Role))
		h.Write([]byte{0})
		h.Write([]byte(turn.Content))
	}
	return "answer:" + tenantID + ":" + hex.EncodeToString(h.Sum(nil))
}
