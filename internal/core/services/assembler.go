package services

import (
	"fmt"
	"strings"

	"github.com/arcadia-labs/bizkb/internal/core/domain"
)

// Assembler builds the prompt context block from the tenant profile,
// retrieved knowledge and recent conversation.
type Assembler struct {
	settings domain.ContextSettings
}

// NewAssembler creates an assembler. A zero char budget falls back to
// the default.
func NewAssembler(settings domain.ContextSettings) *Assembler {
	if settings.CharBudget == 0 {
		settings.CharBudget = domain.DefaultContext.CharBudget
	}
	return &Assembler{settings: settings}
}

// Build assembles the context string and reports which retrieval
// results actually made it in. Chunks below minSimilarity are dropped,
// then whole chunks are cut lowest-similarity-first until the
// knowledge block fits the char budget. Results must already be sorted
// by descending similarity.
func (a *Assembler) Build(
	profile *domain.TenantProfile,
	results []domain.RetrievalResult,
	history []domain.ConversationTurn,
	minSimilarity float64,
) (string, []domain.RetrievalResult) {
	var sections []string

	if profile != nil {
		if block := profileBlock(profile); block != "" {
			sections = append(sections, "Business Profile:\n"+block)
		}
	}

	used := a.fitKnowledge(results, minSimilarity)
	if len(used) > 0 {
		var sb strings.Builder
		sb.WriteString("Relevant Knowledge:")
		for _, res := range used {
			sb.WriteString(fmt.Sprintf("\n\n[Source: %s | Section: %d | Confidence: %d%% | Added: %s]\n%s",
				res.DocumentName, res.Chunk.Position+1, confidencePercent(res.Similarity),
				res.Chunk.CreatedAt.Format("2006-01-02"), res.Chunk.Content))
		}
		sections = append(sections, sb.String())
	}

	if turns := domain.RecentTurns(history); len(turns) > 0 {
		var sb strings.Builder
		sb.WriteString("Recent Conversation:")
		for _, turn := range turns {
			sb.WriteString(fmt.Sprintf("\n%s: %s", turn.Role, turn.Content))
		}
		sections = append(sections, sb.String())
	}

	return strings.Join(sections, "\n\n"), used
}

// profileBlock renders the whole profile snapshot: the contact fields,
// verification state, completion score, automation preferences and the
// knowledge-base source documents.
func profileBlock(p *domain.TenantProfile) string {
	var lines []string

	if text := p.ProfileText(); text != "" {
		lines = append(lines, text)
	}

	verified := "no"
	if p.Verified {
		verified = "yes"
	}
	lines = append(lines, fmt.Sprintf("Verified: %s", verified))
	lines = append(lines, fmt.Sprintf("Profile completion: %d%%", p.CompletionPercent()))

	if a := p.Automation; a.Posts != "" || a.Reviews != "" || a.QA != "" {
		lines = append(lines, fmt.Sprintf("Automation: posts=%s, reviews=%s, qa=%s",
			a.Posts, a.Reviews, a.QA))
	}

	if len(p.DocumentNames) > 0 {
		lines = append(lines, "Source documents: "+strings.Join(p.DocumentNames, ", "))
	}

	return strings.Join(lines, "\n")
}

// fitKnowledge filters by similarity and trims whole chunks to the
// char budget.
func (a *Assembler) fitKnowledge(results []domain.RetrievalResult, minSimilarity float64) []domain.RetrievalResult {
	var kept []domain.RetrievalResult
	for _, res := range results {
		if res.Similarity >= minSimilarity {
			kept = append(kept, res)
		}
	}

	// Results arrive sorted by descending similarity, so trimming from
	// the back removes the weakest chunks first.
	for len(kept) > 0 && a.knowledgeSize(kept) > a.settings.CharBudget {
		kept = kept[:len(kept)-1]
	}
	return kept
}

// knowledgeSize measures the knowledge block's chunk content.
func (a *Assembler) knowledgeSize(results []domain.RetrievalResult) int {
	size := 0
	for _, res := range results {
		size += len(res.Chunk.Content)
	}
	return size
}

// confidencePercent renders a similarity as a whole percentage.
func confidencePercent(similarity float64) int {
	if similarity < 0 {
		return 0
	}
	if similarity > 1 {
		return 100
	}
	return int(similarity*100 + 0.5)
}
