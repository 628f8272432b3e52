// Package chunker splits extracted document text into overlapping,
// paragraph-bounded segments sized for embedding and LLM context.
package chunker

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arcadia-labs/bizkb/internal/core/domain"
)

// Default segmentation parameters.
const (
	// DefaultMaxSize is the chunk size ceiling in characters.
	DefaultMaxSize = 2000

	// DefaultMinSize is the smallest chunk worth emitting.
	DefaultMinSize = 200

	// DefaultOverlap is how many tail characters seed the next chunk.
	DefaultOverlap = 100
)

// Chunker accumulates paragraphs into overlapping chunks.
type Chunker struct {
	maxSize int
	minSize int
	overlap int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithMaxSize sets the chunk size ceiling in characters.
func WithMaxSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.maxSize = size
		}
	}
}

// WithMinSize sets the minimum chunk size in characters.
func WithMinSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.minSize = size
		}
	}
}

// WithOverlap sets the overlap seed size in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// FromSettings applies a whole settings block.
func FromSettings(s domain.ChunkingSettings) Option {
	return func(c *Chunker) {
		if s.MaxSize > 0 {
			c.maxSize = s.MaxSize
		}
		if s.MinSize > 0 {
			c.minSize = s.MinSize
		}
		if s.Overlap >= 0 {
			c.overlap = s.Overlap
		}
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		maxSize: DefaultMaxSize,
		minSize: DefaultMinSize,
		overlap: DefaultOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Keep the parameters mutually sane
	if c.minSize >= c.maxSize {
		c.minSize = c.maxSize / 10
	}
	if c.overlap >= c.maxSize {
		c.overlap = c.maxSize / 20
	}

	return c
}

// Normalize unifies line endings, collapses tabs to spaces and strips
// per-line whitespace. Blank lines survive only as paragraph
// boundaries.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "\t", " ")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}

// Paragraphs splits normalized text into paragraphs. Consecutive
// non-empty lines are joined with single spaces; blank lines separate
// paragraphs; empty paragraphs are discarded. Paragraphs longer than
// the chunk ceiling are hard-split so the emitted-size guarantee holds.
func (c *Chunker) Paragraphs(text string) []string {
	var paragraphs []string
	var current []string

	for _, line := range strings.Split(Normalize(text), "\n") {
		if line != "" {
			current = append(current, line)
			continue
		}
		if len(current) > 0 {
			paragraphs = append(paragraphs, strings.Join(current, " "))
			current = nil
		}
	}
	if len(current) > 0 {
		paragraphs = append(paragraphs, strings.Join(current, " "))
	}

	return c.splitOversized(paragraphs)
}

// splitOversized slices any paragraph longer than maxSize into
// ceiling-sized pieces.
func (c *Chunker) splitOversized(paragraphs []string) []string {
	out := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		for len(p) > c.maxSize {
			out = append(out, p[:c.maxSize])
			p = p[c.maxSize:]
		}
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Chunk splits the document's content into chunks. A document with no
// paragraphs after normalization yields zero chunks; the caller treats
// that as empty content.
//
// Every emitted chunk's length falls in [minSize, maxSize+overlap],
// except a sole trailing chunk which may be shorter than minSize.
func (c *Chunker) Chunk(doc *domain.Document) []domain.Chunk {
	paragraphs := c.Paragraphs(doc.Content)
	if len(paragraphs) == 0 {
		return nil
	}

	var chunks []domain.Chunk
	now := time.Now().UTC()

	emit := func(text string) {
		chunks = append(chunks, domain.Chunk{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			TenantID:   doc.TenantID,
			Content:    text,
			Position:   len(chunks),
			CreatedAt:  now,
		})
	}

	var parts []string // paragraphs of the working chunk
	var seed string    // overlap carried from the previous chunk
	length := 0

	flush := func() string {
		text := seed
		if text != "" && len(parts) > 0 {
			text += "\n\n"
		}
		text += strings.Join(parts, "\n\n")
		emit(text)
		return c.overlapSeed(parts, text)
	}

	for _, para := range paragraphs {
		// The seed does not count against maxSize, so a seeded chunk
		// may legitimately grow to maxSize+overlap.
		limit := c.maxSize + len(seed)

		sep := 0
		if length > 0 {
			sep = 2 // the "\n\n" paragraph join
		}

		if length+sep+len(para) > limit && length-len(seed) >= c.minSize {
			seed = flush()
			parts = nil
			length = len(seed)
			sep = 0
			if length > 0 {
				sep = 2
			}
		}
		parts = append(parts, para)
		length += sep + len(para)
	}

	// Trailing chunk: emit when it meets minSize, or when it is the
	// only chunk the document produced.
	if length-len(seed) >= c.minSize || len(chunks) == 0 {
		flush()
	}

	return chunks
}

// overlapSeed captures the tail of a closed chunk, truncated to the
// overlap size. Whole trailing paragraphs are preferred; when even the
// last paragraph is too long, its raw tail is used.
func (c *Chunker) overlapSeed(parts []string, full string) string {
	if c.overlap == 0 {
		return ""
	}

	var tail []string
	size := 0
	for i := len(parts) - 1; i >= 0; i-- {
		grown := size + len(parts[i])
		if len(tail) > 0 {
			grown += 2 // the "\n\n" paragraph join
		}
		if grown > c.overlap {
			break
		}
		tail = append([]string{parts[i]}, tail...)
		size = grown
	}
	if len(tail) > 0 {
		return strings.Join(tail, "\n\n")
	}

	if len(full) <= c.overlap {
		return full
	}
	return full[len(full)-c.overlap:]
}
