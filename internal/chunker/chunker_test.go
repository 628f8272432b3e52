package chunker

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcadia-labs/bizkb/internal/core/domain"
)

// paragraph builds a deterministic paragraph of roughly n characters.
func paragraph(seed string, n int) string {
	var b strings.Builder
	for i := 0; b.Len() < n; i++ {
		fmt.Fprintf(&b, "%s sentence number %d continues the paragraph. ", seed, i)
	}
	return strings.TrimSpace(b.String())
}

func testDoc(content string) *domain.Document {
	return &domain.Document{ID: "doc-1", TenantID: "tenant-1", Content: content}
}

func TestNormalize(t *testing.T) {
	in := "first line\r\nsecond\tline\r\n\r\n  padded  \n"
	out := Normalize(in)

	assert.Equal(t, "first line\nsecond line\n\npadded\n", out)
}

func TestParagraphs(t *testing.T) {
	c := New()

	text := "line one\nline two\n\n\n\nsecond para\n\nthird para"
	paras := c.Paragraphs(text)

	require.Len(t, paras, 3)
	assert.Equal(t, "line one line two", paras[0])
	assert.Equal(t, "second para", paras[1])
	assert.Equal(t, "third para", paras[2])
}

func TestParagraphs_SplitsOversized(t *testing.T) {
	c := New(WithMaxSize(100), WithMinSize(10), WithOverlap(0))

	huge := strings.Repeat("x", 250)
	paras := c.Paragraphs(huge)

	require.Len(t, paras, 3)
	assert.Len(t, paras[0], 100)
	assert.Len(t, paras[1], 100)
	assert.Len(t, paras[2], 50)
}

func TestChunk_Empty(t *testing.T) {
	c := New()

	assert.Nil(t, c.Chunk(testDoc("")))
	assert.Nil(t, c.Chunk(testDoc("\n\n  \n\t\n")))
}

func TestChunk_SingleSmallDocument(t *testing.T) {
	c := New()

	// Well under min size: still emitted as the sole chunk.
	chunks := c.Chunk(testDoc("A fifty word document about opening hours."))

	require.Len(t, chunks, 1)
	assert.Equal(t, "A fifty word document about opening hours.", chunks[0].Content)
	assert.Equal(t, 0, chunks[0].Position)
	assert.Equal(t, "doc-1", chunks[0].DocumentID)
	assert.Equal(t, "tenant-1", chunks[0].TenantID)
	assert.NotEmpty(t, chunks[0].ID)
}

func TestChunk_SizeBounds(t *testing.T) {
	c := New() // 2000 / 200 / 100

	var paras []string
	for i := 0; i < 30; i++ {
		paras = append(paras, paragraph(fmt.Sprintf("topic%d", i), 400))
	}
	chunks := c.Chunk(testDoc(strings.Join(paras, "\n\n")))

	require.Greater(t, len(chunks), 1)
	for i, ch := range chunks {
		assert.LessOrEqual(t, len(ch.Content), DefaultMaxSize+DefaultOverlap,
			"chunk %d exceeds ceiling", i)
		assert.GreaterOrEqual(t, len(ch.Content), DefaultMinSize,
			"chunk %d below minimum", i)
		assert.Equal(t, i, ch.Position)
	}
}

func TestChunk_OverlapSeed(t *testing.T) {
	c := New(WithMaxSize(500), WithMinSize(100), WithOverlap(80))

	// Paragraphs small enough that the seed prefers whole paragraphs.
	var paras []string
	for i := 0; i < 12; i++ {
		paras = append(paras, paragraph(fmt.Sprintf("p%d", i), 70))
	}
	chunks := c.Chunk(testDoc(strings.Join(paras, "\n\n")))

	require.Greater(t, len(chunks), 1)
	for i := 1; i < len(chunks); i++ {
		prev := chunks[i-1].Content
		head := chunks[i].Content[:strings.Index(chunks[i].Content, "\n\n")]
		assert.True(t, strings.HasSuffix(prev, head),
			"chunk %d does not start with the previous chunk's tail", i)
	}
}

func TestChunk_NoContentDropped(t *testing.T) {
	c := New(WithMaxSize(300), WithMinSize(50), WithOverlap(60))

	var paras []string
	for i := 0; i < 9; i++ {
		paras = append(paras, paragraph(fmt.Sprintf("section%d", i), 120))
	}
	chunks := c.Chunk(testDoc(strings.Join(paras, "\n\n")))
	require.NotEmpty(t, chunks)

	// Every source paragraph must appear in at least one chunk.
	joined := make([]string, len(chunks))
	for i, ch := range chunks {
		joined[i] = ch.Content
	}
	all := strings.Join(joined, "\n\n")
	for i, p := range c.Paragraphs(strings.Join(paras, "\n\n")) {
		assert.Contains(t, all, p, "paragraph %d missing from chunks", i)
	}
}

func TestChunk_ShortTrailingDropped(t *testing.T) {
	c := New(WithMaxSize(300), WithMinSize(100), WithOverlap(0))

	// Two full chunks worth of text plus a tiny trailing paragraph.
	content := paragraph("first", 250) + "\n\n" + paragraph("second", 250) + "\n\nbye"
	chunks := c.Chunk(testDoc(content))

	require.NotEmpty(t, chunks)
	last := chunks[len(chunks)-1]
	assert.GreaterOrEqual(t, len(last.Content), 100)
	assert.NotEqual(t, "bye", last.Content)
}

func TestChunk_AccumulatesPastMaxWhenBelowMin(t *testing.T) {
	// min size larger than any single paragraph: the chunker must keep
	// accumulating instead of emitting tiny chunks.
	c := New(WithMaxSize(200), WithMinSize(150), WithOverlap(0))

	var paras []string
	for i := 0; i < 6; i++ {
		paras = append(paras, paragraph(fmt.Sprintf("bit%d", i), 60))
	}
	chunks := c.Chunk(testDoc(strings.Join(paras, "\n\n")))

	require.NotEmpty(t, chunks)
	for i, ch := range chunks[:len(chunks)-1] {
		assert.GreaterOrEqual(t, len(ch.Content), 150, "chunk %d too small", i)
	}
}

func TestNew_ParameterSanity(t *testing.T) {
	c := New(WithMaxSize(100), WithMinSize(500), WithOverlap(400))

	assert.Equal(t, 100, c.maxSize)
	assert.Equal(t, 10, c.minSize)
	assert.Equal(t, 5, c.overlap)
}

func TestFromSettings(t *testing.T) {
	c := New(FromSettings(domain.ChunkingSettings{MaxSize: 1000, MinSize: 100, Overlap: 50}))

	assert.Equal(t, 1000, c.maxSize)
	assert.Equal(t, 100, c.minSize)
	assert.Equal(t, 50, c.overlap)
}
