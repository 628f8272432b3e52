package extractors

import (
	"archive/zip"
	"bytes"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/arcadia-labs/bizkb/internal/core/ports/driven"
	"github.com/arcadia-labs/bizkb/internal/extractors/docx"
	"github.com/arcadia-labs/bizkb/internal/extractors/markdown"
	"github.com/arcadia-labs/bizkb/internal/extractors/pdf"
	"github.com/arcadia-labs/bizkb/internal/extractors/plaintext"
)

// Media types the registry can detect.
const (
	MediaTypePlain    = "text/plain"
	MediaTypeMarkdown = "text/markdown"
	MediaTypePDF      = "application/pdf"
	MediaTypeDOCX     = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MediaTypeUnknown  = "application/octet-stream"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry routes detected media types to extractors.
type Registry struct {
	byType map[string]driven.Extractor
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{byType: make(map[string]driven.Extractor)}
}

// Defaults creates a registry with all built-in extractors registered.
func Defaults() *Registry {
	r := New()
	r.Register(plaintext.New())
	r.Register(markdown.New())
	r.Register(pdf.New())
	r.Register(docx.New())
	return r
}

// Register adds an extractor for each media type it supports.
func (r *Registry) Register(e driven.Extractor) {
	for _, mt := range e.SupportedMediaTypes() {
		r.byType[mt] = e
	}
}

// ForMediaType returns the extractor registered for the media type.
func (r *Registry) ForMediaType(mediaType string) (driven.Extractor, bool) {
	e, ok := r.byType[mediaType]
	return e, ok
}

// markdownMarkers matches structural markdown near the start of a file:
// headings, list items, links or fenced code blocks.
var markdownMarkers = regexp.MustCompile("(?m)^(#{1,6} |[-*+] |\\d+\\. |```)|\\]\\(")

// Detect sniffs the media type by content inspection. Magic bytes are
// checked first; textual content is classified as markdown or plain
// text, with the filename extension consulted only to disambiguate the
// two text flavours.
func (r *Registry) Detect(data []byte, filename string) string {
	if isPDF(data) {
		return MediaTypePDF
	}
	if isZip(data) {
		if isWordArchive(data) {
			return MediaTypeDOCX
		}
		return MediaTypeUnknown
	}
	if !isProbablyText(data) {
		return MediaTypeUnknown
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == ".md" || ext == ".markdown" {
		return MediaTypeMarkdown
	}

	head := data
	if len(head) > 4096 {
		head = head[:4096]
	}
	if markdownMarkers.Match(head) {
		return MediaTypeMarkdown
	}

	return MediaTypePlain
}

// isPDF checks for the "%PDF-" magic header.
func isPDF(b []byte) bool {
	return len(b) >= 5 && string(b[:5]) == "%PDF-"
}

// isZip checks for the ZIP local file header PK\x03\x04.
func isZip(b []byte) bool {
	return len(b) >= 4 && b[0] == 'P' && b[1] == 'K' && b[2] == 3 && b[3] == 4
}

// isWordArchive reports whether a ZIP container holds a word/ part.
func isWordArchive(b []byte) bool {
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return false
	}
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "word/") {
			return true
		}
	}
	return false
}

// isProbablyText reports whether most bytes are printable or
// whitespace with no NULs.
func isProbablyText(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	sample := b
	if len(sample) > 4096 {
		sample = sample[:4096]
	}

	good := 0
	for _, c := range sample {
		if c == 0x00 {
			return false
		}
		if c == '\n' || c == '\r' || c == '\t' || (c >= 0x20 && c <= 0x7E) || c >= 0x80 {
			good++
		}
	}
	return float64(good)/float64(len(sample)) > 0.9
}
