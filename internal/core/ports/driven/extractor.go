package driven

import "context"

// Extractor converts raw upload bytes of one media-type family into
// plain text. Media type is always detected by content inspection, not
// by trusting the declared filename.
type Extractor interface {
	// SupportedMediaTypes returns the media types this extractor handles.
	SupportedMediaTypes() []string

	// Extract returns the plain text content of the document.
	// Returns domain.ErrExtractionFailed (wrapped) when the bytes parse
	// but yield no usable text.
	Extract(ctx context.Context, data []byte) (string, error)
}

// ExtractorRegistry selects the extractor for a detected media type.
type ExtractorRegistry interface {
	// Detect sniffs the media type from content.
	Detect(data []byte, filename string) string

	// ForMediaType returns the extractor registered for the media type,
	// or false when the type has no extractor.
	ForMediaType(mediaType string) (Extractor, bool)
}
