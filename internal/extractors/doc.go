// Package extractors turns raw upload bytes into plain text.
//
// Each media-type family has its own extractor sub-package (plaintext,
// markdown, pdf, docx). The Registry sniffs the actual media type from
// content - the declared filename is a hint at best - and routes to
// the registered extractor.
package extractors
