// Package domain defines the core business entities for bizkb.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An uploaded source file after text extraction
//   - Chunk: An embedded slice of a document's text
//   - TenantProfile: A snapshot of the business profile that owns a knowledge base
//   - ConversationTurn: A single message of recent chat history
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
