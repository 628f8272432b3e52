// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Extractor / ExtractorRegistry: Turn raw upload bytes into plain text
//   - EmbeddingService: Ordered provider chain that turns text into vectors
//   - GenerationService: Ordered provider chain that produces answers
//   - KnowledgeStore: Document/chunk persistence and similarity search
//   - FileStore: Raw upload byte retention
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ResponseCache: Advisory answer cache. A nil cache means every
//     query is computed live.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or extractor package
package driven
