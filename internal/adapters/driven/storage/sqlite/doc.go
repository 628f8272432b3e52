// Package sqlite provides a SQLite-backed implementation of the
// knowledge store port.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation. Chunk embeddings are stored
// as little-endian float32 BLOBs and similarity is computed in process, which
// keeps the store dependency-free and is plenty fast at single-business scale.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory.
//
// # Data Location
//
// By default, the database is stored at ~/.bizkb/data/knowledge.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
