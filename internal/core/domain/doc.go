// Package domain defines the core types for edicat.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Separator: The delimiter configuration detected from a document header
//   - Format: The EDI dialect a header was classified as
//   - AppSettings: Persisted user preferences
//   - CatReport: Per-input outcome of a concatenation run
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
