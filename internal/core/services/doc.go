// Package services implements the driving port interfaces.
// Services contain the core logic and orchestrate calls to driven
// ports (adapters).
//
// The two building blocks are the Detector, which classifies an EDI header
// and extracts its separators, and the SegmentReader, which splits a byte
// stream into segments using them. DocumentService combines both with a
// SourceOpener; SettingsService wraps the ConfigStore.
//
// Services are pure Go with no external dependencies.
package services
