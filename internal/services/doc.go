// Package services defines shared utilities consumed by the publish pipeline
// and its external collaborators.
//
// Key responsibilities:
//   - Context helpers that stamp publish session IDs, stage names, and
//     correlation identifiers for logging and tracing.
//   - Structured error markers plus the Wrap helper that classify failures
//     into the publish error taxonomy (precondition, permission, upload,
//     commit) while preserving the underlying message for display.
//
// Use these helpers when wiring new pipeline logic so operational behaviour
// (error handling, observability) stays uniform across publish kinds.
package services
