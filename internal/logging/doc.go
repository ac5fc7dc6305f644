// Package logging centralizes slog configuration for vitrine.
//
// It provides:
//   - Logger construction from options or application config, with console
//     and JSON output formats.
//   - Attr helpers and standardized field keys so publish sessions, stages,
//     and record identifiers are tagged consistently across components.
//   - Context-aware logger derivation that stamps session and stage fields
//     extracted from a context.Context.
package logging
