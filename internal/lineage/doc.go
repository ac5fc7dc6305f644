// Package lineage rebuilds display-ready version chains from the flat record
// set a ledger returns for one creator.
//
// Reconstruction is a pure function over its input: no I/O, no shared state,
// and malformed lineage data (dangling parents, duplicate names, cycles)
// degrades to best-effort fallback grouping instead of an error.
package lineage
