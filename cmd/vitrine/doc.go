// Package main hosts the vitrine CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into publish
// pipeline runs, ledger lookups, lineage listings, workspace tracking, and
// configuration scaffolding. It centralizes configuration resolution and
// structured logging setup so subcommands can focus on user experience
// instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
