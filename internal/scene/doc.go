// Package scene converts in-memory chamber state to and from the canonical
// JSON payload format uploaded to content storage.
//
// Both directions are pure: no I/O, no clock access beyond the timestamp the
// caller supplies. Deserialization is deliberately forgiving — a single
// malformed object entry degrades to field defaults instead of failing the
// document, because a chamber must always load with every entry present.
package scene
