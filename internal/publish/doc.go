// Package publish drives the linear state machine that turns an editor
// scene or selected object into a committed ledger record. Each attempt
// moves through preparing, payload upload, thumbnail upload (chamber
// scenes), metadata upload, and commit; failures are terminal and callers
// re-invoke from idle after inspecting the error.
package publish
