// Package ledger defines the call contract against the authoritative record
// ledger and provides a local SQLite-backed implementation.
//
// The Ledger interface is what the publish pipeline commits through; a
// blockchain client would satisfy it just as well. The local store exists so
// the full publish path — including NotOwner and NotRemixable rejections and
// originalCreator inheritance — can be exercised without a network.
package ledger
