// Package contentstore uploads publish artifacts to content-addressed
// storage and defines the CID contract shared by all backends (CIDv1, raw
// multicodec, sha2-256).
//
// Two backends ship with vitrine: an HTTP gateway client for an IPFS-style
// add API, and an in-memory store for offline use and tests. Both return
// identifiers derived solely from the uploaded bytes, so partial publish
// failures can never corrupt stored content — at worst they leave
// unreferenced objects behind.
package contentstore
