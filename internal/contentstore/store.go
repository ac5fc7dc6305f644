package contentstore

import "context"

// ProgressFunc receives upload progress as a 0-100 percentage. Backends may
// call it zero or more times; callers must tolerate receiving no progress
// events at all.
type ProgressFunc func(percent int)

// Store is the content-addressed storage collaborator the publish pipeline
// uploads payloads, thumbnails, and metadata documents to.
//
// Contract:
//   - Uploads are idempotent; stored content is immutable.
//   - The returned CID uniquely names the uploaded bytes.
//   - onProgress may be nil.
type Store interface {
	Upload(ctx context.Context, data []byte, onProgress ProgressFunc) (string, error)
	UploadJSON(ctx context.Context, doc any, filename string) (string, error)
}
