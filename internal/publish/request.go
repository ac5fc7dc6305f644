package publish

import (
	"encoding/json"

	"vitrine/internal/record"
	"vitrine/internal/scene"
)

// Request describes one publish attempt. Which fields matter depends on the
// Kind; Preparing validates the combination before any network call.
type Request struct {
	Kind Kind

	// Object publishes.
	ObjectData []byte
	ObjectName string
	ObjectType string
	Category   string

	// Chamber scene publishes (chamber, version, remix).
	Objects    []scene.Object
	RoomConfig json.RawMessage
	ObjectRefs []int64
	Thumbnail  []byte

	// Name is required for new chamber roots; versions inherit the parent's
	// name and ignore it.
	Name string

	// Remixable overrides the inherited/default flag when set. Versions
	// inherit the parent's flag; remixes default to false regardless of the
	// source's flag.
	Remixable *bool

	// Parent is the tracked open chamber a version supersedes. The caller
	// owns this tracking; a missing parent is a precondition failure, never
	// a silent fallback to a new root.
	Parent *record.Record

	// Source is the record a remix is seeded from.
	Source *record.Record

	// OnProgress observes stage transitions and upload percentages. May be nil.
	OnProgress ProgressFunc
}

// target keys the cooperative one-publish-in-flight guard. Unrelated targets
// may publish concurrently.
func (r Request) target() string {
	switch r.Kind {
	case KindVersion:
		if r.Parent != nil {
			return "chamber:" + formatID(r.Parent.ID)
		}
		return "chamber:untracked"
	case KindRemix:
		if r.Source != nil {
			return "remix:" + formatID(r.Source.ID)
		}
		return "remix:unknown"
	case KindObject:
		return "object:new"
	default:
		return "chamber:new"
	}
}

// Result is the terminal payload of a successful publish.
type Result struct {
	Kind         Kind
	RecordID     int64
	Receipt      string
	PayloadRef   string
	MetadataRef  string
	ThumbnailRef string

	// Fee is set for remixes only.
	Fee *FeeOutcome
}
