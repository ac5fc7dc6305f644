package record

import (
	"fmt"
	"strings"
	"time"
)

// Kind distinguishes the two record families the ledger tracks.
type Kind string

const (
	KindObject  Kind = "object"
	KindChamber Kind = "chamber"
)

var kindSet = map[Kind]struct{}{
	KindObject:  {},
	KindChamber: {},
}

// ParseKind converts a string into a known Kind.
func ParseKind(value string) (Kind, bool) {
	normalized := Kind(strings.ToLower(strings.TrimSpace(value)))
	_, ok := kindSet[normalized]
	return normalized, ok
}

// Label returns the capitalized display form of the kind.
func (k Kind) Label() string {
	switch k {
	case KindObject:
		return "Object"
	case KindChamber:
		return "Chamber"
	default:
		return string(k)
	}
}

// Record is a ledger record for one published object or chamber version.
//
// Records are created only by the ledger and never mutated: a new version is
// always a new record with Version = parent.Version+1 and ParentID pointing at
// the superseded record. OriginalCreator is chain-constant regardless of who
// holds or authors later versions; CurrentHolder is whoever may create the
// next version.
type Record struct {
	ID              int64
	Kind            Kind
	PayloadRef      string
	MetadataRef     string
	ThumbnailRef    string
	DisplayName     string
	Version         int
	ParentID        int64
	OriginalCreator string
	CurrentHolder   string
	Remixable       bool    // chambers only
	ObjectRefs      []int64 // chambers only
	ObjectType      string  // objects only
	Category        string  // objects only
	CreatedAt       time.Time
}

// IsRoot reports whether the record starts a lineage.
func (r Record) IsRoot() bool {
	return r.ParentID == 0
}

// DisplayLabel returns the creator-supplied name, or the synthesized
// "<Kind> #<id>" fallback when the name is empty.
func (r Record) DisplayLabel() string {
	if name := strings.TrimSpace(r.DisplayName); name != "" {
		return name
	}
	return fmt.Sprintf("%s #%d", r.Kind.Label(), r.ID)
}
