package ledger

import (
	"context"
	"errors"

	"vitrine/internal/record"
)

var (
	// ErrNotOwner is returned when the caller does not currently hold the
	// parent record of a version commit.
	ErrNotOwner = errors.New("caller does not hold parent record")
	// ErrNotRemixable is returned when a remix targets a record whose
	// creator disallowed remixing.
	ErrNotRemixable = errors.New("source record disallows remix")
	// ErrNotFound is returned for lookups of records that do not exist.
	ErrNotFound = errors.New("record not found")
)

// Commit is the result of a successful create operation. The assigned record
// ID is the only way the caller learns the new record's identity.
type Commit struct {
	ID      int64
	Receipt string
}

// ObjectRootParams describes a new object lineage.
type ObjectRootParams struct {
	PayloadRef  string
	MetadataRef string
	ObjectType  string
	Category    string
}

// ChamberRootParams describes a new chamber lineage.
type ChamberRootParams struct {
	PayloadRef   string
	MetadataRef  string
	ThumbnailRef string
	DisplayName  string
	ObjectRefs   []int64
	Remixable    bool
}

// ChamberVersionParams describes a child chamber record superseding ParentID.
type ChamberVersionParams struct {
	ParentID     int64
	PayloadRef   string
	MetadataRef  string
	ThumbnailRef string
	ObjectRefs   []int64
	Remixable    bool
}

// ChamberRemixParams describes a new lineage seeded from SourceID.
type ChamberRemixParams struct {
	SourceID     int64
	PayloadRef   string
	MetadataRef  string
	ThumbnailRef string
	DisplayName  string
	ObjectRefs   []int64
	Remixable    bool
}

// Ledger is the authoritative record store the publish pipeline commits to.
// Implementations are external collaborators; authorization (holdership,
// remixability) is the ledger's responsibility and surfaces as ErrNotOwner or
// ErrNotRemixable.
type Ledger interface {
	CreateObjectRoot(ctx context.Context, params ObjectRootParams) (Commit, error)
	CreateObjectVersion(ctx context.Context, parentID int64, payloadRef, metadataRef string) (Commit, error)
	CreateChamberRoot(ctx context.Context, params ChamberRootParams) (Commit, error)
	CreateChamberVersion(ctx context.Context, params ChamberVersionParams) (Commit, error)
	CreateChamberRemix(ctx context.Context, params ChamberRemixParams) (Commit, error)
	Record(ctx context.Context, id int64) (record.Record, error)
	RecordsByCreator(ctx context.Context, address string) ([]record.Record, error)
}
