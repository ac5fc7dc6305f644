package publish

import "strings"

// Kind identifies which publish flow a session drives.
type Kind string

const (
	// KindObject publishes the currently selected object as a new lineage.
	KindObject Kind = "object"
	// KindChamber publishes the current scene as a new chamber lineage.
	KindChamber Kind = "chamber"
	// KindVersion publishes the current scene as a child of the tracked
	// open chamber.
	KindVersion Kind = "version"
	// KindRemix publishes the current scene as a new lineage seeded from
	// another creator's record.
	KindRemix Kind = "remix"
)

var kindSet = map[Kind]struct{}{
	KindObject:  {},
	KindChamber: {},
	KindVersion: {},
	KindRemix:   {},
}

// ParseKind converts a string into a known publish Kind.
func ParseKind(value string) (Kind, bool) {
	normalized := Kind(strings.ToLower(strings.TrimSpace(value)))
	_, ok := kindSet[normalized]
	return normalized, ok
}

// chamberScene reports whether the kind publishes a chamber scene and
// therefore carries a thumbnail and chamber payload.
func (k Kind) chamberScene() bool {
	switch k {
	case KindChamber, KindVersion, KindRemix:
		return true
	default:
		return false
	}
}

// Stage names one state of the linear publish state machine. Stages never
// branch backwards; every attempt ends in StageSucceeded or StageFailed.
type Stage string

const (
	StagePending            Stage = "pending"
	StagePreparing          Stage = "preparing"
	StageUploadingPayload   Stage = "uploading_payload"
	StageUploadingThumbnail Stage = "uploading_thumbnail"
	StageUploadingMetadata  Stage = "uploading_metadata"
	StageCommitting         Stage = "committing"
	StageSucceeded          Stage = "succeeded"
	StageFailed             Stage = "failed"
)

// Progress is one advisory progress event emitted while a publish runs.
// Upload percentages are forwarded verbatim from the content store.
type Progress struct {
	Stage   Stage
	Percent int
	Message string
}

// ProgressFunc receives progress events. It may be nil; the pipeline behaves
// identically with or without an observer.
type ProgressFunc func(Progress)
