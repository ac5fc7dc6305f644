package lineage

import "vitrine/internal/record"

// Resolution tags how a chain's membership was established.
type Resolution string

const (
	// ResolutionResolved means every member was reached by walking parent
	// pointers from a known root.
	ResolutionResolved Resolution = "resolved"
	// ResolutionFallback means true lineage could not be established and the
	// members were grouped by display name instead. Membership is a
	// best-effort approximation; nothing is ever dropped.
	ResolutionFallback Resolution = "fallback"
)

// Chain is one display-ready version lineage. Versions are sorted ascending
// by version number; the root sits first for resolved chains.
type Chain struct {
	Root       record.Record
	Versions   []record.Record
	Resolution Resolution
}

// Latest returns the member with the highest version number. Only this
// member is labeled "Latest" for display.
func (c Chain) Latest() record.Record {
	if len(c.Versions) == 0 {
		return c.Root
	}
	return c.Versions[len(c.Versions)-1]
}

// Len reports the number of members in the chain.
func (c Chain) Len() int {
	return len(c.Versions)
}
