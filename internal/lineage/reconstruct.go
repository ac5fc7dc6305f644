package lineage

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"vitrine/internal/record"
)

// Reconstruct takes the unordered, flat set of ledger records belonging to
// one creator and rebuilds the version chains for display.
//
// The algorithm runs in two phases per display-name bucket: first every
// parentless record seeds a chain, then each remaining record walks its
// parent pointers (bounded by the bucket size, so cycles terminate) toward a
// seeded root. Records whose walk dead-ends — the parent was burned, the
// lineage crossed a name change, or the pointers form a cycle — are gathered
// into one fallback chain per bucket rather than dropped: a listing must
// render something for every record the ledger returns.
//
// Reconstruct is pure and deterministic; it may be called repeatedly and
// concurrently.
func Reconstruct(records []record.Record) []Chain {
	buckets, order := bucketByName(records)

	var chains []Chain
	for _, key := range order {
		chains = append(chains, reconstructBucket(buckets[key])...)
	}
	return chains
}

// bucketKey normalizes a display name for grouping. Unnamed records group
// under their synthesized "<Kind> #<id>" label, which is unique per record.
func bucketKey(rec record.Record) string {
	name := strings.TrimSpace(rec.DisplayName)
	if name == "" {
		return rec.DisplayLabel()
	}
	return norm.NFC.String(name)
}

func bucketByName(records []record.Record) (map[string][]record.Record, []string) {
	buckets := make(map[string][]record.Record)
	var order []string
	for _, rec := range records {
		key := bucketKey(rec)
		if _, seen := buckets[key]; !seen {
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], rec)
	}
	return buckets, order
}

func reconstructBucket(bucket []record.Record) []Chain {
	byID := make(map[int64]record.Record, len(bucket))
	for _, rec := range bucket {
		byID[rec.ID] = rec
	}

	processed := make(map[int64]bool, len(bucket))
	chainIndexByRoot := make(map[int64]int)
	var chains []Chain

	// Phase one: every parentless record roots its own chain. Two unrelated
	// roots sharing a name legitimately become two chains; each has its own
	// identity.
	for _, rec := range bucket {
		if rec.IsRoot() {
			chainIndexByRoot[rec.ID] = len(chains)
			chains = append(chains, Chain{Root: rec, Versions: []record.Record{rec}, Resolution: ResolutionResolved})
			processed[rec.ID] = true
		}
	}

	// Phase two: attach the rest by walking parent pointers inside the
	// bucket. The walk is bounded by the bucket size so malformed pointer
	// cycles cannot loop forever.
	for _, rec := range bucket {
		if processed[rec.ID] {
			continue
		}
		root, ok := resolveRoot(rec, byID, len(bucket))
		if !ok {
			continue
		}
		idx, exists := chainIndexByRoot[root.ID]
		if !exists {
			idx = len(chains)
			chainIndexByRoot[root.ID] = idx
			chains = append(chains, Chain{Root: root, Versions: []record.Record{root}, Resolution: ResolutionResolved})
			processed[root.ID] = true
		}
		chains[idx].Versions = append(chains[idx].Versions, rec)
		processed[rec.ID] = true
	}

	// Fallback: whatever could not be rooted is grouped into one chain per
	// bucket, rooted arbitrarily at the first leftover. Inclusive over
	// precise — every input record appears in exactly one chain.
	var leftovers []record.Record
	for _, rec := range bucket {
		if !processed[rec.ID] {
			leftovers = append(leftovers, rec)
		}
	}
	if len(leftovers) > 0 {
		chains = append(chains, Chain{Root: leftovers[0], Versions: leftovers, Resolution: ResolutionFallback})
	}

	for i := range chains {
		sortVersions(chains[i].Versions)
	}
	return chains
}

// resolveRoot walks parent pointers within the bucket until it reaches a
// parentless record. The walk gives up after limit hops or when a parent is
// absent from the bucket.
func resolveRoot(rec record.Record, byID map[int64]record.Record, limit int) (record.Record, bool) {
	current := rec
	for hops := 0; hops <= limit; hops++ {
		if current.IsRoot() {
			return current, true
		}
		parent, ok := byID[current.ParentID]
		if !ok {
			return record.Record{}, false
		}
		current = parent
	}
	// Walk exceeded the bucket size: the pointers cycle.
	return record.Record{}, false
}

func sortVersions(versions []record.Record) {
	sort.SliceStable(versions, func(i, j int) bool {
		if versions[i].Version != versions[j].Version {
			return versions[i].Version < versions[j].Version
		}
		return versions[i].ID < versions[j].ID
	})
}
