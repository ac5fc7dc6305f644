package lineage_test

import (
	"math/rand"
	"sort"
	"strconv"
	"testing"

	"vitrine/internal/lineage"
	"vitrine/internal/record"
)

func chamber(id int64, name string, version int, parentID int64) record.Record {
	return record.Record{
		ID:              id,
		Kind:            record.KindChamber,
		DisplayName:     name,
		Version:         version,
		ParentID:        parentID,
		OriginalCreator: "alice",
		CurrentHolder:   "alice",
	}
}

func memberIDs(chain lineage.Chain) []int64 {
	ids := make([]int64, 0, len(chain.Versions))
	for _, rec := range chain.Versions {
		ids = append(ids, rec.ID)
	}
	return ids
}

func totalMembers(chains []lineage.Chain) int {
	total := 0
	for _, chain := range chains {
		total += len(chain.Versions)
	}
	return total
}

func TestTwoRootsSharingANameStaySeparateChains(t *testing.T) {
	records := []record.Record{
		chamber(1, "A", 1, 0),
		chamber(2, "A", 2, 1),
		chamber(3, "A", 1, 0),
	}

	chains := lineage.Reconstruct(records)
	if len(chains) != 2 {
		t.Fatalf("expected 2 chains, got %d", len(chains))
	}

	var withTwo, withOne *lineage.Chain
	for i := range chains {
		switch len(chains[i].Versions) {
		case 2:
			withTwo = &chains[i]
		case 1:
			withOne = &chains[i]
		}
	}
	if withTwo == nil || withOne == nil {
		t.Fatalf("unexpected chain sizes: %+v", chains)
	}
	if withTwo.Root.ID != 1 || withTwo.Versions[0].ID != 1 || withTwo.Versions[1].ID != 2 {
		t.Fatalf("first chain wrong: root=%d members=%v", withTwo.Root.ID, memberIDs(*withTwo))
	}
	if withOne.Root.ID != 3 {
		t.Fatalf("second chain wrong: root=%d", withOne.Root.ID)
	}
	for _, chain := range chains {
		if chain.Resolution != lineage.ResolutionResolved {
			t.Fatalf("expected resolved chains, got %s", chain.Resolution)
		}
	}
}

func TestDanglingParentFallsBackWithoutDropping(t *testing.T) {
	records := []record.Record{chamber(5, "B", 3, 4)}

	chains := lineage.Reconstruct(records)
	if len(chains) != 1 {
		t.Fatalf("expected 1 fallback chain, got %d", len(chains))
	}
	chain := chains[0]
	if chain.Resolution != lineage.ResolutionFallback {
		t.Fatalf("expected fallback resolution, got %s", chain.Resolution)
	}
	if chain.Root.ID != 5 || len(chain.Versions) != 1 || chain.Versions[0].ID != 5 {
		t.Fatalf("record must survive as its own chain: %+v", chain)
	}
}

func TestVersionMonotonicityAndRootInvariant(t *testing.T) {
	records := []record.Record{
		chamber(4, "Loft", 4, 3),
		chamber(1, "Loft", 1, 0),
		chamber(3, "Loft", 3, 2),
		chamber(2, "Loft", 2, 1),
	}

	chains := lineage.Reconstruct(records)
	if len(chains) != 1 {
		t.Fatalf("expected one chain, got %d", len(chains))
	}
	chain := chains[0]
	if chain.Versions[0].ParentID != 0 {
		t.Fatalf("first member must be the root, got parent %d", chain.Versions[0].ParentID)
	}
	for i := 0; i < len(chain.Versions)-1; i++ {
		if chain.Versions[i].Version >= chain.Versions[i+1].Version {
			t.Fatalf("versions not strictly ascending: %+v", chain.Versions)
		}
	}
	if chain.Latest().ID != 4 {
		t.Fatalf("latest should be id 4, got %d", chain.Latest().ID)
	}
}

func TestCycleTerminatesAndKeepsAllRecords(t *testing.T) {
	// 7 and 8 point at each other; no root exists in the bucket.
	records := []record.Record{
		chamber(7, "Spiral", 2, 8),
		chamber(8, "Spiral", 3, 7),
	}

	chains := lineage.Reconstruct(records)
	if total := totalMembers(chains); total != len(records) {
		t.Fatalf("record loss: %d in, %d out", len(records), total)
	}
	if len(chains) != 1 || chains[0].Resolution != lineage.ResolutionFallback {
		t.Fatalf("cycle should degrade to one fallback chain: %+v", chains)
	}
}

func TestNoRecordLossAcrossMalformedInput(t *testing.T) {
	records := []record.Record{
		chamber(1, "A", 1, 0),
		chamber(2, "A", 2, 1),
		chamber(3, "A", 5, 99), // dangling parent
		chamber(4, "B", 1, 0),
		chamber(5, "B", 2, 5), // self-cycle
		chamber(6, "", 1, 0),  // unnamed root buckets under its fallback label
		chamber(7, "A", 3, 2),
	}

	chains := lineage.Reconstruct(records)
	if total := totalMembers(chains); total != len(records) {
		t.Fatalf("record loss: %d in, %d out", len(records), total)
	}

	seen := make(map[int64]int)
	for _, chain := range chains {
		for _, rec := range chain.Versions {
			seen[rec.ID]++
		}
	}
	for _, rec := range records {
		if seen[rec.ID] != 1 {
			t.Fatalf("record %d appeared %d times", rec.ID, seen[rec.ID])
		}
	}
}

func TestAttributionInvariant(t *testing.T) {
	records := []record.Record{
		{ID: 1, Kind: record.KindChamber, DisplayName: "A", Version: 1, OriginalCreator: "alice", CurrentHolder: "alice"},
		{ID: 2, Kind: record.KindChamber, DisplayName: "A", Version: 2, ParentID: 1, OriginalCreator: "alice", CurrentHolder: "bob"},
		{ID: 3, Kind: record.KindChamber, DisplayName: "A", Version: 3, ParentID: 2, OriginalCreator: "alice", CurrentHolder: "carol"},
	}

	chains := lineage.Reconstruct(records)
	for _, chain := range chains {
		for _, rec := range chain.Versions {
			if rec.OriginalCreator != chain.Root.OriginalCreator {
				t.Fatalf("attribution broken: record %d has %q, root has %q",
					rec.ID, rec.OriginalCreator, chain.Root.OriginalCreator)
			}
		}
	}
}

func TestReconstructIdempotentUnderShuffle(t *testing.T) {
	records := []record.Record{
		chamber(1, "A", 1, 0),
		chamber(2, "A", 2, 1),
		chamber(3, "A", 1, 0),
		chamber(4, "B", 1, 0),
		chamber(5, "B", 3, 99),
		chamber(6, "C", 2, 6),
	}

	reference := chainFingerprints(lineage.Reconstruct(records))

	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 25; trial++ {
		shuffled := make([]record.Record, len(records))
		copy(shuffled, records)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		got := chainFingerprints(lineage.Reconstruct(shuffled))
		if len(got) != len(reference) {
			t.Fatalf("trial %d: chain count changed: %v vs %v", trial, got, reference)
		}
		for i := range got {
			if got[i] != reference[i] {
				t.Fatalf("trial %d: chain membership changed: %v vs %v", trial, got, reference)
			}
		}
	}
}

// chainFingerprints reduces chains to a sorted, order-independent form:
// per-chain member ID lists joined in version order.
func chainFingerprints(chains []lineage.Chain) []string {
	prints := make([]string, 0, len(chains))
	for _, chain := range chains {
		print := string(chain.Resolution)
		for _, rec := range chain.Versions {
			print += ":" + strconv.FormatInt(rec.ID, 10)
		}
		prints = append(prints, print)
	}
	sort.Strings(prints)
	return prints
}

func TestUnnamedRecordsBucketIndependently(t *testing.T) {
	// Two unnamed roots synthesize distinct "Chamber #<id>" labels and must
	// not merge into one bucket.
	records := []record.Record{
		chamber(10, "", 1, 0),
		chamber(11, "", 1, 0),
	}
	chains := lineage.Reconstruct(records)
	if len(chains) != 2 {
		t.Fatalf("expected 2 independent chains, got %d", len(chains))
	}
}

func TestEmptyInput(t *testing.T) {
	if chains := lineage.Reconstruct(nil); len(chains) != 0 {
		t.Fatalf("expected no chains for empty input, got %d", len(chains))
	}
}
