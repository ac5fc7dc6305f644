package testsupport

import (
	"context"
	"testing"

	"vitrine/internal/config"
	"vitrine/internal/ledger"
	"vitrine/internal/record"
)

// MustOpenLedger opens a ledger.Store for tests and registers cleanup.
func MustOpenLedger(t testing.TB, cfg *config.Config) *ledger.Store {
	t.Helper()

	store, err := ledger.Open(cfg.Ledger.DBPath)
	if err != nil {
		t.Fatalf("ledger.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewChamberRoot commits a chamber root through the session and returns the
// stored record.
func NewChamberRoot(t testing.TB, session *ledger.Session, name string, remixable bool) record.Record {
	t.Helper()

	commit, err := session.CreateChamberRoot(context.Background(), ledger.ChamberRootParams{
		PayloadRef:   "bafypayload-" + name,
		MetadataRef:  "bafymeta-" + name,
		ThumbnailRef: "bafythumb-" + name,
		DisplayName:  name,
		ObjectRefs:   []int64{},
		Remixable:    remixable,
	})
	if err != nil {
		t.Fatalf("session.CreateChamberRoot: %v", err)
	}
	rec, err := session.Record(context.Background(), commit.ID)
	if err != nil {
		t.Fatalf("session.Record: %v", err)
	}
	return rec
}
