package ledger_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"vitrine/internal/ledger"
	"vitrine/internal/record"
)

func openStore(t *testing.T) *ledger.Store {
	t.Helper()
	store, err := ledger.Open(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestChamberRootAndVersionLineage(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	alice := store.Session("alice")

	root, err := alice.CreateChamberRoot(ctx, ledger.ChamberRootParams{
		PayloadRef:  "bafyroot",
		MetadataRef: "bafymeta",
		DisplayName: "Atrium",
		ObjectRefs:  []int64{10, 11},
		Remixable:   true,
	})
	if err != nil {
		t.Fatalf("create root: %v", err)
	}
	if root.ID == 0 || root.Receipt == "" {
		t.Fatalf("commit missing id or receipt: %+v", root)
	}

	child, err := alice.CreateChamberVersion(ctx, ledger.ChamberVersionParams{
		ParentID:    root.ID,
		PayloadRef:  "bafyv2",
		MetadataRef: "bafymeta2",
		ObjectRefs:  []int64{10},
		Remixable:   true,
	})
	if err != nil {
		t.Fatalf("create version: %v", err)
	}
	if child.ID <= root.ID {
		t.Fatalf("ids must be assigned monotonically: root=%d child=%d", root.ID, child.ID)
	}

	rec, err := alice.Record(ctx, child.ID)
	if err != nil {
		t.Fatalf("fetch child: %v", err)
	}
	if rec.Version != 2 || rec.ParentID != root.ID {
		t.Fatalf("child lineage wrong: %+v", rec)
	}
	if rec.DisplayName != "Atrium" {
		t.Fatalf("child must inherit parent display name, got %q", rec.DisplayName)
	}
	if rec.OriginalCreator != "alice" || rec.CurrentHolder != "alice" {
		t.Fatalf("attribution wrong: %+v", rec)
	}
}

func TestChamberVersionRejectsNonHolder(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	root, err := store.Session("alice").CreateChamberRoot(ctx, ledger.ChamberRootParams{
		PayloadRef: "p", MetadataRef: "m", DisplayName: "Atrium",
	})
	if err != nil {
		t.Fatalf("create root: %v", err)
	}

	_, err = store.Session("mallory").CreateChamberVersion(ctx, ledger.ChamberVersionParams{
		ParentID: root.ID, PayloadRef: "p2", MetadataRef: "m2",
	})
	if !errors.Is(err, ledger.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}

func TestRemixRequiresRemixableAndStartsNewLineage(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	locked, err := store.Session("alice").CreateChamberRoot(ctx, ledger.ChamberRootParams{
		PayloadRef: "p", MetadataRef: "m", DisplayName: "Vault", Remixable: false,
	})
	if err != nil {
		t.Fatalf("create locked root: %v", err)
	}
	_, err = store.Session("bob").CreateChamberRemix(ctx, ledger.ChamberRemixParams{
		SourceID: locked.ID, PayloadRef: "p2", MetadataRef: "m2", DisplayName: "Vault remix",
	})
	if !errors.Is(err, ledger.ErrNotRemixable) {
		t.Fatalf("expected ErrNotRemixable, got %v", err)
	}

	open, err := store.Session("alice").CreateChamberRoot(ctx, ledger.ChamberRootParams{
		PayloadRef: "p", MetadataRef: "m", DisplayName: "Gallery", Remixable: true,
	})
	if err != nil {
		t.Fatalf("create open root: %v", err)
	}
	remix, err := store.Session("bob").CreateChamberRemix(ctx, ledger.ChamberRemixParams{
		SourceID: open.ID, PayloadRef: "p2", MetadataRef: "m2", DisplayName: "Gallery remix",
	})
	if err != nil {
		t.Fatalf("create remix: %v", err)
	}

	rec, err := store.Session("bob").Record(ctx, remix.ID)
	if err != nil {
		t.Fatalf("fetch remix: %v", err)
	}
	if !rec.IsRoot() || rec.Version != 1 {
		t.Fatalf("remix must start its own lineage: %+v", rec)
	}
	if rec.OriginalCreator != "bob" {
		t.Fatalf("remix lineage belongs to the remixer, got %q", rec.OriginalCreator)
	}
}

func TestObjectVersionInheritsTypeAndCategory(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	alice := store.Session("alice")

	root, err := alice.CreateObjectRoot(ctx, ledger.ObjectRootParams{
		PayloadRef: "p", MetadataRef: "m", ObjectType: "furniture", Category: "decor",
	})
	if err != nil {
		t.Fatalf("create object root: %v", err)
	}
	child, err := alice.CreateObjectVersion(ctx, root.ID, "p2", "m2")
	if err != nil {
		t.Fatalf("create object version: %v", err)
	}

	rec, err := alice.Record(ctx, child.ID)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if rec.Kind != record.KindObject || rec.ObjectType != "furniture" || rec.Category != "decor" {
		t.Fatalf("object version should inherit type fields: %+v", rec)
	}
}

func TestRecordsByCreatorSeesHeldAndOriginatedRecords(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	root, err := store.Session("alice").CreateChamberRoot(ctx, ledger.ChamberRootParams{
		PayloadRef: "p", MetadataRef: "m", DisplayName: "Atrium", Remixable: true,
	})
	if err != nil {
		t.Fatalf("create root: %v", err)
	}
	if _, err := store.Session("bob").CreateChamberRemix(ctx, ledger.ChamberRemixParams{
		SourceID: root.ID, PayloadRef: "p2", MetadataRef: "m2", DisplayName: "Atrium remix",
	}); err != nil {
		t.Fatalf("create remix: %v", err)
	}

	aliceRecords, err := store.Session("alice").RecordsByCreator(ctx, "alice")
	if err != nil {
		t.Fatalf("records by creator: %v", err)
	}
	if len(aliceRecords) != 1 {
		t.Fatalf("alice should see only her own record, got %d", len(aliceRecords))
	}
	bobRecords, err := store.Session("bob").RecordsByCreator(ctx, "bob")
	if err != nil {
		t.Fatalf("records by creator: %v", err)
	}
	if len(bobRecords) != 1 || bobRecords[0].OriginalCreator != "bob" {
		t.Fatalf("bob should see his remix lineage, got %+v", bobRecords)
	}
}

func TestRecordNotFound(t *testing.T) {
	store := openStore(t)
	_, err := store.Session("alice").Record(context.Background(), 999)
	if !errors.Is(err, ledger.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
