package metadata_test

import (
	"strings"
	"testing"
	"time"

	"vitrine/internal/metadata"
	"vitrine/internal/record"
)

var testTime = time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

func TestForChamberRootUsesThumbnailAsImage(t *testing.T) {
	refs := metadata.Refs{PayloadRef: "bafypayload", ThumbnailRef: "bafythumb"}
	doc := metadata.ForChamberRoot("Atrium", 4, true, refs, testTime)

	if doc.Name != "Atrium" {
		t.Fatalf("unexpected name %q", doc.Name)
	}
	if doc.Image != "ref://bafythumb" {
		t.Fatalf("image should reference thumbnail, got %q", doc.Image)
	}
	if doc.AnimationURL != "ref://bafypayload" {
		t.Fatalf("animation_url should reference payload, got %q", doc.AnimationURL)
	}
	if doc.Properties.Version != 1 || doc.Properties.CreatedAt != "2026-08-30T10:00:00Z" {
		t.Fatalf("unexpected properties %+v", doc.Properties)
	}
}

func TestForObjectRootFallsBackToPayloadImage(t *testing.T) {
	doc := metadata.ForObjectRoot("Lamp", "furniture", "decor", metadata.Refs{PayloadRef: "bafymodel"}, testTime)
	if doc.Image != "ref://bafymodel" {
		t.Fatalf("image should reference payload when no thumbnail, got %q", doc.Image)
	}
	foundCategory := false
	for _, attr := range doc.Attributes {
		if attr.TraitType == "Category" && attr.Value == "decor" {
			foundCategory = true
		}
	}
	if !foundCategory {
		t.Fatalf("expected category attribute, got %+v", doc.Attributes)
	}
}

func TestForVersionInheritsParentNameAndFlag(t *testing.T) {
	parent := record.Record{ID: 9, Kind: record.KindChamber, DisplayName: "Atrium", Remixable: true}
	doc := metadata.ForVersion(parent, 6, 3, metadata.Refs{PayloadRef: "p", ThumbnailRef: "t"}, testTime)

	if doc.Name != "Atrium" {
		t.Fatalf("version must inherit parent name, got %q", doc.Name)
	}
	if !strings.Contains(doc.Description, "Version 3") {
		t.Fatalf("description should carry version number, got %q", doc.Description)
	}
	for _, attr := range doc.Attributes {
		if attr.TraitType == "Remixable" && attr.Value != true {
			t.Fatalf("version must inherit parent remixable flag, got %v", attr.Value)
		}
	}
}

func TestForVersionUsesFallbackNameForUnnamedParent(t *testing.T) {
	parent := record.Record{ID: 12, Kind: record.KindChamber}
	doc := metadata.ForVersion(parent, 1, 2, metadata.Refs{PayloadRef: "p"}, testTime)
	if doc.Name != "Chamber #12" {
		t.Fatalf("expected synthesized fallback name, got %q", doc.Name)
	}
}

func TestForRemixAttributionAndDefaults(t *testing.T) {
	source := record.Record{ID: 5, Kind: record.KindChamber, DisplayName: "Gallery", OriginalCreator: "addr-original", Remixable: true}
	doc := metadata.ForRemix(source, "", 2, false, metadata.Refs{PayloadRef: "p", ThumbnailRef: "t"}, testTime)

	if doc.Name != "Gallery (remix)" {
		t.Fatalf("unexpected remix name %q", doc.Name)
	}
	var remixedFrom, creator, remixable any
	for _, attr := range doc.Attributes {
		switch attr.TraitType {
		case "Remixed From":
			remixedFrom = attr.Value
		case "Original Creator":
			creator = attr.Value
		case "Remixable":
			remixable = attr.Value
		}
	}
	if remixedFrom != "#5" {
		t.Fatalf("expected attribution pointer to source, got %v", remixedFrom)
	}
	if creator != "addr-original" {
		t.Fatalf("expected original creator attribution, got %v", creator)
	}
	if remixable != false {
		t.Fatalf("remix should default remixable=false even when source allows remix, got %v", remixable)
	}
}
