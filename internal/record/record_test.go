package record_test

import (
	"testing"

	"vitrine/internal/record"
)

func TestDisplayLabelFallback(t *testing.T) {
	cases := []struct {
		name string
		rec  record.Record
		want string
	}{
		{"named", record.Record{ID: 7, Kind: record.KindChamber, DisplayName: "Atrium"}, "Atrium"},
		{"empty name", record.Record{ID: 7, Kind: record.KindChamber}, "Chamber #7"},
		{"whitespace name", record.Record{ID: 3, Kind: record.KindObject, DisplayName: "   "}, "Object #3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.rec.DisplayLabel(); got != tc.want {
				t.Fatalf("DisplayLabel() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestIsRoot(t *testing.T) {
	if !(record.Record{ID: 1}).IsRoot() {
		t.Fatal("record without parent should be root")
	}
	if (record.Record{ID: 2, ParentID: 1}).IsRoot() {
		t.Fatal("record with parent should not be root")
	}
}

func TestParseKind(t *testing.T) {
	if k, ok := record.ParseKind(" Chamber "); !ok || k != record.KindChamber {
		t.Fatalf("ParseKind chamber: %v %v", k, ok)
	}
	if _, ok := record.ParseKind("portal"); ok {
		t.Fatal("expected unknown kind to be rejected")
	}
}
