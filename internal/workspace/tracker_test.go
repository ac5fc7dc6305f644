package workspace

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTrackerRoundTrip(t *testing.T) {
	tracker := NewTracker(t.TempDir())

	if _, ok, err := tracker.Current(); err != nil || ok {
		t.Fatalf("fresh tracker should be empty, got ok=%v err=%v", ok, err)
	}

	if err := tracker.Open(42); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	id, ok, err := tracker.Current()
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if !ok || id != 42 {
		t.Fatalf("got id=%d ok=%v, want 42/true", id, ok)
	}

	if err := tracker.Open(43); err != nil {
		t.Fatalf("Open overwrite failed: %v", err)
	}
	if id, _, _ := tracker.Current(); id != 43 {
		t.Fatalf("open did not move pointer, got %d", id)
	}

	if err := tracker.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, ok, _ := tracker.Current(); ok {
		t.Fatalf("tracker still populated after Clear")
	}
	if err := tracker.Clear(); err != nil {
		t.Fatalf("clearing an empty tracker errored: %v", err)
	}
}

func TestTrackerRejectsInvalidID(t *testing.T) {
	tracker := NewTracker(t.TempDir())
	if err := tracker.Open(0); err == nil {
		t.Fatal("expected error for zero record id")
	}
	if err := tracker.Open(-5); err == nil {
		t.Fatal("expected error for negative record id")
	}
}

func TestTrackerToleratesCorruptState(t *testing.T) {
	dir := t.TempDir()
	tracker := NewTracker(dir)

	if err := os.WriteFile(filepath.Join(dir, trackerFile), []byte("not json"), 0o644); err != nil {
		t.Fatalf("seed corrupt state: %v", err)
	}
	if _, ok, err := tracker.Current(); err != nil || ok {
		t.Fatalf("corrupt state should read as untracked, got ok=%v err=%v", ok, err)
	}

	if err := tracker.Open(7); err != nil {
		t.Fatalf("Open over corrupt state failed: %v", err)
	}
	if id, ok, _ := tracker.Current(); !ok || id != 7 {
		t.Fatalf("recovery failed, got id=%d ok=%v", id, ok)
	}
}
