// Package workspace persists editor session state between invocations. The
// only tracked state is the "currently open chamber": the record a subsequent
// save creates a child of.
package workspace

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

const trackerFile = "open_chamber.json"

type trackedState struct {
	RecordID int64     `json:"record_id"`
	OpenedAt time.Time `json:"opened_at"`
}

// Tracker records which chamber the workspace currently has open. Publishing
// a chamber, version, or remix moves the pointer to the new record; failed
// publishes leave it untouched; only an explicit new scene clears it.
type Tracker struct {
	path string
	now  func() time.Time
}

// NewTracker stores tracking state under dataDir.
func NewTracker(dataDir string) *Tracker {
	return &Tracker{
		path: filepath.Join(dataDir, trackerFile),
		now:  time.Now,
	}
}

// Current returns the open chamber's record ID, or ok=false when no chamber
// is tracked. A corrupt state file reads as untracked rather than erroring;
// the next Open overwrites it.
func (t *Tracker) Current() (int64, bool, error) {
	data, err := os.ReadFile(t.path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read open chamber state: %w", err)
	}

	var state trackedState
	if err := json.Unmarshal(data, &state); err != nil || state.RecordID == 0 {
		return 0, false, nil
	}
	return state.RecordID, true, nil
}

// Open points the tracker at recordID.
func (t *Tracker) Open(recordID int64) error {
	if recordID <= 0 {
		return fmt.Errorf("invalid record id %d", recordID)
	}
	data, err := json.MarshalIndent(trackedState{RecordID: recordID, OpenedAt: t.now().UTC()}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal open chamber state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(t.path), 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	// Write atomically via temp file
	tmpPath := t.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, t.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Clear removes the tracked chamber. Clearing an already-empty tracker is
// not an error.
func (t *Tracker) Clear() error {
	if err := os.Remove(t.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear open chamber state: %w", err)
	}
	return nil
}
