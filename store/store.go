// Package store persists the learner's memory between process runs as a gob
// snapshot on disk. The core only promises an export/import contract; the
// on-disk format lives entirely here.
package store

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"hexapawn/game"
	"hexapawn/memory"
)

// Snapshot is the on-disk form of an exported memory. Board dimensions are
// recorded so a snapshot taken on one board size is never imported into a
// differently sized game.
type Snapshot struct {
	Rows, Cols int
	Entries    map[game.StateKey][]game.Move
}

func (s Snapshot) Matches(rows, cols int) bool {
	return s.Rows == rows && s.Cols == cols
}

// Save writes the memory's exported table to path, creating parent
// directories as needed.
func Save(path string, rows, cols int, mem *memory.Memory) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create snapshot directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	defer f.Close()

	snap := Snapshot{Rows: rows, Cols: cols, Entries: mem.Export()}
	if err := gob.NewEncoder(f).Encode(snap); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

// Load reads a snapshot from path. A missing file surfaces as fs.ErrNotExist
// so callers can start with a fresh memory.
func Load(path string) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, err
	}
	defer f.Close()

	var snap Snapshot
	if err := gob.NewDecoder(f).Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode snapshot %s: %w", path, err)
	}
	return snap, nil
}

// Restore loads path into mem if the snapshot exists and matches the board
// dimensions. It reports whether anything was restored; a missing file is
// not an error.
func Restore(path string, rows, cols int, mem *memory.Memory) (bool, error) {
	snap, err := Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if !snap.Matches(rows, cols) {
		return false, fmt.Errorf("snapshot %s is for a %dx%d board, want %dx%d",
			path, snap.Rows, snap.Cols, rows, cols)
	}
	if err := mem.Import(snap.Entries); err != nil {
		return false, fmt.Errorf("snapshot %s: %w", path, err)
	}
	return true, nil
}
