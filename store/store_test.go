package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"hexapawn/game"
	"hexapawn/memory"
)

func seededMemory(t *testing.T) *memory.Memory {
	t.Helper()
	mem := memory.New()
	s, err := game.NewState(3, 3)
	require.NoError(t, err)
	mem.GetOrInit(s)
	mem.RecordOutcome(memory.History{{State: s, Move: s.LegalMoves()[0]}}, game.Lost)
	return mem
}

func TestSaveAndRestore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory", "hexapawn.gob")
	mem := seededMemory(t)
	require.NoError(t, Save(path, 3, 3, mem))

	restored := memory.New()
	loaded, err := Restore(path, 3, 3, restored)
	require.NoError(t, err)
	require.True(t, loaded)
	require.Equal(t, mem.Export(), restored.Export())
}

func TestRestoreMissingFileStartsFresh(t *testing.T) {
	mem := memory.New()
	loaded, err := Restore(filepath.Join(t.TempDir(), "absent.gob"), 3, 3, mem)
	require.NoError(t, err)
	require.False(t, loaded)
	require.Equal(t, memory.Stats{}, mem.Stats())
}

func TestRestoreRejectsDimensionMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hexapawn.gob")
	require.NoError(t, Save(path, 3, 3, seededMemory(t)))

	_, err := Restore(path, 4, 3, memory.New())
	require.Error(t, err)
}

func TestRestoreRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hexapawn.gob")
	require.NoError(t, os.WriteFile(path, []byte("not a snapshot"), 0644))

	_, err := Restore(path, 3, 3, memory.New())
	require.Error(t, err)
}
