package experiments

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"hexapawn/memory"
)

func TestRunTraining(t *testing.T) {
	t.Run("plays every game and accumulates memory", func(t *testing.T) {
		mem := memory.New()
		summary, records, err := RunTraining(Config{Games: 40, Rows: 3, Cols: 3, Seed: 7}, mem)
		require.NoError(t, err)
		require.Len(t, records, 40)
		require.Equal(t, 40, summary.Games)
		require.Positive(t, summary.MemoryStates)
		require.Equal(t, mem.Stats().Pruned, summary.MemoryPruned)
		for i, r := range records {
			require.Equal(t, i+1, r.ID)
			require.Positive(t, r.Moves)
		}
	})

	t.Run("writes CSV records when an output root is set", func(t *testing.T) {
		root := t.TempDir()
		_, _, err := RunTraining(Config{Games: 8, Rows: 3, Cols: 3, Seed: 1, OutputRoot: root}, memory.New())
		require.NoError(t, err)

		runs, err := os.ReadDir(filepath.Join(root, "training"))
		require.NoError(t, err)
		require.Len(t, runs, 1)
		dir := filepath.Join(root, "training", runs[0].Name())

		f, err := os.Open(filepath.Join(dir, "game_records.csv"))
		require.NoError(t, err)
		defer f.Close()
		rows, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 9, "header plus one row per game")

		_, err = os.Stat(filepath.Join(dir, "summary.csv"))
		require.NoError(t, err)
	})

	t.Run("rejects an empty run", func(t *testing.T) {
		_, _, err := RunTraining(Config{Games: 0, Rows: 3, Cols: 3}, memory.New())
		require.Error(t, err)
	})
}
