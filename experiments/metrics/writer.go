package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Writer stores run results as CSV files in a timestamped directory, one
// directory per experiment run.
type Writer struct {
	baseDir string
}

func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(root, name, timestamp)
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	return &Writer{baseDir: baseDir}, nil
}

func (w *Writer) BaseDir() string { return w.baseDir }

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	path := filepath.Join(w.baseDir, "game_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create game records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"id", "learner", "opponent", "starting_player", "winner", "moves", "memory_states", "memory_pruned", "duration"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write game records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.Itoa(record.ID),
			record.Learner,
			record.Opponent,
			record.StartingPlayer,
			record.Winner,
			strconv.Itoa(record.Moves),
			strconv.Itoa(record.MemoryStates),
			strconv.Itoa(record.MemoryPruned),
			record.Duration.String(),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write game record row: %w", err)
		}
	}

	return nil
}

func (w *Writer) WriteSummary(s Summary) error {
	path := filepath.Join(w.baseDir, "summary.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create summary file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"games", "learner_wins", "early_wins", "late_wins", "memory_states", "memory_pruned", "duration"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write summary header: %w", err)
	}
	row := []string{
		strconv.Itoa(s.Games),
		strconv.Itoa(s.LearnerWins),
		strconv.Itoa(s.EarlyWins),
		strconv.Itoa(s.LateWins),
		strconv.Itoa(s.MemoryStates),
		strconv.Itoa(s.MemoryPruned),
		s.Duration.String(),
	}
	if err := writer.Write(row); err != nil {
		return fmt.Errorf("failed to write summary row: %w", err)
	}

	return nil
}
