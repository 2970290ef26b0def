// Package metrics holds the per-game measurements the training harness
// collects and the CSV writer that stores them.
package metrics

import "time"

// GameMetric describes a single finished game.
type GameMetric struct {
	StartingPlayer string
	Winner         string
	Moves          int
	MemoryStates   int // distinct states in the learner's memory after the game
	MemoryPruned   int // moves pruned so far across the run
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
}

// GameRecord is a GameMetric tagged with its position in a training run.
type GameRecord struct {
	ID       int
	Learner  string
	Opponent string
	GameMetric
}

// Summary aggregates a whole training run.
type Summary struct {
	Games        int
	LearnerWins  int
	EarlyWins    int // learner wins in the first quarter of the run
	LateWins     int // learner wins in the last quarter of the run
	MemoryStates int
	MemoryPruned int
	Duration     time.Duration
}
