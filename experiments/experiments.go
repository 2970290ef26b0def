// Package experiments runs repeated learner-vs-baseline games to measure how
// quickly loss-driven pruning converges, and stores per-game records as CSV.
package experiments

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"hexapawn/engine"
	"hexapawn/experiments/metrics"
	"hexapawn/game"
	"hexapawn/memory"
	"hexapawn/player"
)

type Config struct {
	Games      int
	Rows, Cols int
	Seed       uint64
	OutputRoot string // directory for CSV output; empty disables writing
}

// RunTraining plays cfg.Games games of a single learning player (Black, as
// in the classic setup where the trainer moves first) against a fresh
// uniform-random White each game. The learner's memory carries across games.
func RunTraining(cfg Config, mem *memory.Memory) (metrics.Summary, []metrics.GameRecord, error) {
	if cfg.Games <= 0 {
		return metrics.Summary{}, nil, fmt.Errorf("training needs at least one game, got %d", cfg.Games)
	}

	learner := player.NewLearner("learner", mem, rand.NewSource(cfg.Seed))

	log.Info().Int("games", cfg.Games).Msg("starting training run")
	start := time.Now()

	records := make([]metrics.GameRecord, 0, cfg.Games)
	summary := metrics.Summary{Games: cfg.Games}
	quarter := cfg.Games / 4
	for i := 1; i <= cfg.Games; i++ {
		state, err := game.NewState(cfg.Rows, cfg.Cols)
		if err != nil {
			return metrics.Summary{}, nil, err
		}
		opponent := player.NewRandom("baseline", rand.NewSource(cfg.Seed+uint64(i)))

		winner, gameMetric, err := engine.New(state, opponent, learner).Run()
		if err != nil {
			return metrics.Summary{}, nil, fmt.Errorf("game %d: %w", i, err)
		}

		records = append(records, metrics.GameRecord{
			ID:         i,
			Learner:    learner.Name(),
			Opponent:   opponent.Name(),
			GameMetric: gameMetric,
		})
		if winner == game.Black {
			summary.LearnerWins++
			if quarter > 0 && i <= quarter {
				summary.EarlyWins++
			}
			if quarter > 0 && i > cfg.Games-quarter {
				summary.LateWins++
			}
		}
		if i%100 == 0 {
			stats := mem.Stats()
			log.Info().Int("game", i).Int("states", stats.States).Int("pruned", stats.Pruned).
				Msg("training progress")
		}
	}

	stats := mem.Stats()
	summary.MemoryStates = stats.States
	summary.MemoryPruned = stats.Pruned
	summary.Duration = time.Since(start)

	log.Info().Int("wins", summary.LearnerWins).Int("early_wins", summary.EarlyWins).
		Int("late_wins", summary.LateWins).Int("pruned", summary.MemoryPruned).
		Dur("duration", summary.Duration).Msg("completed training run")

	if cfg.OutputRoot != "" {
		writer, err := metrics.NewWriter(cfg.OutputRoot, "training")
		if err != nil {
			return summary, records, err
		}
		if err := writer.WriteGameRecords(records); err != nil {
			return summary, records, err
		}
		if err := writer.WriteSummary(summary); err != nil {
			return summary, records, err
		}
		log.Info().Str("dir", writer.BaseDir()).Msg("wrote training records")
	}

	return summary, records, nil
}
