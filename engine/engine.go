// Package engine drives a single game between two players: turn alternation,
// terminal detection after every move, and post-game memory revision for any
// player that learns.
package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"hexapawn/experiments/metrics"
	"hexapawn/game"
	"hexapawn/memory"
	"hexapawn/player"
)

// MaxMoves is a safety net; the shrinking pawn count bounds real games far
// below it.
const MaxMoves = 512

// learner is satisfied by players that keep a pruning memory and should be
// fed their move history after a loss.
type learner interface {
	player.Player
	Memory() *memory.Memory
}

// Engine owns one game from a fixed starting state to its result. It keeps a
// per-side move history for the duration of the game; histories are fed to a
// losing learner's memory on completion and discarded with the engine.
type Engine struct {
	state     *game.State
	players   map[game.Side]player.Player
	histories map[game.Side]memory.History
}

func New(start *game.State, white, black player.Player) *Engine {
	return &Engine{
		state: start,
		players: map[game.Side]player.Player{
			game.White: white,
			game.Black: black,
		},
		histories: map[game.Side]memory.History{},
	}
}

func (e *Engine) State() *game.State { return e.state }

// Run plays the game to completion and returns the winning side. On a
// learner's loss its history is handed to the memory's revision algorithm
// before Run returns.
func (e *Engine) Run() (game.Side, metrics.GameMetric, error) {
	metric := metrics.GameMetric{
		StartingPlayer: e.players[e.state.ToMove()].Name(),
		StartTime:      time.Now(),
	}

	winner := e.state.Winner()
	for winner == game.NoSide {
		if metric.Moves >= MaxMoves {
			return game.NoSide, metric, fmt.Errorf("game exceeded %d moves", MaxMoves)
		}
		side := e.state.ToMove()
		p := e.players[side]

		move, err := p.NextMove(e.state)
		if err != nil {
			return game.NoSide, metric, fmt.Errorf("%s to move: %w", side, err)
		}
		next, err := e.state.Apply(move)
		if err != nil {
			// Only reachable through a buggy player implementation.
			return game.NoSide, metric, fmt.Errorf("%s played %s: %w", p.Name(), move, err)
		}
		log.Debug().Str("player", p.Name()).Stringer("move", move).Msg("move played")

		e.histories[side] = append(e.histories[side], memory.Step{State: e.state, Move: move})
		e.state = next
		metric.Moves++
		winner = e.state.Winner()
	}

	metric.Winner = e.players[winner].Name()
	metric.EndTime = time.Now()
	metric.Duration = metric.EndTime.Sub(metric.StartTime)

	for side, p := range e.players {
		l, ok := p.(learner)
		if !ok {
			continue
		}
		l.Memory().RecordOutcome(e.histories[side], e.state.StatusFor(side))
		stats := l.Memory().Stats()
		metric.MemoryStates = stats.States
		metric.MemoryPruned = stats.Pruned
		if side != winner {
			log.Debug().Str("player", p.Name()).Int("pruned", stats.Pruned).Msg("loss reviewed")
		}
	}

	return winner, metric, nil
}
