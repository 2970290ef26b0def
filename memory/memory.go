// Package memory implements the adaptive move-pruning store behind the
// learning player: a mapping from canonical game state to the set of moves
// the player is still willing to try from that state. Entries only ever
// shrink. After a lost game the chosen moves are discredited in reverse
// order, and a state whose entry empties out discredits the move that led
// into it as well, the way Michie's matchbox learner retires beads.
package memory

import (
	"fmt"

	"hexapawn/game"
)

// Step is one (state, chosen move) pair from a game.
type Step struct {
	State *game.State
	Move  game.Move
}

// History is the ordered sequence of a player's choices during one game.
// It is owned by the controller for the game's lifetime and discarded after
// RecordOutcome.
type History []Step

// Mistake is a discredited (state, move) pair, kept for the CLI's flaw
// listing. The state is recoverable from the key via game.ParseKey.
type Mistake struct {
	Key  game.StateKey
	Move game.Move
}

// Stats summarizes the memory for logs and metrics.
type Stats struct {
	States int // distinct states seen
	Viable int // moves still viable across all states
	Pruned int // moves removed since this memory was created or imported
}

type Memory struct {
	entries  map[game.StateKey][]game.Move
	mistakes []Mistake
}

func New() *Memory {
	return &Memory{entries: make(map[game.StateKey][]game.Move)}
}

// GetOrInit returns a copy of the viable-move set for the state, creating
// the entry with every legal move on first encounter. Idempotent thereafter.
func (m *Memory) GetOrInit(s *game.State) []game.Move {
	entry := m.init(s)
	out := make([]game.Move, len(entry))
	copy(out, entry)
	return out
}

func (m *Memory) init(s *game.State) []game.Move {
	key := s.Key()
	entry, ok := m.entries[key]
	if !ok {
		entry = s.LegalMoves()
		m.entries[key] = entry
	}
	return entry
}

// RecordOutcome revises the memory after a finished game. Wins are never
// reinforced, so anything but a loss is a no-op. On a loss the history is
// walked newest-first: the chosen move is removed from its state's entry,
// and if that entry is now empty the state is a dead end whenever reached,
// so the walk continues with the move that led into it. The walk stops at
// the first state that still has an alternative. Replaying the same history
// is idempotent because removing an absent move changes nothing.
func (m *Memory) RecordOutcome(hist History, result game.Status) {
	if result != game.Lost {
		return
	}
	for i := len(hist) - 1; i >= 0; i-- {
		step := hist[i]
		key := step.State.Key()
		entry, ok := m.entries[key]
		if !ok {
			entry = step.State.LegalMoves()
		}
		entry, removed := removeMove(entry, step.Move)
		m.entries[key] = entry
		if removed {
			m.mistakes = append(m.mistakes, Mistake{Key: key, Move: step.Move})
		}
		if len(entry) > 0 {
			return
		}
	}
}

// Export returns a deep copy of the viable-move table for persistence.
func (m *Memory) Export() map[game.StateKey][]game.Move {
	out := make(map[game.StateKey][]game.Move, len(m.entries))
	for key, moves := range m.entries {
		cp := make([]game.Move, len(moves))
		copy(cp, moves)
		out[key] = cp
	}
	return out
}

// Import replaces the table with a previously exported one, validating that
// every key decodes to a well-formed state and every move is legal there.
// A failed import leaves the memory untouched.
func (m *Memory) Import(snapshot map[game.StateKey][]game.Move) error {
	entries := make(map[game.StateKey][]game.Move, len(snapshot))
	for key, moves := range snapshot {
		s, err := game.ParseKey(key)
		if err != nil {
			return fmt.Errorf("import: %w", err)
		}
		legal := s.LegalMoves()
		cp := make([]game.Move, 0, len(moves))
		for _, mv := range moves {
			if !containsMove(legal, mv) {
				return fmt.Errorf("import: %w: %s is not legal at %q", game.ErrInvalidBoard, mv, key)
			}
			cp = append(cp, mv)
		}
		entries[key] = cp
	}
	m.entries = entries
	m.mistakes = nil
	return nil
}

// Mistakes lists every (state, move) pair pruned in this session, oldest
// first.
func (m *Memory) Mistakes() []Mistake {
	out := make([]Mistake, len(m.mistakes))
	copy(out, m.mistakes)
	return out
}

func (m *Memory) Stats() Stats {
	st := Stats{States: len(m.entries), Pruned: len(m.mistakes)}
	for _, moves := range m.entries {
		st.Viable += len(moves)
	}
	return st
}

func removeMove(moves []game.Move, mv game.Move) ([]game.Move, bool) {
	for i, m := range moves {
		if m == mv {
			return append(moves[:i], moves[i+1:]...), true
		}
	}
	return moves, false
}

func containsMove(moves []game.Move, mv game.Move) bool {
	for _, m := range moves {
		if m == mv {
			return true
		}
	}
	return false
}
