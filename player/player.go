// Package player provides the movers a game can be driven by: the learning
// AI, a uniform-random baseline, and a scripted mover for tests and forced
// lines.
package player

import (
	"fmt"
	"time"

	"golang.org/x/exp/rand"

	"hexapawn/game"
	"hexapawn/memory"
)

// Player produces the next move for the side to move in the given state.
type Player interface {
	Name() string
	NextMove(s *game.State) (game.Move, error)
}

// Learner is a Player backed by a pruning memory. See Learner.NextMove.
type Learner struct {
	name string
	mem  *memory.Memory
	rng  *rand.Rand
}

// NewLearner builds a learning player over a shared memory. A nil source
// falls back to a time seed; tests inject a fixed seed to pin selection.
func NewLearner(name string, mem *memory.Memory, src rand.Source) *Learner {
	if src == nil {
		src = rand.NewSource(uint64(time.Now().UnixNano()))
	}
	return &Learner{name: name, mem: mem, rng: rand.New(src)}
}

func (l *Learner) Name() string { return l.name }

func (l *Learner) Memory() *memory.Memory { return l.mem }

// NextMove picks uniformly at random among the moves the memory still
// considers viable here, intersected with the current legal moves to guard
// against stale entries. When nothing viable remains the state is already a
// known dead end, but the game must stay playable, so it falls back to a
// uniform choice among all legal moves.
func (l *Learner) NextMove(s *game.State) (game.Move, error) {
	candidates := s.LegalMoves()
	if len(candidates) == 0 {
		return game.Move{}, fmt.Errorf("%s: no legal moves for %s", l.name, s.ToMove())
	}
	pool := intersect(l.mem.GetOrInit(s), candidates)
	if len(pool) == 0 {
		pool = candidates
	}
	return pool[l.rng.Intn(len(pool))], nil
}

// Random plays uniformly at random among the legal moves. It is the
// baseline opponent for training runs.
type Random struct {
	name string
	rng  *rand.Rand
}

func NewRandom(name string, src rand.Source) *Random {
	if src == nil {
		src = rand.NewSource(uint64(time.Now().UnixNano()))
	}
	return &Random{name: name, rng: rand.New(src)}
}

func (p *Random) Name() string { return p.name }

func (p *Random) NextMove(s *game.State) (game.Move, error) {
	candidates := s.LegalMoves()
	if len(candidates) == 0 {
		return game.Move{}, fmt.Errorf("%s: no legal moves for %s", p.name, s.ToMove())
	}
	return candidates[p.rng.Intn(len(candidates))], nil
}

// Scripted replays a fixed move sequence and fails once it runs out. Tests
// use it to force exact lines against the learner.
type Scripted struct {
	name  string
	moves []game.Move
	next  int
}

func NewScripted(name string, moves ...game.Move) *Scripted {
	return &Scripted{name: name, moves: moves}
}

func (p *Scripted) Name() string { return p.name }

func (p *Scripted) NextMove(s *game.State) (game.Move, error) {
	if p.next >= len(p.moves) {
		return game.Move{}, fmt.Errorf("%s: script exhausted after %d moves", p.name, len(p.moves))
	}
	m := p.moves[p.next]
	p.next++
	return m, nil
}

func intersect(viable, candidates []game.Move) []game.Move {
	out := make([]game.Move, 0, len(viable))
	for _, v := range viable {
		for _, c := range candidates {
			if v == c {
				out = append(out, v)
				break
			}
		}
	}
	return out
}
