// Package web exposes human-vs-AI games over a small JSON API. Sessions are
// kept in memory; every session shares one pruning memory, so the bot keeps
// learning across web games just as it does on the command line.
package web

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"

	"hexapawn/game"
	"hexapawn/memory"
	"hexapawn/player"
)

var (
	ErrNotFound = errors.New("game not found")
	ErrGameOver = errors.New("game is already over")
)

type session struct {
	id        string
	humanSide game.Side
	state     *game.State
	learner   *player.Learner
	history   memory.History
}

// Service owns the sessions and the shared memory. All access is serialized
// behind one mutex: the memory's shrink-only invariant is not safe under
// concurrent revision.
type Service struct {
	mu    sync.Mutex
	rows  int
	cols  int
	mem   *memory.Memory
	seed  uint64
	games map[string]*session
}

func NewService(rows, cols int, mem *memory.Memory, seed uint64) *Service {
	return &Service{
		rows:  rows,
		cols:  cols,
		mem:   mem,
		seed:  seed,
		games: make(map[string]*session),
	}
}

// View is the JSON shape of a session.
type View struct {
	ID           string   `json:"id"`
	Board        []string `json:"board"`
	ToMove       string   `json:"to_move,omitempty"`
	HumanSide    string   `json:"human_side"`
	Winner       string   `json:"winner,omitempty"`
	LegalMoves   []string `json:"legal_moves"`
	MemoryStates int      `json:"memory_states"`
	MemoryPruned int      `json:"memory_pruned"`
}

// Create starts a session with the human on the given side. When the human
// takes Black, the bot moves first so the reply already contains its opening.
func (s *Service) Create(humanSide game.Side) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := game.NewState(s.rows, s.cols)
	if err != nil {
		return View{}, err
	}
	sess := &session{
		id:        uuid.NewString(),
		humanSide: humanSide,
		state:     state,
		learner:   player.NewLearner("bot", s.mem, rand.NewSource(s.seed+uint64(len(s.games)))),
	}
	s.games[sess.id] = sess

	if humanSide != state.ToMove() {
		if err := s.botMove(sess); err != nil {
			return View{}, err
		}
	}
	return s.view(sess), nil
}

func (s *Service) Get(id string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.games[id]
	if !ok {
		return View{}, ErrNotFound
	}
	return s.view(sess), nil
}

// Play applies the human's move and, if the game is still running, the bot's
// reply. When the game finishes the bot's history is fed to the memory.
func (s *Service) Play(id string, mv game.Move) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.games[id]
	if !ok {
		return View{}, ErrNotFound
	}
	if sess.state.Winner() != game.NoSide {
		return s.view(sess), ErrGameOver
	}

	next, err := sess.state.Apply(mv)
	if err != nil {
		return s.view(sess), err
	}
	sess.state = next

	if sess.state.Winner() == game.NoSide {
		if err := s.botMove(sess); err != nil {
			return s.view(sess), err
		}
	}
	if sess.state.Winner() != game.NoSide {
		botSide := sess.humanSide.Opponent()
		s.mem.RecordOutcome(sess.history, sess.state.StatusFor(botSide))
		sess.history = nil
	}
	return s.view(sess), nil
}

func (s *Service) botMove(sess *session) error {
	mv, err := sess.learner.NextMove(sess.state)
	if err != nil {
		return fmt.Errorf("bot move: %w", err)
	}
	next, err := sess.state.Apply(mv)
	if err != nil {
		return fmt.Errorf("bot move: %w", err)
	}
	sess.history = append(sess.history, memory.Step{State: sess.state, Move: mv})
	sess.state = next
	return nil
}

func (s *Service) view(sess *session) View {
	board := sess.state.Board()
	rows := make([]string, board.Rows())
	for r := 0; r < board.Rows(); r++ {
		var sb strings.Builder
		for c := 0; c < board.Cols(); c++ {
			sb.WriteRune(board.At(game.Cell{Row: r, Col: c}).Rune())
		}
		rows[r] = sb.String()
	}

	v := View{
		ID:        sess.id,
		Board:     rows,
		HumanSide: sess.humanSide.String(),
	}
	stats := s.mem.Stats()
	v.MemoryStates = stats.States
	v.MemoryPruned = stats.Pruned

	if winner := sess.state.Winner(); winner != game.NoSide {
		v.Winner = winner.String()
		v.LegalMoves = []string{}
		return v
	}
	v.ToMove = sess.state.ToMove().String()
	moves := sess.state.LegalMoves()
	v.LegalMoves = make([]string, len(moves))
	for i, m := range moves {
		v.LegalMoves[i] = m.String()
	}
	return v
}
