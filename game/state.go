package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"strings"
)

// Status is the game result from one side's point of view.
type Status int8

const (
	Ongoing Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "ongoing"
	}
}

type StateHash uint64

// StateKey is the exact canonical encoding of a state: side to move, board
// dimensions implied by the row layout, and one rune per square. Two states
// with the same key are the same position regardless of how they were
// reached, which is what makes it usable as the memory key.
type StateKey string

// State is a board plus the side to move. States are immutable: Apply
// returns a new State and never touches the receiver.
type State struct {
	board  *Board
	toMove Side
}

// NewState returns the standard starting position with White to move.
func NewState(rows, cols int) (*State, error) {
	b, err := NewBoard(rows, cols)
	if err != nil {
		return nil, err
	}
	return &State{board: b, toMove: White}, nil
}

// NewStateFrom wraps an existing board with an explicit side to move.
func NewStateFrom(b *Board, toMove Side) (*State, error) {
	if toMove != White && toMove != Black {
		return nil, fmt.Errorf("%w: side to move must be White or Black", ErrInvalidBoard)
	}
	return &State{board: b, toMove: toMove}, nil
}

func (s *State) Board() *Board { return s.board }
func (s *State) ToMove() Side  { return s.toMove }

// LegalMoves enumerates the side to move's moves in a fixed order: row-major
// pawn scan, then forward before diagonal-left before diagonal-right. The
// order is part of the contract so that downstream selection is reproducible.
func (s *State) LegalMoves() []Move {
	return s.LegalMovesFor(s.toMove)
}

// LegalMovesFor enumerates legal moves for an arbitrary side, which the
// terminal evaluator needs when checking the opponent.
func (s *State) LegalMovesFor(side Side) []Move {
	var moves []Move
	dir := side.direction()
	pawn := PawnOf(side)
	opponent := PawnOf(side.Opponent())
	for r := 0; r < s.board.rows; r++ {
		for c := 0; c < s.board.cols; c++ {
			from := Cell{Row: r, Col: c}
			if s.board.At(from) != pawn {
				continue
			}
			forward := Cell{Row: r + dir, Col: c}
			if s.board.inBounds(forward) && s.board.At(forward) == Empty {
				moves = append(moves, Move{From: from, To: forward})
			}
			for _, dc := range []int{-1, 1} {
				diag := Cell{Row: r + dir, Col: c + dc}
				if s.board.inBounds(diag) && s.board.At(diag) == opponent {
					moves = append(moves, Move{From: from, To: diag})
				}
			}
		}
	}
	return moves
}

// Apply plays a move for the side to move and returns the resulting state
// with the turn flipped. A move not produced by LegalMoves is rejected with
// ErrIllegalMove; callers are expected to only ever pass generator-produced
// moves, so hitting that error indicates a bug rather than a user mistake.
func (s *State) Apply(m Move) (*State, error) {
	legal := false
	for _, lm := range s.LegalMoves() {
		if lm == m {
			legal = true
			break
		}
	}
	if !legal {
		return nil, fmt.Errorf("%w: %s for %s", ErrIllegalMove, m, s.toMove)
	}
	b := s.board.clone()
	b.set(m.To, b.At(m.From))
	b.set(m.From, Empty)
	return &State{board: b, toMove: s.toMove.Opponent()}, nil
}

// Winner returns the side that has won, or NoSide while the game is ongoing.
// A side wins by breakthrough, by capturing every opposing pawn, or when the
// opponent is to move with no legal moves (stalemate is a loss, not a draw).
func (s *State) Winner() Side {
	if s.board.hasBreakthrough(White) {
		return White
	}
	if s.board.hasBreakthrough(Black) {
		return Black
	}
	if s.board.PawnCount(White) == 0 {
		return Black
	}
	if s.board.PawnCount(Black) == 0 {
		return White
	}
	if len(s.LegalMoves()) == 0 {
		return s.toMove.Opponent()
	}
	return NoSide
}

// StatusFor reports the game result from one side's point of view.
func (s *State) StatusFor(side Side) Status {
	switch s.Winner() {
	case NoSide:
		return Ongoing
	case side:
		return Won
	default:
		return Lost
	}
}

// Hash folds the position into 64 bits for quick lookups and diagnostics.
// The memory itself is keyed by the exact Key, not the hash.
func (s *State) Hash() StateHash {
	h := fnv.New64a()
	binary.Write(h, binary.LittleEndian, int64(s.toMove))
	for _, q := range s.board.cells {
		binary.Write(h, binary.LittleEndian, int64(q))
	}
	return StateHash(h.Sum64())
}

// Key returns the canonical encoding, e.g. "W:BBB/.../WWW" for the 3x3
// start with White to move.
func (s *State) Key() StateKey {
	var sb strings.Builder
	sb.Grow(2 + s.board.rows*(s.board.cols+1))
	if s.toMove == White {
		sb.WriteByte('W')
	} else {
		sb.WriteByte('B')
	}
	sb.WriteByte(':')
	for r := 0; r < s.board.rows; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		for c := 0; c < s.board.cols; c++ {
			sb.WriteRune(s.board.At(Cell{Row: r, Col: c}).Rune())
		}
	}
	return StateKey(sb.String())
}

// ParseKey rebuilds a state from its canonical encoding. Malformed keys fail
// with ErrInvalidBoard, which is how snapshot import surfaces corruption.
func ParseKey(k StateKey) (*State, error) {
	str := string(k)
	if len(str) < 2 || str[1] != ':' {
		return nil, fmt.Errorf("%w: key %q lacks side prefix", ErrInvalidBoard, str)
	}
	var toMove Side
	switch str[0] {
	case 'W':
		toMove = White
	case 'B':
		toMove = Black
	default:
		return nil, fmt.Errorf("%w: key %q has unknown side %q", ErrInvalidBoard, str, str[0])
	}
	rowStrs := strings.Split(str[2:], "/")
	grid := make([][]Square, len(rowStrs))
	for r, rowStr := range rowStrs {
		row := make([]Square, 0, len(rowStr))
		for _, ch := range rowStr {
			q, ok := squareOf(ch)
			if !ok {
				return nil, fmt.Errorf("%w: key %q has unknown square %q", ErrInvalidBoard, str, ch)
			}
			row = append(row, q)
		}
		grid[r] = row
	}
	b, err := BoardFromGrid(grid)
	if err != nil {
		return nil, err
	}
	return NewStateFrom(b, toMove)
}
