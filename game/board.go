package game

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the two contract violations the core can surface.
var (
	ErrInvalidBoard = errors.New("invalid board")
	ErrIllegalMove  = errors.New("illegal move")
)

type Side int8

const (
	NoSide Side = iota
	White
	Black
)

func (s Side) Opponent() Side {
	switch s {
	case White:
		return Black
	case Black:
		return White
	default:
		return NoSide
	}
}

func (s Side) String() string {
	switch s {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "None"
	}
}

// direction is the row delta a pawn of this side advances by. White starts on
// the bottom row and moves toward row 0; Black starts on row 0 and moves down.
func (s Side) direction() int {
	if s == White {
		return -1
	}
	return 1
}

// goalRow returns the opposing home row for a board with the given row count.
func (s Side) goalRow(rows int) int {
	if s == White {
		return 0
	}
	return rows - 1
}

type Square int8

const (
	Empty Square = iota
	WhitePawn
	BlackPawn
)

func PawnOf(s Side) Square {
	switch s {
	case White:
		return WhitePawn
	case Black:
		return BlackPawn
	default:
		return Empty
	}
}

func (q Square) Side() Side {
	switch q {
	case WhitePawn:
		return White
	case BlackPawn:
		return Black
	default:
		return NoSide
	}
}

func (q Square) Rune() rune {
	switch q {
	case WhitePawn:
		return 'W'
	case BlackPawn:
		return 'B'
	default:
		return '.'
	}
}

func squareOf(r rune) (Square, bool) {
	switch r {
	case 'W':
		return WhitePawn, true
	case 'B':
		return BlackPawn, true
	case '.':
		return Empty, true
	default:
		return Empty, false
	}
}

// Cell is a board coordinate. Row 0 is Black's home row (the top of the
// rendered grid); row Rows-1 is White's home row.
type Cell struct {
	Row, Col int
}

func (c Cell) String() string {
	return fmt.Sprintf("%d%d", c.Row, c.Col)
}

// ParseCell parses the two-digit row/column form used by the CLI and the web
// API, e.g. "20" for row 2 column 0.
func ParseCell(s string) (Cell, error) {
	if len(s) != 2 || s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return Cell{}, fmt.Errorf("cell %q: want two digits, e.g. %q", s, "20")
	}
	return Cell{Row: int(s[0] - '0'), Col: int(s[1] - '0')}, nil
}

// Board holds the pawn positions for one turn. Boards are never mutated after
// construction; Apply on a State clones before moving a pawn.
type Board struct {
	rows, cols int
	cells      []Square
}

// NewBoard returns a board in the standard starting position: one full rank
// of Black pawns on row 0 and one full rank of White pawns on the last row.
func NewBoard(rows, cols int) (*Board, error) {
	if rows < 3 || cols < 3 {
		return nil, fmt.Errorf("%w: dimensions %dx%d, need at least 3x3", ErrInvalidBoard, rows, cols)
	}
	b := &Board{rows: rows, cols: cols, cells: make([]Square, rows*cols)}
	for c := 0; c < cols; c++ {
		b.cells[c] = BlackPawn
		b.cells[(rows-1)*cols+c] = WhitePawn
	}
	return b, nil
}

// BoardFromGrid builds a board from explicit rows, validating dimensions and
// pawn counts. Used by tests and by snapshot import.
func BoardFromGrid(grid [][]Square) (*Board, error) {
	rows := len(grid)
	if rows < 3 {
		return nil, fmt.Errorf("%w: %d rows, need at least 3", ErrInvalidBoard, rows)
	}
	cols := len(grid[0])
	if cols < 3 {
		return nil, fmt.Errorf("%w: %d columns, need at least 3", ErrInvalidBoard, cols)
	}
	b := &Board{rows: rows, cols: cols, cells: make([]Square, rows*cols)}
	for r, row := range grid {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidBoard, r, len(row), cols)
		}
		for c, q := range row {
			if q != Empty && q != WhitePawn && q != BlackPawn {
				return nil, fmt.Errorf("%w: unknown square value %d at %d%d", ErrInvalidBoard, q, r, c)
			}
			b.cells[r*cols+c] = q
		}
	}
	for _, side := range []Side{White, Black} {
		if n := b.PawnCount(side); n > cols {
			return nil, fmt.Errorf("%w: %d %s pawns, at most %d possible", ErrInvalidBoard, n, side, cols)
		}
	}
	return b, nil
}

func (b *Board) Rows() int { return b.rows }
func (b *Board) Cols() int { return b.cols }

func (b *Board) inBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < b.rows && c.Col >= 0 && c.Col < b.cols
}

func (b *Board) At(c Cell) Square {
	return b.cells[c.Row*b.cols+c.Col]
}

func (b *Board) set(c Cell, q Square) {
	b.cells[c.Row*b.cols+c.Col] = q
}

func (b *Board) clone() *Board {
	cells := make([]Square, len(b.cells))
	copy(cells, b.cells)
	return &Board{rows: b.rows, cols: b.cols, cells: cells}
}

func (b *Board) PawnCount(s Side) int {
	want := PawnOf(s)
	n := 0
	for _, q := range b.cells {
		if q == want {
			n++
		}
	}
	return n
}

// hasBreakthrough reports whether a pawn of the given side stands on the
// opposing home row.
func (b *Board) hasBreakthrough(s Side) bool {
	row := s.goalRow(b.rows)
	want := PawnOf(s)
	for c := 0; c < b.cols; c++ {
		if b.cells[row*b.cols+c] == want {
			return true
		}
	}
	return false
}

// Render draws the board as an ASCII grid with W, B and blank cells.
func (b *Board) Render() string {
	var sb strings.Builder
	rule := "+" + strings.Repeat("---+", b.cols)
	sb.WriteString(rule)
	sb.WriteByte('\n')
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			q := b.At(Cell{Row: r, Col: c})
			mark := byte(' ')
			if q != Empty {
				mark = byte(q.Rune())
			}
			sb.WriteString(fmt.Sprintf("| %c ", mark))
		}
		sb.WriteString("|\n")
		sb.WriteString(rule)
		sb.WriteByte('\n')
	}
	return sb.String()
}
