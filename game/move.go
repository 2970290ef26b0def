package game

import (
	"fmt"
	"strings"
)

// Move relocates the pawn on From to To: a straight advance into an empty
// square or a diagonal step capturing an opposing pawn. Legality is decided
// by State.LegalMoves; a Move value itself is just the coordinate pair.
type Move struct {
	From, To Cell
}

func (m Move) String() string {
	return m.From.String() + "-" + m.To.String()
}

// ParseMove accepts the "20-10" and "20 10" forms (from-cell, to-cell).
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	var parts []string
	if strings.ContainsRune(s, '-') {
		parts = strings.SplitN(s, "-", 2)
	} else {
		parts = strings.Fields(s)
	}
	if len(parts) != 2 {
		return Move{}, fmt.Errorf("move %q: want from and to cells, e.g. %q", s, "20-10")
	}
	from, err := ParseCell(strings.TrimSpace(parts[0]))
	if err != nil {
		return Move{}, fmt.Errorf("move %q: %w", s, err)
	}
	to, err := ParseCell(strings.TrimSpace(parts[1]))
	if err != nil {
		return Move{}, fmt.Errorf("move %q: %w", s, err)
	}
	return Move{From: from, To: to}, nil
}
