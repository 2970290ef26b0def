package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustState(t *testing.T, key StateKey) *State {
	t.Helper()
	s, err := ParseKey(key)
	require.NoError(t, err)
	return s
}

func mustApply(t *testing.T, s *State, move string) *State {
	t.Helper()
	m, err := ParseMove(move)
	require.NoError(t, err)
	next, err := s.Apply(m)
	require.NoError(t, err)
	return next
}

func TestLegalMoves(t *testing.T) {
	t.Run("opening position yields one advance per pawn in scan order", func(t *testing.T) {
		s, err := NewState(3, 3)
		require.NoError(t, err)
		require.Equal(t, []Move{
			{From: Cell{2, 0}, To: Cell{1, 0}},
			{From: Cell{2, 1}, To: Cell{1, 1}},
			{From: Cell{2, 2}, To: Cell{1, 2}},
		}, s.LegalMoves())
	})

	t.Run("forward comes before diagonal-left before diagonal-right", func(t *testing.T) {
		s := mustState(t, "B:.B./W.W/...")
		require.Equal(t, []Move{
			{From: Cell{0, 1}, To: Cell{1, 1}},
			{From: Cell{0, 1}, To: Cell{1, 0}},
			{From: Cell{0, 1}, To: Cell{1, 2}},
		}, s.LegalMoves())
	})

	t.Run("forward advance is blocked by any pawn", func(t *testing.T) {
		s := mustState(t, "B:.B./.W./...")
		require.Empty(t, s.LegalMoves())
		s = mustState(t, "B:BB./WB./...")
		// The pawn on 01 cannot advance into its own pawn on 11 and cannot
		// capture it diagonally either; 11 cannot capture diagonally onto
		// empty squares.
		require.Equal(t, []Move{
			{From: Cell{0, 1}, To: Cell{1, 0}},
			{From: Cell{1, 1}, To: Cell{2, 1}},
		}, s.LegalMoves())
	})

	t.Run("moves are never sideways or backward", func(t *testing.T) {
		for _, key := range []StateKey{"W:BBB/.W./W.W", "B:B.B/WB./..W", "W:.B./BWB/W.W"} {
			s := mustState(t, key)
			for _, side := range []Side{White, Black} {
				for _, m := range s.LegalMovesFor(side) {
					require.Equal(t, side.direction(), m.To.Row-m.From.Row,
						"%s move %s must advance one row", side, m)
					require.LessOrEqual(t, abs(m.To.Col-m.From.Col), 1,
						"%s move %s strays more than one column", side, m)
					if m.To.Col != m.From.Col {
						require.Equal(t, PawnOf(side.Opponent()), s.Board().At(m.To),
							"diagonal %s must capture an opposing pawn", m)
					} else {
						require.Equal(t, Empty, s.Board().At(m.To),
							"advance %s must land on an empty square", m)
					}
				}
			}
		}
	})
}

func TestApply(t *testing.T) {
	t.Run("advance relocates the pawn and flips the turn", func(t *testing.T) {
		s, err := NewState(3, 3)
		require.NoError(t, err)
		next := mustApply(t, s, "21-11")
		require.Equal(t, Black, next.ToMove())
		require.Equal(t, Empty, next.Board().At(Cell{2, 1}))
		require.Equal(t, WhitePawn, next.Board().At(Cell{1, 1}))
		// The original state is untouched.
		require.Equal(t, WhitePawn, s.Board().At(Cell{2, 1}))
		require.Equal(t, White, s.ToMove())
	})

	t.Run("capture removes the opposing pawn", func(t *testing.T) {
		s := mustState(t, "W:B.B/.B./W.W")
		next := mustApply(t, s, "20-11")
		require.Equal(t, 2, next.Board().PawnCount(Black))
		require.Equal(t, WhitePawn, next.Board().At(Cell{1, 1}))
	})

	t.Run("rejects moves the generator would not produce", func(t *testing.T) {
		s, err := NewState(3, 3)
		require.NoError(t, err)
		for _, bad := range []string{"21-21", "21-20", "21-12", "01-11", "21-01"} {
			m, err := ParseMove(bad)
			require.NoError(t, err)
			_, err = s.Apply(m)
			require.ErrorIs(t, err, ErrIllegalMove, "move %s", m)
		}
	})
}

func TestWinner(t *testing.T) {
	t.Run("ongoing at the start", func(t *testing.T) {
		s, err := NewState(3, 3)
		require.NoError(t, err)
		require.Equal(t, NoSide, s.Winner())
		require.Equal(t, Ongoing, s.StatusFor(White))
		require.Equal(t, Ongoing, s.StatusFor(Black))
	})

	t.Run("breakthrough wins immediately", func(t *testing.T) {
		s := mustState(t, "B:W.B/.../..W")
		require.Equal(t, White, s.Winner())
		require.Equal(t, Won, s.StatusFor(White))
		require.Equal(t, Lost, s.StatusFor(Black))

		s = mustState(t, "W:.../W../.BW")
		require.Equal(t, Black, s.Winner())
	})

	t.Run("capturing every pawn wins", func(t *testing.T) {
		s := mustState(t, "B:.../.W./.W.")
		require.Equal(t, White, s.Winner())
	})

	t.Run("side to move with no moves loses", func(t *testing.T) {
		s := mustState(t, "B:.B./.W./..W")
		require.Empty(t, s.LegalMoves())
		require.Equal(t, White, s.Winner())
		require.Equal(t, Lost, s.StatusFor(Black))
	})
}

func TestPawnConservation(t *testing.T) {
	// Play a deterministic full game taking the first legal move each turn.
	// Pawn counts must never increase and the game must terminate.
	s, err := NewState(3, 3)
	require.NoError(t, err)
	white, black := s.Board().PawnCount(White), s.Board().PawnCount(Black)
	for turns := 0; s.Winner() == NoSide; turns++ {
		require.Less(t, turns, 64, "game did not terminate")
		next, err := s.Apply(s.LegalMoves()[0])
		require.NoError(t, err)
		require.LessOrEqual(t, next.Board().PawnCount(White), white)
		require.LessOrEqual(t, next.Board().PawnCount(Black), black)
		white, black = next.Board().PawnCount(White), next.Board().PawnCount(Black)
		s = next
	}
}

func TestStateKey(t *testing.T) {
	t.Run("round trips through ParseKey", func(t *testing.T) {
		s := mustState(t, "B:B.B/WB./..W")
		require.Equal(t, StateKey("B:B.B/WB./..W"), s.Key())
	})

	t.Run("identical positions share a key regardless of path", func(t *testing.T) {
		start, err := NewState(3, 3)
		require.NoError(t, err)
		a := mustApply(t, mustApply(t, mustApply(t, start, "20-10"), "02-12"), "21-11")
		b := mustApply(t, mustApply(t, mustApply(t, start, "21-11"), "02-12"), "20-10")
		require.Equal(t, a.Key(), b.Key())
		require.Equal(t, a.Hash(), b.Hash())
	})

	t.Run("side to move distinguishes otherwise equal boards", func(t *testing.T) {
		a := mustState(t, "W:B.B/.../W.W")
		b := mustState(t, "B:B.B/.../W.W")
		require.NotEqual(t, a.Key(), b.Key())
	})

	t.Run("malformed keys fail with ErrInvalidBoard", func(t *testing.T) {
		for _, bad := range []StateKey{"", "X:BBB/.../WWW", "W:BB/../WW", "W:BxB/.../WWW", "WBBB/.../WWW"} {
			_, err := ParseKey(bad)
			require.ErrorIs(t, err, ErrInvalidBoard, "key %q", bad)
		}
	})
}

func TestParseMove(t *testing.T) {
	want := Move{From: Cell{2, 0}, To: Cell{1, 0}}
	for _, in := range []string{"20-10", "20 10", " 20 - 10 "} {
		m, err := ParseMove(in)
		require.NoError(t, err, "input %q", in)
		require.Equal(t, want, m)
	}
	for _, bad := range []string{"", "20", "20-10-00", "2a-10"} {
		_, err := ParseMove(bad)
		require.Error(t, err, "input %q", bad)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
