// Package cli runs the interactive human-vs-AI game loop on a readline
// prompt. The human plays White and moves first, as in the classic setup;
// the bot plays Black and learns from every loss.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"hexapawn/game"
	"hexapawn/memory"
	"hexapawn/player"
)

type Shell struct {
	l       *readline.Instance
	out     io.Writer
	rows    int
	cols    int
	mem     *memory.Memory
	learner *player.Learner

	state   *game.State
	history memory.History
}

func NewShell(rows, cols int, mem *memory.Memory, seed uint64) (*Shell, error) {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "hexapawn> ",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",
	})
	if err != nil {
		return nil, err
	}
	return &Shell{
		l:       l,
		out:     l.Stderr(),
		rows:    rows,
		cols:    cols,
		mem:     mem,
		learner: player.NewLearner("bot", mem, rand.NewSource(seed)),
	}, nil
}

func (s *Shell) Close() error { return s.l.Close() }

// Run loops games until the player quits. Within a game the prompt accepts a
// move ("20-10" or "20 10") or a command; between games it asks whether to
// play again.
func (s *Shell) Run() error {
	defer s.l.Close()

	if err := s.newGame(); err != nil {
		return err
	}
	s.showBoard()

	for {
		line, err := s.l.Readline()
		if err == readline.ErrInterrupt {
			continue
		} else if err == io.EOF {
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch fields := strings.Fields(line); fields[0] {
		case "quit", "exit":
			return nil
		case "help":
			s.printHelp()
		case "board":
			s.showBoard()
		case "moves":
			s.printMoves()
		case "memory":
			stats := s.mem.Stats()
			s.printf("memory: %d states, %d viable moves, %d pruned\n",
				stats.States, stats.Viable, stats.Pruned)
		case "flaws":
			s.printFlaws()
		case "new":
			if err := s.newGame(); err != nil {
				return err
			}
			s.showBoard()
		default:
			if err := s.playTurn(line); err != nil {
				return err
			}
		}
	}
}

func (s *Shell) newGame() error {
	state, err := game.NewState(s.rows, s.cols)
	if err != nil {
		return err
	}
	s.state = state
	s.history = nil
	return nil
}

// playTurn applies the human's move and the bot's reply, and settles the
// game if either move finished it.
func (s *Shell) playTurn(line string) error {
	if s.state.Winner() != game.NoSide {
		s.printf("the game is over - enter \"new\" to play again\n")
		return nil
	}
	mv, err := game.ParseMove(line)
	if err != nil {
		s.printf("%v\n", err)
		return nil
	}
	next, err := s.state.Apply(mv)
	if err != nil {
		s.printf("illegal move %s - enter \"moves\" to list your options\n", mv)
		return nil
	}
	s.state = next

	if s.state.Winner() == game.NoSide {
		botMove, err := s.learner.NextMove(s.state)
		if err != nil {
			return fmt.Errorf("bot has no move: %w", err)
		}
		s.history = append(s.history, memory.Step{State: s.state, Move: botMove})
		if s.state, err = s.state.Apply(botMove); err != nil {
			return err
		}
		s.printf("bot plays %s\n", botMove)
	}

	s.showBoard()
	if winner := s.state.Winner(); winner != game.NoSide {
		s.finishGame(winner)
	}
	return nil
}

func (s *Shell) finishGame(winner game.Side) {
	s.printf("%s wins!\n", winner)
	if winner == game.White {
		before := s.mem.Stats().Pruned
		s.mem.RecordOutcome(s.history, game.Lost)
		s.printf("reviewing the mistakes... %d move(s) pruned\n", s.mem.Stats().Pruned-before)
	}
	s.history = nil
	log.Debug().Stringer("winner", winner).Msg("game finished")
	s.printf("enter \"new\" to play again, \"quit\" to leave\n")
}

func (s *Shell) showBoard() {
	s.printf("%s%s to move\n", s.state.Board().Render(), s.state.ToMove())
}

func (s *Shell) printMoves() {
	moves := s.state.LegalMoves()
	if len(moves) == 0 {
		s.printf("no legal moves\n")
		return
	}
	strs := make([]string, len(moves))
	for i, m := range moves {
		strs[i] = m.String()
	}
	s.printf("%s\n", strings.Join(strs, "  "))
}

// printFlaws lists every pruned (state, move) pair, rendering the board the
// mistake was made on.
func (s *Shell) printFlaws() {
	mistakes := s.mem.Mistakes()
	if len(mistakes) == 0 {
		s.printf("no mistakes recorded yet\n")
		return
	}
	s.printf("the bot has pruned %d move(s):\n", len(mistakes))
	for _, m := range mistakes {
		state, err := game.ParseKey(m.Key)
		if err != nil {
			// Imported snapshots reset the mistake list, so every key here
			// was produced by this process and must parse.
			continue
		}
		s.printf("%snever again: %s\n\n", state.Board().Render(), m.Move)
	}
}

func (s *Shell) printHelp() {
	s.printf(`enter a move as "from-to" using row+column digits, e.g. 20-10
commands:
  board    show the current position
  moves    list your legal moves
  memory   show what the bot has learned
  flaws    list the moves the bot has sworn off
  new      start a fresh game
  quit     leave
`)
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}
