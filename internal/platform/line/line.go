// Package line plays a run over plain text streams: one direction token per
// input line, the rendered board after every move.
package line

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/session"
)

// Run resets g with seed and plays until the run ends, input is exhausted,
// the player types "quit" or ctx is cancelled. It returns the final state.
//
// Accepted tokens are those of core.ParseDirection. A blank line keeps the
// current heading.
func Run(ctx context.Context, g *session.Game, seed int64, in io.Reader, out io.Writer) (session.State, error) {
	if err := g.Reset(core.RuntimeConfig{Seed: seed}); err != nil {
		return g.Outcome(), err
	}
	w := bufio.NewWriter(out)
	defer w.Flush()

	writeBoard(w, g)
	if err := w.Flush(); err != nil {
		return g.Outcome(), err
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return g.Outcome(), err
		}

		token := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if token == "quit" || token == "exit" {
			break
		}
		if token != "" {
			d, ok := core.ParseDirection(token)
			if !ok {
				fmt.Fprintf(w, "unknown direction %q (use up/down/left/right, wasd or hjkl)\n", token)
				if err := w.Flush(); err != nil {
					return g.Outcome(), err
				}
				continue
			}
			g.Steer(d)
		}

		g.Advance()
		writeBoard(w, g)
		if g.Outcome().Terminal() {
			writeOutcome(w, g)
			return g.Outcome(), w.Flush()
		}
		if err := w.Flush(); err != nil {
			return g.Outcome(), err
		}
	}
	if err := scanner.Err(); err != nil {
		return g.Outcome(), fmt.Errorf("line: read input: %w", err)
	}
	return g.Outcome(), nil
}

func writeBoard(w io.Writer, g *session.Game) {
	for _, row := range g.Rows() {
		fmt.Fprintln(w, row)
	}
	fmt.Fprintln(w)
}

func writeOutcome(w io.Writer, g *session.Game) {
	size := g.State().Score
	switch g.Outcome() {
	case session.StateWon:
		fmt.Fprintf(w, "You win! Final size: %d\n", size)
	case session.StateLost:
		fmt.Fprintf(w, "Game over. Final size: %d\n", size)
	case session.StateFault:
		fmt.Fprintf(w, "Internal error: %v\n", g.Err())
	}
}
