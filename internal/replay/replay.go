// Package replay re-drives a journaled run through a fresh session.
package replay

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/session"
	"github.com/vovakirdan/gridsnake/internal/snake"
	"github.com/vovakirdan/gridsnake/internal/storage"
)

// ErrDiverged is returned when a replay does not reproduce the journal.
var ErrDiverged = errors.New("replay: diverged from journal")

// Frame is the board after one move. Seq 0 is the starting position.
type Frame struct {
	Seq       int
	Direction core.Direction
	Ate       bool
	Snapshot  session.Snapshot
	Rows      []string
}

// Result is a complete replay.
type Result struct {
	RunID   string
	Frames  []Frame
	Outcome session.State
	Size    int
}

// Source loads runs and their moves.
type Source interface {
	Run(idOrPrefix string) (*storage.Run, error)
	Moves(runID string) ([]storage.Move, error)
}

// Load fetches a run from src and replays it.
func Load(src Source, idOrPrefix string, glyphs snake.Glyphs) (*Result, error) {
	run, err := src.Run(idOrPrefix)
	if err != nil {
		return nil, err
	}
	moves, err := src.Moves(run.ID)
	if err != nil {
		return nil, err
	}
	return Run(*run, moves, glyphs)
}

// Run replays moves from the run's seed and board. Every recorded move must
// be accepted with the same heading and the same eating result, and a
// finished run must end with the recorded outcome and size.
func Run(run storage.Run, moves []storage.Move, glyphs snake.Glyphs) (*Result, error) {
	g := session.New(session.Options{
		Width:          run.Width,
		Height:         run.Height,
		DenseThreshold: run.DenseThreshold,
		Glyphs:         glyphs,
	})
	if err := g.Reset(core.RuntimeConfig{Seed: run.Seed}); err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}

	res := &Result{RunID: run.ID}
	start := g.Snapshot()
	res.Frames = append(res.Frames, Frame{Direction: start.Dir, Snapshot: start, Rows: g.Rows()})

	for _, m := range moves {
		if g.Outcome().Terminal() {
			return res, fmt.Errorf("%w: move %d after the run ended %s", ErrDiverged, m.Seq, g.Outcome())
		}
		g.Steer(m.Direction)
		ate := g.Advance()
		if g.Outcome() == session.StateFault {
			return res, fmt.Errorf("replay: move %d: %w", m.Seq, g.Err())
		}

		snap := g.Snapshot()
		if snap.Dir != m.Direction {
			return res, fmt.Errorf("%w: move %d heads %s, journal says %s", ErrDiverged, m.Seq, snap.Dir, m.Direction)
		}
		if ate != m.Ate {
			return res, fmt.Errorf("%w: move %d ate=%v, journal says %v", ErrDiverged, m.Seq, ate, m.Ate)
		}
		res.Frames = append(res.Frames, Frame{
			Seq:       m.Seq,
			Direction: m.Direction,
			Ate:       ate,
			Snapshot:  snap,
			Rows:      g.Rows(),
		})
	}

	res.Outcome = g.Outcome()
	res.Size = g.State().Score

	// Runs abandoned mid-play have no recorded outcome to compare.
	if run.Outcome.Terminal() {
		if res.Outcome != run.Outcome {
			return res, fmt.Errorf("%w: replay ended %s, journal says %s", ErrDiverged, res.Outcome, run.Outcome)
		}
		if res.Size != run.FinalSize {
			return res, fmt.Errorf("%w: replay size %d, journal says %d", ErrDiverged, res.Size, run.FinalSize)
		}
	}
	return res, nil
}
