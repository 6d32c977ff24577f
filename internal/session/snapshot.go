package session

import (
	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/snake"
)

// State represents the run outcome so far.
type State string

const (
	StatePlaying State = "playing"
	StateLost    State = "lost"
	StateWon     State = "won"
	StateFault   State = "fault"
)

// Terminal reports whether the run has ended.
func (s State) Terminal() bool {
	return s == StateLost || s == StateWon || s == StateFault
}

// Snapshot captures the complete game state for determinism testing and export.
type Snapshot struct {
	Tick   uint64
	Seed   int64
	Moves  int
	Width  int
	Height int
	Size   int
	Dir    core.Direction
	Body   []core.Coord // Head first
	Food   snake.Food
	Paused bool
	State  State
}

// Head returns the head position, or the zero Coord for an empty body.
func (s Snapshot) Head() core.Coord {
	if len(s.Body) == 0 {
		return core.Coord{}
	}
	return s.Body[0]
}

// Snapshot returns a copy of the current state.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:   g.tick,
		Seed:   g.seed,
		Moves:  g.moves,
		Width:  g.opts.Width,
		Height: g.opts.Height,
		Food:   g.food,
		Paused: g.paused,
		State:  g.state,
	}
	if g.snake != nil {
		snap.Size = g.snake.Size()
		snap.Dir = g.snake.Direction()
		snap.Body = g.snake.Coords()
	}
	return snap
}
