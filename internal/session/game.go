// Package session drives a snake run one simulation tick at a time.
// It owns the random source, pacing, pause/restart handling and the run
// outcome, and reports every move to an optional Recorder.
package session

import (
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/snake"
)

// RunInfo identifies the parameters needed to reproduce a run.
type RunInfo struct {
	Seed           int64
	Width          int
	Height         int
	DenseThreshold float64
}

// Recorder receives journal events for a run. A Recorder that returns an
// error is detached and the run continues unrecorded.
type Recorder interface {
	RunStarted(info RunInfo) error
	Moved(seq int, dir core.Direction, ate bool) error
	RunFinished(state State, size, moves int) error
}

// Options configure a Game. Zero values fall back to defaults.
type Options struct {
	Width          int
	Height         int
	DenseThreshold float64
	MoveEveryTicks int
	Glyphs         snake.Glyphs
	Logger         *log.Logger
	Recorder       Recorder
}

// Game implements a single-player snake session.
type Game struct {
	opts     Options
	renderer snake.Renderer
	logger   *log.Logger
	recorder Recorder

	seed       int64
	rng        *rand.Rand
	placer     *snake.Placer
	tick       uint64
	moves      int
	moveTicker int

	snake *snake.Snake
	food  snake.Food

	// Screen dimensions
	screenW int
	screenH int

	state    State
	paused   bool
	tooSmall bool
	fault    error
}

// hudHeight is the number of screen rows above the board.
const hudHeight = 2

// New creates a session. Call Reset before stepping it.
func New(opts Options) *Game {
	if opts.Width <= 0 {
		opts.Width = 17
	}
	if opts.Height <= 0 {
		opts.Height = 13
	}
	if opts.MoveEveryTicks <= 0 {
		opts.MoveEveryTicks = 6
	}
	if opts.Glyphs == (snake.Glyphs{}) {
		opts.Glyphs = snake.DefaultGlyphs
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{
		opts:     opts,
		renderer: snake.NewRenderer(opts.Glyphs),
		logger:   logger,
		recorder: opts.Recorder,
	}
}

// Reset initializes or restarts the run with cfg.Seed.
func (g *Game) Reset(cfg core.RuntimeConfig) error {
	g.seed = cfg.Seed
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.placer = snake.NewPlacer(g.rng, g.opts.DenseThreshold)
	g.tick = 0
	g.moves = 0
	g.moveTicker = 0
	g.paused = false
	g.fault = nil
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.checkScreen()

	s, food, err := snake.NewGame(g.opts.Width, g.opts.Height, g.placer)
	if err != nil {
		g.snake = nil
		g.food = snake.Food{}
		g.state = StateFault
		g.fault = err
		return fmt.Errorf("session: new game: %w", err)
	}
	g.snake = s
	g.food = food
	g.state = StatePlaying

	g.logger.Debug("run started", "seed", cfg.Seed, "width", g.opts.Width, "height", g.opts.Height)
	g.record(func(r Recorder) error {
		return r.RunStarted(RunInfo{
			Seed:           cfg.Seed,
			Width:          g.opts.Width,
			Height:         g.opts.Height,
			DenseThreshold: g.placer.Threshold(),
		})
	})
	return nil
}

// Resize updates the screen dimensions used by Render.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.checkScreen()
}

func (g *Game) checkScreen() {
	// A zero-sized screen means the caller does not render.
	if g.screenW == 0 && g.screenH == 0 {
		g.tooSmall = false
		return
	}
	g.tooSmall = g.screenW < g.opts.Width+2 || g.screenH < g.opts.Height+2+hudHeight
}

// Step advances the session by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	// Handle restart
	if input.Has(core.ActionRestart) && g.state != StatePlaying && g.rng != nil {
		_ = g.Reset(core.RuntimeConfig{
			Seed:    g.rng.Int63(),
			ScreenW: g.screenW,
			ScreenH: g.screenH,
		})
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if input.Has(core.ActionPause) && g.state == StatePlaying {
		g.paused = !g.paused
	}

	if g.state != StatePlaying || g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	for _, d := range input.Steer {
		g.Steer(d)
	}

	// Move snake on tick interval
	g.moveTicker++
	if g.moveTicker < g.opts.MoveEveryTicks {
		return core.StepResult{State: g.State()}
	}
	g.moveTicker = 0
	g.Advance()
	return core.StepResult{State: g.State(), Moved: true}
}

// Steer requests a heading for the next move. Reversals are ignored.
func (g *Game) Steer(d core.Direction) {
	if g.state != StatePlaying {
		return
	}
	snake.HandleDirection(g.snake, d)
}

// Advance performs exactly one move, ignoring pacing and pause.
// It returns whether food was eaten.
func (g *Game) Advance() bool {
	if g.state != StatePlaying {
		return false
	}

	ate, lost, err := snake.Advance(g.snake, g.food, g.opts.Width, g.opts.Height)
	if err != nil {
		g.fail(err)
		return ate
	}
	g.moves++
	dir := g.snake.Direction()

	won := false
	if ate {
		food, ok := snake.PlaceFood(g.placer, g.snake, g.opts.Width, g.opts.Height)
		g.food = food
		won = !ok
	}

	seq := g.moves
	g.record(func(r Recorder) error { return r.Moved(seq, dir, ate) })

	switch {
	case lost:
		g.finish(StateLost)
	case won:
		g.finish(StateWon)
	}
	return ate
}

func (g *Game) fail(err error) {
	g.fault = err
	if errors.Is(err, snake.ErrInvariant) {
		g.logger.Error("snake invariant violated", "err", err, "moves", g.moves)
	} else {
		g.logger.Error("move failed", "err", err)
	}
	g.finish(StateFault)
}

func (g *Game) finish(state State) {
	g.state = state
	size := g.snake.Size()
	g.logger.Info("run finished", "outcome", state, "size", size, "moves", g.moves)
	moves := g.moves
	g.record(func(r Recorder) error { return r.RunFinished(state, size, moves) })
}

// record delivers an event to the recorder, detaching it on failure.
func (g *Game) record(fn func(Recorder) error) {
	if g.recorder == nil {
		return
	}
	if err := fn(g.recorder); err != nil {
		g.logger.Warn("run journal disabled", "err", err)
		g.recorder = nil
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	size := 0
	if g.snake != nil {
		size = g.snake.Size()
	}
	return core.GameState{
		Score:    size,
		GameOver: g.state != StatePlaying,
		Paused:   g.paused,
	}
}

// Outcome returns the run state.
func (g *Game) Outcome() State {
	return g.state
}

// Err returns the error that faulted the run, if any.
func (g *Game) Err() error {
	return g.fault
}

// Seed returns the seed of the current run.
func (g *Game) Seed() int64 {
	return g.seed
}

// Rows renders the board as plain text rows.
func (g *Game) Rows() []string {
	if g.snake == nil {
		return nil
	}
	return g.renderer.RenderRows(g.snake, g.food, g.opts.Width, g.opts.Height)
}
