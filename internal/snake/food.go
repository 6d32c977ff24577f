package snake

import (
	"math/rand"

	"github.com/vovakirdan/gridsnake/internal/core"
)

// DefaultDenseThreshold is the occupancy at which placement stops rejection
// sampling and enumerates free cells instead.
const DefaultDenseThreshold = 0.30

// maxSparseAttempts bounds rejection sampling. Reaching it falls through to
// enumeration; below the threshold that is practically unreachable.
const maxSparseAttempts = 1024

// Regime names the strategy a placement used.
type Regime int

const (
	RegimeSparse Regime = iota
	RegimeDense
)

func (r Regime) String() string {
	if r == RegimeDense {
		return "dense"
	}
	return "sparse"
}

// Placer chooses food cells. The zero value is not usable; use NewPlacer.
type Placer struct {
	rng       *rand.Rand
	threshold float64
}

// NewPlacer returns a placer drawing from rng. A threshold outside (0,1]
// falls back to DefaultDenseThreshold.
func NewPlacer(rng *rand.Rand, threshold float64) *Placer {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultDenseThreshold
	}
	return &Placer{rng: rng, threshold: threshold}
}

// Threshold returns the occupancy ratio separating the two regimes.
func (p *Placer) Threshold() float64 {
	return p.threshold
}

// RegimeFor reports which strategy Place would use for this occupancy.
func (p *Placer) RegimeFor(s *Snake, width, height int) Regime {
	if Occupancy(s, width, height) < p.threshold {
		return RegimeSparse
	}
	return RegimeDense
}

// Occupancy is snake size over board area.
func Occupancy(s *Snake, width, height int) float64 {
	area := width * height
	if area <= 0 {
		return 1
	}
	return float64(s.Size()) / float64(area)
}

// Place returns a cell inside the board that no segment occupies.
// The second result is false when the snake fills the whole board.
func (p *Placer) Place(s *Snake, width, height int) (core.Coord, bool) {
	area := width * height
	if area <= 0 || s.Size() >= area {
		return core.Coord{}, false
	}

	if p.RegimeFor(s, width, height) == RegimeSparse {
		if c, ok := p.sample(s, width, height); ok {
			return c, true
		}
	}
	return p.enumerate(s, width, height)
}

// sample draws uniform cells until one is free.
func (p *Placer) sample(s *Snake, width, height int) (core.Coord, bool) {
	for range maxSparseAttempts {
		c := core.C(p.rng.Intn(width), p.rng.Intn(height))
		if !s.Occupies(c) {
			return c, true
		}
	}
	return core.Coord{}, false
}

// enumerate collects every free cell and picks one uniformly.
func (p *Placer) enumerate(s *Snake, width, height int) (core.Coord, bool) {
	occupied := make(map[core.Coord]bool, s.Len())
	for _, c := range s.Coords() {
		occupied[c] = true
	}

	free := make([]core.Coord, 0, max(width*height-len(occupied), 0))
	for y := range height {
		for x := range width {
			c := core.C(x, y)
			if !occupied[c] {
				free = append(free, c)
			}
		}
	}

	if len(free) == 0 {
		return core.Coord{}, false
	}
	return free[p.rng.Intn(len(free))], true
}
