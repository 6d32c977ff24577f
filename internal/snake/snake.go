// Package snake implements the movement, collision and food-placement rules
// of a single snake on a bounded grid, plus the text projection of the board.
//
// The package holds no grid state of its own: width and height are passed to
// every call that reasons about bounds.
package snake

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/gridsnake/internal/core"
)

// MinSize is the length of a freshly created snake and the floor it never
// shrinks below.
const MinSize = 2

// ErrInvariant is returned when the snake's internal state is inconsistent.
// It indicates a logic defect; callers should stop the run.
var ErrInvariant = errors.New("snake: invariant violated")

// Segment is one occupied cell of the body.
type Segment struct {
	Coord   core.Coord
	Heading core.Direction // heading when this cell was entered
	IsHead  bool
}

// Snake is an ordered body (head first), a target length and the heading
// applied on the next move.
type Snake struct {
	segments  []Segment
	size      int
	direction core.Direction
}

// New builds a snake from body coordinates ordered head first. Every segment
// is stamped with dir as its heading. At least MinSize cells are required.
func New(dir core.Direction, body ...core.Coord) (*Snake, error) {
	if len(body) < MinSize {
		return nil, fmt.Errorf("%w: snake needs at least %d segments, got %d", ErrInvariant, MinSize, len(body))
	}
	if !dir.Valid() {
		return nil, fmt.Errorf("%w: invalid heading %d", ErrInvariant, dir)
	}

	segs := make([]Segment, len(body))
	for i, c := range body {
		segs[i] = Segment{Coord: c, Heading: dir, IsHead: i == 0}
	}
	return &Snake{
		segments:  segs,
		size:      len(segs),
		direction: dir,
	}, nil
}

// Head returns the head segment. The second result is false for an empty body.
func (s *Snake) Head() (Segment, bool) {
	if len(s.segments) == 0 {
		return Segment{}, false
	}
	return s.segments[0], true
}

// Segments returns a copy of the body, head first.
func (s *Snake) Segments() []Segment {
	out := make([]Segment, len(s.segments))
	copy(out, s.segments)
	return out
}

// Coords returns the occupied cells, head first.
func (s *Snake) Coords() []core.Coord {
	out := make([]core.Coord, len(s.segments))
	for i, seg := range s.segments {
		out[i] = seg.Coord
	}
	return out
}

// Len is the current number of segments.
func (s *Snake) Len() int {
	return len(s.segments)
}

// Size is the target length.
func (s *Snake) Size() int {
	return s.size
}

// Direction is the heading the next move will use.
func (s *Snake) Direction() core.Direction {
	return s.direction
}

// Occupies reports whether any segment sits on c.
func (s *Snake) Occupies(c core.Coord) bool {
	for _, seg := range s.segments {
		if seg.Coord == c {
			return true
		}
	}
	return false
}

// ChangeDirection sets the heading for the next move unless it is the exact
// reverse of the head's current heading. Rejected turns are ignored.
func (s *Snake) ChangeDirection(requested core.Direction) {
	head, ok := s.Head()
	if !ok || !requested.Valid() {
		return
	}
	if core.IsOpposite(requested, head.Heading) {
		return
	}
	s.direction = requested
}

// Move advances the snake one cell along its heading. When the new head lands
// on food the snake grows by one; otherwise the oldest segment is dropped.
// It returns whether food was eaten.
func (s *Snake) Move(food Food) (bool, error) {
	if len(s.segments) == 0 {
		return false, fmt.Errorf("%w: move on empty snake", ErrInvariant)
	}

	newHead := Segment{
		Coord:   core.Increment(s.segments[0].Coord, s.direction),
		Heading: s.direction,
		IsHead:  true,
	}
	s.segments[0].IsHead = false

	s.segments = append(s.segments, Segment{})
	copy(s.segments[1:], s.segments)
	s.segments[0] = newHead

	ate := food.Present && newHead.Coord == food.At
	if ate {
		s.size++
	} else if len(s.segments) > s.size {
		s.segments = s.segments[:s.size]
	}

	if len(s.segments) != s.size {
		return ate, fmt.Errorf("%w: %d segments after move, expected %d", ErrInvariant, len(s.segments), s.size)
	}
	return ate, nil
}

// IsOffGrid reports whether the head lies outside [0,width) x [0,height).
// Only the head is checked: single-step movement means the body can only
// leave the grid through a cell the head left first.
func (s *Snake) IsOffGrid(width, height int) bool {
	head, ok := s.Head()
	if !ok {
		return false
	}
	return head.Coord.X < 0 || head.Coord.X >= width ||
		head.Coord.Y < 0 || head.Coord.Y >= height
}

// AteItself reports whether any non-head segment shares the head's cell.
// Call it after Move so the dropped tail is not counted.
func (s *Snake) AteItself() bool {
	head, ok := s.Head()
	if !ok {
		return false
	}
	for _, seg := range s.segments[1:] {
		if seg.Coord == head.Coord {
			return true
		}
	}
	return false
}

// LostGame reports whether the run is over.
func (s *Snake) LostGame(width, height int) bool {
	return s.IsOffGrid(width, height) || s.AteItself()
}

// Clone returns an independent copy.
func (s *Snake) Clone() *Snake {
	return &Snake{
		segments:  s.Segments(),
		size:      s.size,
		direction: s.direction,
	}
}
