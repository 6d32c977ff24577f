package snake

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/gridsnake/internal/core"
)

var (
	// ErrInvalidBoard is returned for non-positive board dimensions.
	ErrInvalidBoard = errors.New("snake: invalid board dimensions")

	// ErrBoardTooSmall is returned when the board cannot hold the initial
	// snake plus one food cell.
	ErrBoardTooSmall = errors.New("snake: cannot place initial food")
)

// Food is the current food cell. The zero value means no food is on the board.
type Food struct {
	At      core.Coord
	Present bool
}

// FoodAt returns food placed at c.
func FoodAt(c core.Coord) Food {
	return Food{At: c, Present: true}
}

// InitialSnake returns the starting two-segment snake for a board: heading
// left on the middle row against the right edge, or heading up along the
// only column of a one-wide board.
func InitialSnake(width, height int) (*Snake, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidBoard, width, height)
	}
	if width*height <= MinSize {
		return nil, fmt.Errorf("%w: board %dx%d", ErrBoardTooSmall, width, height)
	}

	if width == 1 {
		return New(core.DirUp, core.C(0, height-2), core.C(0, height-1))
	}
	row := height / 2
	return New(core.DirLeft, core.C(width-2, row), core.C(width-1, row))
}

// NewGame creates the initial snake and places the first food with p.
func NewGame(width, height int, p *Placer) (*Snake, Food, error) {
	s, err := InitialSnake(width, height)
	if err != nil {
		return nil, Food{}, err
	}
	food, ok := PlaceFood(p, s, width, height)
	if !ok {
		return nil, Food{}, fmt.Errorf("%w: board %dx%d", ErrBoardTooSmall, width, height)
	}
	return s, food, nil
}

// HandleDirection applies a requested heading; reversals are ignored.
func HandleDirection(s *Snake, d core.Direction) {
	s.ChangeDirection(d)
}

// Advance performs one move and reports whether food was eaten and whether
// the run is lost. When ate is true the caller must place new food.
// A non-nil error means the snake's state is corrupt.
func Advance(s *Snake, food Food, width, height int) (ate, lost bool, err error) {
	ate, err = s.Move(food)
	if err != nil {
		return ate, true, err
	}
	return ate, s.LostGame(width, height), nil
}

// PlaceFood chooses the next food cell. ok is false when the snake fills the
// board, which is a win.
func PlaceFood(p *Placer, s *Snake, width, height int) (Food, bool) {
	c, ok := p.Place(s, width, height)
	if !ok {
		return Food{}, false
	}
	return FoodAt(c), true
}
