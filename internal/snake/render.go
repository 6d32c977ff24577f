package snake

import (
	"iter"
	"slices"

	"github.com/vovakirdan/gridsnake/internal/core"
)

// CellKind tags what occupies a drawn cell.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellBorder
	CellFood
	CellBody
	CellHead
)

// Cell is one drawn position. Dir is only meaningful for CellHead.
type Cell struct {
	Kind CellKind
	Dir  core.Direction
}

// Glyphs maps cell kinds to runes.
type Glyphs struct {
	HeadUp    rune
	HeadDown  rune
	HeadLeft  rune
	HeadRight rune
	Body      rune
	Food      rune
	Empty     rune
	Border    rune
}

// DefaultGlyphs is the plain ASCII glyph set.
var DefaultGlyphs = Glyphs{
	HeadUp:    '^',
	HeadDown:  'v',
	HeadLeft:  '<',
	HeadRight: '>',
	Body:      'o',
	Food:      '*',
	Empty:     ' ',
	Border:    '#',
}

// Head returns the head glyph for a heading.
func (g Glyphs) Head(d core.Direction) rune {
	switch d {
	case core.DirUp:
		return g.HeadUp
	case core.DirDown:
		return g.HeadDown
	case core.DirLeft:
		return g.HeadLeft
	default:
		return g.HeadRight
	}
}

// Rune returns the glyph for a cell.
func (g Glyphs) Rune(c Cell) rune {
	switch c.Kind {
	case CellHead:
		return g.Head(c.Dir)
	case CellBody:
		return g.Body
	case CellFood:
		return g.Food
	case CellBorder:
		return g.Border
	default:
		return g.Empty
	}
}

// Renderer projects a snake and its food onto a bordered text grid.
// Rendering never mutates its inputs.
type Renderer struct {
	Glyphs Glyphs
}

// NewRenderer returns a renderer using g.
func NewRenderer(g Glyphs) Renderer {
	return Renderer{Glyphs: g}
}

// CellRows yields one row of cells per line from the top border (y = -1) to
// the bottom border (y = height). Each row spans x = -1 .. width.
func (r Renderer) CellRows(s *Snake, food Food, width, height int) iter.Seq[[]Cell] {
	return func(yield func([]Cell) bool) {
		for y := -1; y <= height; y++ {
			if !yield(rowCells(s, food, width, height, y)) {
				return
			}
		}
	}
}

// Rows yields the rendered text lines, top border first.
func (r Renderer) Rows(s *Snake, food Food, width, height int) iter.Seq[string] {
	return func(yield func(string) bool) {
		for cells := range r.CellRows(s, food, width, height) {
			line := make([]rune, len(cells))
			for i, c := range cells {
				line[i] = r.Glyphs.Rune(c)
			}
			if !yield(string(line)) {
				return
			}
		}
	}
}

// RenderRows collects Rows into a slice.
func (r Renderer) RenderRows(s *Snake, food Food, width, height int) []string {
	return slices.Collect(r.Rows(s, food, width, height))
}

// rowCells builds the entity map for row y. Priority is head over body over
// food over empty; empty cells on the frame become border.
func rowCells(s *Snake, food Food, width, height, y int) []Cell {
	cells := make([]Cell, width+2)
	col := func(x int) int { return x + 1 }
	inSpan := func(x int) bool { return x >= -1 && x <= width }

	segs := s.segments
	for _, seg := range segs[min(1, len(segs)):] {
		if seg.Coord.Y == y && inSpan(seg.Coord.X) {
			cells[col(seg.Coord.X)] = Cell{Kind: CellBody}
		}
	}
	if len(segs) > 0 {
		head := segs[0]
		if head.Coord.Y == y && inSpan(head.Coord.X) {
			cells[col(head.Coord.X)] = Cell{Kind: CellHead, Dir: head.Heading}
		}
	}
	if food.Present && food.At.Y == y && inSpan(food.At.X) {
		if i := col(food.At.X); cells[i].Kind == CellEmpty {
			cells[i] = Cell{Kind: CellFood}
		}
	}

	frameRow := y == -1 || y == height
	for i := range cells {
		if cells[i].Kind != CellEmpty {
			continue
		}
		if frameRow || i == 0 || i == len(cells)-1 {
			cells[i] = Cell{Kind: CellBorder}
		}
	}
	return cells
}

// RenderRows renders with DefaultGlyphs.
func RenderRows(s *Snake, food Food, width, height int) []string {
	return NewRenderer(DefaultGlyphs).RenderRows(s, food, width, height)
}
