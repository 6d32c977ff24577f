package snake

import (
	"testing"
	"unicode/utf8"

	"github.com/vovakirdan/gridsnake/internal/core"
)

func TestRenderInitialBoard(t *testing.T) {
	s, err := InitialSnake(5, 5)
	if err != nil {
		t.Fatalf("InitialSnake() failed: %v", err)
	}
	rows := RenderRows(s, FoodAt(core.C(0, 0)), 5, 5)

	expected := []string{
		"#######",
		"#*    #",
		"#     #",
		"#   <o#",
		"#     #",
		"#     #",
		"#######",
	}

	if len(rows) != len(expected) {
		t.Fatalf("got %d rows, expected %d: %q", len(rows), len(expected), rows)
	}
	for i := range rows {
		if utf8.RuneCountInString(rows[i]) != 7 {
			t.Errorf("row %d has %d glyphs, expected 7", i, utf8.RuneCountInString(rows[i]))
		}
		if rows[i] != expected[i] {
			t.Errorf("row %d = %q, expected %q", i, rows[i], expected[i])
		}
	}
}

func TestRenderHeadGlyphFollowsHeading(t *testing.T) {
	tests := []struct {
		dir      core.Direction
		expected rune
	}{
		{core.DirUp, '^'},
		{core.DirDown, 'v'},
		{core.DirLeft, '<'},
		{core.DirRight, '>'},
	}

	for _, tc := range tests {
		t.Run(tc.dir.String(), func(t *testing.T) {
			start := core.C(3, 3)
			s := mustSnake(t, tc.dir, start, core.Increment(start, oppositeOf(tc.dir)))
			if _, err := s.Move(Food{}); err != nil {
				t.Fatalf("Move() failed: %v", err)
			}

			head := s.Coords()[0]
			rows := RenderRows(s, Food{}, 7, 7)
			got := []rune(rows[head.Y+1])[head.X+1]
			if got != tc.expected {
				t.Errorf("head glyph = %q, expected %q", got, tc.expected)
			}
		})
	}
}

func TestRenderPriority(t *testing.T) {
	// Head overlapping body shows the head; food under a segment is hidden.
	s := mustSnake(t, core.DirRight, core.C(1, 1), core.C(2, 1), core.C(1, 1))
	rows := RenderRows(s, FoodAt(core.C(2, 1)), 4, 3)

	if rows[2] != "# >o #" {
		t.Errorf("row = %q, expected %q", rows[2], "# >o #")
	}
}

func TestRenderSegmentOnBorder(t *testing.T) {
	// Head has just left through the left wall; its tail sits on row 0.
	s := mustSnake(t, core.DirUp, core.C(-1, 1), core.C(0, 1))
	rows := RenderRows(s, Food{}, 3, 2)

	if rows[2] != "^o  #" {
		t.Errorf("row = %q, expected %q", rows[2], "^o  #")
	}

	top := mustSnake(t, core.DirUp, core.C(1, -1), core.C(1, 0))
	rows = RenderRows(top, Food{}, 3, 2)
	if rows[0] != "##^##" {
		t.Errorf("top border = %q, expected %q", rows[0], "##^##")
	}
	if rows[1] != "# o #" {
		t.Errorf("row 0 = %q, expected %q", rows[1], "# o #")
	}
}

func TestRenderDoesNotMutate(t *testing.T) {
	s := mustSnake(t, core.DirLeft, core.C(2, 1), core.C(3, 1), core.C(4, 1))
	food := FoodAt(core.C(0, 2))
	before := s.Segments()

	first := RenderRows(s, food, 6, 4)
	second := RenderRows(s, food, 6, 4)

	for i := range first {
		if first[i] != second[i] {
			t.Errorf("row %d changed between renders: %q vs %q", i, first[i], second[i])
		}
	}
	after := s.Segments()
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("segment %d changed: %+v -> %+v", i, before[i], after[i])
		}
	}
}

func TestRowsIsLazy(t *testing.T) {
	s := mustSnake(t, core.DirLeft, core.C(2, 1), core.C(3, 1))
	r := NewRenderer(DefaultGlyphs)

	count := 0
	for range r.Rows(s, Food{}, 5, 5) {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Errorf("iterated %d rows, expected to stop at 2", count)
	}
}

func TestCellRowsKinds(t *testing.T) {
	s := mustSnake(t, core.DirLeft, core.C(0, 0), core.C(1, 0))
	r := NewRenderer(DefaultGlyphs)

	var rows [][]Cell
	for cells := range r.CellRows(s, FoodAt(core.C(2, 0)), 3, 1) {
		rows = append(rows, cells)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, expected 3", len(rows))
	}

	expected := []CellKind{CellBorder, CellHead, CellBody, CellFood, CellBorder}
	for i, c := range rows[1] {
		if c.Kind != expected[i] {
			t.Errorf("cell %d kind = %v, expected %v", i, c.Kind, expected[i])
		}
	}
	if rows[1][1].Dir != core.DirLeft {
		t.Errorf("head cell dir = %v, expected left", rows[1][1].Dir)
	}
}

func TestCustomGlyphs(t *testing.T) {
	g := DefaultGlyphs
	g.Border = '█'
	g.Body = '●'
	s := mustSnake(t, core.DirLeft, core.C(0, 0), core.C(1, 0))
	rows := NewRenderer(g).RenderRows(s, Food{}, 2, 1)

	if rows[1] != "█<●█" {
		t.Errorf("row = %q, expected %q", rows[1], "█<●█")
	}
}
