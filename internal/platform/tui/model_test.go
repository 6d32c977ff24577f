package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/session"
	"github.com/vovakirdan/gridsnake/internal/storage"
)

func newTestModel(t *testing.T, opts session.Options) (Model, *session.Game) {
	t.Helper()
	g := session.New(opts)
	m, err := NewModel(g, core.RuntimeConfig{ScreenW: 40, ScreenH: 24, TickRate: 60, Seed: 1})
	if err != nil {
		t.Fatalf("NewModel() failed: %v", err)
	}
	return m, g
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return nm
}

func TestModelSteersOnTick(t *testing.T) {
	m, g := newTestModel(t, session.Options{Width: 17, Height: 13, MoveEveryTicks: 1})
	start := g.Snapshot().Head()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = update(t, m, TickMsg(time.Now()))

	if head := g.Snapshot().Head(); head != core.C(start.X, start.Y-1) {
		t.Errorf("head = %v, expected %v", head, core.C(start.X, start.Y-1))
	}
	if len(m.inputFrame.Steer) != 0 {
		t.Error("input frame should be cleared after a tick")
	}
	if st := m.GameState(); st.Score != g.Snapshot().Size || st.GameOver {
		t.Errorf("GameState() = %+v, expected size %d and still playing", st, g.Snapshot().Size)
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t, session.Options{})
	next, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce QuitMsg")
	}
	if next.(Model).View() != "" {
		t.Error("View() after quit should be empty")
	}
}

func TestModelViewShowsBoardAndHelp(t *testing.T) {
	m, _ := newTestModel(t, session.Options{Width: 10, Height: 8})
	view := m.View()

	if !strings.Contains(view, "Size: 2") {
		t.Error("view should include the HUD")
	}
	if !strings.Contains(view, "↑/w/k") {
		t.Error("view should include the help bar")
	}
}

func TestModelResizeKeepsRun(t *testing.T) {
	m, g := newTestModel(t, session.Options{Width: 17, Height: 13, MoveEveryTicks: 1})
	m = update(t, m, TickMsg(time.Now()))
	moves := g.Snapshot().Moves

	m = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 30})
	if g.Snapshot().Moves != moves {
		t.Error("resize should not restart the run")
	}
	if m.screen.Width() != 60 || m.screen.Height() != 29 {
		t.Errorf("screen = %dx%d, expected 60x29", m.screen.Width(), m.screen.Height())
	}
}

func TestRunRows(t *testing.T) {
	runs := []storage.Run{{
		ID:        "0123456789abcdef",
		Seed:      42,
		Width:     17,
		Height:    13,
		Outcome:   session.StateLost,
		FinalSize: 9,
		Moves:     120,
		CreatedAt: time.Date(2026, 3, 4, 5, 6, 0, 0, time.UTC),
	}}

	rows := RunRows(runs)
	expected := []string{"01234567", "lost", "9", "120", "17x13", "42", "Mar 04 05:06"}
	if len(rows) != 1 || len(rows[0]) != len(expected) {
		t.Fatalf("rows = %v", rows)
	}
	for i := range expected {
		if rows[0][i] != expected[i] {
			t.Errorf("column %d = %q, expected %q", i, rows[0][i], expected[i])
		}
	}
}

type fakeRunStore struct {
	runs    []storage.Run
	deleted []string
}

func (f *fakeRunStore) RecentRuns(int) ([]storage.Run, error) { return f.runs, nil }

func (f *fakeRunStore) DeleteRun(id string) error {
	f.deleted = append(f.deleted, id)
	kept := f.runs[:0]
	for _, r := range f.runs {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	f.runs = kept
	return nil
}

func TestRunsModelSelectAndDelete(t *testing.T) {
	store := &fakeRunStore{runs: []storage.Run{{ID: "aaa"}, {ID: "bbb"}}}
	m := NewRunsModel(store, 100, 30)

	next, _ := m.Update(runeKey('x'))
	m = next.(RunsModel)
	if len(store.deleted) != 1 || store.deleted[0] != "aaa" {
		t.Errorf("deleted = %v, expected [aaa]", store.deleted)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(RunsModel)
	if m.Selected() != "bbb" {
		t.Errorf("Selected() = %q, expected bbb", m.Selected())
	}
	if cmd == nil {
		t.Error("select should quit the browser")
	}
}
