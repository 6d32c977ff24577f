package storage

import (
	"fmt"

	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/session"
)

// Journal records session events into a Store. Each RunStarted opens a new
// run, so one Journal follows a session across restarts.
type Journal struct {
	store *Store
	runID string
}

// NewJournal returns a session.Recorder writing to store.
func NewJournal(store *Store) *Journal {
	return &Journal{store: store}
}

// RunID returns the id of the run being recorded, or "" before the first run.
func (j *Journal) RunID() string {
	return j.runID
}

// RunStarted implements session.Recorder.
func (j *Journal) RunStarted(info session.RunInfo) error {
	id, err := j.store.CreateRun(info)
	if err != nil {
		return err
	}
	j.runID = id
	return nil
}

// Moved implements session.Recorder.
func (j *Journal) Moved(seq int, dir core.Direction, ate bool) error {
	if j.runID == "" {
		return fmt.Errorf("storage: move %d recorded before run start", seq)
	}
	return j.store.RecordMove(j.runID, Move{Seq: seq, Direction: dir, Ate: ate})
}

// RunFinished implements session.Recorder.
func (j *Journal) RunFinished(state session.State, size, moves int) error {
	if j.runID == "" {
		return fmt.Errorf("storage: run finished before start")
	}
	return j.store.FinishRun(j.runID, state, size, moves)
}

var _ session.Recorder = (*Journal)(nil)
