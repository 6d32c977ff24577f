// Package export writes replayed runs to Parquet for offline analysis.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"github.com/vovakirdan/gridsnake/internal/replay"
)

// Schema is the key-value metadata value identifying the row layout.
const Schema = "gridsnake_frame_v1"

// FrameRow is the board after one move of a run.
//
// Body is stored head first as parallel x/y lists. Food is a list of zero or
// one cells; it is empty once the board is full.
// Outcome is the run state after this move.
type FrameRow struct {
	RunID     string  `parquet:"run_id,dict"`
	Seq       int32   `parquet:"seq"`
	Width     int32   `parquet:"width"`
	Height    int32   `parquet:"height"`
	Direction string  `parquet:"direction,dict"`
	Ate       bool    `parquet:"ate"`
	BodyX     []int32 `parquet:"body_x"`
	BodyY     []int32 `parquet:"body_y"`
	FoodX     []int32 `parquet:"food_x"`
	FoodY     []int32 `parquet:"food_y"`
	Outcome   string  `parquet:"outcome,dict"`
}

// Rows converts a replay into Parquet rows, one per frame.
func Rows(res *replay.Result) []FrameRow {
	rows := make([]FrameRow, 0, len(res.Frames))
	for _, f := range res.Frames {
		snap := f.Snapshot
		row := FrameRow{
			RunID:     res.RunID,
			Seq:       int32(f.Seq),
			Width:     int32(snap.Width),
			Height:    int32(snap.Height),
			Direction: f.Direction.String(),
			Ate:       f.Ate,
			BodyX:     make([]int32, len(snap.Body)),
			BodyY:     make([]int32, len(snap.Body)),
			Outcome:   string(snap.State),
		}
		for i, c := range snap.Body {
			row.BodyX[i] = int32(c.X)
			row.BodyY[i] = int32(c.Y)
		}
		if snap.Food.Present {
			row.FoodX = []int32{int32(snap.Food.At.X)}
			row.FoodY = []int32{int32(snap.Food.At.Y)}
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteRun writes a replayed run to outPath.
func WriteRun(outPath string, res *replay.Result) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	// Write to a temp file and rename atomically.
	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, Rows(res),
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", Schema),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}
