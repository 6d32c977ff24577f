package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridsnake/internal/replay"
	"github.com/vovakirdan/gridsnake/internal/snake"
	"github.com/vovakirdan/gridsnake/internal/storage"
)

var flagDelay time.Duration

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Replay a journaled run",
	Long: `Rebuild a journaled run from its seed and recorded moves and print
the board after every move.

The id may be any unique prefix of a run id (see 'gridsnake runs').
The command fails if the replay does not reproduce the journal.

Examples:
  gridsnake replay 3f2a
  gridsnake replay 3f2a --delay 150ms`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().DurationVar(&flagDelay, "delay", 0, "Pause between frames (e.g. 200ms)")
}

func runReplay(cmd *cobra.Command, args []string) error {
	store, res, err := loadReplay(args[0])
	if store != nil {
		defer store.Close()
	}
	if res != nil {
		printReplay(cmd.OutOrStdout(), res, flagDelay)
	}
	return err
}

// loadReplay opens the journal and replays the run matching idOrPrefix.
// A diverged replay returns the frames reproduced so far with the error.
func loadReplay(idOrPrefix string) (*storage.Store, *replay.Result, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	glyphs, err := cfg.Glyphs.Glyphs()
	if err != nil {
		return nil, nil, err
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open run journal: %w", err)
	}

	res, err := replayFrom(store, idOrPrefix, glyphs)
	return store, res, err
}

func replayFrom(src replay.Source, idOrPrefix string, glyphs snake.Glyphs) (*replay.Result, error) {
	res, err := replay.Load(src, idOrPrefix, glyphs)
	if errors.Is(err, replay.ErrDiverged) {
		logger.Error("replay diverged", "run", idOrPrefix, "error", err)
	}
	return res, err
}

// printReplay writes every frame of res to w.
func printReplay(w io.Writer, res *replay.Result, delay time.Duration) {
	for i, f := range res.Frames {
		if i > 0 && delay > 0 {
			time.Sleep(delay)
		}
		if f.Seq == 0 {
			fmt.Fprintf(w, "run %s  start  size %d\n", res.RunID, f.Snapshot.Size)
		} else {
			fmt.Fprintf(w, "move %d  %s  size %d\n", f.Seq, f.Direction, f.Snapshot.Size)
		}
		for _, row := range f.Rows {
			fmt.Fprintln(w, row)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "outcome: %s  final size: %d\n", res.Outcome, res.Size)
}
