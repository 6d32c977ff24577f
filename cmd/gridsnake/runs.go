package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gridsnake/internal/platform/tui"
	"github.com/vovakirdan/gridsnake/internal/storage"
)

var (
	flagPlain bool
	flagLimit int
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Browse journaled runs",
	Long: `Show the most recent journaled runs.

In the browser, Enter replays the selected run and X deletes it.
With --plain the runs are printed as text.

Examples:
  gridsnake runs
  gridsnake runs --plain --limit 5`,
	Args: cobra.NoArgs,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print runs as text instead of the browser")
	runsCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of runs to show")
	runsCmd.Flags().DurationVar(&flagDelay, "delay", 0, "Pause between frames when replaying the selected run")
}

func runRuns(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("open run journal: %w", err)
	}
	defer store.Close()

	if flagPlain {
		runs, err := store.RecentRuns(flagLimit)
		if err != nil {
			return err
		}
		printRuns(cmd, runs)
		return nil
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	id, err := tui.RunBrowser(store, width, height)
	if err != nil || id == "" {
		return err
	}

	glyphs, err := cfg.Glyphs.Glyphs()
	if err != nil {
		return err
	}
	res, err := replayFrom(store, id, glyphs)
	if res != nil {
		printReplay(cmd.OutOrStdout(), res, flagDelay)
	}
	return err
}

func printRuns(cmd *cobra.Command, runs []storage.Run) {
	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet. Play one with 'gridsnake play'.")
		return
	}

	fmt.Fprintf(out, "%-10s %-8s %5s %6s %7s %20s  %s\n", "RUN", "OUTCOME", "SIZE", "MOVES", "BOARD", "SEED", "DATE")
	for _, row := range tui.RunRows(runs) {
		fmt.Fprintf(out, "%-10s %-8s %5s %6s %7s %20s  %s\n", row[0], row[1], row[2], row[3], row[4], row[5], row[6])
	}
}
