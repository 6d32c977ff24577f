package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridsnake/internal/platform/line"
	"github.com/vovakirdan/gridsnake/internal/session"
)

var flagNoJournal bool

var lineCmd = &cobra.Command{
	Use:   "line",
	Short: "Play one move per input line",
	Long: `Play a run from standard input, one move per line.

Each line is a direction: up/down/left/right, w/a/s/d or h/j/k/l.
An empty line keeps the current heading. "quit" ends the run.
The board is printed after every move.

Examples:
  gridsnake line
  gridsnake line --board small --seed 3
  printf 'left\nup\n\n' | gridsnake line --width 8 --height 6 --no-journal`,
	Args: cobra.NoArgs,
	RunE: runLine,
}

func init() {
	lineCmd.Flags().BoolVar(&flagNoJournal, "no-journal", false, "Do not record the run")
}

func runLine(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts, err := gameOptions(cfg)
	if err != nil {
		return err
	}

	if !flagNoJournal {
		store, journal := attachJournal(&opts, cfg.Storage.DBPath)
		if store != nil {
			defer store.Close()
		}
		defer reportRun(journal)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	game := session.New(opts)
	state, err := line.Run(ctx, game, runSeed(), cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("line: %w", err)
	}
	logger.Debug("line run ended", "outcome", state, "size", game.State().Score)
	return faultErr(game)
}
