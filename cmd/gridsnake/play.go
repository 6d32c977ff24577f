package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/platform/tui"
	"github.com/vovakirdan/gridsnake/internal/session"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in a full-screen terminal UI",
	Long: `Start a run in a full-screen terminal UI.

Controls:
  Arrows/WASD/HJKL - Steer
  P/Space          - Pause
  R                - Restart (after the run ends)
  Ctrl+S           - Save a screenshot
  Q/Esc/Ctrl+C     - Quit

Board presets:
  small    - 10x8
  classic  - 17x13
  large    - 30x20

Examples:
  gridsnake play
  gridsnake play --board small
  gridsnake play --width 24 --height 12 --seed 7
  gridsnake play --config ./my-snake.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts, err := gameOptions(cfg)
	if err != nil {
		return err
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store, journal := attachJournal(&opts, cfg.Storage.DBPath)
	if store != nil {
		defer store.Close()
	}

	game := session.New(opts)
	runErr := tui.Run(game, core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: cfg.Pacing.TickRate,
		Seed:     runSeed(),
	})
	if runErr != nil {
		return runErr
	}

	reportRun(journal)
	return faultErr(game)
}
