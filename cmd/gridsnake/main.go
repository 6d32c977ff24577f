// gridsnake is a turn-based snake game for the terminal with a replayable
// run journal.
//
// Usage:
//
//	gridsnake play                    - Play in a full-screen terminal UI
//	gridsnake line                    - Play one move per input line
//	gridsnake serve                   - Start SSH server for remote play
//	gridsnake runs                    - Browse journaled runs
//	gridsnake replay <id>             - Replay a journaled run
//	gridsnake export <id> <out>       - Export a replayed run to Parquet
//
// Global flags:
//
//	--config <path>   - Config YAML (default search: ~/.gridsnake/configs, ./configs)
//	--board <preset>  - Board preset: small, classic, large
//	--width, --height - Board dimensions (override config and preset)
//	--fps <rate>      - Set tick rate (default: from config)
//	--seed <value>    - Set RNG seed for reproducible gameplay
//	--db <path>       - Set run journal path (default: from config)
//	--log-level       - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridsnake/internal/config"
	"github.com/vovakirdan/gridsnake/internal/session"
	"github.com/vovakirdan/gridsnake/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagBoard    string
	flagWidth    int
	flagHeight   int
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "gridsnake",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gridsnake",
	Short: "Gridsnake - turn-based snake in your terminal",
	Long: `Gridsnake is a turn-based snake game on a bordered grid.
Every run is journaled so it can be replayed move by move or exported.

Available commands:
  play     - Play in a full-screen terminal UI
  line     - Play one move per input line
  serve    - Start SSH server for remote play
  runs     - Browse journaled runs
  replay   - Replay a journaled run
  export   - Export a replayed run to Parquet

Examples:
  gridsnake play
  gridsnake play --board large --seed 42
  gridsnake line --width 8 --height 6
  gridsnake serve --ssh :2222
  gridsnake replay 3f2a
  gridsnake export 3f2a ./run.parquet`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
		}
		logger.SetLevel(level)
		return nil
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagBoard, "board", "", "Board preset: small, classic, large")
	rootCmd.PersistentFlags().IntVar(&flagWidth, "width", 0, "Board width (0 = from config)")
	rootCmd.PersistentFlags().IntVar(&flagHeight, "height", 0, "Board height (0 = from config)")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run journal (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(lineCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(exportCmd)
}

// loadConfig loads the config file and applies the preset and flag overrides.
func loadConfig() (config.SnakeConfig, error) {
	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		return cfg, err
	}
	if err := config.ApplyPreset(&cfg, flagBoard); err != nil {
		return cfg, err
	}
	if flagWidth > 0 {
		cfg.Board.Width = flagWidth
	}
	if flagHeight > 0 {
		cfg.Board.Height = flagHeight
	}
	if flagFPS > 0 {
		cfg.Pacing.TickRate = flagFPS
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	return cfg, cfg.Validate()
}

// gameOptions builds session options from cfg. The recorder is left unset.
func gameOptions(cfg config.SnakeConfig) (session.Options, error) {
	glyphs, err := cfg.Glyphs.Glyphs()
	if err != nil {
		return session.Options{}, err
	}
	return session.Options{
		Width:          cfg.Board.Width,
		Height:         cfg.Board.Height,
		DenseThreshold: cfg.Food.DenseThreshold,
		MoveEveryTicks: cfg.Pacing.MoveEveryTicks,
		Glyphs:         glyphs,
		Logger:         logger,
	}, nil
}

// attachJournal opens the run journal and sets it as the recorder of opts.
// Failures are logged and play continues without recording; the returned
// store is nil in that case.
func attachJournal(opts *session.Options, dbPath string) (*storage.Store, *storage.Journal) {
	store, err := storage.Open(dbPath)
	if err != nil {
		logger.Warn("could not open run journal", "path", dbPath, "error", err)
		return nil, nil
	}
	journal := storage.NewJournal(store)
	opts.Recorder = journal
	return store, journal
}

// reportRun logs the id of the last journaled run.
func reportRun(journal *storage.Journal) {
	if journal != nil && journal.RunID() != "" {
		logger.Info("run journaled", "id", journal.RunID())
	}
}

// runSeed returns the --seed flag, or a time-based seed when it is zero.
func runSeed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// faultErr returns the error of a run that ended on a broken invariant.
func faultErr(g *session.Game) error {
	if g.Outcome() != session.StateFault {
		return nil
	}
	return fmt.Errorf("run aborted: %w", g.Err())
}
