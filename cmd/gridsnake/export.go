package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridsnake/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export <id> <out.parquet>",
	Short: "Export a replayed run to Parquet",
	Long: `Replay a journaled run and write one Parquet row per move.

Rows hold the run id, move number, direction, whether food was eaten,
the snake body, the food cell and the outcome after the move.

Examples:
  gridsnake export 3f2a ./run.parquet`,
	Args: cobra.ExactArgs(2),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	store, res, err := loadReplay(args[0])
	if store != nil {
		defer store.Close()
	}
	if err != nil {
		return err
	}

	if err := export.WriteRun(args[1], res); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d frames of run %s to %s\n", len(res.Frames), res.RunID, args[1])
	return nil
}
