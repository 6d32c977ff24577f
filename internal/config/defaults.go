package config

import (
	_ "embed"

	"github.com/vovakirdan/gridsnake/internal/snake"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the default configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Board: BoardConfig{
			Width:  17,
			Height: 13,
		},
		Food: FoodConfig{
			DenseThreshold: snake.DefaultDenseThreshold,
		},
		Pacing: PacingConfig{
			TickRate:       60,
			MoveEveryTicks: 6,
		},
		Glyphs: GlyphConfig{
			HeadUp:    "^",
			HeadDown:  "v",
			HeadLeft:  "<",
			HeadRight: ">",
			Body:      "o",
			Food:      "*",
			Empty:     " ",
			Border:    "#",
		},
		Storage: StorageConfig{
			DBPath: "~/.gridsnake/runs.db",
		},
	}
}
