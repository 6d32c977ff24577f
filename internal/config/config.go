// Package config provides YAML-based configuration loading and board presets
// for gridsnake.
package config

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/gridsnake/internal/snake"
)

// SnakeConfig contains all configuration for a run.
type SnakeConfig struct {
	Board   BoardConfig   `yaml:"board"`
	Food    FoodConfig    `yaml:"food"`
	Pacing  PacingConfig  `yaml:"pacing"`
	Glyphs  GlyphConfig   `yaml:"glyphs"`
	Storage StorageConfig `yaml:"storage"`
}

// BoardConfig defines the playable area in cells.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// FoodConfig defines food placement tuning.
type FoodConfig struct {
	DenseThreshold float64 `yaml:"dense_threshold"` // occupancy ratio in (0, 1]
}

// PacingConfig defines how fast the snake moves in interactive play.
type PacingConfig struct {
	TickRate       int `yaml:"tick_rate"`        // Simulation ticks per second
	MoveEveryTicks int `yaml:"move_every_ticks"` // Ticks between snake moves
}

// GlyphConfig defines the characters used to draw the board.
// Each value must be exactly one character.
type GlyphConfig struct {
	HeadUp    string `yaml:"head_up"`
	HeadDown  string `yaml:"head_down"`
	HeadLeft  string `yaml:"head_left"`
	HeadRight string `yaml:"head_right"`
	Body      string `yaml:"body"`
	Food      string `yaml:"food"`
	Empty     string `yaml:"empty"`
	Border    string `yaml:"border"`
}

// StorageConfig defines where the run journal lives.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Validate checks the configuration for values the engine cannot run with.
func (c SnakeConfig) Validate() error {
	if c.Board.Width <= 0 || c.Board.Height <= 0 {
		return fmt.Errorf("%w: board %dx%d must be positive", ErrInvalid, c.Board.Width, c.Board.Height)
	}
	if c.Board.Width*c.Board.Height <= snake.MinSize {
		return fmt.Errorf("%w: board %dx%d too small for snake and food", ErrInvalid, c.Board.Width, c.Board.Height)
	}
	if c.Food.DenseThreshold <= 0 || c.Food.DenseThreshold > 1 {
		return fmt.Errorf("%w: dense_threshold %v outside (0, 1]", ErrInvalid, c.Food.DenseThreshold)
	}
	if c.Pacing.TickRate <= 0 {
		return fmt.Errorf("%w: tick_rate must be positive", ErrInvalid)
	}
	if c.Pacing.MoveEveryTicks <= 0 {
		return fmt.Errorf("%w: move_every_ticks must be positive", ErrInvalid)
	}
	if _, err := c.Glyphs.Glyphs(); err != nil {
		return err
	}
	return nil
}

type glyphField struct {
	name  string
	value string
	dst   *rune
}

// Glyphs converts the configured strings to renderer glyphs.
func (g GlyphConfig) Glyphs() (snake.Glyphs, error) {
	var out snake.Glyphs
	fields := []glyphField{
		{"head_up", g.HeadUp, &out.HeadUp},
		{"head_down", g.HeadDown, &out.HeadDown},
		{"head_left", g.HeadLeft, &out.HeadLeft},
		{"head_right", g.HeadRight, &out.HeadRight},
		{"body", g.Body, &out.Body},
		{"food", g.Food, &out.Food},
		{"empty", g.Empty, &out.Empty},
		{"border", g.Border, &out.Border},
	}

	for _, f := range fields {
		if utf8.RuneCountInString(f.value) != 1 {
			return snake.Glyphs{}, fmt.Errorf("%w: glyph %s must be one character, got %q", ErrInvalid, f.name, f.value)
		}
		r, _ := utf8.DecodeRuneInString(f.value)
		*f.dst = r
	}
	return out, nil
}
