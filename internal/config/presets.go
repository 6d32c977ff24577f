package config

import "fmt"

// BoardPreset represents a named board size.
type BoardPreset string

const (
	BoardSmall   BoardPreset = "small"
	BoardClassic BoardPreset = "classic"
	BoardLarge   BoardPreset = "large"
)

// Presets lists the known presets in display order.
var Presets = []BoardPreset{BoardSmall, BoardClassic, BoardLarge}

// Dimensions returns the board width and height for a preset.
func (p BoardPreset) Dimensions() (width, height int, ok bool) {
	switch p {
	case BoardSmall:
		return 10, 8, true
	case BoardClassic:
		return 17, 13, true
	case BoardLarge:
		return 30, 20, true
	default:
		return 0, 0, false
	}
}

// ApplyPreset sets the board size from a named preset.
// An empty name leaves the config unchanged.
func ApplyPreset(cfg *SnakeConfig, name string) error {
	if name == "" {
		return nil
	}
	w, h, ok := BoardPreset(name).Dimensions()
	if !ok {
		return fmt.Errorf("%w: unknown board preset %q (want small, classic or large)", ErrInvalid, name)
	}
	cfg.Board.Width = w
	cfg.Board.Height = h
	return nil
}
