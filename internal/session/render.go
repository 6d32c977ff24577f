package session

import (
	"fmt"

	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/snake"
)

var kindColors = map[snake.CellKind]core.Color{
	snake.CellHead:   core.ColorBrightGreen,
	snake.CellBody:   core.ColorGreen,
	snake.CellFood:   core.ColorRed,
	snake.CellBorder: core.ColorGray,
}

// Render draws the HUD, the board and any overlay to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}
	if g.snake == nil {
		if g.fault != nil {
			g.renderOverlay(dst, "Cannot start", g.fault.Error())
		}
		return
	}

	g.renderBoard(dst)

	switch {
	case g.state == StateWon:
		g.renderOverlay(dst, "You Win!", fmt.Sprintf("Final size: %d", g.snake.Size()))
	case g.state == StateLost:
		g.renderOverlay(dst, "Game Over", "Press R to restart")
	case g.state == StateFault:
		g.renderOverlay(dst, "Internal error", "Press R to restart")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" Snake  Size: %d  Moves: %d  Board: %dx%d", g.State().Score, g.moves, g.opts.Width, g.opts.Height)
	if g.state.Terminal() {
		hud += "  [" + string(g.state) + "]"
	}
	dst.DrawText(0, 0, hud)

	for x := range dst.Width() {
		dst.Set(x, 1, '─')
	}
}

// renderBoard draws the bordered board centered under the HUD.
func (g *Game) renderBoard(dst *core.Screen) {
	offsetX := (dst.Width() - (g.opts.Width + 2)) / 2
	y := hudHeight
	for cells := range g.renderer.CellRows(g.snake, g.food, g.opts.Width, g.opts.Height) {
		for x, c := range cells {
			dst.SetColored(offsetX+x, y, g.renderer.Glyphs.Rune(c), kindColors[c.Kind])
		}
		y++
	}
}

// renderOverlay draws a centered overlay message.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := max(len([]rune(line1)), len([]rune(line2))) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))
	dst.DrawTextCentered(boxY+1, line1)
	dst.DrawTextCentered(boxY+3, line2)
}
