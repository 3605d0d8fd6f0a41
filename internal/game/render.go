package game

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/vovakirdan/tile2048/internal/board"
	"github.com/vovakirdan/tile2048/internal/core"
)

const (
	cellWidth  = 7 // Width of each cell including its left border
	cellHeight = 2 // Height of each cell including its top border
	hudHeight  = 3
)

const gridColor = core.ColorGray

// boardSize returns the grid size in characters, borders included.
func (g *Game) boardSize() (w, h int) {
	return g.board.Cols()*cellWidth + 1, g.board.Rows()*cellHeight + 1
}

// minScreenSize returns the smallest screen that fits HUD, grid and hint line.
func (g *Game) minScreenSize() (w, h int) {
	bw, bh := g.boardSize()
	return bw + 2, hudHeight + 1 + bh + 2
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardW, boardH := g.boardSize()
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX, boardW)
	g.renderGrid(dst, boardX, boardY)
	g.renderTiles(dst, boardX, boardY)
	g.renderOverlays(dst, core.NewRect(boardX, boardY, boardW, boardH))

	dst.DrawTextCentered(g.screenH-1, g.Controls(), core.ColorGray)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorBrightRed)

	minW, minH := g.minScreenSize()
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need at least %dx%d", minW, minH), core.ColorDefault)
}

// renderHUD draws score, best score and mode info above the board.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	title := "2048"
	dst.DrawTextColor(boardX+(boardW-len(title))/2, 0, title, core.ColorBrightYellow)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", g.score))

	bestStr := fmt.Sprintf("Best: %d", g.best)
	bestColor := core.ColorDefault
	if g.improvedBest {
		bestColor = core.ColorBrightGreen
	}
	dst.DrawTextColor(max(boardX, boardX+boardW-len(bestStr)), 1, bestStr, bestColor)

	var info string
	switch g.mode {
	case ModeCampaign:
		info = fmt.Sprintf("Level %d/%d  Target: %d", g.levelIndex+1, LevelCount(), g.target)
	case ModeClassic:
		info = fmt.Sprintf("Classic  Goal: %d", g.target)
	default:
		info = fmt.Sprintf("Endless  Max: %d", g.board.MaxTile())
	}
	dst.DrawTextColor(boardX+(boardW-len(info))/2, 2, info, core.ColorCyan)
}

// renderGrid draws the cell borders.
func (g *Game) renderGrid(dst *core.Screen, boardX, boardY int) {
	rows, cols := g.board.Rows(), g.board.Cols()

	for y := range rows + 1 {
		for x := range cols + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			dst.SetWithColor(px, py, gridJunction(x, y, cols, rows), gridColor)

			if x < cols {
				for i := 1; i < cellWidth; i++ {
					dst.SetWithColor(px+i, py, '─', gridColor)
				}
			}
			if y < rows {
				for i := 1; i < cellHeight; i++ {
					dst.SetWithColor(px, py+i, '│', gridColor)
				}
			}
		}
	}
}

func gridJunction(x, y, cols, rows int) rune {
	switch {
	case y == 0 && x == 0:
		return '┌'
	case y == 0 && x == cols:
		return '┐'
	case y == rows && x == 0:
		return '└'
	case y == rows && x == cols:
		return '┘'
	case y == 0:
		return '┬'
	case y == rows:
		return '┴'
	case x == 0:
		return '├'
	case x == cols:
		return '┤'
	default:
		return '┼'
	}
}

// cellOrigin returns the screen position of the first text column of a cell.
func cellOrigin(boardX, boardY int, c board.Cell) (int, int) {
	return boardX + c.Col*cellWidth + 1, boardY + c.Row*cellHeight + 1
}

// renderTiles draws the board, with sliding tiles at their interpolated
// positions and popping tiles highlighted.
func (g *Game) renderTiles(dst *core.Screen, boardX, boardY int) {
	hidden := make(map[board.Cell]bool)
	if g.anim.phase == PhaseSlide {
		for _, a := range g.anim.tiles {
			hidden[a.To] = true
		}
	}

	for r := range g.board.Rows() {
		for c := range g.board.Cols() {
			cell := board.Cell{Row: r, Col: c}
			x, y := cellOrigin(boardX, boardY, cell)
			value := g.board.Number(r, c)
			if value == 0 || hidden[cell] {
				drawTile(dst, x, y, 0, core.ColorGray)
				continue
			}
			drawTile(dst, x, y, value, core.TileColor(value))
		}
	}

	switch g.anim.phase {
	case PhaseSlide:
		for _, a := range g.anim.tiles {
			fx, fy := cellOrigin(boardX, boardY, a.From)
			tx, ty := cellOrigin(boardX, boardY, a.To)
			t := easeOutQuad(a.Progress)
			drawTile(dst, core.Lerp(fx, tx, t), core.Lerp(fy, ty, t), a.Value, core.TileColor(a.Value))
		}
	case PhasePop:
		for _, a := range g.anim.tiles {
			if a.Progress >= 0.5 {
				continue
			}
			x, y := cellOrigin(boardX, boardY, a.To)
			drawTile(dst, x, y, a.Value, core.ColorBrightWhite)
		}
	}
}

// drawTile writes a value centered in a cell; 0 draws the empty-cell dot.
func drawTile(dst *core.Screen, x, y, value int, color core.Color) {
	text := "·"
	if value > 0 {
		text = strconv.Itoa(value)
	}
	width := cellWidth - 1
	pad := max(0, (width-len([]rune(text)))/2)
	dst.DrawRect(core.NewRect(x, y, width, 1), ' ', core.ColorDefault)
	dst.DrawTextColor(x+pad, y, text, color)
}

// renderOverlays draws pause, dialog and end-of-game overlays.
func (g *Game) renderOverlays(dst *core.Screen, area core.Rect) {
	switch {
	case g.paused:
		drawOverlay(dst, area, core.ColorYellow, "PAUSED", "Press P to resume")

	case g.dialog == DialogNewGame:
		drawOverlay(dst, area, core.ColorCyan, "Start a new game?", "Enter: yes  Esc: no")

	case g.dialog == DialogCongratulations:
		drawOverlay(dst, area, core.ColorBrightGreen,
			"YOU WIN!", fmt.Sprintf("Tile %d reached", g.target), "Enter: keep going", "R: new game")

	case g.levelCleared:
		targetStr := fmt.Sprintf("Target %d reached!", g.target)
		if g.levelIndex >= LevelCount()-1 {
			drawOverlay(dst, area, core.ColorBrightGreen, targetStr, "Final level complete!")
		} else {
			next := GetLevel(g.levelIndex + 1)
			drawOverlay(dst, area, core.ColorBrightGreen, targetStr,
				fmt.Sprintf("Next: Level %d - %s", next.ID, next.Name))
		}

	case g.won:
		drawOverlay(dst, area, core.ColorBrightYellow,
			"CAMPAIGN COMPLETE!", "You are the champion!", "Press R to restart")

	case g.gameOver:
		lines := []string{"GAME OVER", fmt.Sprintf("Max tile: %d", g.board.MaxTile())}
		if g.improvedBest {
			lines = append(lines, "New best score!")
		}
		lines = append(lines, "Press R to restart")
		drawOverlay(dst, area, core.ColorBrightRed, lines...)
	}
}

// drawOverlay draws a boxed text overlay centered on area, kept on screen.
func drawOverlay(dst *core.Screen, area core.Rect, color core.Color, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(line))
	}

	box := core.CenteredRect(area.W, area.H, maxLen+4, len(lines)+2)
	box.X = core.Clamp(area.X+box.X, 0, max(0, dst.Width()-box.W))
	box.Y = core.Clamp(area.Y+box.Y, 0, max(0, dst.Height()-box.H))
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, color)

	inner := box.Inset(1)
	centerX, _ := inner.Center()
	for i, line := range lines {
		dst.DrawTextColor(centerX-utf8.RuneCountInString(line)/2, inner.Y+i, line, color)
	}
}
