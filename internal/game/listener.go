package game

import "github.com/vovakirdan/tile2048/internal/board"

// The Game listens to its own board. Callbacks only record what changed;
// spawning and game over checks happen in the animation continuations.

// OnCreated records a new tile for the pop animation.
func (g *Game) OnCreated(b *board.Board, c board.Cell, full bool) {
	g.spawnedFull = full
	g.pending = append(g.pending, TileAnimation{
		Value: b.Number(c.Row, c.Col),
		From:  c,
		To:    c,
		IsNew: true,
	})
}

// OnJoined adds the merged value to the score and records the slide.
func (g *Game) OnJoined(b *board.Board, m board.Movement) {
	dst := m.Destination()
	value := b.Number(dst.Row, dst.Col)

	g.setScore(g.score + value)
	if g.mode == ModeClassic && value == g.cfg.Board.WinTile {
		g.reachedWin = true
	}

	// Keep the tile already at the destination visible until the other one arrives
	if !g.pendingTarget(dst) {
		g.pending = append(g.pending, TileAnimation{Value: value / 2, From: dst, To: dst})
	}
	g.pending = append(g.pending, TileAnimation{
		Value:  value / 2,
		From:   m.Source,
		To:     dst,
		Merged: true,
	})
	g.merged = append(g.merged, dst)
}

// OnMoved records a slide without merge.
func (g *Game) OnMoved(b *board.Board, m board.Movement) {
	dst := m.Destination()
	g.pending = append(g.pending, TileAnimation{
		Value: b.Number(dst.Row, dst.Col),
		From:  m.Source,
		To:    dst,
	})
}

// OnRemoved drops pending animations for a cleared cell.
func (g *Game) OnRemoved(_ *board.Board, c board.Cell) {
	kept := g.pending[:0]
	for _, a := range g.pending {
		if a.To != c {
			kept = append(kept, a)
		}
	}
	g.pending = kept
}

func (g *Game) pendingTarget(c board.Cell) bool {
	for _, a := range g.pending {
		if a.To == c {
			return true
		}
	}
	return false
}
