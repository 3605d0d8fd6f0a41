package game

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrSaveMismatch is returned by LoadState when a record does not fit the
// board size or mode.
var ErrSaveMismatch = errors.New("save record does not match board")

// recordHeader is the size of the best and score fields.
const recordHeader = 8

// SaveState encodes the save record: best, score, then the board cells, all
// big-endian int32. Campaign records end with the level index.
func (g *Game) SaveState() ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(g.recordSize())

	header := binary.BigEndian.AppendUint32(nil, uint32(int32(g.best)))
	header = binary.BigEndian.AppendUint32(header, uint32(int32(g.score)))
	buf.Write(header)

	if err := g.board.SaveState(&buf); err != nil {
		return nil, fmt.Errorf("game: save: %w", err)
	}

	if g.mode == ModeCampaign {
		buf.Write(binary.BigEndian.AppendUint32(nil, uint32(int32(g.levelIndex))))
	}

	return buf.Bytes(), nil
}

// LoadState restores a record written by SaveState. An empty saved board
// starts a new game with the saved best score.
func (g *Game) LoadState(data []byte) error {
	if len(data) != g.recordSize() {
		return fmt.Errorf("game: load: %w: got %d bytes, want %d",
			ErrSaveMismatch, len(data), g.recordSize())
	}

	best := int(int32(binary.BigEndian.Uint32(data[0:])))
	score := int(int32(binary.BigEndian.Uint32(data[4:])))
	cells := data[recordHeader : recordHeader+g.board.StateSize()]

	g.anim.stop()
	g.pending = nil
	if err := g.board.LoadState(bytes.NewReader(cells)); err != nil {
		return fmt.Errorf("game: load: %w", err)
	}

	g.score = max(0, score)
	g.best = max(g.best, best, g.score)
	g.improvedBest = false
	g.gameOver = false
	g.won = false
	g.paused = false
	g.dialog = DialogNone
	g.levelCleared = false
	g.levelClearTicks = 0

	if g.mode == ModeCampaign {
		level := int(int32(binary.BigEndian.Uint32(data[recordHeader+g.board.StateSize():])))
		g.levelIndex = min(max(0, level), LevelCount()-1)
	}
	g.loadLevel()

	if g.board.IsEmpty() {
		g.newGame()
		return nil
	}

	g.congratulated = g.mode == ModeClassic && g.board.MaxTile() >= g.target
	switch {
	case g.board.Full() && !g.board.CanMove():
		g.gameOver = true
	case g.mode == ModeCampaign && g.board.MaxTile() >= g.target:
		g.levelCleared = true
	}

	g.play(PhasePop, g.takePending(), nil)
	g.logger.Debug("game restored", "score", g.score, "best", g.best, "tiles", g.board.Occupied())
	return nil
}

func (g *Game) recordSize() int {
	size := recordHeader + g.board.StateSize()
	if g.mode == ModeCampaign {
		size += 4
	}
	return size
}
