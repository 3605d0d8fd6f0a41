package board

import "fmt"

// Move shifts every tile toward the leading edge of dir, merging equal
// neighbours. Returns true if at least one tile moved or merged; false means
// the board is unchanged and no events were fired.
//
// Each line (a row for horizontal moves, a column for vertical ones) is
// processed from the leading edge outward. A merge advances the line's limit
// to the merged cell, so a merged tile cannot take part in a second merge
// during the same move: a run of three equal tiles merges the two nearest the
// edge and the third stops next to the result.
func (b *Board) Move(dir Direction) (bool, error) {
	if !dir.Valid() {
		return false, fmt.Errorf("board: move %s: %w", dir, ErrInvalidDirection)
	}

	moved := false
	for line := range b.lineCount(dir) {
		if b.moveLine(dir, line) {
			moved = true
		}
	}
	return moved, nil
}

// lineCount returns the number of independent lines for dir.
func (b *Board) lineCount(dir Direction) int {
	if dir.Axis() == Horizontal {
		return b.rows
	}
	return b.cols
}

// lineLength returns the number of cells in one line for dir.
func (b *Board) lineLength(dir Direction) int {
	if dir.Axis() == Horizontal {
		return b.cols
	}
	return b.rows
}

// cellAt maps (line, pos) to grid coordinates for dir's axis.
func cellAt(dir Direction, line, pos int) (row, col int) {
	if dir.Axis() == Horizontal {
		return line, pos
	}
	return pos, line
}

// moveLine runs the slide/merge traversal on one line.
func (b *Board) moveLine(dir Direction, line int) bool {
	n := b.lineLength(dir)

	// Positions are visited from the leading edge (start) to the far edge (end).
	start := 0
	if dir.Step() > 0 {
		start = n - 1
	}
	away := -dir.Step()
	end := start + away*(n-1)
	limit := start - away

	moved := false
	for cur := start; cur != end; {
		cur += away

		r, c := cellAt(dir, line, cur)
		value := b.cells[r][c]
		if value == 0 {
			continue
		}

		// Scan back toward the edge for the furthest reachable position
		target := cur
		join := false
		for p := cur - away; p != limit; p -= away {
			tr, tc := cellAt(dir, line, p)
			other := b.cells[tr][tc]
			if other == 0 {
				target = p
				continue
			}
			if other == value {
				target = p
				join = true
			}
			break
		}

		if target == cur {
			continue
		}

		tr, tc := cellAt(dir, line, target)
		m := NewMovement(Cell{Row: r, Col: c}, (cur-target)*away, dir)
		b.cells[r][c] = 0

		if join {
			b.cells[tr][tc] = value * 2
			b.occupied--
			limit = target
			b.notifyJoined(m)
		} else {
			b.cells[tr][tc] = value
			b.notifyMoved(m)
		}

		moved = true
	}

	return moved
}
