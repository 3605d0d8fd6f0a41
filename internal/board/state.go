package board

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// cellBytes is the encoded width of one cell value.
const cellBytes = 4

// StateSize returns the encoded size of the board state in bytes.
func (b *Board) StateSize() int {
	return b.rows * b.cols * cellBytes
}

// SaveState writes every cell as a big-endian int32, row by row.
// The whole state is encoded first and handed to w in a single Write.
func (b *Board) SaveState(w io.Writer) error {
	buf := make([]byte, 0, b.StateSize())
	for _, row := range b.cells {
		for _, v := range row {
			buf = binary.BigEndian.AppendUint32(buf, uint32(int32(v)))
		}
	}

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("board: save state: %w", err)
	}
	return nil
}

// LoadState reads a state written by SaveState and restores it.
// On a read error the board is left unchanged.
func (b *Board) LoadState(r io.Reader) error {
	buf := make([]byte, b.StateSize())
	if _, err := io.ReadFull(r, buf); err != nil {
		return fmt.Errorf("board: load state: %w", err)
	}

	values := make([]int, b.rows*b.cols)
	for i := range values {
		values[i] = int(int32(binary.BigEndian.Uint32(buf[i*cellBytes:])))
	}

	return b.Restore(values)
}

// Restore replaces the grid with values given in row-major order.
// Stale tiles are removed (Removed events), then each positive power of two
// is placed (Created events). Any other value leaves its cell empty, even
// when the board held a tile there before the call.
func (b *Board) Restore(values []int) error {
	if len(values) != b.rows*b.cols {
		return fmt.Errorf("board: restore: %w: got %d values, want %d",
			ErrSnapshotSize, len(values), b.rows*b.cols)
	}

	b.fresh = false
	b.clear()

	for i, v := range values {
		if !isPowerOfTwo(v) || v > math.MaxInt32 {
			continue
		}
		b.createCell(i/b.cols, i%b.cols, v)
	}

	return nil
}
