// Package board implements the 2048 board engine: the grid of tiles, the
// direction-generic slide/merge traversal, tile spawning and the listener
// protocol that reports every change to a presentation layer.
//
// A Board is not safe for concurrent use. Callers serialize Init, Spawn,
// Move and LoadState; listeners run synchronously inside those calls.
package board

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

const (
	// DefaultRows and DefaultCols describe the canonical 4x4 board.
	DefaultRows = 4
	DefaultCols = 4

	// BaseValue is the smallest tile value. Spawned tiles are BaseValue or 2*BaseValue.
	BaseValue = 2

	defaultSpawn4Chance = 0.5
)

var (
	// ErrInvalidDirection is returned by Move for a direction outside Left, Up, Right, Down.
	ErrInvalidDirection = errors.New("invalid direction")

	// ErrInvalidSize is returned by New for non-positive dimensions.
	ErrInvalidSize = errors.New("invalid board size")

	// ErrSnapshotSize is returned by Restore when the value count does not match the board.
	ErrSnapshotSize = errors.New("snapshot size mismatch")
)

// Board is a rows x cols grid of tiles. Each cell is 0 (empty) or a power of two >= 2.
type Board struct {
	rows     int
	cols     int
	cells    [][]int
	occupied int
	fresh    bool // Constructed and never initialized or restored

	rng          *rand.Rand
	spawn4Chance float64

	listeners   []Listener
	listenerSet map[Listener]struct{}
}

// Option configures a Board at construction.
type Option func(*Board)

// WithRand makes the board draw spawn positions and values from rng.
func WithRand(rng *rand.Rand) Option {
	return func(b *Board) {
		if rng != nil {
			b.rng = rng
		}
	}
}

// WithSeed seeds a board-owned random generator for reproducible spawns.
func WithSeed(seed int64) Option {
	return func(b *Board) {
		b.rng = rand.New(rand.NewSource(seed))
	}
}

// WithSpawn4Chance sets the probability (0..1) of spawning a 4 instead of a 2.
func WithSpawn4Chance(p float64) Option {
	return func(b *Board) {
		b.SetSpawn4Chance(p)
	}
}

// SetSpawn4Chance changes the probability (0..1) of spawning a 4.
// Values outside the range are ignored.
func (b *Board) SetSpawn4Chance(p float64) {
	if p >= 0 && p <= 1 {
		b.spawn4Chance = p
	}
}

// Spawn4Chance returns the probability of spawning a 4.
func (b *Board) Spawn4Chance() float64 {
	return b.spawn4Chance
}

// New creates an empty board.
func New(rows, cols int, opts ...Option) (*Board, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("board: %w: %dx%d", ErrInvalidSize, rows, cols)
	}

	b := &Board{
		rows:         rows,
		cols:         cols,
		fresh:        true,
		spawn4Chance: defaultSpawn4Chance,
		listenerSet:  make(map[Listener]struct{}),
	}
	b.cells = make([][]int, rows)
	for r := range b.cells {
		b.cells[r] = make([]int, cols)
	}

	for _, opt := range opts {
		opt(b)
	}
	if b.rng == nil {
		b.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return b, nil
}

// Init prepares the board for a new game: it clears every tile (unless the
// board is still fresh) and spawns two tiles.
func (b *Board) Init() {
	if b.fresh {
		b.fresh = false
	} else {
		b.clear()
	}

	b.Spawn()
	b.Spawn()
}

// clear empties every cell, firing Removed for each occupied one.
func (b *Board) clear() {
	for r := range b.rows {
		for c := range b.cols {
			b.removeCell(r, c)
		}
	}
	b.occupied = 0
}

// Spawn places a 2 or a 4 on a uniformly chosen empty cell.
// Returns false if the board is full.
func (b *Board) Spawn() bool {
	empty := b.rows*b.cols - b.occupied
	if empty == 0 {
		return false
	}

	// Walk to the k-th empty cell in row-major order
	k := b.rng.Intn(empty)
	for r := range b.rows {
		for c := range b.cols {
			if b.cells[r][c] != 0 {
				continue
			}
			if k == 0 {
				value := BaseValue
				if b.rng.Float64() < b.spawn4Chance {
					value = BaseValue * 2
				}
				b.createCell(r, c, value)
				return true
			}
			k--
		}
	}

	return false
}

// createCell puts value at (r, c) and fires Created.
func (b *Board) createCell(r, c, value int) {
	b.removeCell(r, c)
	b.cells[r][c] = value
	b.occupied++
	b.notifyCreated(Cell{Row: r, Col: c})
}

// removeCell empties (r, c), firing Removed if it was occupied.
func (b *Board) removeCell(r, c int) {
	if b.cells[r][c] == 0 {
		return
	}
	b.cells[r][c] = 0
	b.occupied--
	b.notifyRemoved(Cell{Row: r, Col: c})
}

// CanMove reports whether any cell has an orthogonal neighbour that is
// empty or holds the same value.
func (b *Board) CanMove() bool {
	for r := range b.rows {
		for c := range b.cols {
			v := b.cells[r][c]
			if r > 0 && (b.cells[r-1][c] == 0 || b.cells[r-1][c] == v) {
				return true
			}
			if r < b.rows-1 && (b.cells[r+1][c] == 0 || b.cells[r+1][c] == v) {
				return true
			}
			if c > 0 && (b.cells[r][c-1] == 0 || b.cells[r][c-1] == v) {
				return true
			}
			if c < b.cols-1 && (b.cells[r][c+1] == 0 || b.cells[r][c+1] == v) {
				return true
			}
		}
	}
	return false
}

// IsEmpty reports whether the board holds no tiles.
func (b *Board) IsEmpty() bool {
	return b.occupied == 0
}

// Full reports whether every cell holds a tile.
func (b *Board) Full() bool {
	return b.occupied == b.rows*b.cols
}

// Occupied returns the number of tiles on the board.
func (b *Board) Occupied() int {
	return b.occupied
}

// Number returns the value at (row, col), 0 for an empty cell.
func (b *Board) Number(row, col int) int {
	return b.cells[row][col]
}

// Rows returns the board height.
func (b *Board) Rows() int {
	return b.rows
}

// Cols returns the board width.
func (b *Board) Cols() int {
	return b.cols
}

// MaxTile returns the largest tile value, 0 for an empty board.
func (b *Board) MaxTile() int {
	maxVal := 0
	for _, row := range b.cells {
		for _, v := range row {
			maxVal = max(maxVal, v)
		}
	}
	return maxVal
}

// Sum returns the total of all tile values.
func (b *Board) Sum() int {
	total := 0
	for _, row := range b.cells {
		for _, v := range row {
			total += v
		}
	}
	return total
}

// Cells returns a copy of the grid, indexed [row][col].
func (b *Board) Cells() [][]int {
	out := make([][]int, b.rows)
	for r, row := range b.cells {
		out[r] = append([]int(nil), row...)
	}
	return out
}

// isPowerOfTwo reports whether v is 2^k for some k >= 1.
func isPowerOfTwo(v int) bool {
	return v >= BaseValue && v&(v-1) == 0
}
