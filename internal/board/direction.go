package board

import (
	"fmt"
	"strings"
)

// Direction represents a move direction.
// The zero value is not a valid direction.
type Direction uint8

const (
	Left Direction = iota + 1
	Up
	Right
	Down
)

// Directions lists all valid directions in a stable order.
var Directions = [...]Direction{Left, Up, Right, Down}

// Axis classifies a direction as horizontal or vertical.
type Axis uint8

const (
	Horizontal Axis = iota + 1 // Left, Right: tiles travel along a row
	Vertical                   // Up, Down: tiles travel along a column
)

// Valid reports whether d is one of the four defined directions.
func (d Direction) Valid() bool {
	return d >= Left && d <= Down
}

// Axis returns the axis tiles travel along for this direction.
func (d Direction) Axis() Axis {
	switch d {
	case Left, Right:
		return Horizontal
	case Up, Down:
		return Vertical
	default:
		return 0
	}
}

// Step returns the index delta of one cell of travel.
// Left and Up move toward index 0 (-1), Right and Down away from it (+1).
func (d Direction) Step() int {
	switch d {
	case Left, Up:
		return -1
	case Right, Down:
		return 1
	default:
		return 0
	}
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Up:
		return Down
	case Down:
		return Up
	default:
		return d
	}
}

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	default:
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
}

// ParseDirection converts a name ("left", "U", "down"...) into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "l":
		return Left, nil
	case "up", "u":
		return Up, nil
	case "right", "r":
		return Right, nil
	case "down", "d":
		return Down, nil
	}
	return 0, fmt.Errorf("board: %w: %q", ErrInvalidDirection, s)
}

func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}
