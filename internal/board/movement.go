package board

import "fmt"

// Cell identifies a board position.
type Cell struct {
	Row int
	Col int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Movement describes the relocation of one tile during a move.
// It is emitted with Moved and Joined events and never stored by the board.
type Movement struct {
	Source    Cell      // Cell the tile left
	Distance  int       // Cells travelled, always positive
	Direction Direction // Direction of travel
}

// NewMovement creates a movement record.
func NewMovement(source Cell, distance int, dir Direction) Movement {
	return Movement{
		Source:    source,
		Distance:  distance,
		Direction: dir,
	}
}

// Destination returns the cell the tile arrived at.
func (m Movement) Destination() Cell {
	step := m.Direction.Step() * m.Distance
	switch m.Direction.Axis() {
	case Horizontal:
		return Cell{Row: m.Source.Row, Col: m.Source.Col + step}
	case Vertical:
		return Cell{Row: m.Source.Row + step, Col: m.Source.Col}
	default:
		return m.Source
	}
}

func (m Movement) String() string {
	return fmt.Sprintf("%s -%s %d-> %s", m.Source, m.Direction, m.Distance, m.Destination())
}
