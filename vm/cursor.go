package vm

import "fmt"

// ---------------------------------------------------------------------------
// Positions and directions
// ---------------------------------------------------------------------------

// Position is a 2-D coordinate in the program space. X is the column,
// indexed left to right; Y is the row, indexed top to bottom.
type Position struct {
	X int
	Y int
}

// Origin is the top-left corner of the program space.
var Origin = Position{X: 0, Y: 0}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Direction is one of the four cursor movement directions.
type Direction uint8

const (
	Up    Direction = iota // negative y
	Down                   // positive y
	Left                   // negative x
	Right                  // positive x
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
}

// Cursor is the interpreter's program counter: a position plus the direction
// the next advance will take.
type Cursor struct {
	Pos Position
	Dir Direction
}

// NewCursor returns a cursor at the origin facing right, the initial state
// of every program.
func NewCursor() Cursor {
	return Cursor{Pos: Origin, Dir: Right}
}
