package vm

import "bytes"

// ---------------------------------------------------------------------------
// Program space
// ---------------------------------------------------------------------------

// Space is the toroidal grid of byte-valued cells a program executes in.
// Extents are fixed when the program is loaded: width is the longest source
// line, height the line count, and shorter lines are padded with spaces.
// Every access wraps its coordinates, so there is no out-of-range failure
// mode; p can rewrite any cell but the grid never grows.
type Space struct {
	rows   [][]byte
	width  int
	height int
}

// Load builds a Space from raw program text. Rows split on '\n'; a trailing
// newline does not add an empty final row.
func Load(source []byte) *Space {
	lines := bytes.Split(source, []byte("\n"))
	if n := len(lines); n > 0 && len(lines[n-1]) == 0 {
		lines = lines[:n-1]
	}

	width := 0
	for _, line := range lines {
		if len(line) > width {
			width = len(line)
		}
	}

	rows := make([][]byte, len(lines))
	for i, line := range lines {
		row := make([]byte, width)
		copy(row, line)
		for j := len(line); j < width; j++ {
			row[j] = ' '
		}
		rows[i] = row
	}

	return &Space{rows: rows, width: width, height: len(rows)}
}

// LoadString is Load for string sources.
func LoadString(source string) *Space {
	return Load([]byte(source))
}

// Width returns the horizontal extent of the grid.
func (s *Space) Width() int {
	return s.width
}

// Height returns the vertical extent of the grid.
func (s *Space) Height() int {
	return s.height
}

// Get returns the cell at a position, coordinates reduced modulo the
// extents. A zero-extent space reads as all spaces.
func (s *Space) Get(p Position) byte {
	if s.width == 0 || s.height == 0 {
		return ' '
	}
	return s.rows[mod(p.Y, s.height)][mod(p.X, s.width)]
}

// Set writes the cell at a position, coordinates reduced modulo the
// extents. Writes into a zero-extent space are dropped.
func (s *Space) Set(p Position, v byte) {
	if s.width == 0 || s.height == 0 {
		return
	}
	s.rows[mod(p.Y, s.height)][mod(p.X, s.width)] = v
}

// Wrap reduces a position into the grid's coordinate range.
func (s *Space) Wrap(p Position) Position {
	if s.width == 0 || s.height == 0 {
		return p
	}
	return Position{X: mod(p.X, s.width), Y: mod(p.Y, s.height)}
}

// Move returns the position one cell away in the given direction, wrapping
// at the edges: right from column width-1 lands on column 0, up from row 0
// lands on row height-1.
func (s *Space) Move(p Position, d Direction) Position {
	switch d {
	case Up:
		p.Y--
	case Down:
		p.Y++
	case Left:
		p.X--
	case Right:
		p.X++
	}
	return s.Wrap(p)
}

// Line returns the live bytes of the row containing the given y coordinate.
// Mutations made by p are visible. Returns nil for a zero-extent space.
func (s *Space) Line(y int) []byte {
	if s.height == 0 {
		return nil
	}
	return s.rows[mod(y, s.height)]
}

// Clone returns an independent copy of the grid, for analysis snapshots.
func (s *Space) Clone() *Space {
	rows := make([][]byte, len(s.rows))
	for i, row := range s.rows {
		rows[i] = append([]byte(nil), row...)
	}
	return &Space{rows: rows, width: s.width, height: s.height}
}

// mod is floored modulo: the result is always in [0, n) for n > 0, so
// negative coordinates wrap toward the opposite edge.
func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
