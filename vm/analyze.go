package vm

// ---------------------------------------------------------------------------
// Static path analysis
// ---------------------------------------------------------------------------

// CellState records, as a bitmask, every (direction, mode) combination under
// which analysis reached a cell. The low four bits are quote-mode arrivals
// and the high four normal-mode arrivals, one bit per direction, so the
// array of cell states doubles as the search's visited set.
type CellState uint8

const (
	quotedBits CellState = 0x0f
	normalBits CellState = 0xf0
)

// stateBit is the visit bit for one (direction, mode) pair.
func stateBit(d Direction, quoted bool) CellState {
	bit := CellState(1) << d
	if !quoted {
		bit <<= 4
	}
	return bit
}

// Visited reports whether the cell was reached moving in direction d with
// the given quote flag.
func (c CellState) Visited(d Direction, quoted bool) bool {
	return c&stateBit(d, quoted) != 0
}

// Modes summarizes which interpreter modes reached a cell.
type Modes uint8

const (
	ModeNone   Modes = 0
	ModeQuoted Modes = 1 << 0
	ModeNormal Modes = 1 << 1
	ModeBoth         = ModeQuoted | ModeNormal
)

// Modes folds the bitmask down to which modes reached the cell.
func (c CellState) Modes() Modes {
	var m Modes
	if c&quotedBits != 0 {
		m |= ModeQuoted
	}
	if c&normalBits != 0 {
		m |= ModeNormal
	}
	return m
}

// Dirs summarizes the axes along which a cell was crossed, for renderers
// that draw path overlays.
type Dirs uint8

const (
	DirsNone       Dirs = 0
	DirsHorizontal Dirs = 1 << 0
	DirsVertical   Dirs = 1 << 1
	DirsBoth            = DirsHorizontal | DirsVertical
)

// Directions folds the bitmask down to the axes of travel through the cell.
func (c CellState) Directions() Dirs {
	bits := (c | c>>4) & quotedBits
	var d Dirs
	if bits&(1<<Left|1<<Right) != 0 {
		d |= DirsHorizontal
	}
	if bits&(1<<Up|1<<Down) != 0 {
		d |= DirsVertical
	}
	return d
}

// Classification is the analyzer's verdict for one cell.
type Classification uint8

const (
	// Unreached cells are never dispatched on any explored path.
	Unreached Classification = iota
	// Executed cells hold a recognized instruction reached in normal mode.
	Executed
	// QuotedData cells are read in quote mode and pushed as data.
	QuotedData
)

func (c Classification) String() string {
	switch c {
	case Unreached:
		return "unreached"
	case Executed:
		return "executed"
	case QuotedData:
		return "quoted"
	default:
		return "unknown"
	}
}

// Analysis is the immutable result of one path-analysis pass. It copies
// everything it needs out of the space it was given, so later mutations of
// the live grid do not bleed into an existing result.
type Analysis struct {
	width   int
	height  int
	states  []CellState
	classes []Classification
}

// pathState is one node of the searched control-state space.
type pathState struct {
	pos    Position
	dir    Direction
	quoted bool
}

// AnalyzePath explores every control state reachable from the initial
// cursor (origin, facing right, quote mode off) and classifies each cell.
// The analysis assumes the program does not self-modify: it reads the grid
// as given and is never re-run when a live interpreter executes p. Callers
// wanting post-modification paths analyze again, typically over a Clone
// taken while the interpreter is quiescent.
func AnalyzePath(space *Space) *Analysis {
	return AnalyzePathFrom(space, NewCursor())
}

// AnalyzePathFrom is AnalyzePath from an arbitrary start cursor, still in
// normal mode. The start position wraps like any other grid access.
func AnalyzePathFrom(space *Space, start Cursor) *Analysis {
	a := &Analysis{width: space.Width(), height: space.Height()}
	if a.width == 0 || a.height == 0 {
		return a
	}
	a.states = make([]CellState, a.width*a.height)

	// Plain breadth-first search with an explicit queue. Each state is
	// enqueued at most once, so the walk touches at most width*height*4*2
	// states no matter how the program loops.
	first := pathState{pos: space.Wrap(start.Pos), dir: start.Dir}
	queue := make([]pathState, 0, 64)
	a.mark(first)
	queue = append(queue, first)
	for len(queue) > 0 {
		st := queue[0]
		queue = queue[1:]
		for _, nx := range successors(space, st) {
			if a.mark(nx) {
				queue = append(queue, nx)
			}
		}
	}

	a.classify(space)
	return a
}

// mark sets the visit bit for a state, reporting whether it was unseen.
func (a *Analysis) mark(st pathState) bool {
	idx := st.pos.Y*a.width + st.pos.X
	bit := stateBit(st.dir, st.quoted)
	if a.states[idx]&bit != 0 {
		return false
	}
	a.states[idx] |= bit
	return true
}

// successors applies one instruction's control effect, stack-free: the
// branch instructions expand to every branch because the popped value is
// unknowable statically, and everything that only touches the stack
// continues straight. Advancing follows the interpreter exactly, including
// the bridge hop and the bounded space skip.
func successors(s *Space, st pathState) []pathState {
	op := s.Get(st.pos)

	if st.quoted {
		if op == '"' {
			// Quote mode ends here, so the advance skips spaces again.
			return []pathState{next(s, st.pos, st.dir)}
		}
		return []pathState{{pos: s.Move(st.pos, st.dir), dir: st.dir, quoted: true}}
	}

	switch op {
	case '@':
		return nil
	case '"':
		return []pathState{{pos: s.Move(st.pos, st.dir), dir: st.dir, quoted: true}}
	case '>':
		return []pathState{next(s, st.pos, Right)}
	case '<':
		return []pathState{next(s, st.pos, Left)}
	case '^':
		return []pathState{next(s, st.pos, Up)}
	case 'v':
		return []pathState{next(s, st.pos, Down)}
	case '?':
		return []pathState{
			next(s, st.pos, Right),
			next(s, st.pos, Left),
			next(s, st.pos, Up),
			next(s, st.pos, Down),
		}
	case '_':
		return []pathState{next(s, st.pos, Right), next(s, st.pos, Left)}
	case '|':
		return []pathState{next(s, st.pos, Down), next(s, st.pos, Up)}
	case '#':
		return []pathState{{pos: moveSkipping(s, s.Move(st.pos, st.dir), st.dir), dir: st.dir}}
	default:
		if op == ' ' || isInstruction(op) {
			return []pathState{next(s, st.pos, st.dir)}
		}
		// The interpreter halts on an unrecognized byte. Nothing follows.
		return nil
	}
}

// next is the post-instruction advance in normal mode.
func next(s *Space, p Position, d Direction) pathState {
	return pathState{pos: moveSkipping(s, p, d), dir: d}
}

// classify derives the per-cell verdict from the visit bits and the cell
// byte. Executed wins over quoted-data; spaces and unrecognized bytes are
// never executed, so a cell the search reached but the interpreter would
// refuse stays unreached.
func (a *Analysis) classify(s *Space) {
	a.classes = make([]Classification, len(a.states))
	for y := 0; y < a.height; y++ {
		for x := 0; x < a.width; x++ {
			i := y*a.width + x
			c := a.states[i]
			switch {
			case c&normalBits != 0 && isInstruction(s.Get(Position{X: x, Y: y})):
				a.classes[i] = Executed
			case c&quotedBits != 0:
				a.classes[i] = QuotedData
			}
		}
	}
}

// Width returns the horizontal extent of the analyzed grid.
func (a *Analysis) Width() int {
	return a.width
}

// Height returns the vertical extent of the analyzed grid.
func (a *Analysis) Height() int {
	return a.height
}

// StateAt returns the visit bitmask for a cell, coordinates wrapped the
// same way the space wraps them.
func (a *Analysis) StateAt(p Position) CellState {
	if a.width == 0 || a.height == 0 {
		return 0
	}
	return a.states[mod(p.Y, a.height)*a.width+mod(p.X, a.width)]
}

// ClassAt returns the classification for a cell, coordinates wrapped.
func (a *Analysis) ClassAt(p Position) Classification {
	if a.width == 0 || a.height == 0 {
		return Unreached
	}
	return a.classes[mod(p.Y, a.height)*a.width+mod(p.X, a.width)]
}

// Counts returns how many cells fell into each class.
func (a *Analysis) Counts() (executed, quoted, unreached int) {
	for _, c := range a.classes {
		switch c {
		case Executed:
			executed++
		case QuotedData:
			quoted++
		default:
			unreached++
		}
	}
	return executed, quoted, unreached
}
