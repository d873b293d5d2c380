package vm

import (
	"fmt"
	"io"
	"math/rand/v2"
)

// ---------------------------------------------------------------------------
// Interpreter
// ---------------------------------------------------------------------------

// Status is the result of executing one instruction.
type Status uint8

const (
	// StatusCompleted is the result of every normal instruction.
	StatusCompleted Status = iota
	// StatusTerminated is the result of executing the @ instruction. The
	// cursor stays on the @, so further steps keep returning it.
	StatusTerminated
)

func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
}

// Interpreter executes a Befunge-93 program one instruction at a time. It
// owns the program space, the operand stack, and the input buffer for the
// lifetime of the loaded program; nothing else may mutate them.
type Interpreter struct {
	space  *Space
	stack  Stack
	input  IOBuffer
	cursor Cursor
	quote  bool

	out io.Writer
	rng *rand.Rand
	rec Recorder
}

// NewInterpreter creates an interpreter for the given space with the cursor
// at the origin facing right. Output is discarded until SetOutput.
func NewInterpreter(space *Space) *Interpreter {
	return &Interpreter{
		space:  space,
		cursor: NewCursor(),
		out:    io.Discard,
		rec:    NopRecorder{},
	}
}

// SetOutput directs program output (the . and , instructions) to w.
func (i *Interpreter) SetOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	i.out = w
}

// SetRand injects the generator used by the ? instruction, making runs
// reproducible. A nil generator restores the default shared source.
func (i *Interpreter) SetRand(r *rand.Rand) {
	i.rng = r
}

// SetRecorder installs an execution observer. Nil restores the no-op
// recorder.
func (i *Interpreter) SetRecorder(r Recorder) {
	if r == nil {
		r = NopRecorder{}
	}
	i.rec = r
}

// Input returns the interpreter's input buffer, for feeding.
func (i *Interpreter) Input() *IOBuffer {
	return &i.input
}

// Space returns the live program space.
func (i *Interpreter) Space() *Space {
	return i.space
}

// Position returns the cursor's current position.
func (i *Interpreter) Position() Position {
	return i.cursor.Pos
}

// Direction returns the cursor's current direction.
func (i *Interpreter) Direction() Direction {
	return i.cursor.Dir
}

// QuoteMode reports whether the interpreter is inside a string literal.
func (i *Interpreter) QuoteMode() bool {
	return i.quote
}

// StackValues returns a bottom-to-top copy of the operand stack.
func (i *Interpreter) StackValues() []int32 {
	return i.stack.Values()
}

// StackDepth returns the operand stack depth.
func (i *Interpreter) StackDepth() int {
	return i.stack.Depth()
}

// Reset clears the stack, leaves quote mode, and puts the cursor back at
// the origin facing right. The program space keeps any self-modifications
// and the input buffer keeps its unread bytes.
func (i *Interpreter) Reset() {
	i.stack.Clear()
	i.quote = false
	i.cursor = NewCursor()
}

// ---------------------------------------------------------------------------
// Step protocol
// ---------------------------------------------------------------------------

// Step executes the instruction under the cursor, then advances: one cell
// in the current direction, then past any run of space cells when quote
// mode is off, bounded by max(width, height) skip iterations so an
// all-space line degrades to a perpetual no-op instead of an internal loop.
// The returned status is meaningful only when the error is nil. Runtime
// errors leave the cursor on the faulting cell.
func (i *Interpreter) Step() (Status, error) {
	op := i.space.Get(i.cursor.Pos)
	i.rec.StartStep(i.cursor.Pos, op)

	if i.quote {
		i.stepQuoted(op)
		i.rec.CommitStep()
		return StatusCompleted, nil
	}
	return i.stepUnquoted(op)
}

// stepQuoted pushes every byte as data; only " leaves quote mode.
func (i *Interpreter) stepQuoted(op byte) {
	if op == '"' {
		i.quote = false
		i.rec.ExitQuote()
	} else {
		i.push(int32(op))
	}
	i.advance()
}

func (i *Interpreter) stepUnquoted(op byte) (Status, error) {
	switch {
	case op >= '0' && op <= '9':
		i.push(int32(op - '0'))

	case op == '+' || op == '-' || op == '*' || op == '/' || op == '%':
		b := i.pop()
		a := i.pop()
		switch op {
		case '+':
			i.push(a + b)
		case '-':
			i.push(a - b)
		case '*':
			i.push(a * b)
		case '/', '%':
			if b == 0 {
				i.rec.CommitStep()
				return StatusCompleted, &ArithmeticError{Op: op, Pos: i.cursor.Pos}
			}
			if op == '/' {
				i.push(a / b)
			} else {
				i.push(a % b)
			}
		}

	case op == '!':
		if i.pop() == 0 {
			i.push(1)
		} else {
			i.push(0)
		}

	case op == '`':
		b := i.pop()
		a := i.pop()
		if a > b {
			i.push(1)
		} else {
			i.push(0)
		}

	case op == '>':
		i.cursor.Dir = Right
	case op == '<':
		i.cursor.Dir = Left
	case op == '^':
		i.cursor.Dir = Up
	case op == 'v':
		i.cursor.Dir = Down
	case op == '?':
		i.cursor.Dir = i.randomDirection()

	case op == '_':
		if i.pop() == 0 {
			i.cursor.Dir = Right
		} else {
			i.cursor.Dir = Left
		}

	case op == '|':
		if i.pop() == 0 {
			i.cursor.Dir = Down
		} else {
			i.cursor.Dir = Up
		}

	case op == '"':
		i.quote = true
		i.rec.EnterQuote()

	case op == ':':
		v := i.pop()
		i.push(v)
		i.push(v)

	case op == '\\':
		b := i.pop()
		a := i.pop()
		i.push(b)
		i.push(a)

	case op == '$':
		i.pop()

	case op == '.':
		fmt.Fprintf(i.out, "%d ", i.pop())

	case op == ',':
		i.out.Write([]byte{byte(i.pop())})

	case op == '#':
		// Bridge: one extra cell now, the normal advance follows below.
		i.cursor.Pos = i.space.Move(i.cursor.Pos, i.cursor.Dir)

	case op == 'p':
		y := i.pop()
		x := i.pop()
		v := i.pop()
		target := i.space.Wrap(Position{X: int(x), Y: int(y)})
		i.rec.Replace(target, i.space.Get(target), byte(v))
		i.space.Set(target, byte(v))

	case op == 'g':
		y := i.pop()
		x := i.pop()
		i.push(int32(i.space.Get(Position{X: int(x), Y: int(y)})))

	case op == '&':
		v, ok := i.input.ReadDecimal()
		if !ok {
			i.rec.RollbackStep()
			return StatusCompleted, &InputExhaustedError{Op: op, Pos: i.cursor.Pos}
		}
		i.push(v)

	case op == '~':
		v, ok := i.input.ReadByte()
		if !ok {
			i.rec.RollbackStep()
			return StatusCompleted, &InputExhaustedError{Op: op, Pos: i.cursor.Pos}
		}
		i.push(int32(v))

	case op == '@':
		i.rec.CommitStep()
		return StatusTerminated, nil

	case op == ' ':
		// No-op. Reachable as the start cell or after a bounded skip.

	default:
		i.rec.RollbackStep()
		return StatusCompleted, &IllegalInstructionError{Op: op, Pos: i.cursor.Pos}
	}

	i.rec.CommitStep()
	i.advance()
	return StatusCompleted, nil
}

func (i *Interpreter) advance() {
	if i.quote {
		i.cursor.Pos = i.space.Move(i.cursor.Pos, i.cursor.Dir)
		return
	}
	i.cursor.Pos = moveSkipping(i.space, i.cursor.Pos, i.cursor.Dir)
}

// moveSkipping advances one cell, then hops over space cells without
// executing them. The skip is bounded by max(width, height) iterations;
// when the bound runs out the position rests wherever it stands, which on
// an all-space line means the caller executes a space no-op and tries
// again.
func moveSkipping(s *Space, p Position, d Direction) Position {
	p = s.Move(p, d)
	bound := max(s.Width(), s.Height())
	for n := 0; n < bound && s.Get(p) == ' '; n++ {
		p = s.Move(p, d)
	}
	return p
}

func (i *Interpreter) push(v int32) {
	i.rec.Push(v)
	i.stack.Push(v)
}

func (i *Interpreter) pop() int32 {
	v, ok := i.stack.Pop()
	if !ok {
		i.rec.PopBottom()
		return 0
	}
	i.rec.Pop(v)
	return v
}

func (i *Interpreter) randomDirection() Direction {
	dirs := [4]Direction{Right, Left, Up, Down}
	if i.rng != nil {
		return dirs[i.rng.IntN(4)]
	}
	return dirs[rand.IntN(4)]
}

// isInstruction reports whether a byte is a recognized instruction outside
// quote mode. Space is a skip, not an instruction.
func isInstruction(b byte) bool {
	switch b {
	case '+', '-', '*', '/', '%', '!', '`', '>', '<', '^', 'v', '?',
		'_', '|', '"', ':', '\\', '$', '.', ',', '#', 'p', 'g', '&', '~', '@':
		return true
	}
	return b >= '0' && b <= '9'
}
