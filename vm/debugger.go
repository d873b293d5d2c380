package vm

import (
	"context"
	"fmt"
	"sort"
)

// ---------------------------------------------------------------------------
// Debugger: breakpoint-driven stepped execution
// ---------------------------------------------------------------------------

// State is the debugger's execution state.
type State uint8

const (
	// StateStopped is the initial state: nothing executed yet.
	StateStopped State = iota
	// StateRunning is held for the duration of a run burst.
	StateRunning
	// StatePaused follows a completed step, a breakpoint hit, or a
	// cancelled run burst.
	StatePaused
	// StateTerminated follows execution of @. Terminal: only Reset leaves.
	StateTerminated
	// StateErrored follows a runtime error. Stepping again retries the
	// faulting instruction, which matters for exhausted input.
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateTerminated:
		return "terminated"
	case StateErrored:
		return "errored"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Debugger wraps an Interpreter with a breakpoint set and the
// stopped/running/paused/terminated/errored state machine. It is the sole
// driver of interpreter suspension: execution only ever pauses between
// debugger commands.
type Debugger struct {
	interp      *Interpreter
	breakpoints map[Position]bool
	state       State
	err         error
}

// NewDebugger creates a debugger owning the given interpreter, in the
// stopped state with no breakpoints.
func NewDebugger(interp *Interpreter) *Debugger {
	return &Debugger{
		interp:      interp,
		breakpoints: make(map[Position]bool),
		state:       StateStopped,
	}
}

// Interpreter returns the wrapped interpreter, for queries.
func (d *Debugger) Interpreter() *Interpreter {
	return d.interp
}

// State returns the current debugger state.
func (d *Debugger) State() State {
	return d.state
}

// Err returns the runtime error that put the debugger in the errored
// state, or nil.
func (d *Debugger) Err() error {
	return d.err
}

// ---------------------------------------------------------------------------
// Breakpoints
// ---------------------------------------------------------------------------

// AddBreakpoint inserts a coordinate into the breakpoint set. Legal from
// any state. Coordinates wrap like every other grid access, so a
// breakpoint set beyond the extents still lands on a cell.
func (d *Debugger) AddBreakpoint(p Position) {
	d.breakpoints[d.interp.Space().Wrap(p)] = true
}

// HasBreakpoint reports whether a coordinate is in the breakpoint set.
func (d *Debugger) HasBreakpoint(p Position) bool {
	return d.breakpoints[d.interp.Space().Wrap(p)]
}

// Breakpoints returns the breakpoint coordinates sorted row-major, for
// stable dumps.
func (d *Debugger) Breakpoints() []Position {
	out := make([]Position, 0, len(d.breakpoints))
	for p := range d.breakpoints {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// ---------------------------------------------------------------------------
// Execution commands
// ---------------------------------------------------------------------------

// Step executes exactly one interpreter step. A completed step pauses; @
// terminates; a runtime error moves to errored and is returned. Stepping a
// terminated machine re-reads the @ and stays terminated.
func (d *Debugger) Step() (State, error) {
	st, err := d.interp.Step()
	return d.settle(st, err), err
}

// Run steps repeatedly until the cursor arrives on a breakpoint (pausing
// before that cell dispatches), @ executes, a runtime error occurs, or ctx
// is cancelled. The context is checked before every dispatch, so a
// user-initiated pause takes effect within one instruction. Unless
// cancelled first, a burst executes at least one instruction before the
// breakpoint check, so run can resume off the breakpoint it paused on.
func (d *Debugger) Run(ctx context.Context) (State, error) {
	d.state = StateRunning
	first := true
	for {
		if err := ctx.Err(); err != nil {
			d.state = StatePaused
			return d.state, err
		}
		if !first && d.breakpoints[d.interp.Position()] {
			d.state = StatePaused
			return d.state, nil
		}
		first = false

		st, err := d.interp.Step()
		if err != nil || st == StatusTerminated {
			return d.settle(st, err), err
		}
	}
}

// Feed appends bytes to the interpreter's input buffer. Legal from any
// non-terminal state.
func (d *Debugger) Feed(data []byte) error {
	if d.state == StateTerminated {
		return fmt.Errorf("vm: cannot feed input to a terminated program")
	}
	d.interp.Input().Feed(data)
	return nil
}

// Reset returns the machine to the stopped state: stack cleared, quote
// mode off, cursor back at the origin. Self-modifications to the program
// space persist; reload the program to undo those. Breakpoints survive.
func (d *Debugger) Reset() {
	d.interp.Reset()
	d.state = StateStopped
	d.err = nil
}

// settle maps a step result onto the state machine. A successful step
// clears any stored error, so a retried instruction that now succeeds
// leaves the errored state cleanly behind.
func (d *Debugger) settle(st Status, err error) State {
	switch {
	case err != nil:
		d.state = StateErrored
		d.err = err
	case st == StatusTerminated:
		d.state = StateTerminated
		d.err = nil
	default:
		d.state = StatePaused
		d.err = nil
	}
	return d.state
}
