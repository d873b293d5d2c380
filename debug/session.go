// Package debug implements the interactive line-oriented debugger session:
// a prompt, single-letter commands, and a YAML state dump, driving a
// vm.Debugger over any reader and writer pair.
package debug

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/tliron/commonlog"
	"gopkg.in/yaml.v3"

	"bft/vm"

	_ "github.com/tliron/commonlog/simple"
)

const breakpointUsage = "breakpoint (b) takes 2 arguments: b <x> <y>"

// Session drives a debugger through a line-oriented command protocol.
// Program output is captured between commands and replayed after each step
// or run, so it never interleaves with the protocol itself.
type Session struct {
	debugger *vm.Debugger
	in       io.Reader
	out      io.Writer
	prog     bytes.Buffer
	log      commonlog.Logger
}

// NewSession wires a session around dbg. Protocol input and output use in
// and out; the interpreter's program output is redirected into the
// session's replay buffer.
func NewSession(dbg *vm.Debugger, in io.Reader, out io.Writer) *Session {
	s := &Session{
		debugger: dbg,
		in:       in,
		out:      out,
		log:      commonlog.GetLogger("bft.debug"),
	}
	dbg.Interpreter().SetOutput(&s.prog)
	return s
}

// Run reads and dispatches commands until quit or end of input.
func (s *Session) Run() error {
	s.log.Debug("session started")
	scanner := bufio.NewScanner(s.in)
	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("debug: read command: %w", err)
			}
			s.log.Debug("session ended at end of input")
			return nil
		}
		if s.dispatch(scanner.Text()) {
			s.log.Debug("session quit")
			return nil
		}
	}
}

// dispatch handles one command line, reporting whether the session should
// end. The i command is matched against the raw line so the fed bytes keep
// their whitespace; everything else is trimmed first.
func (s *Session) dispatch(line string) (quit bool) {
	if strings.HasPrefix(line, "i") {
		s.feed(line[1:])
		return false
	}

	cmd := strings.TrimSpace(line)
	switch {
	case cmd == "":
		// Empty lines are ignored.
	case cmd == "s":
		s.step()
	case cmd == "r":
		s.run()
	case cmd == "p":
		fmt.Fprintln(s.out, s.debugger.Interpreter().Position())
	case cmd == "l":
		s.line()
	case cmd == "d":
		s.dump()
	case cmd == "q":
		return true
	case strings.HasPrefix(cmd, "b"):
		s.breakpoint(cmd)
	default:
		s.log.Debugf("ignoring unknown command %q", cmd)
	}
	return false
}

func (s *Session) step() {
	st, err := s.debugger.Step()
	s.flushProgram()
	switch {
	case err != nil:
		fmt.Fprintf(s.out, "error: %v\n", err)
	case st == vm.StateTerminated:
		fmt.Fprintln(s.out, "terminated")
	}
}

// run executes a burst with SIGINT mapped to a pause, re-armed per burst
// so a later interrupt still kills the process at the prompt.
func (s *Session) run() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	st, err := s.debugger.Run(ctx)
	s.flushProgram()
	switch {
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(s.out, "paused at %s\n", s.debugger.Interpreter().Position())
	case err != nil:
		fmt.Fprintf(s.out, "error: %v\n", err)
	case st == vm.StateTerminated:
		fmt.Fprintln(s.out, "terminated")
	case st == vm.StatePaused:
		fmt.Fprintf(s.out, "breakpoint at %s\n", s.debugger.Interpreter().Position())
	}
}

func (s *Session) feed(data string) {
	if err := s.debugger.Feed([]byte(data)); err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
	}
}

func (s *Session) breakpoint(cmd string) {
	fields := strings.Fields(cmd)
	if len(fields) != 3 || fields[0] != "b" {
		fmt.Fprintln(s.out, breakpointUsage)
		return
	}
	x, errX := strconv.Atoi(fields[1])
	y, errY := strconv.Atoi(fields[2])
	if errX != nil || errY != nil {
		fmt.Fprintln(s.out, breakpointUsage)
		return
	}
	s.debugger.AddBreakpoint(vm.Position{X: x, Y: y})
}

func (s *Session) line() {
	interp := s.debugger.Interpreter()
	fmt.Fprintf(s.out, "%q\n", interp.Space().Line(interp.Position().Y))
}

// flushProgram replays program output produced since the last command.
func (s *Session) flushProgram() {
	if s.prog.Len() == 0 {
		return
	}
	fmt.Fprintln(s.out, s.prog.String())
	s.prog.Reset()
}

// stateDump is the d command's serialized view of the machine.
type stateDump struct {
	State        string   `yaml:"state"`
	Position     string   `yaml:"position"`
	Direction    string   `yaml:"direction"`
	QuoteMode    bool     `yaml:"quote_mode"`
	Stack        []int32  `yaml:"stack"`
	GridWidth    int      `yaml:"grid_width"`
	GridHeight   int      `yaml:"grid_height"`
	PendingInput int      `yaml:"pending_input"`
	Breakpoints  []string `yaml:"breakpoints"`
	Error        string   `yaml:"error,omitempty"`
}

func (s *Session) dump() {
	interp := s.debugger.Interpreter()
	d := stateDump{
		State:        s.debugger.State().String(),
		Position:     interp.Position().String(),
		Direction:    interp.Direction().String(),
		QuoteMode:    interp.QuoteMode(),
		Stack:        interp.StackValues(),
		GridWidth:    interp.Space().Width(),
		GridHeight:   interp.Space().Height(),
		PendingInput: interp.Input().Len(),
	}
	for _, p := range s.debugger.Breakpoints() {
		d.Breakpoints = append(d.Breakpoints, p.String())
	}
	if err := s.debugger.Err(); err != nil {
		d.Error = err.Error()
	}

	text, err := yaml.Marshal(&d)
	if err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
		return
	}
	s.out.Write(text)
}
