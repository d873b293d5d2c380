// Package trace records interpreter execution as a replayable timeline.
// A Timeline plugs into the interpreter as a vm.Recorder and accumulates
// committed steps with their state-change events; a Session bundles a
// timeline with the program text into a self-contained artifact that can
// be written to disk as CBOR and inspected later.
package trace

import "bft/vm"

// EventKind identifies the kind of state change in an Event.
type EventKind uint8

const (
	EventReplace    EventKind = 1
	EventPush       EventKind = 2
	EventPop        EventKind = 3
	EventPopBottom  EventKind = 4
	EventEnterQuote EventKind = 5
	EventExitQuote  EventKind = 6
)

// Event is one recorded state change. Which fields are populated depends
// on the kind: pushes and pops carry Value, cell replacements carry the
// coordinates and both bytes, the rest are bare markers.
type Event struct {
	Kind  EventKind `cbor:"1,keyasint"`
	Value int32     `cbor:"2,keyasint,omitempty"`
	X     int       `cbor:"3,keyasint,omitempty"`
	Y     int       `cbor:"4,keyasint,omitempty"`
	Old   byte      `cbor:"5,keyasint,omitempty"`
	New   byte      `cbor:"6,keyasint,omitempty"`
}

// Step is one committed interpreter step. Events is the number of entries
// the step contributed to the session's flat event list; a replayer walks
// steps and events in lockstep using these counts.
type Step struct {
	X           int  `cbor:"1,keyasint"`
	Y           int  `cbor:"2,keyasint"`
	Instruction byte `cbor:"3,keyasint"`
	Events      int  `cbor:"4,keyasint"`
}

// Session is a self-contained recording: the program text that was loaded
// plus everything the interpreter did to it.
type Session struct {
	Program string  `cbor:"1,keyasint"`
	Steps   []Step  `cbor:"2,keyasint,omitempty"`
	Events  []Event `cbor:"3,keyasint,omitempty"`
}

// StepEvents returns the event slice belonging to step i.
func (s *Session) StepEvents(i int) []Event {
	offset := 0
	for _, st := range s.Steps[:i] {
		offset += st.Events
	}
	return s.Events[offset : offset+s.Steps[i].Events]
}

// Timeline accumulates committed steps and their events. It implements
// vm.Recorder; a rolled-back step leaves no residue because its pending
// events are discarded with it.
type Timeline struct {
	steps   []Step
	events  []Event
	pending []Event
	current Step
}

var _ vm.Recorder = (*Timeline)(nil)

// NewTimeline returns an empty timeline.
func NewTimeline() *Timeline {
	return &Timeline{}
}

func (t *Timeline) StartStep(at vm.Position, instruction byte) {
	t.current = Step{X: at.X, Y: at.Y, Instruction: instruction}
	t.pending = t.pending[:0]
}

func (t *Timeline) CommitStep() {
	t.current.Events = len(t.pending)
	t.steps = append(t.steps, t.current)
	t.events = append(t.events, t.pending...)
	t.pending = t.pending[:0]
}

func (t *Timeline) RollbackStep() {
	t.pending = t.pending[:0]
}

func (t *Timeline) Replace(at vm.Position, old, new byte) {
	t.pending = append(t.pending, Event{Kind: EventReplace, X: at.X, Y: at.Y, Old: old, New: new})
}

func (t *Timeline) Push(v int32) {
	t.pending = append(t.pending, Event{Kind: EventPush, Value: v})
}

func (t *Timeline) Pop(v int32) {
	t.pending = append(t.pending, Event{Kind: EventPop, Value: v})
}

func (t *Timeline) PopBottom() {
	t.pending = append(t.pending, Event{Kind: EventPopBottom})
}

func (t *Timeline) EnterQuote() {
	t.pending = append(t.pending, Event{Kind: EventEnterQuote})
}

func (t *Timeline) ExitQuote() {
	t.pending = append(t.pending, Event{Kind: EventExitQuote})
}

// Len returns the number of committed steps.
func (t *Timeline) Len() int {
	return len(t.steps)
}

// Steps returns a copy of the committed steps.
func (t *Timeline) Steps() []Step {
	return append([]Step(nil), t.steps...)
}

// Events returns a copy of the committed events.
func (t *Timeline) Events() []Event {
	return append([]Event(nil), t.events...)
}

// Session snapshots the timeline into a serializable session carrying the
// program text it was recorded against.
func (t *Timeline) Session(program string) *Session {
	return &Session{
		Program: program,
		Steps:   t.Steps(),
		Events:  t.Events(),
	}
}
