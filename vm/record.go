package vm

import (
	"github.com/tliron/commonlog"
)

// ---------------------------------------------------------------------------
// Execution recording
// ---------------------------------------------------------------------------

// Recorder observes interpreter execution. The interpreter announces each
// step before dispatch, then either commits it (the step completed, or
// faulted after mutating state) or rolls it back (nothing happened: an
// illegal instruction, or input that was not there). Mutation events arrive
// between the step boundaries.
type Recorder interface {
	StartStep(at Position, instruction byte)
	CommitStep()
	RollbackStep()

	Replace(at Position, old, new byte)
	Push(v int32)
	Pop(v int32)
	PopBottom()
	EnterQuote()
	ExitQuote()
}

// NopRecorder discards all events. The interpreter's default.
type NopRecorder struct{}

func (NopRecorder) StartStep(Position, byte)     {}
func (NopRecorder) CommitStep()                  {}
func (NopRecorder) RollbackStep()                {}
func (NopRecorder) Replace(Position, byte, byte) {}
func (NopRecorder) Push(int32)                   {}
func (NopRecorder) Pop(int32)                    {}
func (NopRecorder) PopBottom()                   {}
func (NopRecorder) EnterQuote()                  {}
func (NopRecorder) ExitQuote()                   {}

// LogRecorder writes every event to a structured log at debug level.
type LogRecorder struct {
	log commonlog.Logger
}

// NewLogRecorder returns a recorder logging under the given logger name.
func NewLogRecorder(name string) *LogRecorder {
	return &LogRecorder{log: commonlog.GetLogger(name)}
}

func (r *LogRecorder) StartStep(at Position, instruction byte) {
	r.log.Debugf("step at %s: %s", at, opName(instruction))
}

func (r *LogRecorder) CommitStep() {
	r.log.Debugf("commit step")
}

func (r *LogRecorder) RollbackStep() {
	r.log.Debugf("rollback step")
}

func (r *LogRecorder) Replace(at Position, old, new byte) {
	r.log.Debugf("replace %s with %s at %s", opName(old), opName(new), at)
}

func (r *LogRecorder) Push(v int32) {
	r.log.Debugf("push %d", v)
}

func (r *LogRecorder) Pop(v int32) {
	r.log.Debugf("pop %d", v)
}

func (r *LogRecorder) PopBottom() {
	r.log.Debugf("pop on empty stack")
}

func (r *LogRecorder) EnterQuote() {
	r.log.Debugf("enter quote mode")
}

func (r *LogRecorder) ExitQuote() {
	r.log.Debugf("exit quote mode")
}

// MultiRecorder fans every event out to each recorder in order.
type MultiRecorder []Recorder

func (m MultiRecorder) StartStep(at Position, instruction byte) {
	for _, r := range m {
		r.StartStep(at, instruction)
	}
}

func (m MultiRecorder) CommitStep() {
	for _, r := range m {
		r.CommitStep()
	}
}

func (m MultiRecorder) RollbackStep() {
	for _, r := range m {
		r.RollbackStep()
	}
}

func (m MultiRecorder) Replace(at Position, old, new byte) {
	for _, r := range m {
		r.Replace(at, old, new)
	}
}

func (m MultiRecorder) Push(v int32) {
	for _, r := range m {
		r.Push(v)
	}
}

func (m MultiRecorder) Pop(v int32) {
	for _, r := range m {
		r.Pop(v)
	}
}

func (m MultiRecorder) PopBottom() {
	for _, r := range m {
		r.PopBottom()
	}
}

func (m MultiRecorder) EnterQuote() {
	for _, r := range m {
		r.EnterQuote()
	}
}

func (m MultiRecorder) ExitQuote() {
	for _, r := range m {
		r.ExitQuote()
	}
}
