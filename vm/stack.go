package vm

// ---------------------------------------------------------------------------
// Operand stack
// ---------------------------------------------------------------------------

// Stack is the interpreter's operand stack of signed 32-bit cells.
// Popping an empty stack is not an error: it yields 0 and leaves the stack
// empty. That contract is part of the instruction semantics, so callers must
// not treat the empty case as a failure.
type Stack struct {
	cells []int32
}

// Push appends a value to the top of the stack.
func (s *Stack) Push(v int32) {
	s.cells = append(s.cells, v)
}

// Pop removes and returns the top value. On an empty stack it returns 0 and
// reports false.
func (s *Stack) Pop() (int32, bool) {
	n := len(s.cells)
	if n == 0 {
		return 0, false
	}
	v := s.cells[n-1]
	s.cells = s.cells[:n-1]
	return v, true
}

// Peek returns the top value without removing it. On an empty stack it
// returns 0 and reports false.
func (s *Stack) Peek() (int32, bool) {
	n := len(s.cells)
	if n == 0 {
		return 0, false
	}
	return s.cells[n-1], true
}

// Clear empties the stack. Used by interpreter reset.
func (s *Stack) Clear() {
	s.cells = s.cells[:0]
}

// Depth returns the number of values on the stack.
func (s *Stack) Depth() int {
	return len(s.cells)
}

// Values returns a bottom-to-top copy of the stack contents.
func (s *Stack) Values() []int32 {
	return append([]int32(nil), s.cells...)
}
