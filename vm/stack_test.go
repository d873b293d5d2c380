package vm

import "testing"

func TestStackPopEmptyYieldsZero(t *testing.T) {
	var s Stack
	v, ok := s.Pop()
	if ok {
		t.Errorf("Pop on empty stack reported ok")
	}
	if v != 0 {
		t.Errorf("Pop on empty stack = %d, want 0", v)
	}
}

func TestStackLIFO(t *testing.T) {
	var s Stack
	s.Push(1)
	s.Push(2)
	s.Push(3)

	for _, want := range []int32{3, 2, 1} {
		v, ok := s.Pop()
		if !ok {
			t.Fatalf("Pop reported empty with values remaining")
		}
		if v != want {
			t.Errorf("Pop = %d, want %d", v, want)
		}
	}
	if s.Depth() != 0 {
		t.Errorf("Depth after draining = %d, want 0", s.Depth())
	}
}

func TestStackPeek(t *testing.T) {
	var s Stack
	if _, ok := s.Peek(); ok {
		t.Errorf("Peek on empty stack reported ok")
	}

	s.Push(7)
	v, ok := s.Peek()
	if !ok || v != 7 {
		t.Errorf("Peek = (%d, %v), want (7, true)", v, ok)
	}
	if s.Depth() != 1 {
		t.Errorf("Peek consumed a value: depth = %d, want 1", s.Depth())
	}
}

func TestStackValuesCopy(t *testing.T) {
	var s Stack
	s.Push(1)
	s.Push(2)

	vals := s.Values()
	if len(vals) != 2 || vals[0] != 1 || vals[1] != 2 {
		t.Fatalf("Values() = %v, want [1 2] bottom to top", vals)
	}

	vals[0] = 99
	if v, _ := s.Pop(); v != 2 {
		t.Errorf("mutating Values() result changed the stack")
	}
}

func TestStackClear(t *testing.T) {
	var s Stack
	s.Push(4)
	s.Push(5)
	s.Clear()
	if s.Depth() != 0 {
		t.Errorf("Depth after Clear = %d, want 0", s.Depth())
	}
	if _, ok := s.Pop(); ok {
		t.Errorf("Pop after Clear reported ok")
	}
}
