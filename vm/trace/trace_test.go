package trace

import (
	"reflect"
	"testing"

	"bft/vm"
)

// record runs source to termination with a fresh timeline attached.
func record(t *testing.T, source string) *Timeline {
	t.Helper()
	interp := vm.NewInterpreter(vm.LoadString(source))
	tl := NewTimeline()
	interp.SetRecorder(tl)
	for i := 0; i < 1000; i++ {
		st, err := interp.Step()
		if err != nil {
			t.Fatalf("step failed: %v", err)
		}
		if st == vm.StatusTerminated {
			return tl
		}
	}
	t.Fatalf("program %q did not terminate", source)
	return nil
}

func TestTimelineRecordsSteps(t *testing.T) {
	tl := record(t, "12+.@")
	if tl.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", tl.Len())
	}

	steps := tl.Steps()
	wantOps := []byte{'1', '2', '+', '.', '@'}
	wantEvents := []int{1, 1, 3, 1, 0}
	for i, st := range steps {
		if st.Instruction != wantOps[i] {
			t.Errorf("step %d instruction = %q, want %q", i, st.Instruction, wantOps[i])
		}
		if st.X != i || st.Y != 0 {
			t.Errorf("step %d at (%d, %d), want (%d, 0)", i, st.X, st.Y, i)
		}
		if st.Events != wantEvents[i] {
			t.Errorf("step %d events = %d, want %d", i, st.Events, wantEvents[i])
		}
	}
}

func TestTimelineStepEvents(t *testing.T) {
	tl := record(t, "12+.@")
	s := tl.Session("12+.@")

	got := s.StepEvents(2)
	want := []Event{
		{Kind: EventPop, Value: 2},
		{Kind: EventPop, Value: 1},
		{Kind: EventPush, Value: 3},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("StepEvents(2) = %v, want %v", got, want)
	}

	if got := s.StepEvents(4); len(got) != 0 {
		t.Errorf("StepEvents(4) = %v, want empty", got)
	}
}

func TestTimelineQuoteAndReplaceEvents(t *testing.T) {
	tl := record(t, `"A"65*00p@`)
	events := tl.Events()

	var kinds []EventKind
	for _, e := range events {
		kinds = append(kinds, e.Kind)
	}
	want := []EventKind{
		EventEnterQuote,
		EventPush, // A
		EventExitQuote,
		EventPush, EventPush, // 6 5
		EventPop, EventPop, EventPush, // *
		EventPush, EventPush, // 0 0
		EventPop, EventPop, EventPop, EventReplace, // p
	}
	if !reflect.DeepEqual(kinds, want) {
		t.Errorf("event kinds = %v, want %v", kinds, want)
	}

	rep := events[len(events)-1]
	if rep.X != 0 || rep.Y != 0 || rep.Old != '"' || rep.New != 30 {
		t.Errorf("replace event = %+v, want (0,0) %d->30", rep, '"')
	}
}

func TestTimelineRollbackLeavesNoResidue(t *testing.T) {
	interp := vm.NewInterpreter(vm.LoadString("&.@"))
	tl := NewTimeline()
	interp.SetRecorder(tl)

	if _, err := interp.Step(); err == nil {
		t.Fatalf("step with no input succeeded")
	}
	if tl.Len() != 0 || len(tl.Events()) != 0 {
		t.Fatalf("rolled-back step recorded: %d steps, %d events", tl.Len(), len(tl.Events()))
	}

	interp.Input().Feed([]byte("7"))
	if _, err := interp.Step(); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if tl.Len() != 1 {
		t.Errorf("Len() after retry = %d, want 1", tl.Len())
	}
}

func TestSessionEventCountsConsistent(t *testing.T) {
	s := record(t, `"Hi",,@`).Session(`"Hi",,@`)
	total := 0
	for _, st := range s.Steps {
		total += st.Events
	}
	if total != len(s.Events) {
		t.Errorf("step event counts sum to %d, flat list holds %d", total, len(s.Events))
	}
}

func TestSessionRoundTrip(t *testing.T) {
	s := record(t, "65*00p@").Session("65*00p@")

	data, err := MarshalSession(s)
	if err != nil {
		t.Fatalf("MarshalSession failed: %v", err)
	}
	back, err := UnmarshalSession(data)
	if err != nil {
		t.Fatalf("UnmarshalSession failed: %v", err)
	}
	if !reflect.DeepEqual(s, back) {
		t.Errorf("round trip changed the session: %+v vs %+v", s, back)
	}
}

func TestUnmarshalSessionGarbage(t *testing.T) {
	if _, err := UnmarshalSession([]byte("not cbor")); err == nil {
		t.Errorf("UnmarshalSession accepted garbage")
	}
}
