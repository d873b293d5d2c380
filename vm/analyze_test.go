package vm

import "testing"

func analyzeSource(source string) *Analysis {
	return AnalyzePath(LoadString(source))
}

// checkCounts asserts the per-class cell totals.
func checkCounts(t *testing.T, a *Analysis, executed, quoted, unreached int) {
	t.Helper()
	e, q, u := a.Counts()
	if e != executed || q != quoted || u != unreached {
		t.Errorf("Counts() = (%d, %d, %d), want (%d, %d, %d)",
			e, q, u, executed, quoted, unreached)
	}
}

func TestAnalyzeLinearProgram(t *testing.T) {
	a := analyzeSource("12+.@")
	for x := 0; x < 5; x++ {
		if got := a.ClassAt(Position{X: x, Y: 0}); got != Executed {
			t.Errorf("ClassAt(%d,0) = %s, want executed", x, got)
		}
	}
	checkCounts(t, a, 5, 0, 0)
}

func TestAnalyzeQuotedCells(t *testing.T) {
	a := analyzeSource(`"Hi",,@`)
	tests := []struct {
		x    int
		want Classification
	}{
		{0, Executed},   // opening quote
		{1, QuotedData}, // H
		{2, QuotedData}, // i
		{3, QuotedData}, // closing quote, read while quoted
		{4, Executed},
		{5, Executed},
		{6, Executed},
	}

	for _, tc := range tests {
		if got := a.ClassAt(Position{X: tc.x, Y: 0}); got != tc.want {
			t.Errorf("ClassAt(%d,0) = %s, want %s", tc.x, got, tc.want)
		}
	}
	checkCounts(t, a, 4, 3, 0)

	if got := a.StateAt(Position{X: 1, Y: 0}).Modes(); got != ModeQuoted {
		t.Errorf("Modes at (1,0) = %d, want quoted only", got)
	}
}

func TestAnalyzeSkipsSpaces(t *testing.T) {
	a := analyzeSource("1  2+.@")
	for _, x := range []int{1, 2} {
		if got := a.ClassAt(Position{X: x, Y: 0}); got != Unreached {
			t.Errorf("space cell (%d,0) = %s, want unreached", x, got)
		}
	}
	checkCounts(t, a, 5, 0, 2)
}

func TestAnalyzeBranchesBothExplored(t *testing.T) {
	// A live run with 1 on the stack only ever goes left at the _, but the
	// analysis cannot know the popped value and walks both branches.
	a := analyzeSource("1v\n@_.")
	if got := a.ClassAt(Position{X: 2, Y: 1}); got != Executed {
		t.Errorf("right branch cell = %s, want executed", got)
	}
	if got := a.ClassAt(Position{X: 0, Y: 1}); got != Executed {
		t.Errorf("left branch cell = %s, want executed", got)
	}
	checkCounts(t, a, 5, 0, 1)
}

func TestAnalyzeVerticalBranchAxes(t *testing.T) {
	a := analyzeSource("v\n|")
	st := a.StateAt(Position{X: 0, Y: 1})
	if got := st.Directions(); got != DirsVertical {
		t.Errorf("Directions() = %d, want vertical", got)
	}
	if got := st.Modes(); got != ModeNormal {
		t.Errorf("Modes() = %d, want normal", got)
	}
	checkCounts(t, a, 2, 0, 0)
}

func TestAnalyzeRandomExpandsFourWays(t *testing.T) {
	a := analyzeSource("?")
	if got := a.StateAt(Origin).Directions(); got != DirsBoth {
		t.Errorf("Directions() = %d, want both axes", got)
	}
	checkCounts(t, a, 1, 0, 0)
}

func TestAnalyzeBridgeSkipsCell(t *testing.T) {
	a := analyzeSource("#@1.@")
	if got := a.ClassAt(Position{X: 1, Y: 0}); got != Unreached {
		t.Errorf("hopped cell = %s, want unreached", got)
	}
	checkCounts(t, a, 4, 0, 1)
}

func TestAnalyzeIllegalByteStopsPath(t *testing.T) {
	a := analyzeSource("z1@")

	// The search reaches the byte but the interpreter would refuse it, so
	// it classifies as unreached and nothing beyond it is explored.
	if got := a.StateAt(Origin).Modes(); got != ModeNormal {
		t.Fatalf("Modes at origin = %d, want normal (the byte is reached)", got)
	}
	if got := a.ClassAt(Origin); got != Unreached {
		t.Errorf("ClassAt origin = %s, want unreached", got)
	}
	checkCounts(t, a, 0, 0, 3)
}

func TestAnalyzeCycleTerminates(t *testing.T) {
	a := analyzeSource(">v\n^<")
	checkCounts(t, a, 4, 0, 0)
}

func TestAnalyzeDenseRandomGridTerminates(t *testing.T) {
	a := analyzeSource("?????\n?????\n?????\n?????\n?????")
	if a.Width() != 5 || a.Height() != 5 {
		t.Fatalf("extents = %dx%d, want 5x5", a.Width(), a.Height())
	}
	checkCounts(t, a, 25, 0, 0)
}

func TestAnalyzeUnterminatedQuoteWraps(t *testing.T) {
	// With no closing quote the string wraps around and the opening quote
	// closes it, after which the interpreter re-reads the content cells as
	// instructions. a is not one, so it stays classified as data.
	a := analyzeSource(`"ab`)
	if got := a.StateAt(Position{X: 1, Y: 0}).Modes(); got != ModeBoth {
		t.Errorf("Modes at (1,0) = %d, want both", got)
	}
	tests := []struct {
		x    int
		want Classification
	}{
		{0, Executed},
		{1, QuotedData},
		{2, QuotedData},
	}
	for _, tc := range tests {
		if got := a.ClassAt(Position{X: tc.x, Y: 0}); got != tc.want {
			t.Errorf("ClassAt(%d,0) = %s, want %s", tc.x, got, tc.want)
		}
	}
	checkCounts(t, a, 1, 2, 0)
}

func TestAnalyzeFromCursor(t *testing.T) {
	a := AnalyzePathFrom(LoadString("@ @"), Cursor{Pos: Position{X: 2, Y: 0}, Dir: Left})
	if got := a.ClassAt(Position{X: 2, Y: 0}); got != Executed {
		t.Errorf("start cell = %s, want executed", got)
	}
	checkCounts(t, a, 1, 0, 2)
}

func TestAnalyzeEmptyProgram(t *testing.T) {
	a := analyzeSource("")
	checkCounts(t, a, 0, 0, 0)
	if got := a.ClassAt(Origin); got != Unreached {
		t.Errorf("ClassAt on empty analysis = %s, want unreached", got)
	}
	if got := a.StateAt(Origin); got != 0 {
		t.Errorf("StateAt on empty analysis = %d, want 0", got)
	}
}
