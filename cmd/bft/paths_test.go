package main

import (
	"strings"
	"testing"

	"bft/vm"
)

func TestRenderPaths(t *testing.T) {
	space := vm.LoadString(`"Hi",,@z`)
	got := renderPaths(space, vm.AnalyzePath(space))

	want := strings.Join([]string{
		"source:",
		`  "Hi",,@z`,
		"",
		`paths (# executed, " quoted data, · unreached):`,
		`  #"""###·`,
		"",
		"executed 4  quoted 3  unreached 1",
	}, "\n") + "\n"
	if got != want {
		t.Errorf("renderPaths = %q, want %q", got, want)
	}
}

func TestRenderPathsMultiRow(t *testing.T) {
	space := vm.LoadString("1v\n@_.")
	got := renderPaths(space, vm.AnalyzePath(space))

	want := strings.Join([]string{
		"source:",
		"  1v ",
		"  @_.",
		"",
		`paths (# executed, " quoted data, · unreached):`,
		"  ##·",
		"  ###",
		"",
		"executed 5  quoted 0  unreached 1",
	}, "\n") + "\n"
	if got != want {
		t.Errorf("renderPaths = %q, want %q", got, want)
	}
}
