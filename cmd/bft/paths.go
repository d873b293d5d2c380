package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"bft/config"
	"bft/vm"
)

// pathsCommand prints a reachability report: the program source next to a
// marker grid showing what the analyzer decided about each cell.
func pathsCommand(cfg *config.Config, args []string) {
	flags := flag.NewFlagSet("paths", flag.ExitOnError)
	startX := flags.Int("x", 0, "Start column for the analysis")
	startY := flags.Int("y", 0, "Start row for the analysis")
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: bft paths [options] <program.bf>\n\nOptions:\n")
		flags.PrintDefaults()
	}
	flags.Parse(args)

	if flags.NArg() != 1 {
		flags.Usage()
		os.Exit(2)
	}

	source, err := os.ReadFile(flags.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	space := vm.Load(source)
	start := vm.NewCursor()
	start.Pos = vm.Position{X: *startX, Y: *startY}
	analysis := vm.AnalyzePathFrom(space, start)

	os.Stdout.WriteString(renderPaths(space, analysis))
}

// renderPaths lays out the source and the analysis verdicts side by side,
// one marker per cell.
func renderPaths(space *vm.Space, analysis *vm.Analysis) string {
	var b strings.Builder

	b.WriteString("source:\n")
	for y := 0; y < space.Height(); y++ {
		b.WriteString("  ")
		b.Write(space.Line(y))
		b.WriteByte('\n')
	}

	b.WriteString("\npaths (# executed, \" quoted data, · unreached):\n")
	for y := 0; y < analysis.Height(); y++ {
		b.WriteString("  ")
		for x := 0; x < analysis.Width(); x++ {
			switch analysis.ClassAt(vm.Position{X: x, Y: y}) {
			case vm.Executed:
				b.WriteByte('#')
			case vm.QuotedData:
				b.WriteByte('"')
			default:
				b.WriteString("·")
			}
		}
		b.WriteByte('\n')
	}

	executed, quoted, unreached := analysis.Counts()
	fmt.Fprintf(&b, "\nexecuted %d  quoted %d  unreached %d\n", executed, quoted, unreached)
	return b.String()
}
