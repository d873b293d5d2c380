package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"bft/config"
	"bft/vm"
	"bft/vm/trace"
)

// runCommand executes a program start to finish, feeding it whatever is on
// stdin and exiting 1 if the program faults.
func runCommand(cfg *config.Config, args []string) {
	flags := flag.NewFlagSet("run", flag.ExitOnError)
	tracePath := flags.String("trace", cfg.Run.Trace, "Write a CBOR execution trace to this file")
	seed := flags.Uint64("seed", cfg.Run.Seed, "Seed for the ? instruction (0 uses a random seed)")
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: bft run [options] <program.bf>\n\nOptions:\n")
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

	out := bufio.NewWriter(os.Stdout)
	interp := vm.NewInterpreter(vm.Load(source))
	interp.SetOutput(out)
	applySeed(interp, *seed)

	timeline := attachRecorders(cfg, interp, *tracePath)

	if input, err := io.ReadAll(os.Stdin); err == nil && len(input) > 0 {
		interp.Input().Feed(input)
	}

	runErr := stepToEnd(interp)
	out.Flush()

	if timeline != nil {
		if err := writeTrace(*tracePath, timeline.Session(string(source))); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}

func stepToEnd(interp *vm.Interpreter) error {
	for {
		status, err := interp.Step()
		if err != nil {
			return err
		}
		if status == vm.StatusTerminated {
			return nil
		}
	}
}

// applySeed makes ? deterministic when a nonzero seed is given.
func applySeed(interp *vm.Interpreter, seed uint64) {
	if seed != 0 {
		interp.SetRand(rand.New(rand.NewPCG(seed, seed)))
	}
}

// attachRecorders installs the execution observers a command asked for: a
// timeline when a trace file is wanted, an event log at debug verbosity.
// Returns the timeline, nil when tracing is off.
func attachRecorders(cfg *config.Config, interp *vm.Interpreter, tracePath string) *trace.Timeline {
	var timeline *trace.Timeline
	var recorders vm.MultiRecorder
	if tracePath != "" {
		timeline = trace.NewTimeline()
		recorders = append(recorders, timeline)
	}
	if cfg.Log.Verbosity >= 2 {
		recorders = append(recorders, vm.NewLogRecorder("bft.vm.record"))
	}
	if len(recorders) > 0 {
		interp.SetRecorder(recorders)
	}
	return timeline
}

func writeTrace(path string, session *trace.Session) error {
	data, err := trace.MarshalSession(session)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
