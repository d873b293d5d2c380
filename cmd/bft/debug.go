package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tliron/commonlog"

	"bft/config"
	"bft/debug"
	"bft/vm"
)

// debugCommand runs the interactive debugger. Stdin carries debugger
// commands, so program input arrives through the i command instead.
func debugCommand(cfg *config.Config, args []string) {
	flags := flag.NewFlagSet("debug", flag.ExitOnError)
	tracePath := flags.String("trace", cfg.Run.Trace, "Write a CBOR execution trace to this file")
	seed := flags.Uint64("seed", cfg.Run.Seed, "Seed for the ? instruction (0 uses a random seed)")
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: bft debug [options] <program.bf>\n\nOptions:\n")
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

	// Debug logging would interleave with the prompt, so send it to a file
	// when no destination is configured.
	if cfg.Log.Verbosity >= 2 && cfg.Log.File == "" {
		logFile, err := config.DefaultLogFile()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		commonlog.Configure(cfg.Log.Verbosity, &logFile)
	}

	interp := vm.NewInterpreter(vm.Load(source))
	applySeed(interp, *seed)
	timeline := attachRecorders(cfg, interp, *tracePath)

	session := debug.NewSession(vm.NewDebugger(interp), os.Stdin, os.Stdout)
	sessionErr := session.Run()

	if timeline != nil {
		if err := writeTrace(*tracePath, timeline.Session(string(source))); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if sessionErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", sessionErr)
		os.Exit(1)
	}
}
