// bft CLI - runs, debugs, and analyzes Befunge-93 programs
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"bft/config"
)

func main() {
	configPath := flag.String("c", "", "Explicit bft.toml path (default: walk up from the working directory)")
	verbosity := flag.Int("v", -1, "Log verbosity: 0 errors, 1 info, 2 debug (overrides the config file)")

	flag.Usage = usage
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *verbosity >= 0 {
		cfg.Log.Verbosity = *verbosity
	}
	if err := configureLogging(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	switch args[0] {
	case "run":
		runCommand(cfg, args[1:])
	case "debug":
		debugCommand(cfg, args[1:])
	case "paths":
		pathsCommand(cfg, args[1:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", args[0])
		flag.Usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: bft [options] <command> [command options] <program.bf>\n\n")
	fmt.Fprintf(os.Stderr, "Runs, debugs, and analyzes Befunge-93 programs.\n\n")
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  run    execute a program, reading its input from stdin\n")
	fmt.Fprintf(os.Stderr, "  debug  step a program interactively with breakpoints\n")
	fmt.Fprintf(os.Stderr, "  paths  print which cells a program can ever reach\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  bft run examples/hello.bf                 # Run a program\n")
	fmt.Fprintf(os.Stderr, "  echo 3 4 | bft run examples/add.bf        # Run with piped input\n")
	fmt.Fprintf(os.Stderr, "  bft run -trace out.bft examples/hello.bf  # Record an execution trace\n")
	fmt.Fprintf(os.Stderr, "  bft debug examples/hello.bf               # Interactive debugger\n")
	fmt.Fprintf(os.Stderr, "  bft paths examples/hello.bf               # Reachability report\n")
}

// loadConfig resolves the effective configuration: an explicit -c path, a
// bft.toml found walking up from the working directory, or the defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return config.Default(), nil
	}
	cfg, err := config.FindAndLoad(wd)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = config.Default()
	}
	return cfg, nil
}

func configureLogging(cfg *config.Config) error {
	var path *string
	if cfg.Log.File != "" {
		expanded, err := config.ExpandHome(cfg.Log.File)
		if err != nil {
			return err
		}
		path = &expanded
	}
	commonlog.Configure(cfg.Log.Verbosity, path)
	return nil
}
