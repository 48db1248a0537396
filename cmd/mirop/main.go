// Command mirop is the command line entry point to the mirop IR
// optimizer: it parses a textual IR module, optionally runs
// memory-to-register promotion, CSE and dead-code elimination, runs
// loop-invariant code motion, exports pass statistics as CSV and
// writes the optimized module back out.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mirop/mirop/ir"
	"github.com/mirop/mirop/ir/parse"
	"github.com/mirop/mirop/licm"
	"github.com/mirop/mirop/opt"
	"github.com/mirop/mirop/stats"
	"github.com/mirop/mirop/verify"
)

const (
	Usage = `mirop is a loop optimizer for the mirop textual IR.

Usage:

  mirop [options] <input.mir> <output.mir>

Statistics are written to <output.mir>.stats as name,value lines.

Options:

`
)

var (
	mem2reg bool
	cse     bool
	dce     bool
	noLICM  bool
	verbose bool
	noCheck bool
	logPath string
)

func init() {
	flag.BoolVar(&mem2reg, "mem2reg", false, "Perform memory to register promotion before LICM")
	flag.BoolVar(&cse, "cse", false, "Perform CSE before LICM")
	flag.BoolVar(&dce, "dce", false, "Perform dead code elimination before LICM")
	flag.BoolVar(&noLICM, "no-licm", false, "Do not perform LICM optimization")
	flag.BoolVar(&verbose, "verbose", false, "Verbose stats")
	flag.BoolVar(&noCheck, "no", false, "Do not check for valid IR")
	flag.StringVar(&logPath, "log", "", "Specify analysis log file (use '-' for stderr)")
}

func main() {
	flag.Parse()
	if flag.NArg() < 2 {
		fmt.Fprintf(os.Stderr, Usage)
		flag.PrintDefaults()
		os.Exit(0)
	}
	input, output := flag.Arg(0), flag.Arg(1)

	m, err := parse.FromFile(input).Build()
	if err != nil {
		log.Fatal("Cannot parse input:", err)
	}

	reg := stats.NewRegistry()
	nFunctions := reg.New("Functions", "number of functions")
	nInstructions := reg.New("Instructions", "number of instructions")
	nLoads := reg.New("Loads", "number of loads")
	nStores := reg.New("Stores", "number of stores")

	if mem2reg || cse || dce {
		for _, f := range m.Funcs {
			if mem2reg {
				opt.Mem2Reg(f)
			}
			if cse {
				opt.EarlyCSE(f)
			}
			if dce {
				opt.DeadCode(f)
			}
		}
	}

	if !noLICM {
		p := licm.New(reg)
		p.SetLogger(passLogger())
		p.Run(m)
	}

	summarize(m, nFunctions, nInstructions, nLoads, nStores)

	sf, err := os.Create(output + ".stats")
	if err != nil {
		log.Fatalf("Cannot create stats file %s.stats: %v", output, err)
	}
	if err := reg.WriteCSV(sf); err != nil {
		log.Fatal("Cannot write stats:", err)
	}
	sf.Close()

	if verbose {
		reg.Fprint(os.Stderr)
	}

	// Verify integrity of the module, do this by default.
	if !noCheck {
		if err := verify.Module(m); err != nil {
			log.Fatal("Invalid IR after optimization:", err)
		}
	}

	out, err := os.Create(output)
	if err != nil {
		log.Fatalf("Cannot create output file %s: %v", output, err)
	}
	defer out.Close()
	if _, err := m.WriteTo(out); err != nil {
		log.Fatal("Cannot write output:", err)
	}
}

func passLogger() *licm.Logger {
	switch logPath {
	case "":
		return licm.NewNopLogger()
	case "-":
		return licm.NewLogger()
	default:
		return licm.NewFileLogger(logPath)
	}
}

// summarize collects whole-module counts, mirroring the exported
// statistics of the original tool.
func summarize(m *ir.Module, funcs, instrs, loads, stores *stats.Counter) {
	for _, f := range m.Funcs {
		if len(f.Blocks) == 0 {
			continue
		}
		funcs.Inc()
		for _, b := range f.Blocks {
			for _, in := range b.Instrs {
				instrs.Inc()
				switch {
				case in.IsMemRead():
					loads.Inc()
				case in.IsMemWrite():
					stores.Inc()
				}
			}
		}
	}
}
