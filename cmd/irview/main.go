// Command irview is a pretty printer for the mirop textual IR.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mirop/mirop/ir/parse"
)

const (
	Usage = `irview is a tool for printing mirop IR modules.

Usage:

  irview [options] file.mir

Options:

`
)

var (
	outPath  string
	viewFunc string

	out io.Writer
)

func init() {
	flag.StringVar(&outPath, "out", "", "Specify output file (default: stdout)")
	flag.StringVar(&viewFunc, "func", "", "Specify a single function to view")
}

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, Usage)
		flag.PrintDefaults()
		os.Exit(0)
	}

	switch outPath {
	case "":
		out = os.Stdout
	default:
		f, err := os.Create(outPath)
		if err != nil {
			log.Fatalf("Cannot create output file %s: %v", outPath, err)
		}
		defer f.Close()
		out = f
	}

	m, err := parse.FromFile(flag.Arg(0)).Build()
	if err != nil {
		log.Fatal("Cannot parse input:", err)
	}
	if viewFunc != "" {
		f := m.Func(viewFunc)
		if f == nil {
			log.Fatalf("No function named @%s", viewFunc)
		}
		if _, err := f.WriteTo(out); err != nil {
			log.Fatal("Cannot write IR:", err)
		}
		return
	}
	if _, err := m.WriteTo(out); err != nil {
		log.Fatal("Cannot write IR:", err)
	}
}
