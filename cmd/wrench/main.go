// Command wrench runs a single wrench script to completion: parse,
// type-check, evaluate. It is the non-interactive branch of the
// teacher's root main.go (flag-driven, positional script path) without
// the teacher's REPL, distributed-executor, or S3 wiring — see
// DESIGN.md for why those are dropped.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"

	"github.com/AAUP4-Projekt/wrench"
	"github.com/AAUP4-Projekt/wrench/termutil"
)

var debugFlag = flag.Bool("debug", false, "dump tokens and the parsed AST before evaluating")

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	flag.Parse()
	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: wrench [-debug] <script.wr>")
		os.Exit(3)
	}
	path := args[0]
	ctx := context.Background()

	data, err := file.ReadFile(ctx, path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "wrench: %v\n", err)
		os.Exit(3)
	}
	src := string(data)

	prog, err := wrench.Parse(path, src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "wrench: %v\n", err)
		os.Exit(1)
	}
	if *debugFlag {
		dumpDebug(path, src, prog)
	}

	if err := wrench.CheckProgram(prog); err != nil {
		fmt.Fprintf(os.Stderr, "wrench: %v\n", err)
		os.Exit(1)
	}

	sink := termutil.NewPrinter(os.Stdout)
	defer sink.Close()
	if err := wrench.Run(ctx, prog, sink); err != nil {
		fmt.Fprintf(os.Stderr, "wrench: %v\n", err)
		os.Exit(2)
	}
}

// dumpDebug renders the token stream and the parsed AST under
// `-debug`, following the teacher's String()-method-per-node
// convention for diagnostic output (§10.6).
func dumpDebug(path, src string, prog *wrench.Program) {
	fmt.Fprintf(os.Stderr, "-- tokens (%s) --\n", path)
	toks, err := wrench.LexAll(path, src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "  <lex error: %v>\n", err)
	} else {
		for _, tok := range toks {
			fmt.Fprintf(os.Stderr, "  %v\n", tok)
		}
	}
	fmt.Fprintf(os.Stderr, "-- ast --\n")
	fmt.Fprintln(os.Stderr, prog.String())
}
