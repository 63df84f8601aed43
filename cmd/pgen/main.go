// Command pgen is a small front end over the grammar builder, pushdown
// parser, and peephole optimizer: build tables from a grammar source
// file, drive those tables against a source file or an interactive
// token-by-token REPL, or exercise the peephole optimizer in isolation
// against a tiny wordcode assembly format. Modeled on CPython's
// Parser/pgenmain.c, which does the first of these four things and
// nothing else.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
)

func tracer() tracing.Trace {
	return tracing.Select("pgen.cmd")
}

func main() {
	gtrace.SyntaxTracer = gologadapter.New()
	tracer().SetTraceLevel(tracing.LevelInfo)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	sub := os.Args[1]
	args := os.Args[2:]
	var err error
	switch sub {
	case "build":
		err = runBuild(args)
	case "parse":
		err = runParse(args)
	case "repl":
		err = runRepl(args)
	case "peephole":
		err = runPeephole(args)
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "pgen: unknown subcommand %q\n", sub)
		usage()
		os.Exit(2)
	}
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: pgen <command> [arguments]

commands:
  build <grammar-file>               compile a grammar and dump its tables
  parse <grammar-file> <source-file> build tables, tokenize, parse, print the tree
  repl <grammar-file>                feed tokens by hand, watch the pushdown stack
  peephole [<assembly-file>]         run the peephole optimizer over wordcode assembly`)
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	return fs
}

func readFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("pgen: reading %s: %w", path, err)
	}
	return string(b), nil
}
