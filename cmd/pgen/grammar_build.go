package main

import (
	"fmt"

	"github.com/go-pgen/pgen/diag"
	"github.com/go-pgen/pgen/grammar"
	"github.com/go-pgen/pgen/metagrammar"
	"github.com/go-pgen/pgen/nfa"
)

// buildGrammar reads and compiles a grammar source file, returning the
// compiled tables plus any non-fatal diagnostics (left recursion,
// possibly-empty rules, accelerator ambiguity) reported along the way.
func buildGrammar(path string) (*grammar.Grammar, *diag.Collector, error) {
	src, err := readFile(path)
	if err != nil {
		return nil, nil, err
	}
	root, err := metagrammar.Parse(src)
	if err != nil {
		return nil, nil, fmt.Errorf("pgen: parsing grammar source: %w", err)
	}
	g, diags, err := nfa.Build(nfa.NewGeneratorContext(), root)
	if err != nil {
		return nil, diags, fmt.Errorf("pgen: building tables: %w", err)
	}
	return g, diags, nil
}

func printDiagnostics(diags *diag.Collector) {
	for _, d := range diags.Items() {
		tracer().Infof("%s", d.String())
	}
}
