package main

import (
	"fmt"

	"github.com/go-pgen/pgen/grammar"
	"github.com/pterm/pterm"
)

func runBuild(args []string) error {
	fs := newFlagSet("build")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("pgen build: expected a single grammar-file argument")
	}

	g, diags, err := buildGrammar(fs.Arg(0))
	if err != nil {
		return err
	}
	printDiagnostics(diags)
	dumpGrammar(g)
	return nil
}

func dumpGrammar(g *grammar.Grammar) {
	pterm.DefaultSection.Println("Labels")
	rows := pterm.TableData{{"#", "label"}}
	for i := 0; i < g.Labels.Len(); i++ {
		rows = append(rows, []string{fmt.Sprintf("%d", i), g.Labels.At(i).String()})
	}
	pterm.DefaultTable.WithHasHeader().WithData(rows).Render()

	for _, d := range g.DFAs {
		pterm.DefaultSection.Println(fmt.Sprintf("DFA %s (start %d)", d.Name, d.Initial))
		srows := pterm.TableData{{"state", "accept", "arcs"}}
		for i, s := range d.States {
			srows = append(srows, []string{
				fmt.Sprintf("%d", i),
				fmt.Sprintf("%v", s.Accept),
				formatArcs(g, s.Arcs),
			})
		}
		pterm.DefaultTable.WithHasHeader().WithData(srows).Render()
		if d.First != nil {
			pterm.Info.Println(fmt.Sprintf("FIRST(%s) = %s", d.Name, formatFirst(g, d)))
		}
	}
}

func formatArcs(g *grammar.Grammar, arcs []grammar.Arc) string {
	s := ""
	for i, a := range arcs {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s->%d", g.TypeName(a.Label), a.Arrow)
	}
	return s
}

func formatFirst(g *grammar.Grammar, d *grammar.DFA) string {
	s := ""
	first := true
	for i := 0; i < g.Labels.Len(); i++ {
		if !d.First.Test(i) {
			continue
		}
		if !first {
			s += ", "
		}
		s += g.TypeName(i)
		first = false
	}
	return s
}
