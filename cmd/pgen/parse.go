package main

import (
	"fmt"

	"github.com/go-pgen/pgen"
	"github.com/go-pgen/pgen/parser"
	"github.com/pterm/pterm"
)

func runParse(args []string) error {
	fs := newFlagSet("parse")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("pgen parse: expected a grammar-file and a source-file argument")
	}

	g, diags, err := buildGrammar(fs.Arg(0))
	if err != nil {
		return err
	}
	printDiagnostics(diags)

	src, err := readFile(fs.Arg(1))
	if err != nil {
		return err
	}
	adapter, err := newGrammarScanner(g)
	if err != nil {
		return fmt.Errorf("pgen parse: building scanner: %w", err)
	}
	sc, err := adapter.Scanner(src)
	if err != nil {
		return fmt.Errorf("pgen parse: scanning %s: %w", fs.Arg(1), err)
	}

	engine := parser.NewEngine(g)
	for {
		tok := sc.NextToken()
		result, err := engine.AddToken(tok.Kind(), tok.Lexeme(), tok.Line())
		if err != nil {
			return fmt.Errorf("pgen parse: %w", err)
		}
		if result == pgen.Done {
			break
		}
	}

	pterm.DefaultSection.Println("Parse tree")
	dumpTree(engine.Tree(), 0)
	return nil
}

func dumpTree(n *parser.Node, depth int) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	if n.Lexeme != "" {
		pterm.Println(fmt.Sprintf("%s%s %q", indent, n.Kind, n.Lexeme))
	} else {
		pterm.Println(fmt.Sprintf("%s%s", indent, n.Kind))
	}
	for _, c := range n.Children {
		dumpTree(c, depth+1)
	}
}
