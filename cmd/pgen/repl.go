package main

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/go-pgen/pgen"
	"github.com/go-pgen/pgen/parser"
	"github.com/pterm/pterm"
)

// runRepl drives a compiled grammar's parser.Engine one token at a
// time from interactive input: each line is "KIND[ lexeme]", e.g.
// "NAME foo" or "PLUS". Quit with <ctrl>D.
func runRepl(args []string) error {
	fs := newFlagSet("repl")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("pgen repl: expected a single grammar-file argument")
	}

	g, diags, err := buildGrammar(fs.Arg(0))
	if err != nil {
		return err
	}
	printDiagnostics(diags)

	rl, err := readline.New("pgen> ")
	if err != nil {
		return fmt.Errorf("pgen repl: %w", err)
	}
	defer rl.Close()

	pterm.Info.Println("Feed tokens as 'KIND[ lexeme]', e.g. 'NAME foo'. Quit with <ctrl>D.")
	engine := parser.NewEngine(g)
	line := 1
	for {
		text, err := rl.Readline()
		if err != nil { // io.EOF on <ctrl>D
			break
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		kind, lexeme, err := parseReplToken(text)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		result, addErr := engine.AddToken(kind, lexeme, line)
		line++
		switch {
		case addErr != nil:
			pterm.Error.Println(addErr.Error())
		case result == pgen.Done:
			pterm.Info.Println("parse complete")
			dumpTree(engine.Tree(), 0)
			return nil
		default:
			pterm.Info.Println("consumed, stack open")
		}
	}
	pterm.Println("Good bye!")
	return nil
}

func parseReplToken(text string) (pgen.TokType, string, error) {
	fields := strings.SplitN(text, " ", 2)
	kind, ok := pgen.TokTypeByName(fields[0])
	if !ok {
		return 0, "", fmt.Errorf("pgen repl: unknown token kind %q", fields[0])
	}
	lexeme := ""
	if len(fields) == 2 {
		lexeme = strings.TrimSpace(fields[1])
	}
	return kind, lexeme, nil
}
