package metagrammar

import (
	"testing"

	"github.com/go-pgen/pgen"
)

func TestParseSimpleRule(t *testing.T) {
	root, err := Parse("start: 'a' 'b'\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root.Kind != pgen.MSTART {
		t.Fatalf("expected MSTART root, got %s", root.Kind)
	}
	if len(root.Children) != 2 {
		t.Fatalf("expected one rule + ENDMARKER, got %d children", len(root.Children))
	}
	rule := root.Children[0]
	if rule.Kind != pgen.RULE || rule.Children[0].Str != "start" {
		t.Fatalf("expected rule named 'start', got %v", rule)
	}
}

func TestParseAlternation(t *testing.T) {
	root, err := Parse("expr: term ('+' term)*\nterm: NAME\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(root.Children) != 3 {
		t.Fatalf("expected two rules + ENDMARKER, got %d", len(root.Children))
	}
	exprRHS := root.Children[0].Children[1]
	if exprRHS.Kind != pgen.RHS || len(exprRHS.Children) != 1 {
		t.Fatalf("expected single alternative in expr's RHS")
	}
	alt := exprRHS.Children[0]
	if len(alt.Children) != 2 {
		t.Fatalf("expected two items (term, group-star) in expr's alt, got %d", len(alt.Children))
	}
	group := alt.Children[1]
	if group.Children[len(group.Children)-1].Kind != pgen.STAR {
		t.Fatalf("expected trailing STAR suffix on the grouped item")
	}
}

func TestParseOptionalItem(t *testing.T) {
	root, err := Parse("rule: [NAME]\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	alt := root.Children[0].Children[1].Children[0]
	item := alt.Children[0]
	if item.Children[0].Kind != pgen.RHS {
		t.Fatalf("expected optional item to wrap an RHS, got %v", item)
	}
}

func TestParseComment(t *testing.T) {
	root, err := Parse("# a comment\nstart: NAME # trailing\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(root.Children) != 2 {
		t.Fatalf("expected comments to be skipped entirely, got %d children", len(root.Children))
	}
}

func TestParseMissingColonFails(t *testing.T) {
	if _, err := Parse("start NAME\n"); err == nil {
		t.Fatalf("expected error for missing ':'")
	}
}

func TestParseEmptyAlternativeFails(t *testing.T) {
	if _, err := Parse("start: NAME |\n"); err == nil {
		t.Fatalf("expected error for empty alternative after '|'")
	}
}

func TestParseSemicolonAsLineEnd(t *testing.T) {
	root, err := Parse("start: NAME ENDMARKER;")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(root.Children) != 2 {
		t.Fatalf("expected semicolon accepted as rule terminator, got %d children", len(root.Children))
	}
}
