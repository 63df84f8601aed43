package diag

import "testing"

func TestCollectorDedup(t *testing.T) {
	c := NewCollector()
	d := Diagnostic{Severity: Warning, Rule: "expr", Message: "ambiguous accelerator"}
	c.Add(d)
	c.Add(d)
	if len(c.Items()) != 1 {
		t.Fatalf("expected duplicate to be dropped, got %d items", len(c.Items()))
	}
}

func TestCollectorOrderAndHasErrors(t *testing.T) {
	c := NewCollector()
	c.Add(Diagnostic{Severity: Info, Rule: "a", Message: "first"})
	c.Add(Diagnostic{Severity: Error, Rule: "b", Message: "second"})
	items := c.Items()
	if len(items) != 2 || items[0].Message != "first" || items[1].Message != "second" {
		t.Fatalf("expected report-order preserved, got %v", items)
	}
	if !c.HasErrors() {
		t.Fatalf("expected HasErrors true after an Error-severity diagnostic")
	}
}

func TestCollectorNoErrors(t *testing.T) {
	c := NewCollector()
	c.Add(Diagnostic{Severity: Warning, Rule: "a", Message: "benign"})
	if c.HasErrors() {
		t.Fatalf("expected HasErrors false with only warnings")
	}
}
