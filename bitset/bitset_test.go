package bitset

import "testing"

func TestAddReportsNewlySet(t *testing.T) {
	s := New(16)
	if !s.Add(3) {
		t.Fatalf("first Add(3) should report newly set")
	}
	if s.Add(3) {
		t.Fatalf("second Add(3) should report already set")
	}
	if !s.Test(3) {
		t.Fatalf("Test(3) should be true after Add")
	}
	if s.Test(4) {
		t.Fatalf("Test(4) should be false, never set")
	}
}

func TestAddOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for out-of-range bit")
		}
	}()
	New(8).Add(8)
}

func TestEqual(t *testing.T) {
	a := New(16)
	b := New(16)
	if !a.Equal(b) {
		t.Fatalf("two empty sets should be equal")
	}
	a.Add(5)
	if a.Equal(b) {
		t.Fatalf("sets should differ after Add")
	}
	b.Add(5)
	if !a.Equal(b) {
		t.Fatalf("sets should be equal after matching Add")
	}
}

func TestUnionInto(t *testing.T) {
	dst := New(16)
	src := New(16)
	dst.Add(1)
	src.Add(2)
	src.Add(1)
	dst.UnionInto(src)
	for _, bit := range []int{1, 2} {
		if !dst.Test(bit) {
			t.Fatalf("expected bit %d set after union", bit)
		}
	}
	if dst.Test(3) {
		t.Fatalf("bit 3 should remain unset")
	}
}

func TestCloneIndependence(t *testing.T) {
	s := New(8)
	s.Add(0)
	c := s.Clone()
	c.Add(1)
	if s.Test(1) {
		t.Fatalf("mutating clone should not affect original")
	}
}

func TestBits(t *testing.T) {
	s := New(32)
	s.Add(0)
	s.Add(17)
	s.Add(31)
	got := s.Bits()
	want := []int{0, 17, 31}
	if len(got) != len(want) {
		t.Fatalf("Bits() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Bits() = %v, want %v", got, want)
		}
	}
}
