package bitset

const bitsPerWord = 8

// Set is a fixed-width bit vector backed by a byte slice, addressed the
// way Parser/bitset.c addresses its BYTE array: bit i lives in byte i/8,
// masked by 1<<(i%8). Width is fixed at construction time; there is no
// dynamic resize.
type Set struct {
	bits  []byte
	width int
}

// New returns a zeroed Set able to hold bit indices in [0, width).
func New(width int) *Set {
	return &Set{
		bits:  make([]byte, nbytes(width)),
		width: width,
	}
}

func nbytes(width int) int {
	return (width + bitsPerWord - 1) / bitsPerWord
}

// Width reports the number of addressable bits.
func (s *Set) Width() int { return s.width }

func (s *Set) checkBit(bit int) {
	if bit < 0 || bit >= s.width {
		panic("bitset: bit index out of range")
	}
}

// Add sets bit and reports whether it was not already set, mirroring
// addbit's return value in Parser/bitset.c.
func (s *Set) Add(bit int) bool {
	s.checkBit(bit)
	idx, mask := bit/bitsPerWord, byte(1<<(uint(bit)%bitsPerWord))
	if s.bits[idx]&mask != 0 {
		return false
	}
	s.bits[idx] |= mask
	return true
}

// Test reports whether bit is set.
func (s *Set) Test(bit int) bool {
	s.checkBit(bit)
	idx, mask := bit/bitsPerWord, byte(1<<(uint(bit)%bitsPerWord))
	return s.bits[idx]&mask != 0
}

// Equal reports whether s and other hold the same bits. Widths need not
// match as long as neither holds a set bit beyond the shorter's width;
// in practice every caller in this module compares same-width sets.
func (s *Set) Equal(other *Set) bool {
	n := len(s.bits)
	if len(other.bits) < n {
		n = len(other.bits)
	}
	for i := 0; i < n; i++ {
		if s.bits[i] != other.bits[i] {
			return false
		}
	}
	for i := n; i < len(s.bits); i++ {
		if s.bits[i] != 0 {
			return false
		}
	}
	for i := n; i < len(other.bits); i++ {
		if other.bits[i] != 0 {
			return false
		}
	}
	return true
}

// UnionInto ORs src's bits into s in place, the way mergebitset merges
// one bitset into another. src must not be wider than s.
func (s *Set) UnionInto(src *Set) {
	if src.width > s.width {
		panic("bitset: UnionInto source wider than destination")
	}
	for i, b := range src.bits {
		s.bits[i] |= b
	}
}

// Clone returns a copy of s.
func (s *Set) Clone() *Set {
	c := &Set{bits: make([]byte, len(s.bits)), width: s.width}
	copy(c.bits, s.bits)
	return c
}

// Bits returns the indices of all set bits, in ascending order.
func (s *Set) Bits() []int {
	var out []int
	for i := 0; i < s.width; i++ {
		if s.Test(i) {
			out = append(out, i)
		}
	}
	return out
}
