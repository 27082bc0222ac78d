package interval

import (
	"fmt"
	"math/bits"
)

const BitSize = 32

// Prefix is an aligned block of 1<<(32-Bits) ids starting at Base, the
// uint32 analogue of a CIDR prefix.
type Prefix struct {
	Base uint32
	Bits uint8
}

func (p Prefix) String() string {
	return fmt.Sprintf("%d/%d", p.Base, p.Bits)
}

// Interval returns the range of ids p covers.
func (p Prefix) Interval() Interval {
	return Interval{lo: p.Base, hi: p.Base | ^mask(p.Bits)}
}

// Prefixes returns the minimal, sorted list of prefixes covering i.
func (i Interval) Prefixes() []Prefix {
	return i.AppendPrefixes(nil)
}

// AppendPrefixes appends the prefixes covering i to dst.
func (i Interval) AppendPrefixes(dst []Prefix) []Prefix {
	return appendPrefixes(dst, i.lo, i.hi)
}

func appendPrefixes(dst []Prefix, a, b uint32) []Prefix {
	common, ok := comparePrefix(a, b)
	if ok {
		return append(dst, Prefix{Base: a, Bits: common})
	}
	// Otherwise recursively do both halves.
	dst = appendPrefixes(dst, a, bitsSetFrom(a, common+1))
	dst = appendPrefixes(dst, bitsClearedFrom(b, common+1), b)
	return dst
}

// comparePrefix returns the number of leading bits a and b share and
// whether, after those, a is all zero bits and b is all one bits.
func comparePrefix(a, b uint32) (common uint8, aZeroBSet bool) {
	common = uint8(bits.LeadingZeros32(a ^ b))
	if common == BitSize {
		return common, true
	}
	m := mask(common)
	return common, a&^m == 0 && b|m == ^uint32(0)
}

// mask returns a uint32 with the leftmost n bits set.
func mask(n uint8) uint32 {
	if n >= BitSize {
		return ^uint32(0)
	}
	return ^(^uint32(0) >> n)
}

// bitsSetFrom returns a copy of u with the given bit and all subsequent
// ones set.
func bitsSetFrom(u uint32, bit uint8) uint32 {
	return u | ^mask(bit)
}

// bitsClearedFrom returns a copy of u with the given bit and all
// subsequent ones cleared.
func bitsClearedFrom(u uint32, bit uint8) uint32 {
	return u & mask(bit)
}
