package interval

import (
	"fmt"
	"math"
)

// Interval is the inclusive range of ids [lo, hi]. Use New to build one;
// an Interval always satisfies lo <= hi.
type Interval struct {
	lo uint32
	hi uint32
}

// New returns the interval [lo, hi].
func New(lo, hi uint32) (Interval, error) {
	if lo > hi {
		return Interval{}, fmt.Errorf("%w: %d-%d, lower bound is bigger than upper bound", ErrInvalidRange, lo, hi)
	}
	return Interval{lo: lo, hi: hi}, nil
}

// MustNew is like New but panics on an invalid range.
func MustNew(lo, hi uint32) Interval {
	i, err := New(lo, hi)
	if err != nil {
		panic(err)
	}
	return i
}

// Single returns the interval holding only n.
func Single(n uint32) Interval {
	return Interval{lo: n, hi: n}
}

// Whole returns the interval covering the entire uint32 domain.
func Whole() Interval {
	return Interval{lo: 0, hi: math.MaxUint32}
}

// FromTuple returns the interval [t[0], t[1]].
func FromTuple(t [2]uint32) (Interval, error) {
	return New(t[0], t[1])
}

// Lo returns the lower bound of i.
func (i Interval) Lo() uint32 { return i.lo }

// Hi returns the upper bound of i.
func (i Interval) Hi() uint32 { return i.hi }

func (i Interval) Tuple() [2]uint32 { return [2]uint32{i.lo, i.hi} }

func (i Interval) IsValid() bool { return i.lo <= i.hi }

// RangeSize returns the number of ids covered by i. The result is widened
// to uint64 since Whole covers 1<<32 ids.
func (i Interval) RangeSize() uint64 {
	return uint64(i.hi) - uint64(i.lo) + 1
}

func (i Interval) Contains(n uint32) bool {
	return i.lo <= n && n <= i.hi
}

// Covers reports whether other lies entirely within i.
func (i Interval) Covers(other Interval) bool {
	return i.lo <= other.lo && other.hi <= i.hi
}

// Overlaps reports whether i and other share at least one id.
func (i Interval) Overlaps(other Interval) bool {
	return i.lo <= other.hi && other.lo <= i.hi
}

// Touches reports whether i and other overlap or are adjacent, i.e. whether
// their union is a single interval.
func (i Interval) Touches(other Interval) bool {
	return !i.EntirelyBefore(other) && !other.EntirelyBefore(i)
}

// EntirelyBefore reports whether i ends before other starts with at least
// one id in between.
//
//	  i         other
//	f----t    f-------t
func (i Interval) EntirelyBefore(other Interval) bool {
	return uint64(i.hi)+1 < uint64(other.lo)
}

// Span returns the smallest interval covering both i and other.
func (i Interval) Span(other Interval) Interval {
	return Interval{lo: min(i.lo, other.lo), hi: max(i.hi, other.hi)}
}

// Compare returns an integer comparing two intervals lexicographically on
// (lo, hi). The result will be 0 if i == other, -1 if i < other, and +1 if
// i > other.
func (i Interval) Compare(other Interval) int {
	switch {
	case i.lo < other.lo:
		return -1
	case i.lo > other.lo:
		return 1
	case i.hi < other.hi:
		return -1
	case i.hi > other.hi:
		return 1
	}
	return 0
}

// Less reports whether i sorts before other.
func (i Interval) Less(other Interval) bool { return i.Compare(other) == -1 }

func (i Interval) Equal(other Interval) bool { return i == other }

// String renders i as "n" when it holds a single id, else "lo-hi".
func (i Interval) String() string {
	if i.lo == i.hi {
		return fmt.Sprintf("%d", i.lo)
	}
	return fmt.Sprintf("%d-%d", i.lo, i.hi)
}
