package intervalset

import (
	"fmt"

	"github.com/henderiw/intervalset/pkg/interval"
)

// Combinator decides whether an id belongs to the result of a merge given
// whether it belongs to the left and to the right operand.
type Combinator func(inLeft, inRight bool) bool

var (
	Or     Combinator = func(l, r bool) bool { return l || r }
	And    Combinator = func(l, r bool) bool { return l && r }
	AndNot Combinator = func(l, r bool) bool { return l && !r }
	Xor    Combinator = func(l, r bool) bool { return l != r }
)

// Union returns the ids in s or other.
func (s *IntervalSet) Union(other *IntervalSet) *IntervalSet {
	return Merge(s, other, Or)
}

// Intersection returns the ids in both s and other.
func (s *IntervalSet) Intersection(other *IntervalSet) *IntervalSet {
	return Merge(s, other, And)
}

// Difference returns the ids in s that are not in other.
func (s *IntervalSet) Difference(other *IntervalSet) *IntervalSet {
	return Merge(s, other, AndNot)
}

// SymmetricDifference returns the ids in exactly one of s and other.
func (s *IntervalSet) SymmetricDifference(other *IntervalSet) *IntervalSet {
	return Merge(s, other, Xor)
}

// Complement returns the ids of the uint32 domain that are not in s.
func (s *IntervalSet) Complement() *IntervalSet {
	return FromInterval(interval.Whole()).Difference(s)
}

// Merge sweeps the boundaries of left and right once, keeping every id for
// which op returns true. The result is a new set; neither operand is
// modified. op(false, false) must be false.
func Merge(left, right *IntervalSet, op Combinator) *IntervalSet {
	if left.IsEmpty() && right.IsEmpty() {
		return New()
	}

	lflat := left.flatten()
	rflat := right.flatten()

	// Both lists are sorted, so the extremes sit at the ends.
	var sentinel, scan uint64
	switch {
	case len(lflat) == 0:
		sentinel, scan = rflat[len(rflat)-1]+1, rflat[0]
	case len(rflat) == 0:
		sentinel, scan = lflat[len(lflat)-1]+1, lflat[0]
	default:
		sentinel = max(lflat[len(lflat)-1], rflat[len(rflat)-1]) + 1
		scan = min(lflat[0], rflat[0])
	}
	lflat = append(lflat, sentinel)
	rflat = append(rflat, sentinel)

	var res []uint64
	l, r := 0, 0
	for scan < sentinel {
		inres := op(isInside(lflat, l, scan), isInside(rflat, r, scan))
		if inres != (len(res)%2 != 0) {
			res = append(res, scan)
		}

		if scan == lflat[l] {
			l = advance(lflat, l)
		}
		if scan == rflat[r] {
			r = advance(rflat, r)
		}
		scan = min(lflat[l], rflat[r])
	}
	return unflatten(res)
}

// isInside reports whether scan lies in the set whose next unprocessed
// marker is flat[pos]. Markers at even positions enter the set, markers at
// odd positions leave it.
func isInside(flat []uint64, pos int, scan uint64) bool {
	if pos%2 == 0 {
		return scan >= flat[pos]
	}
	return scan < flat[pos]
}

func advance(flat []uint64, pos int) int {
	pos++
	if pos >= len(flat) {
		// The sentinel ends both lists and the sweep stops on reaching
		// it, so this only happens on a set that was not normalized.
		panic(fmt.Sprintf("intervalset: merge ran past the sentinel of %v", flat))
	}
	return pos
}

// flatten returns the boundary markers of s: lo and hi+1 for every
// interval. Markers are widened to uint64 so hi == MaxUint32 does not wrap.
func (s *IntervalSet) flatten() []uint64 {
	flat := make([]uint64, 0, 2*len(s.intervals)+1)
	for _, i := range s.intervals {
		flat = append(flat, uint64(i.Lo()), uint64(i.Hi())+1)
	}
	return flat
}

// unflatten pairs consecutive boundary markers back into intervals.
func unflatten(flat []uint64) *IntervalSet {
	if len(flat)%2 != 0 {
		panic(fmt.Sprintf("intervalset: odd number of boundaries %v", flat))
	}
	s := New()
	for idx := 0; idx < len(flat); idx += 2 {
		s.Insert(interval.MustNew(uint32(flat[idx]), uint32(flat[idx+1]-1)))
	}
	return s
}
