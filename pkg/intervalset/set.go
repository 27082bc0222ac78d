package intervalset

import (
	"slices"

	"github.com/henderiw/intervalset/pkg/interval"
)

// IntervalSet is a set of uint32 ids stored as intervals. The zero value is
// the empty set.
//
// An IntervalSet is not safe for concurrent use; callers sharing one must
// Clone it or guard it.
type IntervalSet struct {
	// intervals is kept normalized: sorted ascending, no overlapping and
	// no adjacent intervals. The merge and query methods rely on this
	// property.
	intervals []interval.Interval
}

// New returns an empty set.
func New() *IntervalSet {
	return &IntervalSet{}
}

// FromInterval returns the set holding the ids of i.
func FromInterval(i interval.Interval) *IntervalSet {
	return &IntervalSet{intervals: []interval.Interval{i}}
}

// FromIntervals returns the set holding the ids of all ivs, which may be
// unsorted and may overlap. Nothing is built if any of them has lo > hi.
func FromIntervals(ivs ...interval.Interval) (*IntervalSet, error) {
	for _, i := range ivs {
		if !i.IsValid() {
			return nil, interval.ErrInvalidRange
		}
	}
	s := New()
	for _, i := range ivs {
		s.Insert(i)
	}
	return s, nil
}

// FromTuples returns the set holding the ids of all [lo, hi] pairs.
func FromTuples(tuples [][2]uint32) (*IntervalSet, error) {
	ivs := make([]interval.Interval, 0, len(tuples))
	for _, t := range tuples {
		i, err := interval.FromTuple(t)
		if err != nil {
			return nil, err
		}
		ivs = append(ivs, i)
	}
	return FromIntervals(ivs...)
}

// Insert adds the ids of element to s, coalescing every interval that
// overlaps or touches it.
func (s *IntervalSet) Insert(element interval.Interval) {
	n := len(s.intervals)
	if n == 0 || s.intervals[n-1].EntirelyBefore(element) {
		s.intervals = append(s.intervals, element)
		return
	}

	candidate := element
	first, last := n, n
	for idx, i := range s.intervals {
		if i.EntirelyBefore(candidate) {
			// keep
			//
			//    i      candidate
			// f-----t   f-------t
			continue
		}
		if candidate.EntirelyBefore(i) {
			// nothing further can overlap or touch.
			//
			//  candidate      i
			// f-------t   f-----t
			if first == n {
				first = idx
			}
			last = idx
			break
		}
		// i overlaps or touches the candidate, absorb it.
		if first == n {
			first = idx
		}
		last = idx + 1
		candidate = candidate.Span(i)
	}
	s.intervals = slices.Replace(s.intervals, first, last, candidate)
}

// Clone returns a copy of s that shares no memory with it.
func (s *IntervalSet) Clone() *IntervalSet {
	return &IntervalSet{intervals: slices.Clone(s.intervals)}
}

func (s *IntervalSet) IsEmpty() bool {
	return len(s.intervals) == 0
}

// Len returns the number of intervals in s.
func (s *IntervalSet) Len() int {
	return len(s.intervals)
}

// Size returns the number of ids in s.
func (s *IntervalSet) Size() uint64 {
	var size uint64
	for _, i := range s.intervals {
		size += i.RangeSize()
	}
	return size
}

// Max returns the interval covering the most ids. Ties go to the lowest
// interval. ok is false for the empty set.
func (s *IntervalSet) Max() (largest interval.Interval, ok bool) {
	for _, i := range s.intervals {
		if !ok || i.RangeSize() > largest.RangeSize() {
			largest, ok = i, true
		}
	}
	return largest, ok
}

// Bounds returns the interval from the lowest to the highest id of s.
func (s *IntervalSet) Bounds() (interval.Interval, bool) {
	if len(s.intervals) == 0 {
		return interval.Interval{}, false
	}
	return s.intervals[0].Span(s.intervals[len(s.intervals)-1]), true
}

// Intervals returns a copy of the sorted intervals of s.
func (s *IntervalSet) Intervals() []interval.Interval {
	return slices.Clone(s.intervals)
}

// Contains reports whether id n is in s.
func (s *IntervalSet) Contains(n uint32) bool {
	return s.ContainsInterval(interval.Single(n))
}

// ContainsInterval reports whether every id of i is in s.
func (s *IntervalSet) ContainsInterval(i interval.Interval) bool {
	idx, _ := slices.BinarySearchFunc(s.intervals, i.Hi(), func(e interval.Interval, hi uint32) int {
		switch {
		case e.Hi() < hi:
			return -1
		case e.Hi() > hi:
			return 1
		}
		return 0
	})
	return idx < len(s.intervals) && s.intervals[idx].Covers(i)
}

// Equal reports whether s and other hold the same ids.
func (s *IntervalSet) Equal(other *IntervalSet) bool {
	return slices.Equal(s.intervals, other.intervals)
}
