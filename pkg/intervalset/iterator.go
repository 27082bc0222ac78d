package intervalset

import (
	"iter"

	"github.com/henderiw/intervalset/pkg/interval"
)

// Iterator walks the intervals of a set in ascending order.
type Iterator struct {
	current   int
	intervals []interval.Interval
}

// Iterate returns an iterator positioned before the first interval of s.
// Inserting into s while iterating is not supported.
func (s *IntervalSet) Iterate() *Iterator {
	return &Iterator{current: -1, intervals: s.intervals}
}

func (r *Iterator) Next() bool {
	r.current++
	return r.current < len(r.intervals)
}

func (r *Iterator) Value() interval.Interval {
	return r.intervals[r.current]
}

// Reset positions the iterator before the first interval again.
func (r *Iterator) Reset() {
	r.current = -1
}

// All returns the intervals of s in ascending order.
func (s *IntervalSet) All() iter.Seq[interval.Interval] {
	return func(yield func(interval.Interval) bool) {
		for _, i := range s.intervals {
			if !yield(i) {
				return
			}
		}
	}
}

// IDs returns every id of s in ascending order.
func (s *IntervalSet) IDs() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		for _, i := range s.intervals {
			for n := uint64(i.Lo()); n <= uint64(i.Hi()); n++ {
				if !yield(uint32(n)) {
					return
				}
			}
		}
	}
}
