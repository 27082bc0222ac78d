package intervalset

import (
	"slices"
	"testing"

	"github.com/henderiw/intervalset/pkg/interval"
	"github.com/stretchr/testify/assert"
)

func TestIterate(t *testing.T) {
	s := MustParse("20-30 1 5-7")

	var got []interval.Interval
	iter := s.Iterate()
	for iter.Next() {
		got = append(got, iter.Value())
	}
	assert.Equal(t, []interval.Interval{iv(1, 1), iv(5, 7), iv(20, 30)}, got)
	assert.False(t, iter.Next())

	iter.Reset()
	assert.True(t, iter.Next())
	assert.Equal(t, iv(1, 1), iter.Value())

	assert.False(t, New().Iterate().Next())
}

func TestAll(t *testing.T) {
	s := MustParse("1 5-7")
	assert.Equal(t, s.Intervals(), slices.Collect(s.All()))
	// a second pass sees the same intervals.
	assert.Equal(t, s.Intervals(), slices.Collect(s.All()))

	for i := range s.All() {
		assert.Equal(t, iv(1, 1), i)
		break
	}
}

func TestIDs(t *testing.T) {
	s := MustParse("1 5-7 4294967295")
	assert.Equal(t, []uint32{1, 5, 6, 7, 4294967295}, slices.Collect(s.IDs()))
	assert.Empty(t, slices.Collect(New().IDs()))
}
