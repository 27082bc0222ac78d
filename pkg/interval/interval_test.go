package interval

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	cases := map[string]struct {
		lo, hi      uint32
		expectedErr bool
	}{
		"Single": {lo: 5, hi: 5},
		"Normal": {lo: 5, hi: 10},
		"Whole":  {lo: 0, hi: math.MaxUint32},
		"Reversed": {
			lo:          10,
			hi:          5,
			expectedErr: true,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			i, err := New(tc.lo, tc.hi)
			if tc.expectedErr {
				assert.ErrorIs(t, err, ErrInvalidRange)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.lo, i.Lo())
			assert.Equal(t, tc.hi, i.Hi())
			assert.Equal(t, [2]uint32{tc.lo, tc.hi}, i.Tuple())
		})
	}
}

func TestRangeSize(t *testing.T) {
	assert.Equal(t, uint64(1), Single(7).RangeSize())
	assert.Equal(t, uint64(11), MustNew(10, 20).RangeSize())
	assert.Equal(t, uint64(1)<<32, Whole().RangeSize())
}

func TestString(t *testing.T) {
	assert.Equal(t, "3", Single(3).String())
	assert.Equal(t, "3-4", MustNew(3, 4).String())
	assert.Equal(t, "0-4294967295", Whole().String())
}

func TestCompare(t *testing.T) {
	a := MustNew(1, 5)
	b := MustNew(1, 6)
	c := MustNew(2, 3)
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, c.Compare(b))
	assert.Equal(t, 0, a.Compare(MustNew(1, 5)))
	assert.True(t, a.Less(c))
	assert.False(t, c.Less(a))
}

func TestRelations(t *testing.T) {
	cases := map[string]struct {
		a, b           Interval
		overlaps       bool
		touches        bool
		entirelyBefore bool
	}{
		"Gap": {
			a:              MustNew(0, 4),
			b:              MustNew(6, 9),
			entirelyBefore: true,
		},
		"Adjacent": {
			a:       MustNew(0, 4),
			b:       MustNew(5, 9),
			touches: true,
		},
		"Overlap": {
			a:        MustNew(0, 5),
			b:        MustNew(5, 9),
			overlaps: true,
			touches:  true,
		},
		"DomainEnd": {
			a:        MustNew(10, math.MaxUint32),
			b:        Single(math.MaxUint32),
			overlaps: true,
			touches:  true,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.overlaps, tc.a.Overlaps(tc.b))
			assert.Equal(t, tc.touches, tc.a.Touches(tc.b))
			assert.Equal(t, tc.touches, tc.b.Touches(tc.a))
			assert.Equal(t, tc.entirelyBefore, tc.a.EntirelyBefore(tc.b))
			assert.False(t, tc.b.EntirelyBefore(tc.a))
		})
	}
}

func TestParse(t *testing.T) {
	cases := map[string]struct {
		token       string
		expected    Interval
		expectedErr error
	}{
		"Single":       {token: "6", expected: Single(6)},
		"Range":        {token: "7-19", expected: MustNew(7, 19)},
		"Degenerate":   {token: "4-4", expected: Single(4)},
		"Max":          {token: "4294967295", expected: Single(math.MaxUint32)},
		"Empty":        {token: "", expectedErr: ErrParse},
		"NotNumber":    {token: "abc", expectedErr: ErrParse},
		"Negative":     {token: "-5", expectedErr: ErrParse},
		"MissingUpper": {token: "5-", expectedErr: ErrParse},
		"TwoDashes":    {token: "1-2-3", expectedErr: ErrParse},
		"Overflow":     {token: "4294967296", expectedErr: ErrParse},
		"Reversed":     {token: "9-3", expectedErr: ErrInvalidRange},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			i, err := Parse(tc.token)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				var perr *ParseError
				if assert.True(t, errors.As(err, &perr)) {
					assert.Equal(t, tc.token, perr.Token)
				}
				return
			}
			assert.NoError(t, err)
			if diff := cmp.Diff(tc.expected, i); diff != "" {
				t.Errorf("-want, +got:\n%s", diff)
			}
		})
	}
}

func TestPrefixes(t *testing.T) {
	cases := map[string]struct {
		i        Interval
		expected []Prefix
	}{
		"Single": {
			i:        Single(10),
			expected: []Prefix{{Base: 10, Bits: 32}},
		},
		"Aligned": {
			i:        MustNew(1024, 2047),
			expected: []Prefix{{Base: 1024, Bits: 22}},
		},
		"Unaligned": {
			i: MustNew(1, 6),
			expected: []Prefix{
				{Base: 1, Bits: 32},
				{Base: 2, Bits: 31},
				{Base: 4, Bits: 31},
				{Base: 6, Bits: 32},
			},
		},
		"Whole": {
			i:        Whole(),
			expected: []Prefix{{Base: 0, Bits: 0}},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := tc.i.Prefixes()
			if diff := cmp.Diff(tc.expected, got); diff != "" {
				t.Errorf("-want, +got:\n%s", diff)
			}
			var total uint64
			for _, p := range got {
				total += p.Interval().RangeSize()
			}
			assert.Equal(t, tc.i.RangeSize(), total)
		})
	}
}
