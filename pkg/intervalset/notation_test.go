package intervalset

import (
	"encoding/json"
	"testing"

	"github.com/henderiw/intervalset/pkg/interval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := map[string]struct {
		input       string
		expected    string
		expectedErr error
	}{
		"Empty":      {input: "", expected: ""},
		"Blank":      {input: "  \t\n", expected: ""},
		"Normal":     {input: "3-4 6 7-19", expected: "3-4 6-19"},
		"Unordered":  {input: "3-3 4 7-7 8 9-19 6", expected: "3-4 6-19"},
		"Overlap":    {input: "10-20 15-30 1", expected: "1 10-30"},
		"Whitespace": {input: "\t5  1-2\n", expected: "1-2 5"},
		"BadToken":   {input: "1-2 x", expectedErr: interval.ErrParse},
		"BadPair":    {input: "1-2 5-", expectedErr: interval.ErrParse},
		"Reversed":   {input: "5-1", expectedErr: interval.ErrInvalidRange},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			s, err := Parse(tc.input)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				return
			}
			require.NoError(t, err)
			assertNormalized(t, s)
			assert.Equal(t, tc.expected, s.String())
		})
	}
}

func TestParseEquivalent(t *testing.T) {
	a := MustParse("3-4 6 7-19")
	b := MustParse("3-3 4 7-7 8 9-19 6")
	assert.True(t, a.Equal(b))
	assert.Equal(t, []interval.Interval{iv(3, 4), iv(6, 19)}, a.Intervals())
}

func TestStringRoundTrip(t *testing.T) {
	for _, input := range []string{"", "0", "1-2 4", "0-4294967295", "4294967295"} {
		s := MustParse(input)
		assert.Equal(t, input, s.String())
		assert.True(t, MustParse(s.String()).Equal(s))
	}
}

func TestTextMarshal(t *testing.T) {
	type doc struct {
		IDs *IntervalSet `json:"ids"`
	}
	b, err := json.Marshal(doc{IDs: MustParse("7-9 1")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ids":"1 7-9"}`, string(b))

	var d doc
	require.NoError(t, json.Unmarshal([]byte(`{"ids":"10 11 12-20"}`), &d))
	assert.Equal(t, "10-20", d.IDs.String())

	assert.Error(t, json.Unmarshal([]byte(`{"ids":"a-b"}`), &d))
}
