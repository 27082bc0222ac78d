package interval

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse parses a single token of the textual notation: either "n",
// denoting [n, n], or "lo-hi", denoting [lo, hi].
func Parse(s string) (Interval, error) {
	h := strings.IndexByte(s, '-')
	if h == -1 {
		n, err := parseBound(s)
		if err != nil {
			return Interval{}, &ParseError{Token: s, Err: err}
		}
		return Single(n), nil
	}
	from, to := s[:h], s[h+1:]
	lo, err := parseBound(from)
	if err != nil {
		return Interval{}, &ParseError{Token: s, Err: fmt.Errorf("invalid lower bound %q: %w", from, err)}
	}
	hi, err := parseBound(to)
	if err != nil {
		return Interval{}, &ParseError{Token: s, Err: fmt.Errorf("invalid upper bound %q: %w", to, err)}
	}
	i, err := New(lo, hi)
	if err != nil {
		return Interval{}, &ParseError{Token: s, Err: err}
	}
	return i, nil
}

func parseBound(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(n), nil
}
