package intervalset

import (
	"strings"

	"github.com/henderiw/intervalset/pkg/interval"
)

// Parse returns the set described by s, a whitespace separated list of
// "n" and "lo-hi" tokens in any order, e.g. "3-4 6 7-19". Tokens may
// overlap. An empty string is the empty set.
func Parse(s string) (*IntervalSet, error) {
	set := New()
	for _, token := range strings.Fields(s) {
		i, err := interval.Parse(token)
		if err != nil {
			return nil, err
		}
		set.Insert(i)
	}
	return set, nil
}

// MustParse is like Parse but panics if s cannot be parsed.
func MustParse(s string) *IntervalSet {
	set, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return set
}

// String renders s in the notation accepted by Parse. The empty set
// renders as "".
func (s *IntervalSet) String() string {
	var sb strings.Builder
	for idx, i := range s.intervals {
		if idx > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(i.String())
	}
	return sb.String()
}

func (s *IntervalSet) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *IntervalSet) UnmarshalText(text []byte) error {
	set, err := Parse(string(text))
	if err != nil {
		return err
	}
	s.intervals = set.intervals
	return nil
}
