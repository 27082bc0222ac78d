package interval

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRange is returned when a lower bound exceeds its upper bound.
	ErrInvalidRange = errors.New("invalid range")
	// ErrParse is returned when a token of the textual notation is malformed.
	ErrParse = errors.New("parse error")
)

// ParseError records a token of the textual notation that could not be
// turned into an interval. It matches ErrParse, and also ErrInvalidRange
// when the token was well formed but its bounds were reversed.
type ParseError struct {
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q: %v", e.Token, e.Err)
}

func (e *ParseError) Unwrap() []error {
	return []error{ErrParse, e.Err}
}
