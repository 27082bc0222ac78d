package idpool

import (
	"github.com/go-logr/logr"
	"github.com/henderiw/intervalset/pkg/intervalset"
	"k8s.io/apimachinery/pkg/labels"
)

// ValidationFn is called with the ids of every claim before it is
// recorded. Returning an error rejects the claim. Reserved ids bypass it.
type ValidationFn func(ids *intervalset.IntervalSet) error

type Option func(*Pool)

// WithLogger sets the logger claims and releases are reported to.
func WithLogger(log logr.Logger) Option {
	return func(r *Pool) {
		r.log = log
	}
}

// WithValidation installs fn as the claim validation.
func WithValidation(fn ValidationFn) Option {
	return func(r *Pool) {
		r.validateFn = fn
	}
}

// WithReserved claims the given ids, keyed in the textual notation, when
// the pool is built. Reserved ids cannot be released or updated.
func WithReserved(reserved map[string]labels.Set) Option {
	return func(r *Pool) {
		for ids, l := range reserved {
			r.reserved[ids] = l
		}
	}
}
