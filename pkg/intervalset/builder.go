package intervalset

import (
	"errors"
	"fmt"

	"github.com/henderiw/intervalset/pkg/interval"
)

// Builder accumulates additions and removals and produces the resulting
// set. The zero value is an empty builder. Invalid inputs do not stop the
// builder; they are collected and returned by Set.
type Builder struct {
	in   *IntervalSet
	out  *IntervalSet
	errs error
}

func (b *Builder) Add(n uint32) {
	b.AddRange(interval.Single(n))
}

func (b *Builder) Remove(n uint32) {
	b.RemoveRange(interval.Single(n))
}

// AddRange adds all ids of r.
func (b *Builder) AddRange(r interval.Interval) {
	b.init()
	// a removal recorded earlier must not swallow ids added now.
	if !b.out.IsEmpty() {
		b.normalize()
	}
	b.in.Insert(r)
}

// RemoveRange removes all ids of r.
func (b *Builder) RemoveRange(r interval.Interval) {
	b.init()
	b.out.Insert(r)
}

// AddString adds the ids described in the textual notation.
func (b *Builder) AddString(s string) {
	set, err := Parse(s)
	if err != nil {
		b.errs = errors.Join(b.errs, fmt.Errorf("addString(%q): %w", s, err))
		return
	}
	b.AddSet(set)
}

// RemoveString removes the ids described in the textual notation.
func (b *Builder) RemoveString(s string) {
	set, err := Parse(s)
	if err != nil {
		b.errs = errors.Join(b.errs, fmt.Errorf("removeString(%q): %w", s, err))
		return
	}
	b.RemoveSet(set)
}

// AddSet adds all ids of set.
func (b *Builder) AddSet(set *IntervalSet) {
	if set == nil {
		return
	}
	b.init()
	if !b.out.IsEmpty() {
		b.normalize()
	}
	b.in = b.in.Union(set)
}

// RemoveSet removes all ids of set.
func (b *Builder) RemoveSet(set *IntervalSet) {
	if set == nil {
		return
	}
	b.init()
	b.out = b.out.Union(set)
}

func (b *Builder) init() {
	if b.in == nil {
		b.in = New()
	}
	if b.out == nil {
		b.out = New()
	}
}

// normalize applies the pending removals: in becomes in minus out and out
// becomes empty.
func (b *Builder) normalize() {
	b.in = b.in.Difference(b.out)
	b.out = New()
}

// Set returns the set built so far together with every error collected
// since the previous call. The builder stays usable.
func (b *Builder) Set() (*IntervalSet, error) {
	b.init()
	b.normalize()
	set := b.in.Clone()

	errs := b.errs
	b.errs = nil
	return set, errs
}
