// Package vxlanpool hands out VXLAN network identifiers.
package vxlanpool

import (
	"fmt"

	"github.com/henderiw/intervalset/pkg/idpool"
)

const (
	MinVNI = 1
	// MaxVNI is the largest 24-bit identifier.
	MaxVNI = 1<<24 - 1
)

// New returns a pool over the VNIs [offset, last].
func New(offset, last uint32, opts ...idpool.Option) (*idpool.Pool, error) {
	if offset < MinVNI || last > MaxVNI {
		return nil, fmt.Errorf("vni range %d-%d, does not fit in %d-%d", offset, last, MinVNI, MaxVNI)
	}
	return idpool.New(offset, last, opts...)
}

// Default returns a pool over every valid VNI.
func Default(opts ...idpool.Option) (*idpool.Pool, error) {
	return New(MinVNI, MaxVNI, opts...)
}
