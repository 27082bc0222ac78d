package vlanpool

import (
	"fmt"

	"github.com/henderiw/intervalset/pkg/idpool"
	"github.com/henderiw/intervalset/pkg/intervalset"
	"k8s.io/apimachinery/pkg/labels"
)

const (
	UntaggedVLAN = 0
	DefaultVLAN  = 1
	MaxVLAN      = 4095
)

var reserved = map[string]labels.Set{
	"0":    map[string]string{"type": "untagged", "status": "reserved"},
	"1":    map[string]string{"type": "default", "status": "reserved"},
	"4095": map[string]string{"type": "reserved", "status": "reserved"},
}

// New returns a pool over VLAN ids 0-4095 with the untagged, default and
// the last VLAN already reserved.
func New(opts ...idpool.Option) (*idpool.Pool, error) {
	opts = append([]idpool.Option{
		idpool.WithReserved(reserved),
		idpool.WithValidation(validate),
	}, opts...)
	return idpool.New(UntaggedVLAN, MaxVLAN, opts...)
}

func validate(ids *intervalset.IntervalSet) error {
	switch {
	case ids.Contains(UntaggedVLAN):
		return fmt.Errorf("VLAN %d is the untagged VLAN, cannot be added to the database", UntaggedVLAN)
	case ids.Contains(DefaultVLAN):
		return fmt.Errorf("VLAN %d is the default VLAN, cannot be added to the database", DefaultVLAN)
	case ids.Contains(MaxVLAN):
		return fmt.Errorf("VLAN %d is reserved, cannot be added to the database", MaxVLAN)
	}
	return nil
}
