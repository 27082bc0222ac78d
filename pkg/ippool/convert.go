package ippool

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net/netip"
	"strings"

	"github.com/henderiw/intervalset/pkg/interval"
	"github.com/henderiw/intervalset/pkg/intervalset"
	"go4.org/netipx"
	"k8s.io/apimachinery/pkg/labels"
)

// IDFromAddr maps an IPv4 address onto the id domain.
func IDFromAddr(addr netip.Addr) (uint32, error) {
	addr = addr.Unmap()
	if !addr.Is4() {
		return 0, fmt.Errorf("ip address %s is not an IPv4 address", addr)
	}
	a4 := addr.As4()
	return binary.BigEndian.Uint32(a4[:]), nil
}

// AddrFromID is the inverse of IDFromAddr.
func AddrFromID(id uint32) netip.Addr {
	var a4 [4]byte
	binary.BigEndian.PutUint32(a4[:], id)
	return netip.AddrFrom4(a4)
}

// IntervalFromRange maps an IPv4 range onto the id domain.
func IntervalFromRange(r netipx.IPRange) (interval.Interval, error) {
	if !r.IsValid() {
		return interval.Interval{}, fmt.Errorf("%w: ip range %s", interval.ErrInvalidRange, r)
	}
	from, err := IDFromAddr(r.From())
	if err != nil {
		return interval.Interval{}, err
	}
	to, err := IDFromAddr(r.To())
	if err != nil {
		return interval.Interval{}, err
	}
	return interval.New(from, to)
}

// RangeFromInterval is the inverse of IntervalFromRange.
func RangeFromInterval(i interval.Interval) netipx.IPRange {
	return netipx.IPRangeFrom(AddrFromID(i.Lo()), AddrFromID(i.Hi()))
}

// FromIPSet returns the ids of the IPv4 addresses in s. Every IPv6 range
// of s is reported in the returned error, which comes with the ids of the
// IPv4 ranges.
func FromIPSet(s *netipx.IPSet) (*intervalset.IntervalSet, error) {
	if s == nil {
		return intervalset.New(), nil
	}
	var b intervalset.Builder
	var errm error
	for _, r := range s.Ranges() {
		i, err := IntervalFromRange(r)
		if err != nil {
			errm = errors.Join(errm, err)
			continue
		}
		b.AddRange(i)
	}
	set, err := b.Set()
	return set, errors.Join(errm, err)
}

// ToIPSet returns the IPv4 addresses of the ids in s.
func ToIPSet(s *intervalset.IntervalSet) (*netipx.IPSet, error) {
	var b netipx.IPSetBuilder
	for i := range s.All() {
		b.AddRange(RangeFromInterval(i))
	}
	return b.IPSet()
}

// Prefixes returns the minimal list of IPv4 prefixes covering s.
func Prefixes(s *intervalset.IntervalSet) []netip.Prefix {
	var out []netip.Prefix
	for i := range s.All() {
		for _, p := range i.Prefixes() {
			out = append(out, netip.PrefixFrom(AddrFromID(p.Base), int(p.Bits)))
		}
	}
	return out
}

// ParseRange parses an address, a "from-to" range or a prefix.
func ParseRange(s string) (netipx.IPRange, error) {
	switch {
	case strings.Contains(s, "-"):
		return netipx.ParseIPRange(s)
	case strings.Contains(s, "/"):
		p, err := netip.ParsePrefix(s)
		if err != nil {
			return netipx.IPRange{}, err
		}
		return netipx.RangeOfPrefix(p), nil
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netipx.IPRange{}, err
	}
	return netipx.IPRangeFrom(addr, addr), nil
}

// ReservedIDs rewrites reserved addresses, keyed as accepted by ParseRange,
// into the id notation idpool.WithReserved expects.
func ReservedIDs(reserved map[string]labels.Set) (map[string]labels.Set, error) {
	var errm error
	out := make(map[string]labels.Set, len(reserved))
	for k, l := range reserved {
		r, err := ParseRange(k)
		if err != nil {
			errm = errors.Join(errm, fmt.Errorf("reserved ips %q: %w", k, err))
			continue
		}
		i, err := IntervalFromRange(r)
		if err != nil {
			errm = errors.Join(errm, fmt.Errorf("reserved ips %q: %w", k, err))
			continue
		}
		out[i.String()] = l
	}
	if errm != nil {
		return nil, errm
	}
	return out, nil
}
