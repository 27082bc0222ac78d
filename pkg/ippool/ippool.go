package ippool

import (
	"fmt"
	"net/netip"

	"github.com/henderiw/intervalset/pkg/idpool"
	"github.com/henderiw/intervalset/pkg/intervalset"
	"go4.org/netipx"
	"k8s.io/apimachinery/pkg/labels"
)

// Pool hands out IPv4 addresses from a range.
type Pool struct {
	ipRange netipx.IPRange
	pool    *idpool.Pool
}

// Entry is a run of consecutive claimed addresses sharing the same labels.
type Entry struct {
	Range  netipx.IPRange
	Labels labels.Set
}

func New(ipRange netipx.IPRange, opts ...idpool.Option) (*Pool, error) {
	rng, err := IntervalFromRange(ipRange)
	if err != nil {
		return nil, err
	}
	p, err := idpool.New(rng.Lo(), rng.Hi(), opts...)
	if err != nil {
		return nil, err
	}
	return &Pool{
		ipRange: ipRange,
		pool:    p,
	}, nil
}

// Parse returns a pool over a range written as "from-to", e.g.
// "10.0.0.10-10.0.0.20".
func Parse(s string, opts ...idpool.Option) (*Pool, error) {
	ipRange, err := netipx.ParseIPRange(s)
	if err != nil {
		return nil, err
	}
	return New(ipRange, opts...)
}

func (r *Pool) Range() netipx.IPRange {
	return r.ipRange
}

func (r *Pool) Get(addr string) (labels.Set, error) {
	id, err := r.validateIP(addr)
	if err != nil {
		return nil, err
	}
	return r.pool.Get(id)
}

func (r *Pool) Claim(addr string, l labels.Set) error {
	id, err := r.validateIP(addr)
	if err != nil {
		return err
	}
	if err := r.pool.Claim(id, l); err != nil {
		return fmt.Errorf("claim failed ip %s: %w", addr, err)
	}
	return nil
}

// ClaimRange claims every address of ipRange.
func (r *Pool) ClaimRange(ipRange netipx.IPRange, l labels.Set) error {
	i, err := IntervalFromRange(ipRange)
	if err != nil {
		return err
	}
	return r.pool.ClaimSet(intervalset.FromInterval(i), l)
}

// ClaimDynamic claims the lowest free address.
func (r *Pool) ClaimDynamic(l labels.Set) (netip.Addr, error) {
	id, err := r.pool.ClaimDynamic(l)
	if err != nil {
		return netip.Addr{}, err
	}
	return AddrFromID(id), nil
}

func (r *Pool) Release(addr string) error {
	id, err := r.validateIP(addr)
	if err != nil {
		return err
	}
	return r.pool.Release(id)
}

func (r *Pool) Update(addr string, l labels.Set) error {
	id, err := r.validateIP(addr)
	if err != nil {
		return err
	}
	if err := r.pool.Update(id, l); err != nil {
		return fmt.Errorf("update failed ip %s: %w", addr, err)
	}
	return nil
}

func (r *Pool) Count() uint64 {
	return r.pool.Count()
}

func (r *Pool) Has(addr string) bool {
	id, err := r.validateIP(addr)
	if err != nil {
		return false
	}
	return r.pool.Has(id)
}

func (r *Pool) IsFree(addr string) bool {
	id, err := r.validateIP(addr)
	if err != nil {
		return false
	}
	return r.pool.IsFree(id)
}

func (r *Pool) FindFree() (netip.Addr, error) {
	id, err := r.pool.FindFree()
	if err != nil {
		return netip.Addr{}, err
	}
	return AddrFromID(id), nil
}

// FreeRanges returns the unclaimed addresses as sorted ranges.
func (r *Pool) FreeRanges() []netipx.IPRange {
	var out []netipx.IPRange
	for i := range r.pool.Free().All() {
		out = append(out, RangeFromInterval(i))
	}
	return out
}

// FreePrefixes returns the minimal list of prefixes covering the unclaimed
// addresses.
func (r *Pool) FreePrefixes() []netip.Prefix {
	return Prefixes(r.pool.Free())
}

// Claimed returns the claimed addresses.
func (r *Pool) Claimed() (*netipx.IPSet, error) {
	return ToIPSet(r.pool.Claimed())
}

func (r *Pool) GetByLabel(selector labels.Selector) []Entry {
	var entries []Entry
	for _, e := range r.pool.GetByLabel(selector) {
		entries = append(entries, Entry{Range: RangeFromInterval(e.Interval), Labels: e.Labels})
	}
	return entries
}

func (r *Pool) validateIP(addr string) (uint32, error) {
	claimIP, err := netip.ParseAddr(addr)
	if err != nil {
		return 0, fmt.Errorf("ip address %s is invalid", addr)
	}
	if !r.ipRange.Contains(claimIP) {
		return 0, fmt.Errorf("ip address %s, does not fit in the range from %s to %s", addr, r.ipRange.From(), r.ipRange.To())
	}
	return IDFromAddr(claimIP)
}
