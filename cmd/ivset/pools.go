package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-logr/logr"
	"github.com/henderiw/intervalset/pkg/config"
	"github.com/henderiw/intervalset/pkg/idpool"
	"github.com/henderiw/intervalset/pkg/interval"
	"github.com/henderiw/intervalset/pkg/intervalset"
	"github.com/henderiw/intervalset/pkg/ippool"
	"github.com/henderiw/intervalset/pkg/vlanpool"
	"github.com/henderiw/intervalset/pkg/vxlanpool"
	"k8s.io/apimachinery/pkg/labels"
)

// poolStatus is the free space of a configured pool.
type poolStatus struct {
	name    string
	kind    config.PoolKind
	claimed uint64
	free    []string
	// matched holds the claims selected by the --selector flag.
	matched []string
}

func buildPools(cfg *config.Config, selector labels.Selector, log logr.Logger) ([]poolStatus, error) {
	names := make([]string, 0, len(cfg.Pools))
	for name := range cfg.Pools {
		names = append(names, name)
	}
	sort.Strings(names)

	var errm error
	var out []poolStatus
	for _, name := range names {
		st, err := buildPool(name, cfg.Pools[name], selector, log.WithValues("pool", name))
		if err != nil {
			errm = errors.Join(errm, fmt.Errorf("pool %q: %w", name, err))
			continue
		}
		out = append(out, st)
	}
	return out, errm
}

func buildPool(name string, p config.Pool, selector labels.Selector, log logr.Logger) (poolStatus, error) {
	st := poolStatus{name: name, kind: p.Kind}
	reserved := map[string]labels.Set{}
	for ids, l := range p.Reserved {
		reserved[ids] = l
	}
	opts := []idpool.Option{idpool.WithLogger(log)}
	if p.Kind == config.PoolKindIP {
		return buildIPPool(st, p, reserved, selector, opts)
	}

	opts = append(opts, idpool.WithReserved(reserved))
	switch p.Kind {
	case config.PoolKindVLAN:
		pool, err := vlanpool.New(opts...)
		if err != nil {
			return st, err
		}
		return claimAll(st, pool, p.Claims, selector)
	case config.PoolKindVXLAN:
		pool, err := vxlanPool(p.Range, opts...)
		if err != nil {
			return st, err
		}
		return claimAll(st, pool, p.Claims, selector)
	default:
		rng, err := interval.Parse(p.Range)
		if err != nil {
			return st, err
		}
		pool, err := idpool.New(rng.Lo(), rng.Hi(), opts...)
		if err != nil {
			return st, err
		}
		return claimAll(st, pool, p.Claims, selector)
	}
}

// buildIPPool reads reserved keys and claims as addresses, ranges or
// prefixes.
func buildIPPool(st poolStatus, p config.Pool, reserved map[string]labels.Set, selector labels.Selector, opts []idpool.Option) (poolStatus, error) {
	ids, err := ippool.ReservedIDs(reserved)
	if err != nil {
		return st, err
	}
	pool, err := ippool.Parse(p.Range, append(opts, idpool.WithReserved(ids))...)
	if err != nil {
		return st, err
	}
	for _, c := range p.Claims {
		r, err := ippool.ParseRange(c.IDs)
		if err != nil {
			return st, err
		}
		if err := pool.ClaimRange(r, c.Labels); err != nil {
			return st, err
		}
	}
	st.claimed = pool.Count()
	for _, r := range pool.FreeRanges() {
		st.free = append(st.free, r.String())
	}
	if selector != nil {
		for _, e := range pool.GetByLabel(selector) {
			st.matched = append(st.matched, fmt.Sprintf("ips: %s, labels: %s", e.Range, e.Labels))
		}
	}
	return st, nil
}

func vxlanPool(rng string, opts ...idpool.Option) (*idpool.Pool, error) {
	if rng == "" {
		return vxlanpool.Default(opts...)
	}
	i, err := interval.Parse(rng)
	if err != nil {
		return nil, err
	}
	return vxlanpool.New(i.Lo(), i.Hi(), opts...)
}

func claimAll(st poolStatus, pool *idpool.Pool, claims []config.Claim, selector labels.Selector) (poolStatus, error) {
	for _, c := range claims {
		if err := pool.ClaimRange(c.IDs, c.Labels); err != nil {
			return st, err
		}
	}
	st.claimed = pool.Count()
	st.free = freeTokens(pool.Free())
	if selector != nil {
		for _, e := range pool.GetByLabel(selector) {
			st.matched = append(st.matched, e.String())
		}
	}
	return st, nil
}

func freeTokens(s *intervalset.IntervalSet) []string {
	var out []string
	for i := range s.All() {
		out = append(out, i.String())
	}
	return out
}
