package idpool

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/go-logr/logr"
	"github.com/henderiw/intervalset/pkg/interval"
	"github.com/henderiw/intervalset/pkg/intervalset"
	"k8s.io/apimachinery/pkg/labels"
)

// Pool hands out ids from the range [start, end] and remembers the labels
// each claim was made with. It is safe for concurrent use.
type Pool struct {
	m          *sync.RWMutex
	log        logr.Logger
	all        *intervalset.IntervalSet
	claimed    *intervalset.IntervalSet
	entries    Entries // sorted, non overlapping
	reserved   map[string]labels.Set
	validateFn ValidationFn
}

func New(start, end uint32, opts ...Option) (*Pool, error) {
	rng, err := interval.New(start, end)
	if err != nil {
		return nil, fmt.Errorf("cannot create pool: %w", err)
	}
	r := &Pool{
		m:        new(sync.RWMutex),
		log:      logr.Discard(),
		all:      intervalset.FromInterval(rng),
		claimed:  intervalset.New(),
		reserved: map[string]labels.Set{},
	}
	for _, opt := range opts {
		opt(r)
	}

	var errm error
	for s, l := range r.reserved {
		ids, err := intervalset.Parse(s)
		if err != nil {
			errm = errors.Join(errm, fmt.Errorf("reserved ids %q: %w", s, err))
			continue
		}
		if err := r.add(ids, l, true); err != nil {
			errm = errors.Join(errm, err)
		}
	}
	if errm != nil {
		return nil, errm
	}
	return r, nil
}

// Range returns the ids managed by the pool.
func (r *Pool) Range() interval.Interval {
	rng, _ := r.all.Bounds()
	return rng
}

func (r *Pool) Get(id uint32) (labels.Set, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	if err := r.validate(id); err != nil {
		return nil, err
	}
	idx, ok := r.find(id)
	if !ok {
		return nil, fmt.Errorf("no match found for: %d", id)
	}
	return r.entries[idx].Labels, nil
}

// Claim claims a single id.
func (r *Pool) Claim(id uint32, l labels.Set) error {
	r.m.Lock()
	defer r.m.Unlock()

	return r.add(intervalset.FromInterval(interval.Single(id)), l, false)
}

// ClaimRange claims every id described by s in the textual notation, e.g.
// "100-199 250". Either all ids are claimed or none.
func (r *Pool) ClaimRange(s string, l labels.Set) error {
	ids, err := intervalset.Parse(s)
	if err != nil {
		return err
	}
	if ids.IsEmpty() {
		return fmt.Errorf("no ids in range %q", s)
	}

	r.m.Lock()
	defer r.m.Unlock()

	return r.add(ids, l, false)
}

// ClaimSet claims every id of ids.
func (r *Pool) ClaimSet(ids *intervalset.IntervalSet, l labels.Set) error {
	r.m.Lock()
	defer r.m.Unlock()

	return r.add(ids.Clone(), l, false)
}

// ClaimDynamic claims the lowest free id.
func (r *Pool) ClaimDynamic(l labels.Set) (uint32, error) {
	r.m.Lock()
	defer r.m.Unlock()

	id, err := r.findFree()
	if err != nil {
		return 0, err
	}
	if err := r.add(intervalset.FromInterval(interval.Single(id)), l, false); err != nil {
		return 0, err
	}
	return id, nil
}

// ClaimSize claims the size lowest free ids, which need not be
// consecutive, and returns them.
func (r *Pool) ClaimSize(size uint64, l labels.Set) (*intervalset.IntervalSet, error) {
	r.m.Lock()
	defer r.m.Unlock()

	ids, err := r.findFreeSize(size)
	if err != nil {
		return nil, err
	}
	if err := r.add(ids, l, false); err != nil {
		return nil, err
	}
	return ids.Clone(), nil
}

// Release frees id. Releasing a free id is not an error.
func (r *Pool) Release(id uint32) error {
	r.m.Lock()
	defer r.m.Unlock()

	if err := r.validate(id); err != nil {
		return err
	}
	return r.delete(interval.Single(id))
}

// ReleaseRange frees every id described by s in the textual notation.
func (r *Pool) ReleaseRange(s string) error {
	ids, err := intervalset.Parse(s)
	if err != nil {
		return err
	}

	r.m.Lock()
	defer r.m.Unlock()

	if !ids.Difference(r.all).IsEmpty() {
		return fmt.Errorf("range %q does not fit in the pool %s", s, r.Range())
	}
	if err := r.checkReserved(ids); err != nil {
		return err
	}
	for i := range ids.All() {
		if err := r.delete(i); err != nil {
			return err
		}
	}
	return nil
}

// ReleaseByLabel frees every claim whose labels match selector. Reserved
// claims are kept.
func (r *Pool) ReleaseByLabel(selector labels.Selector) error {
	r.m.Lock()
	defer r.m.Unlock()

	for _, e := range r.getByLabel(selector) {
		if e.Reserved {
			continue
		}
		if err := r.delete(e.Interval); err != nil {
			return err
		}
	}
	return nil
}

// Update replaces the labels of a claimed id.
func (r *Pool) Update(id uint32, l labels.Set) error {
	r.m.Lock()
	defer r.m.Unlock()

	if err := r.validate(id); err != nil {
		return err
	}
	idx, ok := r.find(id)
	if !ok {
		return fmt.Errorf("entry %d not found", id)
	}
	if r.entries[idx].Reserved {
		return fmt.Errorf("id %d is reserved", id)
	}
	single := interval.Single(id)
	if err := r.delete(single); err != nil {
		return err
	}
	r.insert(Entry{Interval: single, Labels: l})
	r.claimed.Insert(single)
	r.log.V(1).Info("update", "id", id, "labels", l.String())
	return nil
}

// Count returns the number of claimed ids.
func (r *Pool) Count() uint64 {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.claimed.Size()
}

func (r *Pool) Has(id uint32) bool {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.claimed.Contains(id)
}

// IsFree reports whether id is in the pool and unclaimed.
func (r *Pool) IsFree(id uint32) bool {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.all.Contains(id) && !r.claimed.Contains(id)
}

// FindFree returns the lowest free id without claiming it.
func (r *Pool) FindFree() (uint32, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.findFree()
}

// Claimed returns a copy of the claimed ids.
func (r *Pool) Claimed() *intervalset.IntervalSet {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.claimed.Clone()
}

// Free returns the ids that are not claimed.
func (r *Pool) Free() *intervalset.IntervalSet {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.all.Difference(r.claimed)
}

func (r *Pool) GetAll() Entries {
	r.m.RLock()
	defer r.m.RUnlock()

	return slices.Clone(r.entries)
}

func (r *Pool) GetByLabel(selector labels.Selector) Entries {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.getByLabel(selector)
}

func (r *Pool) getByLabel(selector labels.Selector) Entries {
	entries := Entries{}
	for _, e := range r.entries {
		if selector.Matches(e.Labels) {
			entries = append(entries, e)
		}
	}
	return entries
}

func (r *Pool) validate(id uint32) error {
	if !r.all.Contains(id) {
		return fmt.Errorf("id %d, does not fit in the range %s", id, r.Range())
	}
	return nil
}

func (r *Pool) add(ids *intervalset.IntervalSet, l labels.Set, reserved bool) error {
	if outside := ids.Difference(r.all); !outside.IsEmpty() {
		return fmt.Errorf("ids %s, do not fit in the range %s", outside, r.Range())
	}
	if !reserved && r.validateFn != nil {
		if err := r.validateFn(ids); err != nil {
			return err
		}
	}
	if used := ids.Intersection(r.claimed); !used.IsEmpty() {
		return fmt.Errorf("ids %s already claimed", used)
	}
	for i := range ids.All() {
		r.insert(Entry{Interval: i, Labels: l, Reserved: reserved})
	}
	r.claimed = r.claimed.Union(ids)
	r.log.V(1).Info("claim", "ids", ids.String(), "labels", l.String(), "reserved", reserved)
	return nil
}

// insert places e, which must not overlap any entry, in order.
func (r *Pool) insert(e Entry) {
	idx, _ := slices.BinarySearchFunc(r.entries, e.Interval.Lo(), func(e Entry, lo uint32) int {
		switch {
		case e.Interval.Lo() < lo:
			return -1
		case e.Interval.Lo() > lo:
			return 1
		}
		return 0
	})
	r.entries = slices.Insert(r.entries, idx, e)
}

// checkReserved fails when any id of ids belongs to a reserved entry.
func (r *Pool) checkReserved(ids *intervalset.IntervalSet) error {
	for _, e := range r.entries {
		if e.Reserved && !intervalset.FromInterval(e.Interval).Intersection(ids).IsEmpty() {
			return fmt.Errorf("ids %s are reserved", e.Interval)
		}
	}
	return nil
}

// delete frees every claimed id of rng, splitting the entries it cuts
// through. Nothing is freed when rng touches a reserved entry.
func (r *Pool) delete(rng interval.Interval) error {
	if err := r.checkReserved(intervalset.FromInterval(rng)); err != nil {
		return err
	}
	var kept Entries
	for _, e := range r.entries {
		if !e.Interval.Overlaps(rng) {
			kept = append(kept, e)
			continue
		}
		// keep the parts of e that lie outside rng.
		rest := intervalset.FromInterval(e.Interval).Difference(intervalset.FromInterval(rng))
		for i := range rest.All() {
			kept = append(kept, Entry{Interval: i, Labels: e.Labels})
		}
	}
	r.entries = kept
	released := r.claimed.Intersection(intervalset.FromInterval(rng))
	r.claimed = r.claimed.Difference(released)
	if !released.IsEmpty() {
		r.log.V(1).Info("release", "ids", released.String())
	}
	return nil
}

// find returns the index of the entry holding id.
func (r *Pool) find(id uint32) (int, bool) {
	idx, found := slices.BinarySearchFunc(r.entries, id, func(e Entry, id uint32) int {
		switch {
		case e.Interval.Hi() < id:
			return -1
		case e.Interval.Lo() > id:
			return 1
		}
		return 0
	})
	return idx, found
}

func (r *Pool) findFree() (uint32, error) {
	free := r.all.Difference(r.claimed)
	iter := free.Iterate()
	if iter.Next() {
		return iter.Value().Lo(), nil
	}
	return 0, fmt.Errorf("no free entry found")
}

func (r *Pool) findFreeSize(size uint64) (*intervalset.IntervalSet, error) {
	if size == 0 {
		return nil, fmt.Errorf("size must be positive")
	}
	free := r.all.Difference(r.claimed)
	if free.Size() < size {
		return nil, fmt.Errorf("could not find free entries that fit in size %d, free %d", size, free.Size())
	}
	ids := intervalset.New()
	for i := range free.All() {
		if i.RangeSize() >= size {
			ids.Insert(interval.MustNew(i.Lo(), uint32(uint64(i.Lo())+size-1)))
			break
		}
		ids.Insert(i)
		size -= i.RangeSize()
	}
	return ids, nil
}
