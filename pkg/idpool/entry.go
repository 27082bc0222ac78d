package idpool

import (
	"fmt"

	"github.com/henderiw/intervalset/pkg/interval"
	"k8s.io/apimachinery/pkg/labels"
)

// Entry is a run of consecutive claimed ids sharing the same labels.
type Entry struct {
	Interval interval.Interval
	Labels   labels.Set
	Reserved bool
}

type Entries []Entry

func (r Entry) String() string {
	return fmt.Sprintf("ids: %s, labels: %s", r.Interval, r.Labels.String())
}

func (r Entry) Equal(e2 Entry) bool {
	return r.Interval == e2.Interval &&
		r.Reserved == e2.Reserved &&
		labels.Equals(r.Labels, e2.Labels)
}
