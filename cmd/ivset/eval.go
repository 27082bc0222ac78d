package main

import (
	"fmt"
	"strings"

	"github.com/henderiw/intervalset/pkg/config"
	"github.com/henderiw/intervalset/pkg/intervalset"
)

var operators = []struct {
	name       string
	combinator intervalset.Combinator
}{
	{name: "union", combinator: intervalset.Or},
	{name: "intersection", combinator: intervalset.And},
	{name: "difference", combinator: intervalset.AndNot},
	{name: "symdiff", combinator: intervalset.Xor},
}

func operatorNames() []string {
	names := make([]string, 0, len(operators))
	for _, op := range operators {
		names = append(names, op.name)
	}
	return names
}

func lookupOperator(name string) (intervalset.Combinator, bool) {
	for _, op := range operators {
		if op.name == name {
			return op.combinator, true
		}
	}
	return nil, false
}

// operand resolves s, either a set in the textual notation or "@name" of a
// set defined in cfg.
func operand(s string, cfg *config.Config) (*intervalset.IntervalSet, error) {
	name, ok := strings.CutPrefix(s, "@")
	if !ok {
		return intervalset.Parse(s)
	}
	if cfg == nil {
		return nil, fmt.Errorf("set %q referenced without a config file", name)
	}
	return cfg.Set(name)
}

func evaluate(op, a, b string, cfg *config.Config) (*intervalset.IntervalSet, error) {
	combinator, ok := lookupOperator(op)
	if !ok {
		return nil, fmt.Errorf("unknown operator %q", op)
	}
	left, err := operand(a, cfg)
	if err != nil {
		return nil, fmt.Errorf("left operand: %w", err)
	}
	right, err := operand(b, cfg)
	if err != nil {
		return nil, fmt.Errorf("right operand: %w", err)
	}
	return intervalset.Merge(left, right, combinator), nil
}
