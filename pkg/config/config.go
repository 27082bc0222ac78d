// Package config loads named interval sets and pool definitions from YAML.
//
//	sets:
//	  infra: "0-9 4000-4095"
//	pools:
//	  vlan:
//	    kind: vlan
//	  tenants:
//	    kind: id
//	    range: "100-199"
//	    reserved:
//	      "100": {status: reserved}
//	    claims:
//	      - ids: "110-119"
//	        labels: {tenant: red}
//	  overlay:
//	    kind: vxlan
//	    range: "10000-19999"
//	  lan:
//	    kind: ip
//	    range: "10.0.0.0-10.0.0.255"
//	    reserved:
//	      "10.0.0.1": {status: gateway}
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/henderiw/intervalset/pkg/intervalset"
	"gopkg.in/yaml.v3"
)

type PoolKind string

const (
	PoolKindID   PoolKind = "id"
	PoolKindVLAN PoolKind = "vlan"
	PoolKindIP   PoolKind = "ip"
	// PoolKindVXLAN covers every VNI unless a range is given.
	PoolKindVXLAN PoolKind = "vxlan"
)

type Config struct {
	Sets  map[string]*intervalset.IntervalSet `yaml:"sets,omitempty"`
	Pools map[string]Pool                     `yaml:"pools,omitempty"`
}

type Pool struct {
	Kind PoolKind `yaml:"kind"`
	// Range is "start-end" for id and vxlan pools and "from-to" addresses
	// for ip pools. vlan pools always cover 0-4095.
	Range string `yaml:"range,omitempty"`
	// Reserved keys follow the notation of the claims: ids for id, vlan and
	// vxlan pools, an address, "from-to" range or prefix for ip pools.
	Reserved map[string]map[string]string `yaml:"reserved,omitempty"`
	Claims   []Claim                      `yaml:"claims,omitempty"`
}

type Claim struct {
	// IDs is in the interval set notation for id, vlan and vxlan pools and an
	// address, "from-to" range or prefix for ip pools.
	IDs    string            `yaml:"ids"`
	Labels map[string]string `yaml:"labels,omitempty"`
}

// Load reads and validates the configuration at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	}
	return Parse(b)
}

// Parse decodes and validates a YAML configuration.
func Parse(b []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("cannot decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (r *Config) Validate() error {
	var errm error
	for name, s := range r.Sets {
		if s == nil {
			errm = errors.Join(errm, fmt.Errorf("set %q has no value", name))
		}
	}
	for name, p := range r.Pools {
		switch p.Kind {
		case PoolKindID, PoolKindIP:
			if p.Range == "" {
				errm = errors.Join(errm, fmt.Errorf("pool %q of kind %s needs a range", name, p.Kind))
			}
		case PoolKindVXLAN:
		case PoolKindVLAN:
			if p.Range != "" {
				errm = errors.Join(errm, fmt.Errorf("pool %q of kind vlan cannot set a range", name))
			}
		default:
			errm = errors.Join(errm, fmt.Errorf("pool %q has unknown kind %q", name, p.Kind))
		}
		for idx, c := range p.Claims {
			if c.IDs == "" {
				errm = errors.Join(errm, fmt.Errorf("pool %q claim %d has no ids", name, idx))
			}
		}
	}
	return errm
}

// Set returns the named set.
func (r *Config) Set(name string) (*intervalset.IntervalSet, error) {
	s, ok := r.Sets[name]
	if !ok {
		return nil, fmt.Errorf("set %q not found", name)
	}
	return s.Clone(), nil
}
