package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
sets:
  infra: "0-9 4000-4095"
  single: 7
  none: ""
pools:
  vlan:
    kind: vlan
    claims:
      - ids: "100-199"
        labels: {tenant: red}
  lan:
    kind: ip
    range: "10.0.0.0-10.0.0.255"
`

func TestParse(t *testing.T) {
	cases := map[string]struct {
		input       string
		expectedErr bool
	}{
		"Sample": {input: sample},
		"Empty":  {input: ""},
		"BadSet": {
			input:       "sets:\n  a: \"1-x\"\n",
			expectedErr: true,
		},
		"NullSet": {
			input:       "sets:\n  a:\n",
			expectedErr: true,
		},
		"UnknownKind": {
			input:       "pools:\n  a:\n    kind: foo\n",
			expectedErr: true,
		},
		"MissingRange": {
			input:       "pools:\n  a:\n    kind: id\n",
			expectedErr: true,
		},
		"VLANRange": {
			input:       "pools:\n  a:\n    kind: vlan\n    range: 1-5\n",
			expectedErr: true,
		},
		"VXLANDefaultRange": {
			input: "pools:\n  a:\n    kind: vxlan\n",
		},
		"VXLANRange": {
			input: "pools:\n  a:\n    kind: vxlan\n    range: 10000-19999\n",
		},
		"ClaimWithoutIDs": {
			input:       "pools:\n  a:\n    kind: id\n    range: 1-5\n    claims:\n      - labels: {a: b}\n",
			expectedErr: true,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(tc.input))
			if tc.expectedErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	infra, err := cfg.Set("infra")
	require.NoError(t, err)
	assert.Equal(t, "0-9 4000-4095", infra.String())

	single, err := cfg.Set("single")
	require.NoError(t, err)
	assert.Equal(t, "7", single.String())

	none, err := cfg.Set("none")
	require.NoError(t, err)
	assert.True(t, none.IsEmpty())

	_, err = cfg.Set("missing")
	assert.Error(t, err)

	require.Contains(t, cfg.Pools, "vlan")
	assert.Equal(t, PoolKindVLAN, cfg.Pools["vlan"].Kind)
	assert.Equal(t, "red", cfg.Pools["vlan"].Claims[0].Labels["tenant"])
	assert.Equal(t, "10.0.0.0-10.0.0.255", cfg.Pools["lan"].Range)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
