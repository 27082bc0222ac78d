package vlanpool

import (
	"testing"

	"github.com/tj/assert"
	"k8s.io/apimachinery/pkg/labels"
)

func TestClaim(t *testing.T) {
	cases := map[string]struct {
		newSuccessEntries map[uint32]labels.Set
		newFailedEntries  map[uint32]labels.Set
		expectedEntries   uint64
	}{

		"Normal": {
			newSuccessEntries: map[uint32]labels.Set{
				10: map[string]string{},
				11: map[string]string{},
			},
			newFailedEntries: map[uint32]labels.Set{
				0:    map[string]string{},
				1:    map[string]string{},
				4095: map[string]string{},
				5000: map[string]string{},
			},
			expectedEntries: 5,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r, err := New()
			assert.NoError(t, err)

			for id, d := range tc.newSuccessEntries {
				err := r.Claim(id, d)
				assert.NoError(t, err)

			}
			for id, d := range tc.newFailedEntries {
				err := r.Claim(id, d)
				assert.Error(t, err)
			}
			for _, id := range []uint32{UntaggedVLAN, DefaultVLAN, MaxVLAN} {
				if !r.Has(id) {
					t.Errorf("%s expecting reserved entry: %d\n", name, id)
				}
			}
			for id := range tc.newSuccessEntries {
				if !r.Has(id) {
					t.Errorf("%s expecting success claim entry: %d\n", name, id)
				}
			}
			if r.Count() != tc.expectedEntries {
				t.Errorf("%s: -want %d, +got: %d\n", name, tc.expectedEntries, r.Count())
			}
		})
	}
}

func TestFree(t *testing.T) {
	r, err := New()
	assert.NoError(t, err)
	assert.Equal(t, "2-4094", r.Free().String())

	id, err := r.ClaimDynamic(labels.Set{"app": "a"})
	assert.NoError(t, err)
	assert.Equal(t, uint32(2), id)

	assert.NoError(t, r.ClaimRange("100-199", labels.Set{"app": "b"}))
	assert.Error(t, r.ClaimRange("0-10", nil))
	assert.Equal(t, "3-99 200-4094", r.Free().String())

	assert.Error(t, r.Release(DefaultVLAN))
	assert.NoError(t, r.Release(150))
	assert.True(t, r.IsFree(150))
}
