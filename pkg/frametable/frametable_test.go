package frametable

import (
	"testing"

	"github.com/tj/assert"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/selection"

	"github.com/Kthulhu/fileseq/pkg/frameset"
)

func newTable(t *testing.T, frange string) Table {
	t.Helper()
	fs, err := frameset.New(frange)
	assert.NoError(t, err)
	tbl, err := New(fs)
	assert.NoError(t, err)
	return tbl
}

func TestClaim(t *testing.T) {
	cases := map[string]struct {
		frange            string
		newSuccessEntries map[int64]labels.Set
		newFailedEntries  map[int64]labels.Set
		expectedEntries   int
	}{
		"Normal": {
			frange: "1-10",
			newSuccessEntries: map[int64]labels.Set{
				1: map[string]string{"worker": "a"},
				5: map[string]string{"worker": "b"},
			},
			newFailedEntries: map[int64]labels.Set{
				11: map[string]string{},
			},
			expectedEntries: 2,
		},
		"StrideRange": {
			frange: "1-10x2",
			newSuccessEntries: map[int64]labels.Set{
				3: map[string]string{},
			},
			newFailedEntries: map[int64]labels.Set{
				4: map[string]string{},
			},
			expectedEntries: 1,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r := newTable(t, tc.frange)

			for frame, d := range tc.newSuccessEntries {
				err := r.Claim(frame, d)
				assert.NoError(t, err)
			}
			for frame, d := range tc.newFailedEntries {
				err := r.Claim(frame, d)
				assert.Error(t, err)
			}
			// check table
			for frame := range tc.newSuccessEntries {
				if !r.Has(frame) {
					t.Errorf("%s expecting success claim entry: %d\n", name, frame)
				}
			}
			for frame := range tc.newFailedEntries {
				if r.Has(frame) {
					t.Errorf("%s no expecting failed claim entry: %d\n", name, frame)
				}
			}
			if r.Count() != tc.expectedEntries {
				t.Errorf("%s: -want %d, +got: %d\n", name, tc.expectedEntries, len(r.GetAll()))
			}
		})
	}
}

func TestClaimTwice(t *testing.T) {
	r := newTable(t, "1-5")
	assert.NoError(t, r.Claim(3, map[string]string{}))
	assert.Error(t, r.Claim(3, map[string]string{}))
	assert.NoError(t, r.Release(3))
	assert.NoError(t, r.Claim(3, map[string]string{}))
}

func TestClaimDynamic(t *testing.T) {
	r := newTable(t, "5,1-3")

	// claims follow the frame order of the set
	frame, err := r.ClaimDynamic(map[string]string{})
	assert.NoError(t, err)
	assert.Equal(t, int64(5), frame)
	frame, err = r.ClaimDynamic(map[string]string{})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), frame)

	for i := 0; i < 2; i++ {
		_, err = r.ClaimDynamic(map[string]string{})
		assert.NoError(t, err)
	}
	_, err = r.ClaimDynamic(map[string]string{})
	assert.Error(t, err)
}

func TestUpdate(t *testing.T) {
	r := newTable(t, "1-5")
	assert.Error(t, r.Update(1, map[string]string{"status": "done"}))
	assert.NoError(t, r.Claim(1, map[string]string{"status": "rendering"}))
	assert.NoError(t, r.Update(1, map[string]string{"status": "done"}))

	d, err := r.Get(1)
	assert.NoError(t, err)
	assert.Equal(t, "done", d["status"])
}

func TestGetByLabel(t *testing.T) {
	r := newTable(t, "1-10")
	assert.NoError(t, r.Claim(1, map[string]string{"status": "done"}))
	assert.NoError(t, r.Claim(2, map[string]string{"status": "rendering"}))
	assert.NoError(t, r.Claim(3, map[string]string{"status": "done"}))

	req, err := labels.NewRequirement("status", selection.Equals, []string{"done"})
	assert.NoError(t, err)
	sel := labels.NewSelector().Add(*req)

	entries := r.GetByLabel(sel)
	if len(entries) != 2 {
		t.Errorf("-want %d, +got: %d\n", 2, len(entries))
	}
}

func TestClaimedAndFree(t *testing.T) {
	r := newTable(t, "1-10")
	assert.NoError(t, r.Claim(1, map[string]string{}))
	assert.NoError(t, r.Claim(2, map[string]string{}))
	assert.NoError(t, r.Claim(3, map[string]string{}))
	assert.NoError(t, r.Claim(7, map[string]string{}))

	assert.Equal(t, "1-3,7", r.Claimed().String())
	assert.Equal(t, "4-6,8-10", r.Free().String())
	free, err := r.FindFree()
	assert.NoError(t, err)
	assert.Equal(t, int64(4), free)
}
