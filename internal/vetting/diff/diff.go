// Package diff decomposes the difference between two attribute trees.
package diff

import (
	"github.com/google/go-cmp/cmp"

	"vetting/internal/vetting/models"
)

// Result is the three-way decomposition of a -> b.
//
// Added holds keys only in b (with b's values), Deleted holds keys only in a
// (with a's values) and Updated holds keys in both whose values differ (with b's
// values). A key present with a nil value is distinct from an absent key.
type Result struct {
	Added   models.Data
	Deleted models.Data
	Updated models.Data
}

// Count is the total number of differing top-level keys.
func (r Result) Count() int {
	return len(r.Added) + len(r.Deleted) + len(r.Updated)
}

// IsEmpty reports whether a and b were structurally equal.
func (r Result) IsEmpty() bool {
	return r.Count() == 0
}

// Compute diffs a against b. A nil a treats every key of b as added; nil on both
// sides yields an empty result.
func Compute(a, b models.Data) Result {
	res := Result{
		Added:   models.Data{},
		Deleted: models.Data{},
		Updated: models.Data{},
	}
	// Clone normalizes numbers so 1 and 1.0 compare equal.
	na, nb := a.Clone(), b.Clone()

	for k, bv := range nb {
		av, ok := na[k]
		if !ok {
			res.Added[k] = bv
			continue
		}
		if !cmp.Equal(av, bv) {
			res.Updated[k] = bv
		}
	}
	for k, av := range na {
		if _, ok := nb[k]; !ok {
			res.Deleted[k] = av
		}
	}
	return res
}

// AddedOnly returns just the keys b adds relative to a.
func AddedOnly(a, b models.Data) models.Data {
	return Compute(a, b).Added
}

// Equal reports whether a and b are structurally identical.
func Equal(a, b models.Data) bool {
	return Compute(a, b).IsEmpty()
}
