// Package opcount provides the OperationCount accumulator: a mapping from
// carbonmodel.Kind to a non-negative 64-bit count, with merge, scale, and
// weighted-total operations (spec §3, §4.2).
package opcount

import "github.com/watttrace/analyzer-core/pkg/carbonmodel"

// Count is a fixed-size accumulator over the closed set of operation
// kinds. The zero value is ready to use: every kind is present with
// count 0 (spec invariant: "every kind is present").
type Count struct {
	counts [carbonmodel.NumKinds]int64
}

// New returns an empty Count.
func New() *Count { return &Count{} }

// Add increments the count for kind k by n. Negative n is ignored: counts
// are saturating non-negative accumulators, never decremented below zero.
func (c *Count) Add(k carbonmodel.Kind, n int64) {
	if n <= 0 || !k.Valid() {
		return
	}

	c.counts[k] += n
}

// Get returns the current count for kind k.
func (c *Count) Get(k carbonmodel.Kind) int64 {
	if !k.Valid() {
		return 0
	}

	return c.counts[k]
}

// Merge adds other's counts into c, pointwise. Merge is commutative and
// associative because it is ordinary integer addition per kind.
func (c *Count) Merge(other *Count) {
	if other == nil {
		return
	}

	for i := range c.counts {
		c.counts[i] += other.counts[i]
	}
}

// Scale returns a new Count with every entry multiplied by factor. Scale
// preserves zeros and Scale(0) yields an empty Count.
func (c *Count) Scale(factor int64) *Count {
	scaled := &Count{}
	if factor <= 0 {
		return scaled
	}

	for i := range c.counts {
		scaled.counts[i] = c.counts[i] * factor
	}

	return scaled
}

// TotalRaw returns the sum of every kind's count, unweighted.
func (c *Count) TotalRaw() int64 {
	var total int64
	for _, n := range c.counts {
		total += n
	}

	return total
}

// TotalWeighted returns Σ count[k] * weight[k] across all kinds.
func (c *Count) TotalWeighted() int64 {
	var total int64
	for i, n := range c.counts {
		total += n * carbonmodel.Weight(carbonmodel.Kind(i))
	}

	return total
}

// Summary returns only the non-zero kind/count pairs, as a map keyed by
// canonical kind name, suitable for the structured output schema (§6).
func (c *Count) Summary() map[string]int64 {
	out := make(map[string]int64)

	for _, k := range carbonmodel.AllKinds() {
		if n := c.counts[k]; n > 0 {
			out[k.String()] = n
		}
	}

	return out
}

// Clone returns a deep (value) copy of c.
func (c *Count) Clone() *Count {
	clone := &Count{}
	clone.counts = c.counts

	return clone
}
