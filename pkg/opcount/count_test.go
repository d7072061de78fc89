package opcount_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watttrace/analyzer-core/pkg/carbonmodel"
	"github.com/watttrace/analyzer-core/pkg/opcount"
)

func TestCount_NonNegativeAndZeroed(t *testing.T) {
	t.Parallel()

	c := opcount.New()
	require.Equal(t, int64(0), c.TotalRaw())
	require.Equal(t, int64(0), c.TotalWeighted())
	assert.Empty(t, c.Summary())
}

func TestCount_MergeIdentity(t *testing.T) {
	t.Parallel()

	c := opcount.New()
	c.Add(carbonmodel.Addition, 3)
	c.Add(carbonmodel.IOOperation, 2)

	before := c.TotalWeighted()
	c.Merge(opcount.New())

	assert.Equal(t, before, c.TotalWeighted())
}

func TestCount_MergeCommutativeAssociative(t *testing.T) {
	t.Parallel()

	a, b, c := opcount.New(), opcount.New(), opcount.New()
	a.Add(carbonmodel.Addition, 1)
	b.Add(carbonmodel.Multiplication, 2)
	c.Add(carbonmodel.IOOperation, 3)

	ab := a.Clone()
	ab.Merge(b)
	abc1 := ab.Clone()
	abc1.Merge(c)

	bc := b.Clone()
	bc.Merge(c)
	abc2 := a.Clone()
	abc2.Merge(bc)

	assert.Equal(t, abc1.TotalWeighted(), abc2.TotalWeighted())
	assert.Equal(t, abc1.Summary(), abc2.Summary())
}

func TestCount_ScaleHomogeneity(t *testing.T) {
	t.Parallel()

	c := opcount.New()
	c.Add(carbonmodel.Division, 4)
	c.Add(carbonmodel.FunctionCall, 2)

	left := c.Scale(3).Scale(5)
	right := c.Scale(15)

	assert.Equal(t, right.TotalWeighted(), left.TotalWeighted())
	assert.Equal(t, right.Summary(), left.Summary())
}

func TestCount_ScaleZeroIsEmpty(t *testing.T) {
	t.Parallel()

	c := opcount.New()
	c.Add(carbonmodel.Comparison, 10)

	assert.Empty(t, c.Scale(0).Summary())
}

func TestCount_SummaryOnlyNonZero(t *testing.T) {
	t.Parallel()

	c := opcount.New()
	c.Add(carbonmodel.Assignment, 5)

	summary := c.Summary()
	assert.Equal(t, map[string]int64{"assignment": 5}, summary)
}

func TestCount_AddIgnoresNonPositive(t *testing.T) {
	t.Parallel()

	c := opcount.New()
	c.Add(carbonmodel.Addition, 0)
	c.Add(carbonmodel.Addition, -5)

	assert.Equal(t, int64(0), c.Get(carbonmodel.Addition))
}
