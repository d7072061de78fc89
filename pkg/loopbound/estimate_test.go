package loopbound_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/watttrace/analyzer-core/internal/synnode/synnodetest"
	"github.com/watttrace/analyzer-core/pkg/carbonmodel"
	"github.com/watttrace/analyzer-core/pkg/consttab"
	"github.com/watttrace/analyzer-core/pkg/loopbound"
)

func rangeCallOf(args ...*synnodetest.Fake) *synnodetest.Fake {
	argsNode := synnodetest.New("argument_list", "")
	for _, a := range args {
		argsNode.AddChild(a)
	}

	return synnodetest.New("call", "").
		WithField("function", synnodetest.New("identifier", "range")).
		WithField("arguments", argsNode)
}

func TestIndentForIn_RangeSingleArg(t *testing.T) {
	t.Parallel()

	tbl := consttab.New()
	n := loopbound.IndentForIn(tbl, rangeCallOf(synnodetest.New("integer", "10")))
	assert.Equal(t, int64(10), n)
}

func TestIndentForIn_RangeTwoArgs(t *testing.T) {
	t.Parallel()

	tbl := consttab.New()
	n := loopbound.IndentForIn(tbl, rangeCallOf(synnodetest.New("integer", "5"), synnodetest.New("integer", "15")))
	assert.Equal(t, int64(10), n)
}

func TestIndentForIn_RangeThreeArgsWithStep(t *testing.T) {
	t.Parallel()

	tbl := consttab.New()
	n := loopbound.IndentForIn(tbl, rangeCallOf(
		synnodetest.New("integer", "0"),
		synnodetest.New("integer", "10"),
		synnodetest.New("integer", "2"),
	))
	assert.Equal(t, int64(5), n)
}

func TestIndentForIn_RangeLenDefaults(t *testing.T) {
	t.Parallel()

	tbl := consttab.New()
	lenCall := synnodetest.New("call", "").WithField("function", synnodetest.New("identifier", "len"))
	n := loopbound.IndentForIn(tbl, rangeCallOf(lenCall))
	assert.Equal(t, int64(carbonmodel.DefaultLoopIterations), n)
}

func TestIndentForIn_ZipDefaults(t *testing.T) {
	t.Parallel()

	tbl := consttab.New()
	zipCall := synnodetest.New("call", "").WithField("function", synnodetest.New("identifier", "zip"))
	n := loopbound.IndentForIn(tbl, zipCall)
	assert.Equal(t, int64(carbonmodel.DefaultLoopIterations), n)
}

func TestIndentForIn_ListLiteral(t *testing.T) {
	t.Parallel()

	tbl := consttab.New()
	list := synnodetest.New("list", "").
		AddChild(synnodetest.New("integer", "1")).
		AddChild(synnodetest.New("integer", "2")).
		AddChild(synnodetest.New("integer", "3"))

	n := loopbound.IndentForIn(tbl, list)
	assert.Equal(t, int64(3), n)
}

func TestIndentWhile_BinarySearchIdiom(t *testing.T) {
	t.Parallel()

	tbl := consttab.New()
	cond := synnodetest.New("comparison_operator", "").
		WithField("left", synnodetest.New("identifier", "low")).
		AddChild(synnodetest.New("", "<=")).
		WithField("right", synnodetest.New("identifier", "high"))

	n := loopbound.IndentWhile(tbl, cond, false, "", 0)
	assert.Equal(t, int64(20), n)
}

func TestIndentWhile_SimpleBound(t *testing.T) {
	t.Parallel()

	tbl := consttab.New()
	cond := synnodetest.New("comparison_operator", "").
		WithField("left", synnodetest.New("identifier", "i")).
		AddChild(synnodetest.New("", "<")).
		WithField("right", synnodetest.New("integer", "50"))

	n := loopbound.IndentWhile(tbl, cond, false, "", 0)
	assert.Equal(t, int64(50), n)
}

func TestIndentWhile_IncrementStep(t *testing.T) {
	t.Parallel()

	tbl := consttab.New()
	cond := synnodetest.New("comparison_operator", "").
		WithField("left", synnodetest.New("identifier", "i")).
		AddChild(synnodetest.New("", "<")).
		WithField("right", synnodetest.New("integer", "100"))

	n := loopbound.IndentWhile(tbl, cond, true, "i", 5)
	assert.Equal(t, int64(20), n)
}

func TestIndentWhile_DefaultsWhenUnresolved(t *testing.T) {
	t.Parallel()

	tbl := consttab.New()
	cond := synnodetest.New("comparison_operator", "").
		WithField("left", synnodetest.New("identifier", "flag")).
		AddChild(synnodetest.New("", "<")).
		WithField("right", synnodetest.New("identifier", "unknown"))

	n := loopbound.IndentWhile(tbl, cond, false, "", 0)
	assert.Equal(t, int64(carbonmodel.DefaultLoopIterations), n)
}

func TestBraceFor_ClassicCounting(t *testing.T) {
	t.Parallel()

	tbl := consttab.New()
	initDecl := synnodetest.New("assignment_expression", "").
		WithField("value", synnodetest.New("integer", "0"))
	cond := synnodetest.New("binary_expression", "").
		WithField("left", synnodetest.New("identifier", "i")).
		AddChild(synnodetest.New("", "<")).
		WithField("right", synnodetest.New("integer", "20"))
	step := synnodetest.New("update_expression", "").AddChild(synnodetest.New("", "++"))

	n := loopbound.BraceFor(tbl, initDecl, cond, step)
	assert.Equal(t, int64(20), n)
}

func TestBraceFor_DefaultsOnUnresolvedStep(t *testing.T) {
	t.Parallel()

	tbl := consttab.New()
	initDecl := synnodetest.New("assignment_expression", "").
		WithField("value", synnodetest.New("integer", "0"))
	cond := synnodetest.New("binary_expression", "").
		WithField("left", synnodetest.New("identifier", "i")).
		AddChild(synnodetest.New("", "<")).
		WithField("right", synnodetest.New("integer", "20"))

	n := loopbound.BraceFor(tbl, initDecl, cond, nil)
	assert.Equal(t, int64(carbonmodel.DefaultLoopIterations), n)
}

func TestForeachDefault(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(carbonmodel.DefaultLoopIterations), loopbound.ForeachDefault())
}
