package consttab_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/watttrace/analyzer-core/internal/synnode/synnodetest"
	"github.com/watttrace/analyzer-core/pkg/consttab"
)

func TestResolve_IntLiteral(t *testing.T) {
	t.Parallel()

	tbl := consttab.New()
	v, ok := tbl.Resolve(synnodetest.New("integer", "0x1F"))
	assert.True(t, ok)
	assert.Equal(t, int64(31), v)
}

func TestResolve_UnderscoreSeparators(t *testing.T) {
	t.Parallel()

	tbl := consttab.New()
	v, ok := tbl.Resolve(synnodetest.New("integer", "1_000_000"))
	assert.True(t, ok)
	assert.Equal(t, int64(1000000), v)
}

func TestResolve_Identifier(t *testing.T) {
	t.Parallel()

	tbl := consttab.New()
	tbl.Set("N", 50)

	v, ok := tbl.Resolve(synnodetest.New("identifier", "N"))
	assert.True(t, ok)
	assert.Equal(t, int64(50), v)
}

func TestResolve_BinaryDivisionByZeroUnresolved(t *testing.T) {
	t.Parallel()

	tbl := consttab.New()
	expr := synnodetest.New("binary_expression", "").
		WithField("left", synnodetest.New("integer", "10")).
		AddChild(synnodetest.New("", "/")).
		WithField("right", synnodetest.New("integer", "0"))

	_, ok := tbl.Resolve(expr)
	assert.False(t, ok)
}

func TestResolve_BinaryFloorDivision(t *testing.T) {
	t.Parallel()

	tbl := consttab.New()
	expr := synnodetest.New("binary_expression", "").
		WithField("left", synnodetest.New("integer", "-7")).
		AddChild(synnodetest.New("", "//")).
		WithField("right", synnodetest.New("integer", "2"))

	v, ok := tbl.Resolve(expr)
	assert.True(t, ok)
	assert.Equal(t, int64(-4), v)
}

func TestResolve_UnaryMinus(t *testing.T) {
	t.Parallel()

	tbl := consttab.New()
	expr := synnodetest.New("unary_expression", "").
		AddChild(synnodetest.New("", "-")).
		WithField("argument", synnodetest.New("integer", "5"))

	v, ok := tbl.Resolve(expr)
	assert.True(t, ok)
	assert.Equal(t, int64(-5), v)
}

func TestResolve_LenCallHeuristic(t *testing.T) {
	t.Parallel()

	tbl := consttab.New()
	expr := synnodetest.New("call", "").
		WithField("function", synnodetest.New("identifier", "len"))

	v, ok := tbl.Resolve(expr)
	assert.True(t, ok)
	assert.Equal(t, int64(100), v)
}

func TestScope_SaveRestore(t *testing.T) {
	t.Parallel()

	tbl := consttab.New()
	tbl.Set("outer", 1)

	restore := tbl.EnterScope()
	tbl.Set("inner", 2)

	_, hasInner := tbl.Lookup("inner")
	assert.True(t, hasInner)

	restore()

	_, hasInnerAfter := tbl.Lookup("inner")
	assert.False(t, hasInnerAfter)

	outerVal, hasOuter := tbl.Lookup("outer")
	assert.True(t, hasOuter)
	assert.Equal(t, int64(1), outerVal)
}
