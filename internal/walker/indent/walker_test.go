package indent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/watttrace/analyzer-core/internal/synnode/synnodetest"
	"github.com/watttrace/analyzer-core/internal/walker/indent"
	"github.com/watttrace/analyzer-core/pkg/carbonmodel"
)

// buildS1 constructs the parse tree for:
//
//	def f():
//	    for i in range(10):
//	        print(i)
func buildS1() *synnodetest.Fake {
	rangeCall := synnodetest.New("call", "range(10)").
		WithField("function", synnodetest.New("identifier", "range")).
		WithField("arguments", synnodetest.New("argument_list", "").AddChild(synnodetest.New("integer", "10")))

	printCall := synnodetest.New("call", "print(i)").
		WithField("function", synnodetest.New("identifier", "print")).
		WithField("arguments", synnodetest.New("argument_list", "").AddChild(synnodetest.New("identifier", "i")))

	printStmt := synnodetest.New("expression_statement", "").AddChild(printCall)
	forBody := synnodetest.New("block", "").AddChild(printStmt)

	forStmt := synnodetest.New("for_statement", "").
		WithField("left", synnodetest.New("identifier", "i")).
		WithField("right", rangeCall).
		WithField("body", forBody)

	fnBody := synnodetest.New("block", "").AddChild(forStmt)

	fnDef := synnodetest.New("function_definition", "").
		WithField("name", synnodetest.New("identifier", "f")).
		WithField("body", fnBody)

	return synnodetest.New("module", "").AddChild(fnDef)
}

func TestAnalyze_S1IndentationDialect(t *testing.T) {
	t.Parallel()

	result := indent.New("python").Analyze(buildS1())

	assert.Len(t, result.Functions, 1)

	fn := result.Functions[0]
	assert.Equal(t, "f", fn.Name)
	assert.Equal(t, 1, fn.MaxLoopNesting)
	assert.False(t, fn.IsRecursive)
	assert.GreaterOrEqual(t, fn.Counts.Get(carbonmodel.Comparison), int64(10))
	assert.Equal(t, int64(10), fn.Counts.Get(carbonmodel.IOOperation))
}

// buildS5 constructs the parse tree for:
//
//	def fib(n):
//	    if n < 2: return n
//	    return fib(n-1) + fib(n-2)
func buildS5() *synnodetest.Fake {
	cond := synnodetest.New("comparison_operator", "").
		WithField("left", synnodetest.New("identifier", "n")).
		AddChild(synnodetest.New("", "<")).
		WithField("right", synnodetest.New("integer", "2"))

	returnN := synnodetest.New("return_statement", "").AddChild(synnodetest.New("identifier", "n"))
	ifStmt := synnodetest.New("if_statement", "").
		WithField("condition", cond).
		WithField("consequence", returnN)

	fibCall := func(arg *synnodetest.Fake) *synnodetest.Fake {
		return synnodetest.New("call", "").
			WithField("function", synnodetest.New("identifier", "fib")).
			WithField("arguments", synnodetest.New("argument_list", "").AddChild(arg))
	}

	sub := func(n string) *synnodetest.Fake {
		return synnodetest.New("binary_operator", "").
			WithField("left", synnodetest.New("identifier", "n")).
			AddChild(synnodetest.New("", "-")).
			WithField("right", synnodetest.New("integer", n))
	}

	addExpr := synnodetest.New("binary_operator", "").
		WithField("left", fibCall(sub("1"))).
		AddChild(synnodetest.New("", "+")).
		WithField("right", fibCall(sub("2")))

	returnSum := synnodetest.New("return_statement", "").AddChild(addExpr)

	fnBody := synnodetest.New("block", "").AddChild(ifStmt).AddChild(returnSum)

	fnDef := synnodetest.New("function_definition", "").
		WithField("name", synnodetest.New("identifier", "fib")).
		WithField("body", fnBody)

	return synnodetest.New("module", "").AddChild(fnDef)
}

func TestAnalyze_S5Recursion(t *testing.T) {
	t.Parallel()

	result := indent.New("python").Analyze(buildS5())

	assert.Len(t, result.Functions, 1)

	fn := result.Functions[0]
	assert.True(t, fn.IsRecursive)

	for _, k := range carbonmodel.AllKinds() {
		v := fn.Counts.Get(k)
		if v == 0 {
			continue
		}

		assert.Zero(t, v%carbonmodel.DefaultRecursionDepth, "kind %s should be a multiple of the recursion depth", k)
	}
}
