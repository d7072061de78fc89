package fallback_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/watttrace/analyzer-core/internal/fallback"
	"github.com/watttrace/analyzer-core/pkg/carbonmodel"
)

// TestAnalyze_S1RangeLoop mirrors S1: a single bounded for-loop calling a
// classified IO function once per iteration.
func TestAnalyze_S1RangeLoop(t *testing.T) {
	t.Parallel()

	source := "def f():\n    for i in range(10):\n        print(i)\n"

	result := fallback.New("python", true).Analyze(source)

	assert.Len(t, result.Functions, 1)

	fn := result.Functions[0]
	assert.Equal(t, "f", fn.Name)
	assert.Equal(t, int64(10), fn.Counts.Get(carbonmodel.Comparison))
	assert.Equal(t, int64(10), fn.Counts.Get(carbonmodel.IOOperation))
	assert.Equal(t, 1, fn.MaxLoopNesting)
	assert.False(t, fn.IsRecursive)
}

// TestAnalyze_S2ModuleConstant confirms that, without a constant table,
// the textual walker still resolves a literal range() bound embedded
// directly in the loop header.
func TestAnalyze_S2ModuleConstant(t *testing.T) {
	t.Parallel()

	source := "def g():\n    for i in range(50):\n        x = i + 1\n"

	result := fallback.New("python", true).Analyze(source)

	assert.Len(t, result.Functions, 1)

	fn := result.Functions[0]
	assert.Equal(t, int64(50), fn.Counts.Get(carbonmodel.Comparison))
	assert.Equal(t, int64(50), fn.Counts.Get(carbonmodel.Assignment))
	assert.Equal(t, int64(50), fn.Counts.Get(carbonmodel.Addition))
}

// TestAnalyze_S3NestedLoops mirrors S3: two nested bounded loops, the
// inner IO call scaled by the product of both trip counts.
func TestAnalyze_S3NestedLoops(t *testing.T) {
	t.Parallel()

	source := "def h():\n    for i in range(4):\n        for j in range(5):\n            print(j)\n"

	result := fallback.New("python", true).Analyze(source)

	assert.Len(t, result.Functions, 1)

	fn := result.Functions[0]
	assert.Equal(t, 2, fn.MaxLoopNesting)
	assert.Equal(t, int64(20), fn.Counts.Get(carbonmodel.IOOperation))
	assert.Equal(t, int64(4+4*5), fn.Counts.Get(carbonmodel.Comparison))
}

// TestAnalyze_S4CStyleFor mirrors S4: a brace-dialect bounded for-loop
// calling a classified IO function once per iteration.
func TestAnalyze_S4CStyleFor(t *testing.T) {
	t.Parallel()

	source := "int main() {\n    for (int i = 0; i < 3; i++) {\n        printf(\"x\");\n    }\n    return 0;\n}\n"

	result := fallback.New("c", false).Analyze(source)

	assert.Len(t, result.Functions, 1)

	fn := result.Functions[0]
	assert.Equal(t, "main", fn.Name)
	assert.Equal(t, int64(3), fn.Counts.Get(carbonmodel.Comparison))
	assert.Equal(t, int64(3), fn.Counts.Get(carbonmodel.IOOperation))
	assert.Equal(t, 1, fn.MaxLoopNesting)
}

// TestAnalyze_S5Recursion confirms a self-recursive function is flagged
// and every non-zero counter ends up scaled by the recursion depth.
func TestAnalyze_S5Recursion(t *testing.T) {
	t.Parallel()

	source := "def fib(n):\n    if n < 2:\n        return n\n    return fib(n - 1) + fib(n - 2)\n"

	result := fallback.New("python", true).Analyze(source)

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

// TestAnalyze_AssumesTextualFallback confirms the fallback-nature
// assumption is recorded.
func TestAnalyze_AssumesTextualFallback(t *testing.T) {
	t.Parallel()

	result := fallback.New("python", true).Analyze("def f():\n    return 1\n")

	assert.Contains(t, result.Assumptions, "Analyzed with the textual fallback walker (no parse tree available)")
}
