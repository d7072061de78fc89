package brace_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/watttrace/analyzer-core/internal/synnode/synnodetest"
	"github.com/watttrace/analyzer-core/internal/walker/brace"
	"github.com/watttrace/analyzer-core/pkg/carbonmodel"
)

// buildS4 constructs the parse tree for:
//
//	int main() {
//	    for (int i = 0; i < 3; i++) { printf("x"); }
//	    return 0;
//	}
func buildS4() *synnodetest.Fake {
	initDecl := synnodetest.New("init_declarator", "i = 0").
		WithField("value", synnodetest.New("number_literal", "0"))
	forInit := synnodetest.New("declaration", "int i = 0").AddChild(initDecl)

	cond := synnodetest.New("binary_expression", "i < 3").
		WithField("left", synnodetest.New("identifier", "i")).
		AddChild(synnodetest.New("", "<")).
		WithField("right", synnodetest.New("number_literal", "3"))

	step := synnodetest.New("update_expression", "i++").
		WithField("argument", synnodetest.New("identifier", "i")).
		AddChild(synnodetest.New("", "++"))

	printfCall := synnodetest.New("call_expression", `printf("x")`).
		WithField("function", synnodetest.New("identifier", "printf")).
		WithField("arguments", synnodetest.New("argument_list", "").AddChild(synnodetest.New("string_literal", `"x"`)))

	forBody := synnodetest.New("compound_statement", "").
		AddChild(synnodetest.New("expression_statement", "").AddChild(printfCall))

	forStmt := synnodetest.New("for_statement", "").
		WithField("initializer", forInit).
		WithField("condition", cond).
		WithField("update", step).
		WithField("body", forBody)

	returnStmt := synnodetest.New("return_statement", "").AddChild(synnodetest.New("number_literal", "0"))

	fnBody := synnodetest.New("compound_statement", "").AddChild(forStmt).AddChild(returnStmt)

	fnDef := synnodetest.New("function_definition", "").
		WithField("name", synnodetest.New("identifier", "main")).
		WithField("body", fnBody)

	return synnodetest.New("translation_unit", "").AddChild(fnDef)
}

func TestAnalyze_S4BraceDialectForLoop(t *testing.T) {
	t.Parallel()

	result := brace.New("c").Analyze(buildS4())

	assert.Len(t, result.Functions, 1)

	fn := result.Functions[0]
	assert.Equal(t, "main", fn.Name)
	assert.Equal(t, 1, fn.MaxLoopNesting)
	assert.False(t, fn.IsRecursive)
	assert.Equal(t, int64(3), fn.Counts.Get(carbonmodel.Comparison))
	assert.Equal(t, int64(3), fn.Counts.Get(carbonmodel.IOOperation))
}

func TestAnalyze_EmptyRootReturnsEmptyResult(t *testing.T) {
	t.Parallel()

	result := brace.New("c").Analyze(nil)

	assert.Empty(t, result.Functions)
}
