// Package indent implements the indentation-dialect AST walker (C7): the
// syntax family typified by Python, where scope is delimited by
// indentation rather than braces.
package indent

import (
	"fmt"
	"strings"

	"github.com/watttrace/analyzer-core/internal/synnode"
	"github.com/watttrace/analyzer-core/internal/walker"
	"github.com/watttrace/analyzer-core/pkg/carbonmodel"
	"github.com/watttrace/analyzer-core/pkg/consttab"
	"github.com/watttrace/analyzer-core/pkg/loopbound"
	"github.com/watttrace/analyzer-core/pkg/opcount"
	"github.com/watttrace/analyzer-core/pkg/report"
)

// Walker analyzes an indentation-dialect parse tree (§4.7).
type Walker struct {
	language string
}

// New creates a walker for language (normally "python").
func New(language string) *Walker {
	return &Walker{language: language}
}

// Analyze walks root (a module node) and returns a fully populated result.
func (w *Walker) Analyze(root synnode.Node) *report.AnalysisResult {
	result := report.New(w.language, "")
	if root == nil {
		return result
	}

	tbl := consttab.New()
	preseedModuleConstants(tbl, root)

	for i := 0; i < root.NamedChildCount(); i++ {
		child := root.NamedChild(i)
		if child == nil {
			continue
		}

		switch child.Kind() {
		case "function_definition":
			result.Functions = append(result.Functions, w.analyzeFunction(child, tbl, "", result.Assume))
		case "class_definition":
			result.Functions = append(result.Functions, w.analyzeClassMethods(child, tbl, result.Assume)...)
		default:
			w.walk(child, tbl, result.GlobalOperations, 1, 0, nil, result.Assume)
		}
	}

	return result
}

// preseedModuleConstants runs a pre-pass over top-level assignments so
// module-level constants (e.g. `N = 50`) are visible to function bodies,
// per §4.5.
func preseedModuleConstants(tbl *consttab.Table, root synnode.Node) {
	for i := 0; i < root.NamedChildCount(); i++ {
		child := root.NamedChild(i)
		if child == nil || child.Kind() != "expression_statement" {
			continue
		}

		if child.NamedChildCount() == 0 {
			continue
		}

		assign := child.NamedChild(0)
		recordAssignmentConstant(tbl, assign)
	}
}

func recordAssignmentConstant(tbl *consttab.Table, assign synnode.Node) {
	if assign == nil || assign.Kind() != "assignment" {
		return
	}

	left := assign.ChildByField("left")
	right := assign.ChildByField("right")

	if left == nil || right == nil || left.Kind() != "identifier" {
		return
	}

	if v, ok := tbl.Resolve(right); ok {
		tbl.Set(strings.TrimSpace(left.Text()), v)
	}
}

func (w *Walker) analyzeClassMethods(classDef synnode.Node, tbl *consttab.Table, assume func(string)) []*report.FunctionAnalysis {
	className := fieldText(classDef, "name")

	body := classDef.ChildByField("body")
	if body == nil {
		return nil
	}

	var out []*report.FunctionAnalysis

	for i := 0; i < body.NamedChildCount(); i++ {
		member := body.NamedChild(i)
		if member == nil || member.Kind() != "function_definition" {
			continue
		}

		out = append(out, w.analyzeFunction(member, tbl, className, assume))
	}

	return out
}

func fieldText(n synnode.Node, field string) string {
	if n == nil {
		return ""
	}

	child := n.ChildByField(field)
	if child == nil {
		return ""
	}

	return strings.TrimSpace(child.Text())
}

func (w *Walker) analyzeFunction(def synnode.Node, outerTbl *consttab.Table, className string, assume func(string)) *report.FunctionAnalysis {
	name := fieldText(def, "name")
	if className != "" {
		name = className + "." + name
	}

	fn := report.NewFunctionAnalysis(name, def.StartRow()+1)

	restore := outerTbl.EnterScope()
	defer restore()

	body := def.ChildByField("body")
	maxNesting := 0

	if body != nil {
		w.walkBlock(body, outerTbl, fn.Counts, 1, 0, &maxNesting, assume)
	}

	fn.MaxLoopNesting = maxNesting
	fn.IsRecursive = body != nil && walker.IsRecursiveCall(body, shortDefName(def), isCallNode, calleeShortName)
	fn.ApplyRecursion(carbonmodel.DefaultRecursionDepth)

	return fn
}

func shortDefName(def synnode.Node) string { return fieldText(def, "name") }

func isCallNode(n synnode.Node) bool { return n != nil && n.Kind() == "call" }

func calleeShortName(n synnode.Node) string {
	fn := n.ChildByField("function")
	if fn == nil {
		return ""
	}

	return walker.ShortName(fn.Text())
}

func (w *Walker) walkBlock(block synnode.Node, tbl *consttab.Table, counts *opcount.Count, mult walker.Multiplier, loopDepth int, maxNesting *int, assume func(string)) {
	if block == nil {
		return
	}

	for i := 0; i < block.NamedChildCount(); i++ {
		w.walk(block.NamedChild(i), tbl, counts, mult, loopDepth, maxNesting, assume)
	}
}

func (w *Walker) walk(n synnode.Node, tbl *consttab.Table, counts *opcount.Count, mult walker.Multiplier, loopDepth int, maxNesting *int, assume func(string)) {
	if n == nil || counts == nil {
		return
	}

	add := func(k carbonmodel.Kind, factor int64) {
		counts.Add(k, int64(mult)*factor)
	}

	switch n.Kind() {
	case "function_definition", "class_definition":
		// Nested definitions are recognized but not counted as executed.
		return
	case "expression_statement":
		w.walkChildren(n, tbl, counts, mult, loopDepth, maxNesting, assume)
	case "assignment":
		left := n.ChildByField("left")
		right := n.ChildByField("right")
		add(carbonmodel.Assignment, 1)
		w.walk(right, tbl, counts, mult, loopDepth, maxNesting, assume)

		if left != nil && left.Kind() == "identifier" && right != nil {
			if v, ok := tbl.Resolve(right); ok {
				tbl.Set(strings.TrimSpace(left.Text()), v)
			}
		} else {
			w.walk(left, tbl, counts, mult, loopDepth, maxNesting, assume)
		}
	case "augmented_assignment":
		add(carbonmodel.Assignment, 1)

		op := findAugmentedOp(n)
		add(arithmeticKindForOp(op), 1)
		w.walk(n.ChildByField("right"), tbl, counts, mult, loopDepth, maxNesting, assume)
	case "for_statement":
		w.walkForIn(n, tbl, counts, mult, loopDepth, maxNesting, assume)
	case "while_statement":
		w.walkWhile(n, tbl, counts, mult, loopDepth, maxNesting, assume)
	case "if_statement":
		add(carbonmodel.ConditionalBranch, 1)
		w.walk(n.ChildByField("condition"), tbl, counts, mult, loopDepth, maxNesting, assume)
		w.walk(n.ChildByField("consequence"), tbl, counts, mult, loopDepth, maxNesting, assume)
		w.walk(n.ChildByField("alternative"), tbl, counts, mult, loopDepth, maxNesting, assume)
	case "try_statement", "with_statement":
		w.walkChildren(n, tbl, counts, mult, loopDepth, maxNesting, assume)
	case "except_clause", "else_clause", "finally_clause":
		w.walkChildren(n, tbl, counts, mult, loopDepth, maxNesting, assume)
	case "return_statement", "raise_statement":
		if n.Kind() == "raise_statement" {
			add(carbonmodel.FunctionCall, 1)
		}

		w.walkChildren(n, tbl, counts, mult, loopDepth, maxNesting, assume)
	case "pass_statement", "break_statement", "continue_statement", "import_statement", "import_from_statement":
		return
	case "call":
		w.walkCall(n, tbl, counts, mult, loopDepth, maxNesting, assume)
	case "attribute":
		w.walk(n.ChildByField("object"), tbl, counts, mult, loopDepth, maxNesting, assume)
	case "subscript":
		add(carbonmodel.ArrayAccess, 1)
		w.walk(n.ChildByField("value"), tbl, counts, mult, loopDepth, maxNesting, assume)
		w.walk(n.ChildByField("subscript"), tbl, counts, mult, loopDepth, maxNesting, assume)
	case "binary_operator":
		w.walkBinary(n, tbl, counts, mult, loopDepth, maxNesting, assume)
	case "boolean_operator":
		add(carbonmodel.Comparison, 1)
		w.walkChildren(n, tbl, counts, mult, loopDepth, maxNesting, assume)
	case "comparison_operator":
		ops := countComparisonOps(n)
		if ops < 1 {
			ops = 1
		}

		add(carbonmodel.Comparison, int64(ops))
		w.walkChildren(n, tbl, counts, mult, loopDepth, maxNesting, assume)
	case "not_operator", "unary_operator":
		add(carbonmodel.Addition, 1)
		w.walkChildren(n, tbl, counts, mult, loopDepth, maxNesting, assume)
	case "list", "tuple", "set":
		elems := n.NamedChildCount()
		if elems > 0 {
			add(carbonmodel.MemoryAllocation, 1)
			add(carbonmodel.Assignment, int64(elems))
		}

		w.walkChildren(n, tbl, counts, mult, loopDepth, maxNesting, assume)
	case "dictionary":
		pairs := n.NamedChildCount()
		if pairs > 0 {
			add(carbonmodel.MemoryAllocation, 1)
			add(carbonmodel.Assignment, int64(pairs))
		}

		w.walkChildren(n, tbl, counts, mult, loopDepth, maxNesting, assume)
	case "conditional_expression":
		add(carbonmodel.ConditionalBranch, 1)
		w.walkChildren(n, tbl, counts, mult, loopDepth, maxNesting, assume)
	case "string":
		w.walkInterpolations(n, tbl, counts, mult, loopDepth, maxNesting, assume)
	case "list_comprehension", "set_comprehension", "dictionary_comprehension", "generator_expression":
		w.walkComprehension(n, tbl, counts, mult, loopDepth, maxNesting, assume)
	case "parenthesized_expression":
		w.walkChildren(n, tbl, counts, mult, loopDepth, maxNesting, assume)
	case "integer", "float", "identifier", "true", "false", "none":
		return
	default:
		w.walkChildren(n, tbl, counts, mult, loopDepth, maxNesting, assume)
	}
}

func (w *Walker) walkChildren(n synnode.Node, tbl *consttab.Table, counts *opcount.Count, mult walker.Multiplier, loopDepth int, maxNesting *int, assume func(string)) {
	for i := 0; i < n.NamedChildCount(); i++ {
		w.walk(n.NamedChild(i), tbl, counts, mult, loopDepth, maxNesting, assume)
	}
}

func findAugmentedOp(n synnode.Node) string {
	for i := 0; i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}

		switch child.Text() {
		case "+=", "-=", "*=", "/=", "//=", "%=", "**=":
			return child.Text()
		}
	}

	return ""
}

func arithmeticKindForOp(op string) carbonmodel.Kind {
	switch op {
	case "+=":
		return carbonmodel.Addition
	case "-=":
		return carbonmodel.Subtraction
	case "*=", "**=":
		return carbonmodel.Multiplication
	case "/=", "//=", "%=":
		return carbonmodel.Division
	default:
		return carbonmodel.Addition
	}
}

func countComparisonOps(n synnode.Node) int {
	count := 0

	for i := 0; i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}

		switch child.Text() {
		case "<", "<=", ">", ">=", "==", "!=", "in", "not in", "is", "is not":
			count++
		}
	}

	return count
}

func (w *Walker) walkBinary(n synnode.Node, tbl *consttab.Table, counts *opcount.Count, mult walker.Multiplier, loopDepth int, maxNesting *int, assume func(string)) {
	add := func(k carbonmodel.Kind, factor int64) { counts.Add(k, int64(mult)*factor) }

	op := findBinaryOp(n)

	switch op {
	case "+", "-":
		if op == "+" {
			add(carbonmodel.Addition, 1)
		} else {
			add(carbonmodel.Subtraction, 1)
		}
	case "*", "@":
		add(carbonmodel.Multiplication, 1)
	case "/", "//", "%":
		add(carbonmodel.Division, 1)
	case "**":
		add(carbonmodel.Multiplication, 10)
	default:
		add(carbonmodel.Addition, 1)
	}

	w.walkChildren(n, tbl, counts, mult, loopDepth, maxNesting, assume)
}

func findBinaryOp(n synnode.Node) string {
	for i := 0; i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}

		switch child.Text() {
		case "+", "-", "*", "/", "//", "%", "**", "@":
			return child.Text()
		}
	}

	return ""
}

func (w *Walker) walkCall(n synnode.Node, tbl *consttab.Table, counts *opcount.Count, mult walker.Multiplier, loopDepth int, maxNesting *int, assume func(string)) {
	fnNode := n.ChildByField("function")
	dotted := ""
	shortName := ""

	if fnNode != nil {
		dotted = strings.TrimSpace(fnNode.Text())
		shortName = walker.ShortName(dotted)
	}

	switch shortName {
	case "sorted", "sort":
		counts.Add(carbonmodel.Comparison, int64(mult)*carbonmodel.DefaultLoopIterations*7)
		counts.Add(carbonmodel.Assignment, int64(mult)*carbonmodel.DefaultLoopIterations*7)
	case "sum", "min", "max", "any", "all":
		counts.Add(carbonmodel.Addition, int64(mult)*carbonmodel.DefaultLoopIterations)
		counts.Add(carbonmodel.Comparison, int64(mult)*carbonmodel.DefaultLoopIterations)
	case "append":
		if fnNode != nil && fnNode.Kind() == "attribute" {
			counts.Add(carbonmodel.MemoryAllocation, int64(mult))
		} else {
			counts.Add(carbonmodel.FunctionCall, int64(mult))
		}
	default:
		kind := walker.CallKind(w.language, shortName, dotted)
		counts.Add(kind, int64(mult))
	}

	args := n.ChildByField("arguments")
	if args != nil {
		w.walkChildren(args, tbl, counts, mult, loopDepth, maxNesting, assume)
	}
}

func (w *Walker) walkInterpolations(n synnode.Node, tbl *consttab.Table, counts *opcount.Count, mult walker.Multiplier, loopDepth int, maxNesting *int, assume func(string)) {
	for i := 0; i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		if child == nil {
			continue
		}

		if child.Kind() == "interpolation" {
			counts.Add(carbonmodel.FunctionCall, int64(mult))
			w.walkChildren(child, tbl, counts, mult, loopDepth, maxNesting, assume)
		}
	}
}

func (w *Walker) walkForIn(n synnode.Node, tbl *consttab.Table, counts *opcount.Count, mult walker.Multiplier, loopDepth int, maxNesting *int, assume func(string)) {
	iter := n.ChildByField("right")
	body := n.ChildByField("body")
	alt := n.ChildByField("alternative")
	left := n.ChildByField("left")

	iterations := loopbound.IndentForIn(tbl, iter)
	if left != nil && left.Kind() == "identifier" && iterations != carbonmodel.DefaultLoopIterations {
		assume(fmt.Sprintf("for-loop resolved to %d iterations", iterations))
	}

	counts.Add(carbonmodel.Comparison, int64(mult)*iterations)

	newDepth := loopDepth + 1
	if maxNesting != nil && newDepth > *maxNesting {
		*maxNesting = newDepth
	}

	newMult := mult * walker.Multiplier(iterations)
	w.walk(body, tbl, counts, newMult, newDepth, maxNesting, assume)
	w.walk(alt, tbl, counts, mult, loopDepth, maxNesting, assume)
}

func (w *Walker) walkWhile(n synnode.Node, tbl *consttab.Table, counts *opcount.Count, mult walker.Multiplier, loopDepth int, maxNesting *int, assume func(string)) {
	cond := n.ChildByField("condition")
	body := n.ChildByField("body")
	alt := n.ChildByField("alternative")

	incVar, incStep, hasInc := findIncrementInBody(body, tbl)
	iterations := loopbound.IndentWhile(tbl, cond, hasInc, incVar, incStep)

	if iterations != carbonmodel.DefaultLoopIterations {
		assume(fmt.Sprintf("while-loop resolved to %d iterations", iterations))
	}

	counts.Add(carbonmodel.Comparison, int64(mult)*iterations)

	newDepth := loopDepth + 1
	if maxNesting != nil && newDepth > *maxNesting {
		*maxNesting = newDepth
	}

	newMult := mult * walker.Multiplier(iterations)
	w.walk(body, tbl, counts, newMult, newDepth, maxNesting, assume)
	w.walk(alt, tbl, counts, mult, loopDepth, maxNesting, assume)
}

// findIncrementInBody looks for a top-level `x += S` statement in body,
// used by the `while x < N` heuristic (§4.6).
func findIncrementInBody(body synnode.Node, tbl *consttab.Table) (name string, step int64, ok bool) {
	if body == nil {
		return "", 0, false
	}

	for i := 0; i < body.NamedChildCount(); i++ {
		stmt := body.NamedChild(i)
		if stmt == nil || stmt.Kind() != "expression_statement" || stmt.NamedChildCount() == 0 {
			continue
		}

		aug := stmt.NamedChild(0)
		if aug == nil || aug.Kind() != "augmented_assignment" {
			continue
		}

		if findAugmentedOp(aug) != "+=" {
			continue
		}

		left := aug.ChildByField("left")
		right := aug.ChildByField("right")

		if left == nil || left.Kind() != "identifier" || right == nil {
			continue
		}

		if v, resolved := tbl.Resolve(right); resolved && v > 0 {
			return strings.TrimSpace(left.Text()), v, true
		}
	}

	return "", 0, false
}

func (w *Walker) walkComprehension(n synnode.Node, tbl *consttab.Table, counts *opcount.Count, mult walker.Multiplier, loopDepth int, maxNesting *int, assume func(string)) {
	counts.Add(carbonmodel.MemoryAllocation, int64(mult))

	body := n.NamedChild(0)

	var forClause, ifClause synnode.Node

	for i := 1; i < n.NamedChildCount(); i++ {
		clause := n.NamedChild(i)
		if clause == nil {
			continue
		}

		switch clause.Kind() {
		case "for_in_clause":
			if forClause == nil {
				forClause = clause
			}
		case "if_clause":
			if ifClause == nil {
				ifClause = clause
			}
		}
	}

	iterations := int64(carbonmodel.DefaultLoopIterations)
	if forClause != nil {
		iterations = loopbound.ComprehensionFor(tbl, forClause.ChildByField("right"))
	}

	newMult := mult * walker.Multiplier(iterations)
	counts.Add(carbonmodel.Comparison, int64(mult)*iterations)

	w.walk(body, tbl, counts, newMult, loopDepth+1, maxNesting, assume)

	if ifClause != nil {
		w.walkChildren(ifClause, tbl, counts, newMult, loopDepth+1, maxNesting, assume)
	}
}