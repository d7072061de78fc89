// Package brace implements the brace-dialect AST walker (C8): the syntax
// family typified by C, C++, Java, and JavaScript/TypeScript, where scope
// is delimited by braces rather than indentation.
package brace

import (
	"strings"

	"github.com/watttrace/analyzer-core/internal/synnode"
	"github.com/watttrace/analyzer-core/internal/walker"
	"github.com/watttrace/analyzer-core/pkg/carbonmodel"
	"github.com/watttrace/analyzer-core/pkg/consttab"
	"github.com/watttrace/analyzer-core/pkg/loopbound"
	"github.com/watttrace/analyzer-core/pkg/opcount"
	"github.com/watttrace/analyzer-core/pkg/report"
)

// Walker analyzes a brace-dialect parse tree (§4.7).
type Walker struct {
	language string
}

// New creates a walker for language (one of "c", "cpp", "java",
// "javascript", "typescript").
func New(language string) *Walker {
	return &Walker{language: language}
}

var functionDefKinds = map[string]bool{
	"function_definition":     true, // c/cpp
	"method_declaration":      true, // java
	"function_declaration":    true, // javascript/typescript
	"constructor_declaration": true,
}

var classDefKinds = map[string]bool{
	"class_declaration":     true,
	"class_specifier":       true, // cpp
	"interface_declaration": true,
}

// Analyze walks root (a translation-unit/program node).
func (w *Walker) Analyze(root synnode.Node) *report.AnalysisResult {
	result := report.New(w.language, "")
	if root == nil {
		return result
	}

	tbl := consttab.New()
	w.preseedConstants(tbl, root)

	for i := 0; i < root.NamedChildCount(); i++ {
		child := root.NamedChild(i)
		if child == nil {
			continue
		}

		switch {
		case functionDefKinds[child.Kind()]:
			result.Functions = append(result.Functions, w.analyzeFunction(child, tbl, "", result.Assume))
		case classDefKinds[child.Kind()]:
			result.Functions = append(result.Functions, w.analyzeClassMethods(child, tbl, result.Assume)...)
		default:
			w.walk(child, tbl, result.GlobalOperations, 1, 0, nil, result.Assume)
		}
	}

	return result
}

// preseedConstants records every top-level C-style `declaration` whose
// init_declarator value resolves to an integer, whether or not it is
// marked const or static. Java fields, JavaScript lexical declarations
// and #define macros are not scanned.
func (w *Walker) preseedConstants(tbl *consttab.Table, root synnode.Node) {
	for i := 0; i < root.NamedChildCount(); i++ {
		recordDeclarationConstants(tbl, root.NamedChild(i))
	}
}

func recordDeclarationConstants(tbl *consttab.Table, decl synnode.Node) {
	if decl == nil || decl.Kind() != "declaration" {
		return
	}

	for i := 0; i < decl.NamedChildCount(); i++ {
		declarator := decl.NamedChild(i)
		if declarator == nil || declarator.Kind() != "init_declarator" {
			continue
		}

		name := declarator.ChildByField("declarator")
		value := declarator.ChildByField("value")

		if name == nil || value == nil || name.Kind() != "identifier" {
			continue
		}

		if v, ok := tbl.Resolve(value); ok {
			tbl.Set(strings.TrimSpace(name.Text()), v)
		}
	}
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

func functionName(def synnode.Node) string {
	declarator := def.ChildByField("declarator")
	if declarator == nil {
		return fieldText(def, "name")
	}

	for declarator != nil && declarator.Kind() != "identifier" && declarator.Kind() != "field_identifier" {
		next := declarator.ChildByField("declarator")
		if next == nil {
			break
		}

		declarator = next
	}

	if declarator == nil {
		return ""
	}

	return strings.TrimSpace(declarator.Text())
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
		if member == nil || !functionDefKinds[member.Kind()] {
			continue
		}

		out = append(out, w.analyzeFunction(member, tbl, className, assume))
	}

	return out
}

func (w *Walker) analyzeFunction(def synnode.Node, outerTbl *consttab.Table, className string, assume func(string)) *report.FunctionAnalysis {
	name := functionName(def)
	if name == "" {
		name = fieldText(def, "name")
	}

	shortName := name

	if className != "" {
		name = className + "." + name
	}

	fn := report.NewFunctionAnalysis(name, def.StartRow()+1)

	restore := outerTbl.EnterScope()
	defer restore()

	body := def.ChildByField("body")
	maxNesting := 0

	if body != nil {
		w.walkChildren(body, outerTbl, fn.Counts, 1, 0, &maxNesting, assume)
	}

	fn.MaxLoopNesting = maxNesting
	fn.IsRecursive = body != nil && walker.IsRecursiveCall(body, shortName, isCallNode, calleeShortName)
	fn.ApplyRecursion(carbonmodel.DefaultRecursionDepth)

	return fn
}

func isCallNode(n synnode.Node) bool {
	return n != nil && (n.Kind() == "call_expression" || n.Kind() == "method_invocation")
}

func calleeShortName(n synnode.Node) string {
	fn := n.ChildByField("function")
	if fn == nil {
		fn = n.ChildByField("name")
	}

	if fn == nil {
		return ""
	}

	return walker.ShortName(fn.Text())
}

func (w *Walker) walkChildren(n synnode.Node, tbl *consttab.Table, counts *opcount.Count, mult walker.Multiplier, loopDepth int, maxNesting *int, assume func(string)) {
	if n == nil {
		return
	}

	for i := 0; i < n.NamedChildCount(); i++ {
		w.walk(n.NamedChild(i), tbl, counts, mult, loopDepth, maxNesting, assume)
	}
}

func (w *Walker) walk(n synnode.Node, tbl *consttab.Table, counts *opcount.Count, mult walker.Multiplier, loopDepth int, maxNesting *int, assume func(string)) {
	if n == nil || counts == nil {
		return
	}

	add := func(k carbonmodel.Kind, factor int64) { counts.Add(k, int64(mult)*factor) }

	switch n.Kind() {
	case "function_definition", "method_declaration", "function_declaration", "constructor_declaration",
		"class_declaration", "class_specifier", "interface_declaration":
		return
	case "expression_statement", "labeled_statement":
		w.walkChildren(n, tbl, counts, mult, loopDepth, maxNesting, assume)
	case "declaration", "local_variable_declaration":
		w.walkChildren(n, tbl, counts, mult, loopDepth, maxNesting, assume)
	case "init_declarator", "variable_declarator":
		value := n.ChildByField("value")
		if value != nil {
			add(carbonmodel.Assignment, 1)
			w.walk(value, tbl, counts, mult, loopDepth, maxNesting, assume)
		}
	case "assignment_expression":
		add(carbonmodel.Assignment, 1)
		w.walk(n.ChildByField("right"), tbl, counts, mult, loopDepth, maxNesting, assume)
	case "augmented_assignment_expression":
		add(carbonmodel.Assignment, 1)
		add(arithmeticKindForOp(findOperatorToken(n)), 1)
		w.walk(n.ChildByField("right"), tbl, counts, mult, loopDepth, maxNesting, assume)
	case "update_expression", "postfix_expression":
		if opHasText(n, "++") {
			add(carbonmodel.Addition, 1)
		} else {
			add(carbonmodel.Subtraction, 1)
		}

		add(carbonmodel.Assignment, 1)
	case "for_statement":
		w.walkFor(n, tbl, counts, mult, loopDepth, maxNesting, assume)
	case "while_statement":
		w.walkWhile(n, tbl, counts, mult, loopDepth, maxNesting, assume)
	case "do_statement":
		w.walkDoWhile(n, tbl, counts, mult, loopDepth, maxNesting, assume)
	case "for_in_statement", "for_each_statement", "enhanced_for_statement":
		w.walkForeach(n, tbl, counts, mult, loopDepth, maxNesting, assume)
	case "if_statement":
		add(carbonmodel.ConditionalBranch, 1)
		w.walk(n.ChildByField("condition"), tbl, counts, mult, loopDepth, maxNesting, assume)
		w.walk(n.ChildByField("consequence"), tbl, counts, mult, loopDepth, maxNesting, assume)
		w.walk(n.ChildByField("alternative"), tbl, counts, mult, loopDepth, maxNesting, assume)
	case "try_statement", "catch_clause", "finally_clause", "compound_statement", "block":
		w.walkChildren(n, tbl, counts, mult, loopDepth, maxNesting, assume)
	case "return_statement":
		w.walkChildren(n, tbl, counts, mult, loopDepth, maxNesting, assume)
	case "throw_statement":
		add(carbonmodel.FunctionCall, 1)
		w.walkChildren(n, tbl, counts, mult, loopDepth, maxNesting, assume)
	case "break_statement", "continue_statement", "empty_statement", "preproc_include", "import_declaration", "labeled_statement_label":
		return
	case "call_expression", "method_invocation":
		w.walkCall(n, tbl, counts, mult, loopDepth, maxNesting, assume)
	case "new_expression", "object_creation_expression":
		add(carbonmodel.MemoryAllocation, 1)
		w.walkChildren(n, tbl, counts, mult, loopDepth, maxNesting, assume)
	case "delete_expression":
		add(carbonmodel.MemoryAllocation, 1)
		w.walkChildren(n, tbl, counts, mult, loopDepth, maxNesting, assume)
	case "subscript_expression", "array_access":
		add(carbonmodel.ArrayAccess, 1)
		w.walkChildren(n, tbl, counts, mult, loopDepth, maxNesting, assume)
	case "field_expression", "member_expression", "field_access":
		w.walk(n.ChildByField("argument"), tbl, counts, mult, loopDepth, maxNesting, assume)
		w.walk(n.ChildByField("object"), tbl, counts, mult, loopDepth, maxNesting, assume)
	case "binary_expression":
		w.walkBinary(n, tbl, counts, mult, loopDepth, maxNesting, assume)
	case "unary_expression":
		add(carbonmodel.Addition, 1)
		w.walkChildren(n, tbl, counts, mult, loopDepth, maxNesting, assume)
	case "conditional_expression", "ternary_expression":
		add(carbonmodel.ConditionalBranch, 1)
		w.walkChildren(n, tbl, counts, mult, loopDepth, maxNesting, assume)
	case "cast_expression", "sizeof_expression", "arrow_function":
		add(carbonmodel.FunctionCall, 1)
		w.walkChildren(n, tbl, counts, mult, loopDepth, maxNesting, assume)
	case "initializer_list", "array", "array_initializer":
		elems := n.NamedChildCount()
		if elems > 0 {
			add(carbonmodel.MemoryAllocation, 1)
			add(carbonmodel.Assignment, int64(elems))
		}

		w.walkChildren(n, tbl, counts, mult, loopDepth, maxNesting, assume)
	case "object", "object_literal":
		pairs := n.NamedChildCount()
		if pairs > 0 {
			add(carbonmodel.MemoryAllocation, 1)
			add(carbonmodel.Assignment, int64(pairs))
		}

		w.walkChildren(n, tbl, counts, mult, loopDepth, maxNesting, assume)
	case "template_string", "template_literal":
		w.walkInterpolations(n, tbl, counts, mult, loopDepth, maxNesting, assume)
	case "parenthesized_expression":
		w.walkChildren(n, tbl, counts, mult, loopDepth, maxNesting, assume)
	case "number_literal", "string_literal", "identifier", "true", "false", "null", "this":
		return
	default:
		w.walkChildren(n, tbl, counts, mult, loopDepth, maxNesting, assume)
	}
}

func opHasText(n synnode.Node, text string) bool {
	for i := 0; i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child != nil && child.Text() == text {
			return true
		}
	}

	return false
}

func findOperatorToken(n synnode.Node) string {
	for i := 0; i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}

		switch child.Text() {
		case "+=", "-=", "*=", "/=", "%=":
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
	case "*=":
		return carbonmodel.Multiplication
	case "/=", "%=":
		return carbonmodel.Division
	default:
		return carbonmodel.Addition
	}
}

func findBinaryOp(n synnode.Node) string {
	for i := 0; i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}

		switch child.Text() {
		case "+", "-", "*", "/", "%", "&&", "||", "<", "<=", ">", ">=", "==", "!=":
			return child.Text()
		}
	}

	return ""
}

func (w *Walker) walkBinary(n synnode.Node, tbl *consttab.Table, counts *opcount.Count, mult walker.Multiplier, loopDepth int, maxNesting *int, assume func(string)) {
	add := func(k carbonmodel.Kind, factor int64) { counts.Add(k, int64(mult)*factor) }

	switch findBinaryOp(n) {
	case "+":
		add(carbonmodel.Addition, 1)
	case "-":
		add(carbonmodel.Subtraction, 1)
	case "*":
		add(carbonmodel.Multiplication, 1)
	case "/", "%":
		add(carbonmodel.Division, 1)
	case "&&", "||":
		add(carbonmodel.Comparison, 1)
	case "<", "<=", ">", ">=", "==", "!=":
		add(carbonmodel.Comparison, 1)
	default:
		add(carbonmodel.Addition, 1)
	}

	w.walkChildren(n, tbl, counts, mult, loopDepth, maxNesting, assume)
}

func (w *Walker) walkCall(n synnode.Node, tbl *consttab.Table, counts *opcount.Count, mult walker.Multiplier, loopDepth int, maxNesting *int, assume func(string)) {
	fnNode := n.ChildByField("function")
	if fnNode == nil {
		fnNode = n.ChildByField("name")
	}

	dotted := ""
	shortName := ""

	if fnNode != nil {
		dotted = strings.TrimSpace(fnNode.Text())
		shortName = walker.ShortName(dotted)
	}

	kind := walker.CallKind(w.language, shortName, dotted)
	counts.Add(kind, int64(mult))

	args := n.ChildByField("arguments")
	if args != nil {
		w.walkChildren(args, tbl, counts, mult, loopDepth, maxNesting, assume)
	}
}

func (w *Walker) walkInterpolations(n synnode.Node, tbl *consttab.Table, counts *opcount.Count, mult walker.Multiplier, loopDepth int, maxNesting *int, assume func(string)) {
	for i := 0; i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		if child != nil && (child.Kind() == "template_substitution" || child.Kind() == "interpolation") {
			counts.Add(carbonmodel.FunctionCall, int64(mult))
			w.walkChildren(child, tbl, counts, mult, loopDepth, maxNesting, assume)
		}
	}
}

func bumpNesting(loopDepth int, maxNesting *int) int {
	newDepth := loopDepth + 1
	if maxNesting != nil && newDepth > *maxNesting {
		*maxNesting = newDepth
	}

	return newDepth
}

func (w *Walker) walkFor(n synnode.Node, tbl *consttab.Table, counts *opcount.Count, mult walker.Multiplier, loopDepth int, maxNesting *int, assume func(string)) {
	init := n.ChildByField("initializer")
	cond := n.ChildByField("condition")
	step := n.ChildByField("update")
	body := n.ChildByField("body")

	iterations := loopbound.BraceFor(tbl, init, cond, step)
	counts.Add(carbonmodel.Comparison, int64(mult)*iterations)

	newDepth := bumpNesting(loopDepth, maxNesting)
	newMult := mult * walker.Multiplier(iterations)
	w.walk(body, tbl, counts, newMult, newDepth, maxNesting, assume)
}

func (w *Walker) walkWhile(n synnode.Node, tbl *consttab.Table, counts *opcount.Count, mult walker.Multiplier, loopDepth int, maxNesting *int, assume func(string)) {
	cond := n.ChildByField("condition")
	body := n.ChildByField("body")

	incVar, incStep, hasInc := findIncrementInBody(body, tbl)
	iterations := loopbound.BraceWhile(tbl, cond, hasInc, incVar, incStep)
	counts.Add(carbonmodel.Comparison, int64(mult)*iterations)

	newDepth := bumpNesting(loopDepth, maxNesting)
	newMult := mult * walker.Multiplier(iterations)
	w.walk(body, tbl, counts, newMult, newDepth, maxNesting, assume)
}

func (w *Walker) walkDoWhile(n synnode.Node, tbl *consttab.Table, counts *opcount.Count, mult walker.Multiplier, loopDepth int, maxNesting *int, assume func(string)) {
	body := n.ChildByField("body")
	iterations := int64(carbonmodel.DefaultLoopIterations)
	counts.Add(carbonmodel.Comparison, int64(mult)*iterations)

	newDepth := bumpNesting(loopDepth, maxNesting)
	newMult := mult * walker.Multiplier(iterations)
	w.walk(body, tbl, counts, newMult, newDepth, maxNesting, assume)
}

func (w *Walker) walkForeach(n synnode.Node, tbl *consttab.Table, counts *opcount.Count, mult walker.Multiplier, loopDepth int, maxNesting *int, assume func(string)) {
	body := n.ChildByField("body")
	iterations := int64(carbonmodel.DefaultLoopIterations)
	counts.Add(carbonmodel.Comparison, int64(mult)*iterations)

	newDepth := bumpNesting(loopDepth, maxNesting)
	newMult := mult * walker.Multiplier(iterations)
	w.walk(body, tbl, counts, newMult, newDepth, maxNesting, assume)
}

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
		if aug == nil || aug.Kind() != "augmented_assignment_expression" || findOperatorToken(aug) != "+=" {
			continue
		}

		left := aug.ChildByField("left")
		right := aug.ChildByField("right")

		if left == nil || right == nil {
			continue
		}

		if v, resolved := tbl.Resolve(right); resolved && v > 0 {
			return strings.TrimSpace(left.Text()), v, true
		}
	}

	return "", 0, false
}
