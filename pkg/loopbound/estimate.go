// Package loopbound implements the loop-iteration estimator (spec §4.6):
// given a loop header node and the current constant table, produce a
// non-negative iteration count, defaulting to carbonmodel.DefaultLoopIterations
// whenever resolution is incomplete.
package loopbound

import (
	"math"
	"strings"

	"github.com/watttrace/analyzer-core/internal/synnode"
	"github.com/watttrace/analyzer-core/pkg/carbonmodel"
	"github.com/watttrace/analyzer-core/pkg/consttab"
)

// binarySearchIterations is the ⌈log2(10^6)⌉ heuristic for the
// `low <= high` binary-search while-loop idiom.
const binarySearchIterations = 20

// IndentForIn estimates a Python-style `for x in ITER:` loop, where iter
// is the ITER expression node.
func IndentForIn(tbl *consttab.Table, iter synnode.Node) int64 {
	if iter == nil {
		return carbonmodel.DefaultLoopIterations
	}

	if n, ok := rangeCall(tbl, iter); ok {
		return n
	}

	if n, ok := enumerateCall(tbl, iter); ok {
		return n
	}

	if isZipCall(iter) {
		return carbonmodel.DefaultLoopIterations
	}

	if n, ok := literalCollectionLen(iter); ok {
		return n
	}

	if n, ok := stringLiteralLen(iter); ok {
		return n
	}

	if iter.Kind() == "identifier" {
		if n, ok := tbl.Lookup(strings.TrimSpace(iter.Text())); ok {
			return max0(n)
		}
	}

	return carbonmodel.DefaultLoopIterations
}

func isCallTo(n synnode.Node, name string) bool {
	if n == nil || (n.Kind() != "call" && n.Kind() != "call_expression") {
		return false
	}

	callee := n.ChildByField("function")
	if callee == nil && n.NamedChildCount() > 0 {
		callee = n.NamedChild(0)
	}

	return callee != nil && strings.TrimSpace(callee.Text()) == name
}

func callArgs(n synnode.Node) []synnode.Node {
	args := n.ChildByField("arguments")
	if args == nil {
		return nil
	}

	out := make([]synnode.Node, args.NamedChildCount())
	for i := range out {
		out[i] = args.NamedChild(i)
	}

	return out
}

// rangeCall handles range(N), range(A,B), range(A,B,S), and
// range(len(...)) which defers to the default.
func rangeCall(tbl *consttab.Table, n synnode.Node) (int64, bool) {
	if !isCallTo(n, "range") {
		return 0, false
	}

	args := callArgs(n)

	switch len(args) {
	case 1:
		if args[0] != nil && isCallTo(args[0], "len") {
			return carbonmodel.DefaultLoopIterations, true
		}

		if end, ok := tbl.Resolve(args[0]); ok {
			return max0(end), true
		}
	case 2:
		start, startOK := tbl.Resolve(args[0])
		end, endOK := tbl.Resolve(args[1])

		if startOK && endOK {
			return max0(end - start), true
		}
	case 3:
		start, startOK := tbl.Resolve(args[0])
		end, endOK := tbl.Resolve(args[1])
		step, stepOK := tbl.Resolve(args[2])

		if startOK && endOK && stepOK && step != 0 {
			return max0(ceilDiv(end-start, step)), true
		}
	}

	return carbonmodel.DefaultLoopIterations, true
}

// enumerateCall handles enumerate(range(...)) by recursing; any other
// argument defaults.
func enumerateCall(tbl *consttab.Table, n synnode.Node) (int64, bool) {
	if !isCallTo(n, "enumerate") {
		return 0, false
	}

	args := callArgs(n)
	if len(args) != 1 {
		return carbonmodel.DefaultLoopIterations, true
	}

	if isCallTo(args[0], "range") {
		return IndentForIn(tbl, args[0]), true
	}

	return carbonmodel.DefaultLoopIterations, true
}

func isZipCall(n synnode.Node) bool { return isCallTo(n, "zip") }

// literalCollectionLen handles list/tuple/set/dict literals.
func literalCollectionLen(n synnode.Node) (int64, bool) {
	switch n.Kind() {
	case "list", "list_literal", "tuple", "set", "set_literal", "array":
		return int64(n.NamedChildCount()), true
	case "dictionary", "dict", "dict_literal", "object":
		return int64(n.NamedChildCount()), true
	default:
		return 0, false
	}
}

func stringLiteralLen(n synnode.Node) (int64, bool) {
	switch n.Kind() {
	case "string", "string_literal":
		text := strings.Trim(n.Text(), "\"'")

		return int64(len([]rune(text))), true
	default:
		return 0, false
	}
}

func max0(v int64) int64 {
	if v < 0 {
		return 0
	}

	return v
}

func ceilDiv(a, b int64) int64 {
	if b == 0 {
		return 0
	}

	return int64(math.Ceil(float64(a) / float64(b)))
}

// IndentWhile estimates a Python-style `while COND:` loop. bodyHasIncrement
// reports whether the body contains `x += S` (or similar) for the same
// variable x named in cond, with the step magnitude incrementStep.
func IndentWhile(tbl *consttab.Table, cond synnode.Node, bodyHasIncrement bool, incrementVar string, incrementStep int64) int64 {
	if cond == nil {
		return carbonmodel.DefaultLoopIterations
	}

	if isBinarySearchIdiom(cond) {
		return binarySearchIterations
	}

	varName, limit, op, ok := parseSimpleComparison(tbl, cond)
	if !ok {
		return carbonmodel.DefaultLoopIterations
	}

	switch op {
	case "<", "<=":
		if bodyHasIncrement && incrementVar == varName && incrementStep > 0 {
			return max1(limit / incrementStep)
		}

		return max0(limit)
	case ">", ">=":
		if start, ok := tbl.Lookup(varName); ok {
			return max1(start - limit)
		}
	}

	return carbonmodel.DefaultLoopIterations
}

func max1(v int64) int64 {
	if v < 1 {
		return 1
	}

	return v
}

// isBinarySearchIdiom recognizes the `low <= high` shape.
func isBinarySearchIdiom(cond synnode.Node) bool {
	left := cond.ChildByField("left")
	right := cond.ChildByField("right")

	if left == nil || right == nil {
		return false
	}

	op := findComparisonOp(cond)

	return op == "<=" && left.Kind() == "identifier" && right.Kind() == "identifier"
}

func findComparisonOp(cond synnode.Node) string {
	for i := 0; i < cond.ChildCount(); i++ {
		child := cond.Child(i)
		if child == nil {
			continue
		}

		switch child.Text() {
		case "<", "<=", ">", ">=":
			return child.Text()
		}
	}

	return ""
}

// parseSimpleComparison extracts `x OP N` from cond where x is an
// identifier and N resolves to a known integer.
func parseSimpleComparison(tbl *consttab.Table, cond synnode.Node) (varName string, limit int64, op string, ok bool) {
	left := cond.ChildByField("left")
	right := cond.ChildByField("right")

	if left == nil || right == nil || left.Kind() != "identifier" {
		return "", 0, "", false
	}

	op = findComparisonOp(cond)
	if op == "" {
		return "", 0, "", false
	}

	limit, limitOK := tbl.Resolve(right)
	if !limitOK {
		return "", 0, "", false
	}

	return strings.TrimSpace(left.Text()), limit, op, true
}

// BraceFor estimates a C-style `for(init; cond; step)` loop.
func BraceFor(tbl *consttab.Table, initDecl, cond, step synnode.Node) int64 {
	start, startOK := resolveForInit(tbl, initDecl)
	end, endOK, op := resolveForCond(tbl, cond)
	delta, deltaOK := resolveForStep(tbl, step)

	if !startOK || !endOK || !deltaOK || delta == 0 {
		return carbonmodel.DefaultLoopIterations
	}

	switch op {
	case "<":
		return max0(ceilDiv(end-start, delta))
	case "<=":
		return max0(ceilDiv(end-start+1, delta))
	case ">":
		return max0(ceilDiv(start-end, -delta))
	case ">=":
		return max0(ceilDiv(start-end+1, -delta))
	default:
		return carbonmodel.DefaultLoopIterations
	}
}

func resolveForInit(tbl *consttab.Table, initDecl synnode.Node) (int64, bool) {
	if initDecl == nil {
		return 0, false
	}

	if value := initDecl.ChildByField("value"); value != nil {
		return tbl.Resolve(value)
	}

	// `int i = 0` surfaces as a declaration wrapping an init_declarator,
	// whose own "value" field holds the initializer.
	for i := 0; i < initDecl.NamedChildCount(); i++ {
		child := initDecl.NamedChild(i)
		if child == nil {
			continue
		}

		if value := child.ChildByField("value"); value != nil {
			return tbl.Resolve(value)
		}
	}

	if initDecl.NamedChildCount() > 0 {
		return tbl.Resolve(initDecl.NamedChild(initDecl.NamedChildCount() - 1))
	}

	return 0, false
}

func resolveForCond(tbl *consttab.Table, cond synnode.Node) (int64, bool, string) {
	if cond == nil {
		return 0, false, ""
	}

	right := cond.ChildByField("right")
	op := findComparisonOp(cond)

	if right == nil || op == "" {
		return 0, false, ""
	}

	v, ok := tbl.Resolve(right)

	return v, ok, op
}

func resolveForStep(tbl *consttab.Table, step synnode.Node) (int64, bool) {
	if step == nil {
		return 0, false
	}

	switch step.Kind() {
	case "update_expression", "postfix_expression", "unary_expression":
		for i := 0; i < step.ChildCount(); i++ {
			child := step.Child(i)
			if child == nil {
				continue
			}

			switch child.Text() {
			case "++":
				return 1, true
			case "--":
				return -1, true
			}
		}
	case "assignment_expression", "augmented_assignment_expression":
		right := step.ChildByField("right")
		if right == nil {
			return 0, false
		}

		v, ok := tbl.Resolve(right)
		if !ok {
			return 0, false
		}

		for i := 0; i < step.ChildCount(); i++ {
			child := step.Child(i)
			if child == nil {
				continue
			}

			if child.Text() == "-=" {
				return -v, true
			}
		}

		return v, true
	}

	return 0, false
}

// BraceWhile estimates a C-style `while(cond)` loop, same rules as IndentWhile.
func BraceWhile(tbl *consttab.Table, cond synnode.Node, bodyHasIncrement bool, incrementVar string, incrementStep int64) int64 {
	return IndentWhile(tbl, cond, bodyHasIncrement, incrementVar, incrementStep)
}

// ForeachDefault is used for foreach/for-in/for-of/do-while loops, which
// always use the canonical default (§4.6).
func ForeachDefault() int64 { return carbonmodel.DefaultLoopIterations }

// ComprehensionFor estimates the `for` clause of a comprehension using
// the same rules as IndentForIn.
func ComprehensionFor(tbl *consttab.Table, iter synnode.Node) int64 {
	return IndentForIn(tbl, iter)
}
