package consttab

import (
	"strconv"
	"strings"

	"github.com/watttrace/analyzer-core/internal/synnode"
	"github.com/watttrace/analyzer-core/pkg/carbonmodel"
)

// Resolve attempts to statically resolve expr to an integer, per §4.5:
// literal integers (with base prefixes and digit separators), floats
// truncated to integer, bare identifier lookups, parenthesized
// subexpressions, binary arithmetic on two resolved integers, unary +/-,
// and the single heuristic case of a `len(...)` call, which resolves to
// the default loop-iteration constant.
func (t *Table) Resolve(expr synnode.Node) (int64, bool) {
	if expr == nil {
		return 0, false
	}

	switch expr.Kind() {
	case "integer", "int_literal", "number_literal", "decimal_integer_literal", "number":
		return resolveIntLiteral(expr.Text())
	case "float", "float_literal", "decimal_floating_point_literal":
		return resolveFloatLiteral(expr.Text())
	case "identifier", "id", "name":
		return t.Lookup(strings.TrimSpace(expr.Text()))
	case "parenthesized_expression", "paren_expr":
		return t.resolveFirstChild(expr)
	case "binary_expression", "binary_operator", "additive_expression", "multiplicative_expression":
		return t.resolveBinary(expr)
	case "unary_expression", "unary_operator":
		return t.resolveUnary(expr)
	case "call", "call_expression", "method_invocation":
		return t.resolveCall(expr)
	default:
		return t.resolveLiteralFallback(expr)
	}
}

// resolveLiteralFallback handles grammars that don't distinguish literal
// subtypes by kind and instead expose the raw token text directly.
func (t *Table) resolveLiteralFallback(expr synnode.Node) (int64, bool) {
	text := strings.TrimSpace(expr.Text())
	if text == "" {
		return 0, false
	}

	if v, ok := resolveIntLiteral(text); ok {
		return v, true
	}

	if v, ok := resolveFloatLiteral(text); ok {
		return v, true
	}

	return t.Lookup(text)
}

func (t *Table) resolveFirstChild(expr synnode.Node) (int64, bool) {
	if expr.NamedChildCount() == 0 {
		return 0, false
	}

	return t.Resolve(expr.NamedChild(0))
}

// resolveIntLiteral parses a literal integer token: decimal, 0x/0o/0b
// bases, underscore digit separators (Python/Java style), and a
// trailing Java-style type suffix (L, l).
func resolveIntLiteral(raw string) (int64, bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return 0, false
	}

	text = strings.ReplaceAll(text, "_", "")
	text = strings.TrimRight(text, "LlUu")

	base := 10

	switch {
	case strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X"):
		base = 16
		text = text[2:]
	case strings.HasPrefix(text, "0o") || strings.HasPrefix(text, "0O"):
		base = 8
		text = text[2:]
	case strings.HasPrefix(text, "0b") || strings.HasPrefix(text, "0B"):
		base = 2
		text = text[2:]
	}

	if text == "" {
		return 0, false
	}

	v, err := strconv.ParseInt(text, base, 64)
	if err != nil {
		return 0, false
	}

	return v, true
}

// resolveFloatLiteral parses a float literal and truncates to integer.
func resolveFloatLiteral(raw string) (int64, bool) {
	text := strings.TrimSpace(raw)
	text = strings.TrimRight(text, "FfDd")

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}

	return int64(f), true
}

// resolveBinary resolves `a OP b` where OP is one of + - * / // %.
// Division by zero (or modulo by zero) yields "unresolved", per §4.5.
func (t *Table) resolveBinary(expr synnode.Node) (int64, bool) {
	left := expr.ChildByField("left")
	right := expr.ChildByField("right")
	op := findOperatorToken(expr)

	if left == nil || right == nil || op == "" {
		return 0, false
	}

	leftVal, leftOK := t.Resolve(left)
	rightVal, rightOK := t.Resolve(right)

	if !leftOK || !rightOK {
		return 0, false
	}

	return applyBinaryOp(op, leftVal, rightVal)
}

func applyBinaryOp(op string, leftVal, rightVal int64) (int64, bool) {
	switch op {
	case "+":
		return leftVal + rightVal, true
	case "-":
		return leftVal - rightVal, true
	case "*":
		return leftVal * rightVal, true
	case "/", "//":
		if rightVal == 0 {
			return 0, false
		}

		return floorDiv(leftVal, rightVal), true
	case "%":
		if rightVal == 0 {
			return 0, false
		}

		return floorMod(leftVal, rightVal), true
	default:
		return 0, false
	}
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}

	return q
}

func floorMod(a, b int64) int64 {
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}

	return m
}

// findOperatorToken scans raw (anonymous-token-inclusive) children for
// the operator token, since grammars expose operators as unnamed
// children rather than a named field.
func findOperatorToken(expr synnode.Node) string {
	for i := 0; i < expr.ChildCount(); i++ {
		child := expr.Child(i)
		if child == nil {
			continue
		}

		switch child.Text() {
		case "+", "-", "*", "/", "//", "%":
			return child.Text()
		}
	}

	return ""
}

// resolveUnary resolves unary +/- on a resolved integer operand.
func (t *Table) resolveUnary(expr synnode.Node) (int64, bool) {
	operand := expr.ChildByField("argument")
	if operand == nil && expr.NamedChildCount() > 0 {
		operand = expr.NamedChild(expr.NamedChildCount() - 1)
	}

	if operand == nil {
		return 0, false
	}

	val, ok := t.Resolve(operand)
	if !ok {
		return 0, false
	}

	for i := 0; i < expr.ChildCount(); i++ {
		child := expr.Child(i)
		if child == nil {
			continue
		}

		if child.Text() == "-" {
			return -val, true
		}

		if child.Text() == "+" {
			return val, true
		}
	}

	return val, true
}

// lenCallHeuristicDefault is the only function call §4.5 allows to
// resolve: `len(...)` in the indentation dialect, returning the default
// loop iteration count as a heuristic stand-in for an unknown collection
// size. Tied to carbonmodel.DefaultLoopIterations so the two cannot
// drift if that default is ever overridden.
var lenCallHeuristicDefault = int64(carbonmodel.DefaultLoopIterations)

func (t *Table) resolveCall(expr synnode.Node) (int64, bool) {
	callee := expr.ChildByField("function")
	if callee == nil && expr.NamedChildCount() > 0 {
		callee = expr.NamedChild(0)
	}

	if callee == nil || strings.TrimSpace(callee.Text()) != "len" {
		return 0, false
	}

	return lenCallHeuristicDefault, true
}
