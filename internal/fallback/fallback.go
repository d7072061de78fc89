// Package fallback implements the textual fallback walker (C9): a
// regex/line-oriented approximation of C7/C8 used when no parse tree is
// available (spec §4.8).
package fallback

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/watttrace/analyzer-core/pkg/carbonmodel"
	"github.com/watttrace/analyzer-core/pkg/langclassify"
	"github.com/watttrace/analyzer-core/pkg/opcount"
	"github.com/watttrace/analyzer-core/pkg/report"
)

var (
	reIndentDef     = regexp.MustCompile(`^(\s*)(async\s+)?def\s+([A-Za-z_][A-Za-z0-9_]*)\s*\(`)
	reBraceFuncHead = regexp.MustCompile(`(?:^|\s)([A-Za-z_][A-Za-z0-9_<>:,\s\*&]*?)\s+([A-Za-z_][A-Za-z0-9_]*)\s*\([^;{]*\)\s*\{?\s*$`)
	reFuncDeclJS    = regexp.MustCompile(`function\s+([A-Za-z_][A-Za-z0-9_]*)\s*\(`)

	reForHeader     = regexp.MustCompile(`^\s*for\s*\(`)
	reWhileHeader   = regexp.MustCompile(`^\s*while\s*\(`)
	reDoHeader      = regexp.MustCompile(`^\s*do\b`)
	reForeachHeader = regexp.MustCompile(`\bfor\s*\(\s*[\w<>\[\],\s]+\s*:\s*`)

	reIndentFor   = regexp.MustCompile(`^\s*for\s+\w+\s+in\s+(.+):\s*$`)
	reIndentWhile = regexp.MustCompile(`^\s*while\s+(.+):\s*$`)
	reRangeCall   = regexp.MustCompile(`range\(([^)]*)\)`)

	reLineComment  = regexp.MustCompile(`(?m)//.*$`)
	reBlockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	reHashComment  = regexp.MustCompile(`(?m)#.*$`)
	reTripleQuote  = regexp.MustCompile(`(?s)("""|''').*?("""|''')`)

	reArithmetic  = regexp.MustCompile(`[+\-]`)
	reMul         = regexp.MustCompile(`[*]`)
	reAssign      = regexp.MustCompile(`[^=!<>+\-*/%]=[^=]`)
	reComparison  = regexp.MustCompile(`==|!=|<=|>=|<|>`)
	reArrayAccess = regexp.MustCompile(`\w\s*\[`)
	reConditional = regexp.MustCompile(`\bif\b|\belse\b|\?`)
	reCallLike    = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_.>:]*)\s*\(`)
)

// Walker is the line-oriented textual analyzer.
type Walker struct {
	language string
	indent   bool
}

// New creates a fallback walker. isIndentDialect selects the Python-like
// comment/definition conventions versus brace-style ones.
func New(language string, isIndentDialect bool) *Walker {
	return &Walker{language: language, indent: isIndentDialect}
}

// Analyze scans source line by line and produces a best-effort result.
func (w *Walker) Analyze(source string) *report.AnalysisResult {
	result := report.New(w.language, "")
	result.Assume("Analyzed with the textual fallback walker (no parse tree available)")

	stripped := w.stripComments(source)
	lines := strings.Split(stripped, "\n")

	if w.indent {
		w.analyzeIndent(lines, result)
	} else {
		w.analyzeBrace(lines, result)
	}

	return result
}

func (w *Walker) stripComments(source string) string {
	if w.indent {
		source = reTripleQuote.ReplaceAllString(source, "")
		source = reHashComment.ReplaceAllString(source, "")
	} else {
		source = reBlockComment.ReplaceAllString(source, "")
		source = reLineComment.ReplaceAllString(source, "")
	}

	return source
}

func indentOf(line string) int {
	count := 0

	for _, r := range line {
		if r == ' ' {
			count++
		} else if r == '\t' {
			count += 8
		} else {
			break
		}
	}

	return count
}

// analyzeIndent extracts `def` blocks by indentation and walks each body
// with a recursive-descent cascade over nested for/while headers.
func (w *Walker) analyzeIndent(lines []string, result *report.AnalysisResult) {
	i := 0
	for i < len(lines) {
		m := reIndentDef.FindStringSubmatch(lines[i])
		if m == nil {
			w.tallyLine(lines[i], result.GlobalOperations, 1)
			i++

			continue
		}

		defIndent := len(m[1])
		name := m[3]
		start := i
		i++

		bodyStart := i
		for i < len(lines) {
			line := lines[i]
			if strings.TrimSpace(line) == "" {
				i++

				continue
			}

			if indentOf(line) <= defIndent {
				break
			}

			i++
		}

		body := lines[bodyStart:i]
		fn := report.NewFunctionAnalysis(name, start+1)

		maxNesting := 0
		w.walkIndentBlock(body, defIndent, fn.Counts, 1, 0, &maxNesting)
		fn.MaxLoopNesting = maxNesting
		fn.IsRecursive = containsCallTo(body, name)
		fn.ApplyRecursion(carbonmodel.DefaultRecursionDepth)

		result.Functions = append(result.Functions, fn)
	}
}

func containsCallTo(lines []string, name string) bool {
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\s*\(`)
	for _, line := range lines {
		if re.MatchString(line) {
			return true
		}
	}

	return false
}

// walkIndentBlock processes lines at a given base indentation, recursing
// into nested for/while blocks with a multiplied iteration cascade.
func (w *Walker) walkIndentBlock(lines []string, baseIndent int, counts *opcount.Count, mult int64, loopDepth int, maxNesting *int) {
	i := 0
	for i < len(lines) {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			i++

			continue
		}

		curIndent := indentOf(line)
		if curIndent < baseIndent {
			i++

			continue
		}

		if m := reIndentFor.FindStringSubmatch(line); m != nil {
			iterations := estimateIndentForIterations(m[1])
			counts.Add(carbonmodel.Comparison, mult*iterations)

			bodyStart := i + 1
			j := bodyStart

			for j < len(lines) && (strings.TrimSpace(lines[j]) == "" || indentOf(lines[j]) > curIndent) {
				j++
			}

			newDepth := loopDepth + 1
			if newDepth > *maxNesting {
				*maxNesting = newDepth
			}

			w.walkIndentBlock(lines[bodyStart:j], curIndent+1, counts, mult*iterations, newDepth, maxNesting)
			i = j

			continue
		}

		if m := reIndentWhile.FindStringSubmatch(line); m != nil {
			iterations := int64(carbonmodel.DefaultLoopIterations)
			counts.Add(carbonmodel.Comparison, mult*iterations)

			bodyStart := i + 1
			j := bodyStart

			for j < len(lines) && (strings.TrimSpace(lines[j]) == "" || indentOf(lines[j]) > curIndent) {
				j++
			}

			newDepth := loopDepth + 1
			if newDepth > *maxNesting {
				*maxNesting = newDepth
			}

			w.walkIndentBlock(lines[bodyStart:j], curIndent+1, counts, mult*iterations, newDepth, maxNesting)
			i = j

			continue
		}

		if reIndentDef.MatchString(line) {
			// Nested definition: skip its body (not counted as executed).
			j := i + 1
			for j < len(lines) && (strings.TrimSpace(lines[j]) == "" || indentOf(lines[j]) > curIndent) {
				j++
			}

			i = j

			continue
		}

		w.tallyLine(line, counts, mult)
		i++
	}
}

func estimateIndentForIterations(iterExpr string) int64 {
	iterExpr = strings.TrimSpace(iterExpr)

	if m := reRangeCall.FindStringSubmatch(iterExpr); m != nil {
		args := strings.Split(m[1], ",")
		ints := make([]int64, 0, len(args))

		for _, a := range args {
			v, err := strconv.ParseInt(strings.TrimSpace(a), 10, 64)
			if err != nil {
				return carbonmodel.DefaultLoopIterations
			}

			ints = append(ints, v)
		}

		switch len(ints) {
		case 1:
			return max0(ints[0])
		case 2:
			return max0(ints[1] - ints[0])
		case 3:
			if ints[2] == 0 {
				return carbonmodel.DefaultLoopIterations
			}

			return max0(ceilDiv(ints[1]-ints[0], ints[2]))
		}
	}

	return carbonmodel.DefaultLoopIterations
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

	q := a / b
	if a%b != 0 && (a < 0) == (b < 0) {
		q++
	}

	return q
}

// analyzeBrace extracts functions via a header regex and brace matching,
// then walks the body with a brace-depth-tracked loop cascade.
func (w *Walker) analyzeBrace(lines []string, result *report.AnalysisResult) {
	i := 0
	for i < len(lines) {
		name, isFunc := braceFunctionHeader(lines[i])
		if !isFunc {
			w.tallyLine(lines[i], result.GlobalOperations, 1)
			i++

			continue
		}

		start := i
		depth := 0
		opened := false
		bodyLines := []string{}

		for i < len(lines) {
			line := lines[i]
			for _, r := range line {
				switch r {
				case '{':
					depth++
					opened = true
				case '}':
					depth--
				}
			}

			if opened {
				// The signature before the opening brace is neither
				// tallied nor taken for a recursive call.
				if len(bodyLines) == 0 {
					line = line[strings.Index(line, "{"):]
				}

				bodyLines = append(bodyLines, line)
			}

			i++

			if opened && depth <= 0 {
				break
			}
		}

		fn := report.NewFunctionAnalysis(name, start+1)
		maxNesting := 0
		w.walkBraceLines(bodyLines, fn.Counts, 1, 0, &maxNesting)
		fn.MaxLoopNesting = maxNesting
		fn.IsRecursive = containsCallTo(bodyLines, name)
		fn.ApplyRecursion(carbonmodel.DefaultRecursionDepth)

		result.Functions = append(result.Functions, fn)
	}
}

func braceFunctionHeader(line string) (string, bool) {
	if m := reBraceFuncHead.FindStringSubmatch(line); m != nil && !isControlKeyword(m[2]) {
		return m[2], true
	}

	if m := reFuncDeclJS.FindStringSubmatch(line); m != nil {
		return m[1], true
	}

	return "", false
}

func isControlKeyword(word string) bool {
	switch word {
	case "if", "for", "while", "switch", "catch", "return":
		return true
	default:
		return false
	}
}

// walkBraceLines maintains a stack of (iterations, braceDepthAtEntry) to
// derive the current cascading multiplier (§4.8).
func (w *Walker) walkBraceLines(lines []string, counts *opcount.Count, baseMult int64, loopDepth int, maxNesting *int) {
	type loopFrame struct {
		iterations int64
		depthAt    int
	}

	var stack []loopFrame

	depth := 0
	curDepth := loopDepth

	currentMult := func() int64 {
		mult := baseMult
		for _, f := range stack {
			mult *= f.iterations
		}

		return mult
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		switch {
		case reForHeader.MatchString(trimmed) && !reForeachHeader.MatchString(trimmed):
			iterations := estimateBraceForIterations(trimmed)
			counts.Add(carbonmodel.Comparison, currentMult()*iterations)
			stack = append(stack, loopFrame{iterations: iterations, depthAt: depth})
			curDepth++

			if curDepth > *maxNesting {
				*maxNesting = curDepth
			}
		case reForeachHeader.MatchString(trimmed), reWhileHeader.MatchString(trimmed), reDoHeader.MatchString(trimmed):
			iterations := int64(carbonmodel.DefaultLoopIterations)
			counts.Add(carbonmodel.Comparison, currentMult()*iterations)
			stack = append(stack, loopFrame{iterations: iterations, depthAt: depth})
			curDepth++

			if curDepth > *maxNesting {
				*maxNesting = curDepth
			}
		default:
			w.tallyLine(line, counts, currentMult())
		}

		for _, r := range line {
			switch r {
			case '{':
				depth++
			case '}':
				depth--

				for len(stack) > 0 && stack[len(stack)-1].depthAt >= depth {
					stack = stack[:len(stack)-1]
					curDepth--
				}
			}
		}
	}
}

func estimateBraceForIterations(header string) int64 {
	inner := header
	if idx := strings.Index(header, "("); idx >= 0 {
		if end := strings.LastIndex(header, ")"); end > idx {
			inner = header[idx+1 : end]
		}
	}

	parts := strings.Split(inner, ";")
	if len(parts) != 3 {
		return carbonmodel.DefaultLoopIterations
	}

	start, startOK := extractIntAssignment(parts[0])
	end, op, endOK := extractComparisonBound(parts[1])
	step, stepOK := extractStep(parts[2])

	if !startOK || !endOK || !stepOK || step == 0 {
		return carbonmodel.DefaultLoopIterations
	}

	switch op {
	case "<":
		return max0(ceilDiv(end-start, step))
	case "<=":
		return max0(ceilDiv(end-start+1, step))
	case ">":
		return max0(ceilDiv(start-end, -step))
	case ">=":
		return max0(ceilDiv(start-end+1, -step))
	default:
		return carbonmodel.DefaultLoopIterations
	}
}

var (
	reAssignInt       = regexp.MustCompile(`=\s*(-?\d+)\s*$`)
	reCompareBound    = regexp.MustCompile(`(<=|>=|<|>)\s*(-?\d+)`)
	reIncrementToken  = regexp.MustCompile(`\+\+`)
	reDecrementToken  = regexp.MustCompile(`--`)
	rePlusEqualsToken = regexp.MustCompile(`\+=\s*(-?\d+)`)
	reMinusEqualsTok  = regexp.MustCompile(`-=\s*(-?\d+)`)
)

func extractIntAssignment(s string) (int64, bool) {
	m := reAssignInt.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}

	v, err := strconv.ParseInt(m[1], 10, 64)

	return v, err == nil
}

func extractComparisonBound(s string) (int64, string, bool) {
	m := reCompareBound.FindStringSubmatch(s)
	if m == nil {
		return 0, "", false
	}

	v, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return 0, "", false
	}

	return v, m[1], true
}

func extractStep(s string) (int64, bool) {
	switch {
	case reIncrementToken.MatchString(s):
		return 1, true
	case reDecrementToken.MatchString(s):
		return -1, true
	}

	if m := rePlusEqualsToken.FindStringSubmatch(s); m != nil {
		v, err := strconv.ParseInt(m[1], 10, 64)

		return v, err == nil
	}

	if m := reMinusEqualsTok.FindStringSubmatch(s); m != nil {
		v, err := strconv.ParseInt(m[1], 10, 64)

		return -v, err == nil
	}

	return 0, false
}

// tallyLine classifies a single non-loop-header line per §4.8's per-line
// counting rules.
func (w *Walker) tallyLine(line string, counts *opcount.Count, mult int64) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return
	}

	if reAssign.MatchString(trimmed) {
		counts.Add(carbonmodel.Assignment, mult)
	}

	for range reComparison.FindAllString(trimmed, -1) {
		counts.Add(carbonmodel.Comparison, mult)
	}

	for range reArrayAccess.FindAllString(trimmed, -1) {
		counts.Add(carbonmodel.ArrayAccess, mult)
	}

	if reConditional.MatchString(trimmed) {
		counts.Add(carbonmodel.ConditionalBranch, mult)
	}

	for range reMul.FindAllString(trimmed, -1) {
		counts.Add(carbonmodel.Multiplication, mult)
	}

	for range reArithmetic.FindAllString(trimmed, -1) {
		counts.Add(carbonmodel.Addition, mult)
	}

	for _, m := range reCallLike.FindAllStringSubmatch(trimmed, -1) {
		dotted := m[1]
		shortName := dotted
		if idx := strings.LastIndexAny(dotted, "."); idx >= 0 {
			shortName = dotted[idx+1:]
		}

		counts.Add(callKind(w.language, shortName, dotted), mult)
	}
}

func callKind(language, shortName, dotted string) carbonmodel.Kind {
	switch langclassify.Classify(language, shortName, dotted) {
	case langclassify.KindIO:
		return carbonmodel.IOOperation
	case langclassify.KindNetwork:
		return carbonmodel.NetworkOperation
	case langclassify.KindAllocation:
		return carbonmodel.MemoryAllocation
	default:
		return carbonmodel.FunctionCall
	}
}
