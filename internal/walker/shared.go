// Package walker holds logic shared between the indentation-dialect (C7)
// and brace-dialect (C8) AST walkers: call classification, syntactic
// recursion detection, and the multiplier threading convention.
package walker

import (
	"strings"

	"github.com/watttrace/analyzer-core/internal/synnode"
	"github.com/watttrace/analyzer-core/pkg/carbonmodel"
	"github.com/watttrace/analyzer-core/pkg/langclassify"
)

// Multiplier is the cascading loop multiplier threaded through recursive
// descent (§4.7); it is a parameter, never global state.
type Multiplier int64

// CallKind classifies a call node by its short and dotted forms (C3) into
// the operation kind it contributes (§4.7's call rows).
func CallKind(language, shortName, dottedForm string) carbonmodel.Kind {
	switch langclassify.Classify(language, shortName, dottedForm) {
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

// IsRecursiveCall reports whether body contains a call expression whose
// callee's short name equals funcName, per §4.7's syntactic-only rule.
// isCall and calleeShortName adapt the dialect's call-node shape.
func IsRecursiveCall(body synnode.Node, funcName string, isCall func(synnode.Node) bool, calleeShortName func(synnode.Node) string) bool {
	if body == nil || funcName == "" {
		return false
	}

	found := false

	var walk func(n synnode.Node)

	walk = func(n synnode.Node) {
		if n == nil || found {
			return
		}

		if isCall(n) && calleeShortName(n) == funcName {
			found = true

			return
		}

		for i := 0; i < n.NamedChildCount(); i++ {
			walk(n.NamedChild(i))
			if found {
				return
			}
		}
	}

	walk(body)

	return found
}

// ShortName extracts the last dotted/arrow segment of a dotted call
// expression text, e.g. "os.path.join" -> "join", "print" -> "print".
func ShortName(dotted string) string {
	dotted = strings.TrimSpace(dotted)
	if i := strings.LastIndexAny(dotted, ".>"); i >= 0 && i+1 < len(dotted) {
		return dotted[i+1:]
	}

	return dotted
}
