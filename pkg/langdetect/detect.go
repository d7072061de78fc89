// Package langdetect implements the path/content language detector
// (spec §4.4): explicit override, then path extension, then content
// heuristics, then a default of "python".
package langdetect

import (
	"regexp"
	"strings"
)

// extensionTable maps a lowercased extension (with dot) to a canonical
// language tag. ".h" deliberately maps to "c", matching §4.4 and the
// known limitation recorded in §9.
var extensionTable = map[string]string{
	".py":   "python",
	".java": "java",
	".c":    "c",
	".h":    "c",
	".cpp":  "cpp",
	".cc":   "cpp",
	".cxx":  "cpp",
	".hpp":  "cpp",
	".js":   "javascript",
	".mjs":  "javascript",
	".jsx":  "javascript",
	".ts":   "typescript",
	".tsx":  "typescript",
}

var (
	rePythonDef      = regexp.MustCompile(`(?m)^\s*def\s+\w+\s*\(`)
	reLineEndsColon  = regexp.MustCompile(`(?m):\s*$`)
	rePublicClass    = regexp.MustCompile(`\bpublic\s+(static\s+)?class\b`)
	reIncludeAngle   = regexp.MustCompile(`#include\s*<`)
	rePrintf         = regexp.MustCompile(`\bprintf\s*\(`)
	reCppStream      = regexp.MustCompile(`\bcout\b|std::`)
	reTSInterface    = regexp.MustCompile(`\binterface\b|\btype\s+\w+\s*=`)
	reTSColonType    = regexp.MustCompile(`:\s*\w+`)
	reJSFunction     = regexp.MustCompile(`\bfunction\b`)
	reJSArrow        = regexp.MustCompile(`=>`)
	reJSConsoleLog   = regexp.MustCompile(`console\.log`)
)

// DefaultLanguage is returned when no other signal matches.
const DefaultLanguage = "python"

func extensionOf(path string) string {
	idx := strings.LastIndexByte(path, '.')
	if idx < 0 || idx == len(path)-1 {
		return ""
	}

	return strings.ToLower(path[idx:])
}

// ByExtension returns the language for a file path's extension, and
// whether the extension was recognized.
func ByExtension(path string) (string, bool) {
	ext := extensionOf(path)
	if ext == "" {
		return "", false
	}

	lang, ok := extensionTable[ext]

	return lang, ok
}

// ByContent applies the §4.4 content heuristics, in order, returning the
// first language that matches.
func ByContent(source string) (string, bool) {
	if isPython(source) {
		return "python", true
	}

	if rePublicClass.MatchString(source) {
		return "java", true
	}

	if isC(source) {
		return "c", true
	}

	if isCpp(source) {
		return "cpp", true
	}

	if isTypeScript(source) {
		return "typescript", true
	}

	if isJavaScript(source) {
		return "javascript", true
	}

	return "", false
}

func isPython(source string) bool {
	loc := rePythonDef.FindStringIndex(source)
	if loc == nil {
		return false
	}

	return reLineEndsColon.MatchString(source[loc[1]:])
}

func isC(source string) bool {
	return reIncludeAngle.MatchString(source) && rePrintf.MatchString(source)
}

func isCpp(source string) bool {
	return reIncludeAngle.MatchString(source) && reCppStream.MatchString(source)
}

func isTypeScript(source string) bool {
	return reTSInterface.MatchString(source) && reTSColonType.MatchString(source)
}

func isJavaScript(source string) bool {
	return reJSFunction.MatchString(source) || reJSArrow.MatchString(source) || reJSConsoleLog.MatchString(source)
}

// Detect implements the full §4.4 precedence: override > extension >
// content > default. override, if non-empty, is returned unchanged (the
// caller is trusted to pass a canonical tag).
func Detect(override, path, source string) string {
	if override != "" {
		return override
	}

	if lang, ok := ByExtension(path); ok {
		return lang
	}

	if lang, ok := ByContent(source); ok {
		return lang
	}

	return DefaultLanguage
}
