// Package langclassify holds the closed, per-language sets of I/O,
// network, and allocation call names (spec §4.3). The sets are part of
// the external contract and must not be extended ad hoc.
package langclassify

import "strings"

// Kind is what a call expression was classified as.
type Kind int

// Classification outcomes, in the precedence order §4.3 requires.
const (
	KindIO Kind = iota
	KindNetwork
	KindAllocation
	KindPlainCall
)

// callSets holds the short-name and dotted-substring sets for one
// language and one classification bucket.
type callSets struct {
	shortNames []string
	dottedSubs []string
}

// byLanguage is the full, closed lookup table. "typescript" intentionally
// is not listed here: resolve maps it to the javascript table.
//
//nolint:gochecknoglobals // immutable external contract, not mutated after init.
var byLanguage = map[string]struct {
	io    callSets
	net   callSets
	alloc callSets
}{
	"python": {
		io: callSets{
			shortNames: []string{"print", "open", "input", "read", "write", "readline", "readlines", "close"},
			dottedSubs: []string{"os.path", "os.open", "sys.stdout", "sys.stdin", "logging."},
		},
		net: callSets{
			shortNames: []string{"urlopen", "get", "post", "put", "delete", "request", "connect"},
			dottedSubs: []string{"requests.", "urllib.", "socket.", "http.client", "aiohttp."},
		},
		alloc: callSets{
			shortNames: []string{"list", "dict", "set", "tuple", "bytearray", "append", "extend"},
			dottedSubs: []string{"collections.", "numpy.zeros", "numpy.empty", "numpy.array"},
		},
	},
	"java": {
		io: callSets{
			shortNames: []string{"println", "print", "read", "write", "close", "flush"},
			dottedSubs: []string{"System.out", "System.err", "System.in", "java.io.", "Files."},
		},
		net: callSets{
			shortNames: []string{"connect", "send", "receive", "openConnection"},
			dottedSubs: []string{"java.net.", "HttpClient", "Socket", "URLConnection"},
		},
		alloc: callSets{
			shortNames: []string{"new", "malloc"},
			dottedSubs: []string{"ArrayList", "HashMap", "HashSet", "StringBuilder", "LinkedList"},
		},
	},
	"c": {
		io: callSets{
			shortNames: []string{"printf", "scanf", "fopen", "fclose", "fread", "fwrite", "puts", "gets"},
			dottedSubs: []string{"stdio.h"},
		},
		net: callSets{
			shortNames: []string{"socket", "connect", "send", "recv", "bind", "listen", "accept"},
			dottedSubs: []string{"sys/socket.h", "netinet/"},
		},
		alloc: callSets{
			shortNames: []string{"malloc", "calloc", "realloc", "free"},
			dottedSubs: []string{"stdlib.h"},
		},
	},
	"cpp": {
		io: callSets{
			shortNames: []string{"printf", "scanf", "cout", "cin", "getline"},
			dottedSubs: []string{"std::cout", "std::cin", "std::cerr", "iostream"},
		},
		net: callSets{
			shortNames: []string{"socket", "connect", "send", "recv"},
			dottedSubs: []string{"boost::asio", "sys/socket.h"},
		},
		alloc: callSets{
			shortNames: []string{"malloc", "calloc", "realloc", "free", "new", "delete"},
			dottedSubs: []string{"std::vector", "std::make_unique", "std::make_shared"},
		},
	},
	"javascript": {
		io: callSets{
			shortNames: []string{"log", "error", "warn", "info", "readFile", "writeFile", "readFileSync", "writeFileSync"},
			dottedSubs: []string{"console.", "fs.", "process.stdout"},
		},
		net: callSets{
			shortNames: []string{"fetch", "get", "post", "put", "delete", "request"},
			dottedSubs: []string{"axios.", "http.request", "https.request", "XMLHttpRequest"},
		},
		alloc: callSets{
			shortNames: []string{"push", "splice", "new"},
			dottedSubs: []string{"Array(", "Object.create", "new Map", "new Set"},
		},
	},
}

// resolve maps "typescript" to the javascript table per §4.3.
func resolve(language string) (io, net, alloc callSets, ok bool) {
	key := language
	if key == "typescript" {
		key = "javascript"
	}

	entry, found := byLanguage[key]
	if !found {
		return callSets{}, callSets{}, callSets{}, false
	}

	return entry.io, entry.net, entry.alloc, true
}

// Classify decides the operation kind for a call expression given its
// short name (e.g. "print") and its fully dotted form (e.g. "os.path.join"),
// following the precedence in §4.3: I/O, then network, then allocation,
// then a plain function call.
func Classify(language, shortName, dottedForm string) Kind {
	io, net, alloc, ok := resolve(language)
	if !ok {
		return KindPlainCall
	}

	if matches(io, shortName, dottedForm) {
		return KindIO
	}

	if matches(net, shortName, dottedForm) {
		return KindNetwork
	}

	if matches(alloc, shortName, dottedForm) {
		return KindAllocation
	}

	return KindPlainCall
}

func matches(set callSets, shortName, dottedForm string) bool {
	for _, name := range set.shortNames {
		if name == shortName {
			return true
		}
	}

	for _, sub := range set.dottedSubs {
		if dottedForm != "" && strings.Contains(dottedForm, sub) {
			return true
		}
	}

	return false
}

// SupportedLanguages returns the languages with a registered classifier
// table (not counting the "typescript" alias).
func SupportedLanguages() []string {
	langs := make([]string, 0, len(byLanguage))
	for lang := range byLanguage {
		langs = append(langs, lang)
	}

	return langs
}
