// Package parsersetup wraps go-sitter-forest grammars in an explicit
// registry value, per §9's "no global singletons" redesign flag: the
// tree-sitter manager is a ParserRegistry held by the orchestrator and
// passed by reference, not module-level mutable state.
package parsersetup

import (
	"context"
	"fmt"
	"sync"
	"unsafe"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	forestC "github.com/alexaandru/go-sitter-forest/c"
	forestCpp "github.com/alexaandru/go-sitter-forest/cpp"
	forestJava "github.com/alexaandru/go-sitter-forest/java"
	forestJS "github.com/alexaandru/go-sitter-forest/javascript"
	forestPython "github.com/alexaandru/go-sitter-forest/python"
	forestTSX "github.com/alexaandru/go-sitter-forest/tsx"
	forestTS "github.com/alexaandru/go-sitter-forest/typescript"

	"github.com/watttrace/analyzer-core/internal/synnode"
)

// grammarFuncs maps a language name to its go-sitter-forest GetLanguage
// constructor, mirroring the teacher's languageFuncs table.
//
//nolint:gochecknoglobals // immutable dispatch table, not mutated after init.
var grammarFuncs = map[string]func() unsafe.Pointer{
	"python":     forestPython.GetLanguage,
	"java":       forestJava.GetLanguage,
	"c":          forestC.GetLanguage,
	"cpp":        forestCpp.GetLanguage,
	"javascript": forestJS.GetLanguage,
	"typescript": forestTS.GetLanguage,
	"tsx":        forestTSX.GetLanguage,
}

// Registry caches constructed sitter.Language values by grammar name. It
// is created once per process by the caller and passed by reference;
// construction is idempotent and lookups are read-mostly, with cache
// inserts serialized by mu (§5's shared-resource contract).
type Registry struct {
	mu          sync.RWMutex
	languages   map[string]*sitter.Language
	initialized bool
	initErr     error
}

// NewRegistry creates an empty, uninitialized registry.
func NewRegistry() *Registry {
	return &Registry{languages: make(map[string]*sitter.Language)}
}

// Initialize resolves and caches every supported grammar. It is one-time
// and idempotent; failure is non-fatal and recorded so callers can fall
// back to the textual walker (§6, §7).
func (r *Registry) Initialize() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.initialized {
		return r.initErr
	}

	for name, fn := range grammarFuncs {
		lang := sitter.NewLanguage(fn())
		r.languages[name] = lang
	}

	r.initialized = true

	return nil
}

// Language returns the cached grammar for name, if supported.
func (r *Registry) Language(name string) (*sitter.Language, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lang, ok := r.languages[name]

	return lang, ok
}

// Dispose releases cached grammars and marks the registry uninitialized.
func (r *Registry) Dispose() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.languages = make(map[string]*sitter.Language)
	r.initialized = false
}

// Parse parses source under language's grammar and returns the wrapped
// root node plus a closer that must be called once the walk is done.
func (r *Registry) Parse(ctx context.Context, language string, source []byte) (root synnode.Node, closer func(), err error) {
	lang, ok := r.Language(language)
	if !ok {
		return nil, func() {}, fmt.Errorf("parsersetup: no grammar registered for %q", language)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(lang)

	tree, parseErr := parser.ParseString(ctx, nil, source)
	if parseErr != nil {
		return nil, func() {}, fmt.Errorf("parsersetup: parse failed: %w", parseErr)
	}

	rootNode := tree.RootNode()

	return synnode.Wrap(rootNode, source), func() { tree.Close() }, nil
}
