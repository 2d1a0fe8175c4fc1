package domain

import "strings"

// MatchPolicy selects how keyword matches accumulate into a score.
type MatchPolicy int

const (
	// CountPerArtifact scores one point per (keyword, text-unit) pair:
	// a keyword appearing in three artifacts contributes three, but
	// repeated occurrences inside one artifact contribute only one.
	CountPerArtifact MatchPolicy = iota
	// Presence scores each keyword at most once per repository.
	Presence
)

// KeywordIndex is an immutable, deduplicated set of lowercase phrases.
// Matching is plain substring containment on lowercased text; a shorter
// keyword contained inside a longer matched phrase counts on its own.
type KeywordIndex struct {
	keywords []string
}

// NewKeywordIndex lowercases, trims and deduplicates the given phrases,
// preserving first-seen order.
func NewKeywordIndex(phrases []string) *KeywordIndex {
	seen := make(map[string]struct{}, len(phrases))
	kws := make([]string, 0, len(phrases))
	for _, p := range phrases {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		kws = append(kws, p)
	}
	return &KeywordIndex{keywords: kws}
}

// DefaultKeywordIndex returns the index over the curated cross-language
// integration-friction vocabulary.
func DefaultKeywordIndex() *KeywordIndex {
	return NewKeywordIndex(integrationKeywords)
}

// Matches returns every keyword contained in text, case-insensitively.
func (ki *KeywordIndex) Matches(text string) []string {
	lowered := strings.ToLower(text)
	var found []string
	for _, kw := range ki.keywords {
		if strings.Contains(lowered, kw) {
			found = append(found, kw)
		}
	}
	return found
}

// Len returns the number of distinct keywords in the index.
func (ki *KeywordIndex) Len() int {
	return len(ki.keywords)
}

// integrationKeywords is the curated vocabulary of phrases that signal
// cross-language integration friction in collaborative artifacts.
var integrationKeywords = []string{
	// Interop and FFI
	"interop", "interoperability", "cross-language", "multi-language", "multilanguage",
	"foreign function", "foreign function interface", "ffi", "ffi binding", "ffi bindings",
	"ffi bridge", "ffi layer", "ffi wrapper", "foreign language interface",
	"foreign function call", "foreign code interface", "language binding", "language bindings",
	"language bridge", "interop layer", "native interface", "interop wrapper",
	"native binding", "native bindings", "platform binding", "platform bindings",
	"interlanguage wrapper", "interlanguage adapter", "binding generator", "interop toolkit",

	// Explicit technical integration
	"wrapper", "glue code", "interface adapter", "interface adapters", "custom wrapper",
	"manual wiring", "binding", "bridge", "stub", "interop code", "language integration layer",
	"handwritten adapter", "adapter layer", "shim layer", "compatibility wrapper",
	"binding layer", "integration scaffold", "integration module", "wrapper module",
	"bridge module", "intermediate wrapper", "proxy layer", "adapter pattern",
	"interop facade", "had to write a wrapper", "had to adapt manually",
	"manual integration logic", "glue logic", "hand-coded adapter", "language glue",
	"bridge logic",

	// Interlanguage incompatibilities
	"language mismatch", "interface mismatch", "type mismatch", "abi mismatch",
	"symbol not found", "undefined reference", "signature mismatch",
	"method signature mismatch", "incompatible types", "type coercion failed",
	"binary incompatibility", "calling convention mismatch", "missing symbol",
	"undefined symbol", "unresolved external", "linker error", "linking error",
	"symbol clash", "symbol conflict", "cannot resolve symbol", "failed to link",
	"undefined identifier", "foreign function not found", "module not found",
	"dll not found", "so not found", "missing foreign declaration", "invalid cast",
	"foreign type error", "type conversion error", "wrong arity",
	"unexpected argument type", "wrong type at runtime",

	// Interoperability frameworks and tools
	"swig", "jni", "jna", "jpl", "jsr223", "jsr", "graalvm", "truffle", "javacall",
	"java native interface", "pybind11", "cffi", "ctypes", "ctype", "nif", "napi",
	"swi-prolog-jpl", "jpl.jar", "swi", "boost.python", "python-cffi", "python bindings",
	"libffi", "dlopen", "dlsym", "ctypeslib", "node-addon-api", "nan", "node-gyp",
	"node-ffi", "ffi-napi", "native implemented function", "port driver", "erlang port",
	"c node", "polyglot context", "graalvm interop", "graal interop",
	"graal interoperability", "graalvm interoperability", "idl",
	"interface definition language", "corba", "thrift", "grpc", "protobuf interop",
	"protobuf interoperability", "p/invoke", "platform invocation", "clr interop",
	"com interop", "clr interoperability", "com interoperability", "dllimport",
	"cbindgen", "bindgen", "rust ffi", "rust interoperability", `extern "c"`,

	// Specific issues related to interoperability
	"integration problem", "integration issue", "integration error", "errors integrating",
	"failed integration", "integration fails", "integration failed", "manual override",
	"configuration hell", "multi-build-system", "multiple compilers", "fails to integrate",
	"can't integrate", "unable to integrate", "manual integration", "manual glue",
	"manual config", "manual fix", "manual patch", "manual adjustment",
	"handwritten interop", "toolchain mismatch", "fragile integration",
	"brittle integration", "unstable integration", "hard to maintain interop",
	"interop not scalable",

	// Interface modules or syntaxes
	"foreign predicate", "interface module", "foreign module", "foreign interface",
	"interface declaration", "external interface", "interop declaration",
	"language interface", "interop module", "foreign block", "foreign import",
	"foreign export", "native declaration", "foreign definition", "external binding",
	"module binding", "foreign section",
}
