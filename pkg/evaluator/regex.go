package evaluator

import (
	"regexp"

	"github.com/tgup-cli/tgup/pkg/cache"
)

// Matcher tests a string against one compiled pattern.
type Matcher interface {
	MatchString(s string) bool
}

// Regexps is the injected regular-expression capability used by
// str::regex_matches. Treating pattern compilation as a capability keeps
// the core testable with a deterministic fake, and lets one
// implementation cache compiled patterns across evaluations.
type Regexps interface {
	// Compile returns a matcher for pattern, or an error for an invalid
	// pattern.
	Compile(pattern string) (Matcher, error)
}

// StdRegexps implements Regexps with the standard regexp package and a
// process-wide LRU cache keyed by pattern source text. Literal patterns
// are compiled once at expression-compile time and every per-file
// evaluation afterwards is a cache hit; computed patterns benefit when
// the same pattern recurs across files.
type StdRegexps struct{}

var regexCache = cache.New(256)

// Compile retrieves or compiles a regex pattern.
func (StdRegexps) Compile(pattern string) (Matcher, error) {
	re, err := regexCache.GetOrCompile(pattern, func() (*regexp.Regexp, error) {
		return regexp.Compile(pattern)
	})
	if err != nil {
		return nil, err
	}
	return re, nil
}
