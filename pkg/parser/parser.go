package parser

// Package parser implements the routing expression compiler front end.
//
// The parser uses a hand-written recursive descent approach with
// precedence climbing (Pratt's "Top Down Operator Precedence") and
// produces an immutable AST. Compilation happens once per run, before any
// file is processed; a failure here aborts the run with a descriptive,
// position-annotated error.
//
// # Example
//
//	expr, err := parser.Compile(`if(is_video, "@videos", "me")`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ast := expr.AST()

import (
	"github.com/tgup-cli/tgup/pkg/types"
)

// Parse parses a routing expression and returns the compiled Expression.
//
// The function tokenizes the input, builds an AST, and validates the
// syntax. If parsing fails, it returns a *types.Error with the LexError
// or ParseError code and the source position.
func Parse(source string) (*types.Expression, error) {
	p := NewParser(source)
	return p.Parse()
}

// Compile is an alias for Parse, provided for API consistency.
func Compile(source string, opts ...CompileOption) (*types.Expression, error) {
	p := NewParser(source, opts...)
	return p.Parse()
}

// CompileOption configures compilation behavior.
type CompileOption func(*CompileOptions)

// CompileOptions holds parser configuration.
type CompileOptions struct {
	// MaxDepth limits recursion depth to prevent stack overflow on
	// pathological inputs.
	MaxDepth int
}

// WithMaxDepth sets the maximum parsing depth.
func WithMaxDepth(depth int) CompileOption {
	return func(opts *CompileOptions) {
		opts.MaxDepth = depth
	}
}
