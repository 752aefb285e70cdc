// Package tgup provides the routing expression engine at the core of the
// tgup uploader.
//
// A routing expression is a small, statically scoped expression compiled
// once per run and evaluated once per file to select the delivery target
// from file metadata:
//
//	// Compile once, evaluate many times
//	expr, err := tgup.Compile(`if(size > 100 * MB, "@large_files", "me")`)
//	dest, err := tgup.Route(expr, fileCtx.Bindings())
//
// The compiled expression is immutable and safe for concurrent use; each
// per-file evaluation reads its own freshly built context and the shared
// AST, so evaluations may run on any number of workers with no locking.
//
// # More Information
//
// For detailed documentation, see:
//   - Parser: github.com/tgup-cli/tgup/pkg/parser
//   - Evaluator: github.com/tgup-cli/tgup/pkg/evaluator
//   - Types: github.com/tgup-cli/tgup/pkg/types
//   - Per-file context: github.com/tgup-cli/tgup/pkg/filectx
package tgup

import (
	"fmt"

	"github.com/tgup-cli/tgup/pkg/evaluator"
	"github.com/tgup-cli/tgup/pkg/parser"
	"github.com/tgup-cli/tgup/pkg/types"
)

// Version returns the current version of tgup.
func Version() string {
	return "v0.3.0-dev"
}

// routeEvaluator is the shared default evaluator. It is stateless apart
// from the process-wide regex cache, so one instance serves all
// evaluations.
var routeEvaluator = evaluator.New()

// Compile compiles a routing expression for repeated evaluation.
//
// Compilation happens once, before any file is processed; a failure here
// must abort the run. Literal regex patterns inside str::regex_matches
// are compiled eagerly so invalid patterns surface now rather than on the
// first routed file.
func Compile(source string) (*types.Expression, error) {
	expr, err := parser.Compile(source)
	if err != nil {
		return nil, err
	}
	if err := routeEvaluator.CompileLiteralPatterns(expr); err != nil {
		return nil, err
	}
	return expr, nil
}

// MustCompile is like Compile but panics if the expression cannot be
// compiled. It simplifies safe initialization of global variables.
func MustCompile(source string) *types.Expression {
	expr, err := Compile(source)
	if err != nil {
		panic(fmt.Sprintf("tgup: Compile(%q): %v", source, err))
	}
	return expr
}

// Eval evaluates a compiled expression against a per-file context and
// returns the raw value.
func Eval(expr *types.Expression, ctx evaluator.Context) (types.Value, error) {
	return routeEvaluator.Eval(expr, ctx)
}

// Route evaluates a compiled routing expression and enforces the routing
// boundary: the result must be a String. A Number or Bool at the top
// level is a TypeError here — callers wanting a computed string must call
// str::from explicitly. The returned string is handed to the downstream
// chat resolver unmodified.
func Route(expr *types.Expression, ctx evaluator.Context) (string, error) {
	v, err := routeEvaluator.Eval(expr, ctx)
	if err != nil {
		return "", err
	}
	if v.Kind() != types.KindString {
		return "", types.NewError(types.ErrType,
			fmt.Sprintf("routing expression must produce a string, got %s (wrap it in str::from)", v.Kind()),
			-1)
	}
	return v.Str(), nil
}
