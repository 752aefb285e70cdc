package evaluator

// Package evaluator implements the routing expression evaluation engine.
//
// The evaluator receives a compiled Abstract Syntax Tree from the parser
// and evaluates it against a per-file variable context. Evaluation is a
// pure, synchronous, side-effect-free computation over bounded input: it
// performs no I/O, has no suspension points, and terminates in time
// proportional to the size of the AST. A shared Evaluator and a shared
// Expression may therefore be used concurrently from any number of
// goroutines, as long as each evaluation receives its own Context.

import (
	"log/slog"

	"github.com/tgup-cli/tgup/pkg/types"
)

// Context is the immutable set of name → Value bindings available during
// one evaluation. It is built fresh per file and discarded afterwards.
// Lookup is name-exact and case-sensitive.
type Context map[string]types.Value

// Lookup returns the binding for name, if present.
func (c Context) Lookup(name string) (types.Value, bool) {
	v, ok := c[name]
	return v, ok
}

// Evaluator evaluates routing expressions against per-file contexts.
type Evaluator struct {
	logger  *slog.Logger
	regexes Regexps
}

// EvalOptions configures evaluator behavior.
type EvalOptions struct {
	// Logger for structured logging.
	Logger *slog.Logger
	// Regexps supplies pattern compilation and matching for
	// str::regex_matches. Defaults to StdRegexps.
	Regexps Regexps
}

// EvalOption configures evaluation behavior.
type EvalOption func(*EvalOptions)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) EvalOption {
	return func(opts *EvalOptions) {
		opts.Logger = logger
	}
}

// WithRegexps injects the regular-expression capability. Tests substitute
// a deterministic fake here.
func WithRegexps(r Regexps) EvalOption {
	return func(opts *EvalOptions) {
		opts.Regexps = r
	}
}

// New creates a new Evaluator with default options.
func New(opts ...EvalOption) *Evaluator {
	options := EvalOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	if options.Regexps == nil {
		options.Regexps = StdRegexps{}
	}

	return &Evaluator{
		logger:  options.Logger,
		regexes: options.Regexps,
	}
}

// Eval evaluates a compiled expression against a context and returns the
// final value or a typed error. No partial value is ever produced on
// failure.
func (e *Evaluator) Eval(expr *types.Expression, ctx Context) (types.Value, error) {
	if expr == nil || expr.AST() == nil {
		return types.Value{}, types.NewError(types.ErrParse, "invalid expression", -1)
	}

	result, err := e.evalNode(expr.AST(), ctx)
	if err != nil {
		e.logger.Debug("expression evaluation failed",
			slog.String("source", expr.Source()),
			slog.Any("error", err),
		)
		return types.Value{}, err
	}

	return result, nil
}

// CompileLiteralPatterns eagerly compiles every literal pattern argument
// of str::regex_matches in the expression, so that an invalid pattern is
// reported once at compile time and valid patterns are shared across all
// per-file evaluations through the capability's cache. Non-literal
// pattern arguments are compiled per call.
func (e *Evaluator) CompileLiteralPatterns(expr *types.Expression) error {
	if expr == nil || expr.AST() == nil {
		return nil
	}

	var firstErr error
	expr.AST().Walk(func(n *types.ASTNode) bool {
		if n.Type != types.NodeCall || n.Name != "str::regex_matches" || len(n.Arguments) != 2 {
			return true
		}
		pat := n.Arguments[1]
		if pat.Type != types.NodeLiteral || pat.Literal.Kind() != types.KindString {
			return true
		}
		if _, err := e.regexes.Compile(pat.Literal.Str()); err != nil {
			firstErr = types.NewError(
				types.ErrRegexCompile,
				"invalid regex pattern: "+err.Error(),
				pat.Position,
			).WithCause(err)
			return false
		}
		return true
	})

	return firstErr
}
