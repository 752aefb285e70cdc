package evaluator

import (
	"sync"

	"github.com/tgup-cli/tgup/pkg/types"
)

// FunctionDef defines a built-in function: its qualified name, fixed
// arity, and implementation. The registry of FunctionDefs is populated
// once at process start and never mutated afterwards.
type FunctionDef struct {
	Name  string
	Arity int
	Impl  FunctionImpl
}

// FunctionImpl is the implementation of a built-in function. Arguments
// arrive fully evaluated, in left-to-right order. The node is the call
// site, used for error positions.
type FunctionImpl func(e *Evaluator, node *types.ASTNode, args []types.Value) (types.Value, error)

var (
	builtinFunctions     map[string]*FunctionDef
	builtinFunctionsOnce sync.Once
)

// initBuiltinFunctions initializes the built-in function registry.
// This is the exact catalogue of the routing language; there is no way to
// register additional functions at runtime.
func initBuiltinFunctions() {
	builtinFunctionsOnce.Do(func() {
		builtinFunctions = map[string]*FunctionDef{
			// String functions
			"str::len":          {Name: "str::len", Arity: 1, Impl: fnStrLen},
			"str::contains":     {Name: "str::contains", Arity: 2, Impl: fnStrContains},
			"str::starts_with":  {Name: "str::starts_with", Arity: 2, Impl: fnStrStartsWith},
			"str::ends_with":    {Name: "str::ends_with", Arity: 2, Impl: fnStrEndsWith},
			"str::to_lowercase": {Name: "str::to_lowercase", Arity: 1, Impl: fnStrToLowercase},
			"str::to_uppercase": {Name: "str::to_uppercase", Arity: 1, Impl: fnStrToUppercase},
			"str::trim":         {Name: "str::trim", Arity: 1, Impl: fnStrTrim},
			"str::from":         {Name: "str::from", Arity: 1, Impl: fnStrFrom},
			"str::substring":    {Name: "str::substring", Arity: 3, Impl: fnStrSubstring},
			"str::replace":      {Name: "str::replace", Arity: 3, Impl: fnStrReplace},
			"str::regex_matches": {
				Name: "str::regex_matches", Arity: 2, Impl: fnStrRegexMatches,
			},

			// Numeric functions
			"min":   {Name: "min", Arity: 2, Impl: fnMin},
			"max":   {Name: "max", Arity: 2, Impl: fnMax},
			"floor": {Name: "floor", Arity: 1, Impl: fnFloor},
			"ceil":  {Name: "ceil", Arity: 1, Impl: fnCeil},

			// Conditional. Registered for name and arity resolution only:
			// the evaluator dispatches it specially so the unselected
			// branch is never evaluated.
			"if": {Name: "if", Arity: 3, Impl: nil},
		}
	})
}

// lookupFunction retrieves a built-in function by qualified name.
func lookupFunction(name string) (*FunctionDef, bool) {
	initBuiltinFunctions()
	fn, ok := builtinFunctions[name]
	return fn, ok
}

// Argument accessors shared by the builtin implementations.

func stringArg(name string, node *types.ASTNode, args []types.Value, i int) (string, error) {
	if args[i].Kind() != types.KindString {
		return "", argTypeError(name, i, types.KindString, args[i].Kind(), node.Position)
	}
	return args[i].Str(), nil
}

func numberArg(name string, node *types.ASTNode, args []types.Value, i int) (float64, error) {
	if args[i].Kind() != types.KindNumber {
		return 0, argTypeError(name, i, types.KindNumber, args[i].Kind(), node.Position)
	}
	return args[i].Num(), nil
}
