package evaluator

import (
	"fmt"

	"github.com/tgup-cli/tgup/pkg/types"
)

// evalNode is the recursive tree walk at the heart of the engine. It maps
// (node, context) to a value or a typed error, with no shared mutable
// state beyond the call stack.
func (e *Evaluator) evalNode(node *types.ASTNode, ctx Context) (types.Value, error) {
	switch node.Type {
	case types.NodeLiteral:
		return node.Literal, nil
	case types.NodeVariable:
		return e.evalVariable(node, ctx)
	case types.NodeUnary:
		return e.evalUnary(node, ctx)
	case types.NodeBinary:
		return e.evalBinary(node, ctx)
	case types.NodeCall:
		return e.evalCall(node, ctx)
	default:
		return types.Value{}, types.NewError(types.ErrParse,
			fmt.Sprintf("unsupported node type: %s", node.Type), node.Position)
	}
}

// evalVariable looks up a variable binding. A missing key is an error,
// never a default value.
func (e *Evaluator) evalVariable(node *types.ASTNode, ctx Context) (types.Value, error) {
	v, ok := ctx.Lookup(node.Name)
	if !ok {
		return types.Value{}, types.NewError(types.ErrUndefinedVariable,
			fmt.Sprintf("undefined variable %q", node.Name), node.Position).WithToken(node.Name)
	}
	return v, nil
}

// evalUnary evaluates a unary operator expression.
func (e *Evaluator) evalUnary(node *types.ASTNode, ctx Context) (types.Value, error) {
	operand, err := e.evalNode(node.LHS, ctx)
	if err != nil {
		return types.Value{}, err
	}

	switch node.Name {
	case "-":
		if operand.Kind() != types.KindNumber {
			return types.Value{}, operandTypeError("-", "operand", types.KindNumber, operand.Kind(), node.Position)
		}
		return types.NumberValue(-operand.Num()), nil
	case "!":
		if operand.Kind() != types.KindBool {
			return types.Value{}, operandTypeError("!", "operand", types.KindBool, operand.Kind(), node.Position)
		}
		return types.BoolValue(!operand.Bool()), nil
	default:
		return types.Value{}, types.NewError(types.ErrParse,
			fmt.Sprintf("unsupported unary operator: %s", node.Name), node.Position)
	}
}

// evalBinary evaluates a binary operator expression.
//
// The logical operators are not ordinary eager operators: && and ||
// short-circuit, never evaluating the right operand when the left operand
// already determines the result.
func (e *Evaluator) evalBinary(node *types.ASTNode, ctx Context) (types.Value, error) {
	op := node.Name

	switch op {
	case "&&":
		return e.evalAnd(node, ctx)
	case "||":
		return e.evalOr(node, ctx)
	}

	left, err := e.evalNode(node.LHS, ctx)
	if err != nil {
		return types.Value{}, err
	}

	right, err := e.evalNode(node.RHS, ctx)
	if err != nil {
		return types.Value{}, err
	}

	switch op {
	case "+", "-", "*", "/":
		return e.evalArithmetic(op, left, right, node.Position)
	case "==":
		// Equality across differing kinds is false, not an error: routing
		// expressions stay resilient when an unexpected type flows into a
		// comparison.
		return types.BoolValue(left.Equal(right)), nil
	case "!=":
		return types.BoolValue(!left.Equal(right)), nil
	case "<", "<=", ">", ">=":
		return e.evalRelational(op, left, right, node.Position)
	default:
		return types.Value{}, types.NewError(types.ErrParse,
			fmt.Sprintf("unsupported binary operator: %s", op), node.Position)
	}
}

// evalArithmetic applies + - * / to two Number operands.
// A zero denominator is a DivisionByZero error rather than infinity or
// NaN, keeping routing decisions deterministic and debuggable. '+' never
// performs string concatenation.
func (e *Evaluator) evalArithmetic(op string, left, right types.Value, pos int) (types.Value, error) {
	if left.Kind() != types.KindNumber {
		return types.Value{}, operandTypeError(op, "left operand", types.KindNumber, left.Kind(), pos)
	}
	if right.Kind() != types.KindNumber {
		return types.Value{}, operandTypeError(op, "right operand", types.KindNumber, right.Kind(), pos)
	}

	lf, rf := left.Num(), right.Num()
	switch op {
	case "+":
		return types.NumberValue(lf + rf), nil
	case "-":
		return types.NumberValue(lf - rf), nil
	case "*":
		return types.NumberValue(lf * rf), nil
	default: // "/"
		if rf == 0 {
			return types.Value{}, types.NewError(types.ErrDivisionByZero, "division by zero", pos)
		}
		return types.NumberValue(lf / rf), nil
	}
}

// evalRelational applies < <= > >= to two Number operands.
func (e *Evaluator) evalRelational(op string, left, right types.Value, pos int) (types.Value, error) {
	if left.Kind() != types.KindNumber {
		return types.Value{}, operandTypeError(op, "left operand", types.KindNumber, left.Kind(), pos)
	}
	if right.Kind() != types.KindNumber {
		return types.Value{}, operandTypeError(op, "right operand", types.KindNumber, right.Kind(), pos)
	}

	lf, rf := left.Num(), right.Num()
	switch op {
	case "<":
		return types.BoolValue(lf < rf), nil
	case "<=":
		return types.BoolValue(lf <= rf), nil
	case ">":
		return types.BoolValue(lf > rf), nil
	default: // ">="
		return types.BoolValue(lf >= rf), nil
	}
}

// evalAnd evaluates && with short-circuit semantics: the right operand is
// not evaluated when the left operand is false.
func (e *Evaluator) evalAnd(node *types.ASTNode, ctx Context) (types.Value, error) {
	left, err := e.evalNode(node.LHS, ctx)
	if err != nil {
		return types.Value{}, err
	}
	if left.Kind() != types.KindBool {
		return types.Value{}, operandTypeError("&&", "left operand", types.KindBool, left.Kind(), node.Position)
	}
	if !left.Bool() {
		return types.BoolValue(false), nil
	}

	right, err := e.evalNode(node.RHS, ctx)
	if err != nil {
		return types.Value{}, err
	}
	if right.Kind() != types.KindBool {
		return types.Value{}, operandTypeError("&&", "right operand", types.KindBool, right.Kind(), node.Position)
	}
	return types.BoolValue(right.Bool()), nil
}

// evalOr evaluates || with short-circuit semantics: the right operand is
// not evaluated when the left operand is true.
func (e *Evaluator) evalOr(node *types.ASTNode, ctx Context) (types.Value, error) {
	left, err := e.evalNode(node.LHS, ctx)
	if err != nil {
		return types.Value{}, err
	}
	if left.Kind() != types.KindBool {
		return types.Value{}, operandTypeError("||", "left operand", types.KindBool, left.Kind(), node.Position)
	}
	if left.Bool() {
		return types.BoolValue(true), nil
	}

	right, err := e.evalNode(node.RHS, ctx)
	if err != nil {
		return types.Value{}, err
	}
	if right.Kind() != types.KindBool {
		return types.Value{}, operandTypeError("||", "right operand", types.KindBool, right.Kind(), node.Position)
	}
	return types.BoolValue(right.Bool()), nil
}

// evalCall evaluates a function call.
//
// The built-in if is special-cased: although written with call syntax, it
// must not evaluate its unselected branch, both because expressions may
// only be valid along the taken branch and because evaluating unused
// branches wastes work on every routed file. Every other call evaluates
// its arguments eagerly, left to right, before dispatch.
func (e *Evaluator) evalCall(node *types.ASTNode, ctx Context) (types.Value, error) {
	def, ok := lookupFunction(node.Name)
	if !ok {
		return types.Value{}, types.NewError(types.ErrUndefinedFunction,
			fmt.Sprintf("undefined function %q", node.Name), node.Position).WithToken(node.Name)
	}

	if len(node.Arguments) != def.Arity {
		return types.Value{}, types.NewError(types.ErrArityMismatch,
			fmt.Sprintf("%s expects %d arguments, got %d", node.Name, def.Arity, len(node.Arguments)),
			node.Position).WithToken(node.Name)
	}

	if node.Name == "if" {
		return e.evalIf(node, ctx)
	}

	args := make([]types.Value, len(node.Arguments))
	for i, argNode := range node.Arguments {
		arg, err := e.evalNode(argNode, ctx)
		if err != nil {
			return types.Value{}, err
		}
		args[i] = arg
	}

	return def.Impl(e, node, args)
}

// evalIf evaluates the condition first, then evaluates and returns only
// the selected branch. The unselected branch's sub-tree is never
// evaluated.
func (e *Evaluator) evalIf(node *types.ASTNode, ctx Context) (types.Value, error) {
	cond, err := e.evalNode(node.Arguments[0], ctx)
	if err != nil {
		return types.Value{}, err
	}
	if cond.Kind() != types.KindBool {
		return types.Value{}, argTypeError("if", 0, types.KindBool, cond.Kind(), node.Position)
	}

	if cond.Bool() {
		return e.evalNode(node.Arguments[1], ctx)
	}
	return e.evalNode(node.Arguments[2], ctx)
}

// operandTypeError builds the TypeError for an operator operand.
func operandTypeError(op, side string, want, got types.ValueKind, pos int) error {
	return types.NewError(types.ErrType,
		fmt.Sprintf("%s of %q must be %s, got %s", side, op, want, got), pos)
}

// argTypeError builds the TypeError for a function argument position.
func argTypeError(name string, index int, want, got types.ValueKind, pos int) error {
	return types.NewError(types.ErrType,
		fmt.Sprintf("%s: argument %d must be %s, got %s", name, index+1, want, got), pos).
		WithToken(name)
}
