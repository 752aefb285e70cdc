package evaluator

import (
	"math"

	"github.com/tgup-cli/tgup/pkg/types"
)

func fnMin(e *Evaluator, node *types.ASTNode, args []types.Value) (types.Value, error) {
	a, err := numberArg("min", node, args, 0)
	if err != nil {
		return types.Value{}, err
	}
	b, err := numberArg("min", node, args, 1)
	if err != nil {
		return types.Value{}, err
	}
	return types.NumberValue(math.Min(a, b)), nil
}

func fnMax(e *Evaluator, node *types.ASTNode, args []types.Value) (types.Value, error) {
	a, err := numberArg("max", node, args, 0)
	if err != nil {
		return types.Value{}, err
	}
	b, err := numberArg("max", node, args, 1)
	if err != nil {
		return types.Value{}, err
	}
	return types.NumberValue(math.Max(a, b)), nil
}

func fnFloor(e *Evaluator, node *types.ASTNode, args []types.Value) (types.Value, error) {
	n, err := numberArg("floor", node, args, 0)
	if err != nil {
		return types.Value{}, err
	}
	return types.NumberValue(math.Floor(n)), nil
}

func fnCeil(e *Evaluator, node *types.ASTNode, args []types.Value) (types.Value, error) {
	n, err := numberArg("ceil", node, args, 0)
	if err != nil {
		return types.Value{}, err
	}
	return types.NumberValue(math.Ceil(n)), nil
}
