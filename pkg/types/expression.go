// Package types defines the core type system of the routing expression
// language.
//
// This package contains type definitions for:
//   - Expression: compiled routing expressions
//   - ASTNode: Abstract Syntax Tree nodes
//   - Value: the three-kind runtime value model
//   - Error: structured errors with taxonomy codes and positions
package types

// Expression represents a compiled routing expression.
//
// An Expression is constructed once per run and can be evaluated any
// number of times against different per-file contexts. It is immutable
// after compilation, never holds a reference to any evaluation context,
// and is safe for concurrent use by multiple goroutines.
type Expression struct {
	ast    *ASTNode
	source string
	arena  *NodeArena // keeps arena-allocated nodes reachable
}

// NewExpression creates a new Expression from a parsed AST.
// The arena that allocated the AST nodes is retained so the nodes stay
// valid for the lifetime of the expression.
func NewExpression(ast *ASTNode, source string, arena *NodeArena) *Expression {
	return &Expression{
		ast:    ast,
		source: source,
		arena:  arena,
	}
}

// AST returns the root of the expression's Abstract Syntax Tree.
func (e *Expression) AST() *ASTNode {
	return e.ast
}

// Source returns the original source text of the expression.
func (e *Expression) Source() string {
	return e.source
}

// String returns the original source text.
func (e *Expression) String() string {
	return e.source
}
