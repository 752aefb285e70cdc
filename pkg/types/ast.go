package types

// NodeType identifies the type of an AST node.
type NodeType string

// The five node kinds of the routing language. There is no conditional
// node: if(...) is represented as a NodeCall and given short-circuit
// semantics by the evaluator.
const (
	NodeLiteral  NodeType = "literal"
	NodeVariable NodeType = "variable"
	NodeUnary    NodeType = "unary"
	NodeBinary   NodeType = "binary"
	NodeCall     NodeType = "call"
)

// ASTNode represents a node in the Abstract Syntax Tree.
//
// The tree is finite and acyclic, and is never mutated after parsing.
// Field usage by node type:
//
//	NodeLiteral  — Literal
//	NodeVariable — Name (variable name)
//	NodeUnary    — Name (operator), LHS (operand)
//	NodeBinary   — Name (operator), LHS, RHS
//	NodeCall     — Name (qualified function name), Arguments
type ASTNode struct {
	Type      NodeType
	Name      string
	Literal   Value
	Position  int
	LHS       *ASTNode
	RHS       *ASTNode
	Arguments []*ASTNode
}

// arenaChunkSize is the number of ASTNode values pre-allocated per arena
// chunk. Routing expressions are small; nearly all fit in a single chunk.
const arenaChunkSize = 32

// NodeArena is a bump-pointer allocator for ASTNode values.
//
// Instead of allocating each node individually on the heap, the arena
// pre-allocates fixed-size chunks of ASTNode structs and returns pointers
// into them. The arena must stay alive as long as any returned pointer is
// reachable; attaching it to the Expression achieves this.
//
// NodeArena is NOT thread-safe. Each parser owns its own arena and the
// arena is never shared across goroutines. This is compatible with the
// concurrency model: compilation is single-threaded and happens once,
// before any concurrent evaluation begins.
type NodeArena struct {
	chunks [][]ASTNode
	pos    int // next free index in the last chunk
}

// NewNodeArena allocates an arena pre-warmed with one initial chunk.
func NewNodeArena() *NodeArena {
	return &NodeArena{
		chunks: [][]ASTNode{make([]ASTNode, arenaChunkSize)},
	}
}

// Alloc returns a pointer to a zero-valued ASTNode inside the arena, with
// Type and Position set. All other fields must be filled by the caller.
func (a *NodeArena) Alloc(nodeType NodeType, position int) *ASTNode {
	if a.pos >= arenaChunkSize {
		a.chunks = append(a.chunks, make([]ASTNode, arenaChunkSize))
		a.pos = 0
	}
	n := &a.chunks[len(a.chunks)-1][a.pos]
	a.pos++
	n.Type = nodeType
	n.Position = position
	return n
}

// String returns a string representation of the node type.
func (n *ASTNode) String() string {
	return string(n.Type)
}

// Walk calls fn for n and every node reachable from it, pre-order.
// Traversal stops early when fn returns false.
func (n *ASTNode) Walk(fn func(*ASTNode) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	if !n.LHS.Walk(fn) || !n.RHS.Walk(fn) {
		return false
	}
	for _, arg := range n.Arguments {
		if !arg.Walk(fn) {
			return false
		}
	}
	return true
}
