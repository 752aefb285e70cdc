package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tgup-cli/tgup/pkg/types"
)

// Parser implements a recursive descent parser for routing expressions.
// It uses Pratt's "Top Down Operator Precedence" algorithm to handle
// operator precedence correctly.
type Parser struct {
	lexer   *Lexer
	arena   *types.NodeArena
	current Token
	depth   int
	opts    CompileOptions
}

// NewParser creates a new parser for the given input string.
func NewParser(input string, opts ...CompileOption) *Parser {
	options := CompileOptions{
		MaxDepth: 100,
	}
	for _, opt := range opts {
		opt(&options)
	}

	p := &Parser{
		lexer: NewLexer(input),
		arena: types.NewNodeArena(),
		opts:  options,
	}

	// Read the first token
	p.advance()

	return p
}

// Parse parses the entire expression and returns the compiled Expression.
// The parser must consume the whole token stream; leftover tokens after a
// complete expression are a ParseError.
func (p *Parser) Parse() (*types.Expression, error) {
	if p.current.Type == TokenError {
		return nil, p.lexer.Error()
	}

	if p.current.Type == TokenEOF {
		return nil, p.error("empty expression")
	}

	node, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}

	if p.current.Type == TokenError {
		return nil, p.lexer.Error()
	}
	if p.current.Type != TokenEOF {
		return nil, p.error(fmt.Sprintf("expected end of input, found %q", p.current.Value))
	}

	return types.NewExpression(node, p.lexer.input, p.arena), nil
}

// Operator precedence table (binding power).
// Higher values bind more tightly; all binary operators are
// left-associative.
var precedence = map[TokenType]int{
	TokenOr:           10, // ||
	TokenAnd:          20, // &&
	TokenEqual:        30, // ==
	TokenNotEqual:     30, // !=
	TokenLess:         40, // <
	TokenLessEqual:    40, // <=
	TokenGreater:      40, // >
	TokenGreaterEqual: 40, // >=
	TokenPlus:         50, // +
	TokenMinus:        50, // -
	TokenMult:         60, // *
	TokenDiv:          60, // /
}

// unaryPrecedence binds tighter than any binary operator, looser than
// primary expressions.
const unaryPrecedence = 70

// getPrecedence returns the precedence of a token type.
func (p *Parser) getPrecedence(tt TokenType) int {
	if prec, ok := precedence[tt]; ok {
		return prec
	}
	return 0
}

// advance moves to the next token.
func (p *Parser) advance() {
	p.current = p.lexer.Next()
}

// expect checks that the current token matches the expected type and
// advances past it.
func (p *Parser) expect(tt TokenType) error {
	if p.current.Type == TokenError {
		return p.lexer.Error()
	}
	if p.current.Type != tt {
		return p.error(fmt.Sprintf("expected %s, found %q", tt.String(), p.tokenText()))
	}
	p.advance()
	return nil
}

// error creates a parser error at the current token.
func (p *Parser) error(message string) error {
	return &types.Error{
		Code:     types.ErrParse,
		Message:  message,
		Position: p.current.Position,
		Token:    p.current.Value,
	}
}

// tokenText renders the current token for diagnostics.
func (p *Parser) tokenText() string {
	if p.current.Type == TokenEOF {
		return "end of input"
	}
	return p.current.Value
}

// parseExpression parses an expression with operator precedence.
// rbp is the right binding power (minimum precedence).
func (p *Parser) parseExpression(rbp int) (*types.ASTNode, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.opts.MaxDepth > 0 && p.depth > p.opts.MaxDepth {
		return nil, p.error("expression too deeply nested")
	}

	// Parse prefix expression (nud - null denotation)
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}

	// Parse infix expressions while precedence allows (led - left denotation)
	for rbp < p.getPrecedence(p.current.Type) {
		left, err = p.parseBinaryOp(left)
		if err != nil {
			return nil, err
		}
	}

	return left, nil
}

// parsePrefix parses a prefix expression: literals, variables, calls,
// unary operators, and parenthesized sub-expressions.
func (p *Parser) parsePrefix() (*types.ASTNode, error) {
	token := p.current

	switch token.Type {
	case TokenString:
		return p.parseString()
	case TokenNumber:
		return p.parseNumber()
	case TokenIdent:
		return p.parseIdent()
	case TokenMinus:
		return p.parseUnary("-")
	case TokenNot:
		return p.parseUnary("!")
	case TokenParenOpen:
		return p.parseGrouping()
	case TokenError:
		return nil, p.lexer.Error()
	default:
		return nil, p.error(fmt.Sprintf("expected expression, found %q", p.tokenText()))
	}
}

// parseString parses a string literal, decoding escape sequences.
func (p *Parser) parseString() (*types.ASTNode, error) {
	value, err := unescape(p.current.Value)
	if err != nil {
		return nil, p.error(err.Error())
	}

	node := p.arena.Alloc(types.NodeLiteral, p.current.Position)
	node.Literal = types.StringValue(value)
	p.advance()
	return node, nil
}

// parseNumber parses a decimal number literal.
func (p *Parser) parseNumber() (*types.ASTNode, error) {
	value, err := strconv.ParseFloat(p.current.Value, 64)
	if err != nil {
		return nil, p.error(fmt.Sprintf("invalid number literal %q", p.current.Value))
	}

	node := p.arena.Alloc(types.NodeLiteral, p.current.Position)
	node.Literal = types.NumberValue(value)
	p.advance()
	return node, nil
}

// parseIdent parses an identifier in prefix position: a boolean literal,
// a function call when followed by '(', or a variable reference.
func (p *Parser) parseIdent() (*types.ASTNode, error) {
	token := p.current
	p.advance()

	// true/false are boolean literals, not variables.
	if token.Value == "true" || token.Value == "false" {
		node := p.arena.Alloc(types.NodeLiteral, token.Position)
		node.Literal = types.BoolValue(token.Value == "true")
		return node, nil
	}

	if p.current.Type == TokenParenOpen {
		return p.parseCall(token)
	}

	node := p.arena.Alloc(types.NodeVariable, token.Position)
	node.Name = token.Value
	return node, nil
}

// parseCall parses a function call. The name token has been consumed and
// the current token is the opening parenthesis.
func (p *Parser) parseCall(name Token) (*types.ASTNode, error) {
	node := p.arena.Alloc(types.NodeCall, name.Position)
	node.Name = name.Value

	p.advance() // consume '('

	if p.current.Type != TokenParenClose {
		for {
			arg, err := p.parseExpression(0)
			if err != nil {
				return nil, err
			}
			node.Arguments = append(node.Arguments, arg)

			if p.current.Type != TokenComma {
				break
			}
			p.advance() // consume ','
		}
	}

	if err := p.expect(TokenParenClose); err != nil {
		return nil, err
	}

	return node, nil
}

// parseUnary parses a unary operator expression ('!' or '-').
func (p *Parser) parseUnary(op string) (*types.ASTNode, error) {
	node := p.arena.Alloc(types.NodeUnary, p.current.Position)
	node.Name = op

	p.advance()

	operand, err := p.parseExpression(unaryPrecedence)
	if err != nil {
		return nil, err
	}
	node.LHS = operand

	return node, nil
}

// parseGrouping parses a parenthesized sub-expression.
func (p *Parser) parseGrouping() (*types.ASTNode, error) {
	p.advance() // consume '('

	node, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}

	if err := p.expect(TokenParenClose); err != nil {
		return nil, err
	}

	return node, nil
}

// parseBinaryOp parses a binary operator expression. Left associativity
// follows from parsing the right side at the operator's own precedence.
func (p *Parser) parseBinaryOp(left *types.ASTNode) (*types.ASTNode, error) {
	token := p.current

	node := p.arena.Alloc(types.NodeBinary, token.Position)
	node.Name = token.Type.String()
	node.LHS = left

	p.advance()

	right, err := p.parseExpression(p.getPrecedence(token.Type))
	if err != nil {
		return nil, err
	}
	node.RHS = right

	return node, nil
}

// unescape decodes the escape sequences of a raw string literal body.
// Recognized escapes: \" \\ \n \t.
func unescape(raw string) (string, error) {
	if !strings.ContainsRune(raw, '\\') {
		return raw, nil
	}

	var b strings.Builder
	b.Grow(len(raw))

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}

		i++
		if i >= len(raw) {
			return "", fmt.Errorf("trailing backslash in string literal")
		}
		switch raw[i] {
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		default:
			return "", fmt.Errorf("unsupported escape sequence \\%c", raw[i])
		}
	}

	return b.String(), nil
}
