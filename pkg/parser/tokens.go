package parser

// TokenType represents the type of a lexical token.
type TokenType uint8

const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenError

	// Literals and names
	TokenString // "hello"
	TokenNumber // 123, 3.14
	TokenIdent  // name, str::len (a qualified name is one token)

	// Punctuation
	TokenParenOpen  // (
	TokenParenClose // )
	TokenComma      // ,

	// Arithmetic operators
	TokenPlus  // +
	TokenMinus // -
	TokenMult  // *
	TokenDiv   // /

	// Comparison operators
	TokenEqual        // ==
	TokenNotEqual     // !=
	TokenLess         // <
	TokenLessEqual    // <=
	TokenGreater      // >
	TokenGreaterEqual // >=

	// Logical operators
	TokenAnd // &&
	TokenOr  // ||
	TokenNot // !
)

// String returns a string representation of the token type.
func (tt TokenType) String() string {
	switch tt {
	case TokenEOF:
		return "end of input"
	case TokenError:
		return "(error)"
	case TokenString:
		return "(string)"
	case TokenNumber:
		return "(number)"
	case TokenIdent:
		return "(identifier)"
	case TokenParenOpen:
		return "("
	case TokenParenClose:
		return ")"
	case TokenComma:
		return ","
	case TokenPlus:
		return "+"
	case TokenMinus:
		return "-"
	case TokenMult:
		return "*"
	case TokenDiv:
		return "/"
	case TokenEqual:
		return "=="
	case TokenNotEqual:
		return "!="
	case TokenLess:
		return "<"
	case TokenLessEqual:
		return "<="
	case TokenGreater:
		return ">"
	case TokenGreaterEqual:
		return ">="
	case TokenAnd:
		return "&&"
	case TokenOr:
		return "||"
	case TokenNot:
		return "!"
	default:
		return "(unknown)"
	}
}

// Token represents a lexical token in a routing expression.
type Token struct {
	Type     TokenType // Type of the token
	Value    string    // Literal value of the token
	Position int       // Starting byte offset in the input string
}

// symbols1 maps single-character symbols to token types.
// Characters that only occur doubled (&, |) or extended (=) are absent;
// the lexer resolves those before consulting this table.
var symbols1 = [...]TokenType{
	'(': TokenParenOpen,
	')': TokenParenClose,
	',': TokenComma,
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenMult,
	'/': TokenDiv,
	'<': TokenLess,
	'>': TokenGreater,
	'!': TokenNot,
}

const symbol1Count = rune(len(symbols1))

// lookupSymbol1 returns the token type for a single-character symbol.
// Returns 0 (TokenEOF) if the rune is not a valid symbol.
func lookupSymbol1(r rune) TokenType {
	if r < 0 || r >= symbol1Count {
		return 0
	}
	return symbols1[r]
}
