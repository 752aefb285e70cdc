package parser

import (
	"fmt"
	"unicode/utf8"

	"github.com/tgup-cli/tgup/pkg/types"
)

const eof = -1

// Lexer converts a routing expression into a sequence of tokens.
// The implementation is based on Rob Pike's "Lexical Scanning in Go"
// technique: a cursor pair (start, current) slides over the input and
// emits tokens without any intermediate buffering.
type Lexer struct {
	input   string // Input string being scanned
	length  int    // Length of input string
	start   int    // Start position of current token
	current int    // Current position in input
	width   int    // Width of last rune read
	err     error  // First error encountered
}

// NewLexer creates a new lexer from the provided input string.
// The input is tokenized by successive calls to the Next method.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  input,
		length: len(input),
	}
}

// Next returns the next token from the input.
// When the end of the input is reached, Next returns TokenEOF for all
// subsequent calls.
func (l *Lexer) Next() Token {
	l.skipWhitespace()

	ch := l.nextRune()
	if ch == eof {
		return l.eofToken()
	}

	// Two-character operators and the characters that require them.
	switch ch {
	case '=':
		if l.acceptRune('=') {
			return l.newToken(TokenEqual)
		}
		return l.errorf(types.ErrLex, "unexpected character '=' (did you mean '=='?)")
	case '&':
		if l.acceptRune('&') {
			return l.newToken(TokenAnd)
		}
		return l.errorf(types.ErrLex, "unexpected character '&' (did you mean '&&'?)")
	case '|':
		if l.acceptRune('|') {
			return l.newToken(TokenOr)
		}
		return l.errorf(types.ErrLex, "unexpected character '|' (did you mean '||'?)")
	case '!':
		if l.acceptRune('=') {
			return l.newToken(TokenNotEqual)
		}
		return l.newToken(TokenNot)
	case '<':
		if l.acceptRune('=') {
			return l.newToken(TokenLessEqual)
		}
		return l.newToken(TokenLess)
	case '>':
		if l.acceptRune('=') {
			return l.newToken(TokenGreaterEqual)
		}
		return l.newToken(TokenGreater)
	}

	// Single-character symbols
	if tt := lookupSymbol1(ch); tt > 0 {
		return l.newToken(tt)
	}

	// String literals
	if ch == '"' {
		return l.scanString()
	}

	// Number literals
	if isDigit(ch) {
		l.backup()
		return l.scanNumber()
	}

	// Identifiers, possibly qualified with ::
	if isIdentStart(ch) {
		l.backup()
		return l.scanIdent()
	}

	return l.errorf(types.ErrLex, fmt.Sprintf("unexpected character %q", ch))
}

// Error returns the first error encountered during lexing, if any.
func (l *Lexer) Error() error {
	return l.err
}

// scanString reads a double-quoted string literal from the current
// position. The opening quote has already been consumed; the returned
// token value excludes the quotes but keeps escape sequences raw (the
// parser decodes them). An unterminated string reports a LexError at the
// opening quote's position.
func (l *Lexer) scanString() Token {
	quotePos := l.start
	l.ignore()

Loop:
	for {
		switch l.nextRune() {
		case '"':
			break Loop
		case '\\':
			// Consume the escaped character; validity is checked by the parser.
			if r := l.nextRune(); r != eof && r != '\n' {
				break
			}
			fallthrough
		case eof, '\n':
			// Report at the opening quote, not where scanning stopped.
			l.backup()
			l.start = quotePos
			return l.errorf(types.ErrLex, "unterminated string literal")
		}
	}

	l.backup()
	t := l.newToken(TokenString)
	l.acceptRune('"')
	l.ignore()
	return t
}

// scanNumber reads a decimal number literal: an integer part optionally
// followed by '.' and a fractional part.
func (l *Lexer) scanNumber() Token {
	l.acceptAll(isDigit)

	if l.acceptRune('.') {
		if !l.acceptAll(isDigit) {
			return l.errorf(types.ErrLex, "missing digits after decimal point")
		}
	}

	return l.newToken(TokenNumber)
}

// scanIdent reads an identifier, optionally qualified with a namespace:
// [A-Za-z_][A-Za-z0-9_]* ( '::' [A-Za-z_][A-Za-z0-9_]* )?
//
// A qualified name such as str::len is emitted as a single identifier
// token; the '::' is never split into two colon tokens.
func (l *Lexer) scanIdent() Token {
	l.accept(isIdentStart)
	l.acceptAll(isIdentPart)

	// Qualified name: consume '::' plus the trailing identifier.
	if l.current+1 < l.length && l.input[l.current] == ':' && l.input[l.current+1] == ':' {
		l.current += 2
		if !l.accept(isIdentStart) {
			return l.errorf(types.ErrLex, "missing identifier after '::'")
		}
		l.acceptAll(isIdentPart)
	}

	return l.newToken(TokenIdent)
}

// Helper methods

func (l *Lexer) eofToken() Token {
	return Token{
		Type:     TokenEOF,
		Position: l.current,
	}
}

func (l *Lexer) errorf(code types.ErrorCode, message string) Token {
	t := l.newToken(TokenError)
	if l.err == nil {
		l.err = &types.Error{
			Code:     code,
			Message:  message,
			Position: t.Position,
			Token:    t.Value,
		}
	}
	return t
}

func (l *Lexer) newToken(tt TokenType) Token {
	t := Token{
		Type:     tt,
		Value:    l.input[l.start:l.current],
		Position: l.start,
	}
	l.width = 0
	l.start = l.current
	return t
}

func (l *Lexer) nextRune() rune {
	if l.err != nil || l.current >= l.length {
		l.width = 0
		return eof
	}

	r, w := utf8.DecodeRuneInString(l.input[l.current:])
	l.width = w
	l.current += w
	return r
}

func (l *Lexer) backup() {
	l.current -= l.width
}

func (l *Lexer) ignore() {
	l.start = l.current
}

func (l *Lexer) acceptRune(r rune) bool {
	return l.accept(func(c rune) bool {
		return c == r
	})
}

func (l *Lexer) accept(isValid func(rune) bool) bool {
	if isValid(l.nextRune()) {
		return true
	}
	l.backup()
	return false
}

func (l *Lexer) acceptAll(isValid func(rune) bool) bool {
	var matched bool
	for l.accept(isValid) {
		matched = true
	}
	return matched
}

// skipWhitespace advances past whitespace, which carries no semantic
// weight in the routing language.
func (l *Lexer) skipWhitespace() {
	l.acceptAll(isWhitespace)
	l.ignore()
}

// Character classification functions

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v':
		return true
	default:
		return false
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}
