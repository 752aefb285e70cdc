package parser_test

import (
	"strings"
	"testing"

	"github.com/tgup-cli/tgup/pkg/parser"
	"github.com/tgup-cli/tgup/pkg/types"
)

func mustParse(t *testing.T, source string) *types.ASTNode {
	t.Helper()
	expr, err := parser.Parse(source)
	if err != nil {
		t.Fatalf("Parse(%q): %v", source, err)
	}
	return expr.AST()
}

func TestParseLiterals(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   types.Value
	}{
		{"integer", "42", types.NumberValue(42)},
		{"decimal", "3.14", types.NumberValue(3.14)},
		{"string", `"hello"`, types.StringValue("hello")},
		{"empty string", `""`, types.StringValue("")},
		{"escaped string", `"a\nb\t\"c\\"`, types.StringValue("a\nb\t\"c\\")},
		{"true literal", "true", types.BoolValue(true)},
		{"false literal", "false", types.BoolValue(false)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			node := mustParse(t, test.source)
			if node.Type != types.NodeLiteral {
				t.Fatalf("node type = %s, want %s", node.Type, types.NodeLiteral)
			}
			if !node.Literal.Equal(test.want) {
				t.Errorf("literal = %v (%s), want %v (%s)",
					node.Literal, node.Literal.Kind(), test.want, test.want.Kind())
			}
		})
	}
}

func TestParseVariable(t *testing.T) {
	node := mustParse(t, "size_mb")
	if node.Type != types.NodeVariable {
		t.Fatalf("node type = %s, want %s", node.Type, types.NodeVariable)
	}
	if node.Name != "size_mb" {
		t.Errorf("name = %q, want %q", node.Name, "size_mb")
	}
}

func TestParsePrecedence(t *testing.T) {
	// Each case names the operator expected at the AST root; precedence
	// puts the loosest operator on top.
	tests := []struct {
		name   string
		source string
		root   string
	}{
		{"mult binds tighter than plus", "1 + 2 * 3", "+"},
		{"plus binds tighter than less", "1 + 2 < 3", "<"},
		{"less binds tighter than equality", `1 < 2 == true`, "=="},
		{"equality binds tighter than and", "a == b && c == d", "&&"},
		{"and binds tighter than or", "a && b || c", "||"},
		{"parentheses override", "(1 + 2) * 3", "*"},
		{"division", "10 / 2 - 1", "-"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			node := mustParse(t, test.source)
			if node.Type != types.NodeBinary {
				t.Fatalf("node type = %s, want %s", node.Type, types.NodeBinary)
			}
			if node.Name != test.root {
				t.Errorf("root operator = %q, want %q", node.Name, test.root)
			}
		})
	}
}

func TestParseLeftAssociativity(t *testing.T) {
	// 10 - 3 - 2 must parse as (10 - 3) - 2.
	node := mustParse(t, "10 - 3 - 2")
	if node.Name != "-" {
		t.Fatalf("root = %q, want %q", node.Name, "-")
	}
	if node.LHS.Type != types.NodeBinary || node.LHS.Name != "-" {
		t.Fatalf("left child = %s %q, want binary %q", node.LHS.Type, node.LHS.Name, "-")
	}
	if node.RHS.Type != types.NodeLiteral {
		t.Errorf("right child = %s, want literal", node.RHS.Type)
	}
}

func TestParseUnary(t *testing.T) {
	tests := []struct {
		name   string
		source string
		op     string
	}{
		{"negation", "-size", "-"},
		{"logical not", "!is_video", "!"},
		{"double negation", "--1", "-"},
		{"not on parenthesized", "!(a && b)", "!"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			node := mustParse(t, test.source)
			if node.Type != types.NodeUnary {
				t.Fatalf("node type = %s, want %s", node.Type, types.NodeUnary)
			}
			if node.Name != test.op {
				t.Errorf("operator = %q, want %q", node.Name, test.op)
			}
			if node.LHS == nil {
				t.Error("operand is nil")
			}
		})
	}
}

func TestParseUnaryBindsTighterThanBinary(t *testing.T) {
	// -a + b must parse as (-a) + b, not -(a + b).
	node := mustParse(t, "-a + b")
	if node.Type != types.NodeBinary || node.Name != "+" {
		t.Fatalf("root = %s %q, want binary %q", node.Type, node.Name, "+")
	}
	if node.LHS.Type != types.NodeUnary {
		t.Errorf("left child = %s, want unary", node.LHS.Type)
	}
}

func TestParseCall(t *testing.T) {
	tests := []struct {
		name   string
		source string
		fn     string
		args   int
	}{
		{"one argument", `str::len("abc")`, "str::len", 1},
		{"two arguments", `str::contains(name, ".mp4")`, "str::contains", 2},
		{"three arguments", `if(is_video, "@videos", "me")`, "if", 3},
		{"nested call", `str::to_lowercase(str::trim(name))`, "str::to_lowercase", 1},
		{"expression argument", "max(size_mb, 10 * 2)", "max", 2},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			node := mustParse(t, test.source)
			if node.Type != types.NodeCall {
				t.Fatalf("node type = %s, want %s", node.Type, types.NodeCall)
			}
			if node.Name != test.fn {
				t.Errorf("function = %q, want %q", node.Name, test.fn)
			}
			if len(node.Arguments) != test.args {
				t.Errorf("arguments = %d, want %d", len(node.Arguments), test.args)
			}
		})
	}
}

func TestParseCallArityIsNotChecked(t *testing.T) {
	// Arity is an evaluation-time concern; the parser accepts any count.
	node := mustParse(t, `str::len("a", "b", "c")`)
	if len(node.Arguments) != 3 {
		t.Errorf("arguments = %d, want 3", len(node.Arguments))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		code   types.ErrorCode
	}{
		{"empty input", "", types.ErrParse},
		{"blank input", "   ", types.ErrParse},
		{"trailing operator", "1 +", types.ErrParse},
		{"leading operator", "* 2", types.ErrParse},
		{"unbalanced open paren", "(1 + 2", types.ErrParse},
		{"unbalanced close paren", "1 + 2)", types.ErrParse},
		{"missing call close", `str::len("a"`, types.ErrParse},
		{"missing argument after comma", `max(1,)`, types.ErrParse},
		{"two expressions", "1 2", types.ErrParse},
		{"consecutive operands", `size "x"`, types.ErrParse},
		{"lex error surfaces", `size = 1`, types.ErrLex},
		{"unterminated string", `"abc`, types.ErrLex},
		{"unsupported escape", `"\q"`, types.ErrParse},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := parser.Parse(test.source)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", test.source)
			}
			perr, ok := err.(*types.Error)
			if !ok {
				t.Fatalf("error type = %T, want *types.Error", err)
			}
			if perr.Code != test.code {
				t.Errorf("code = %s, want %s", perr.Code, test.code)
			}
			if perr.Position < 0 {
				t.Errorf("position = %d, want >= 0", perr.Position)
			}
		})
	}
}

func TestParseErrorPositions(t *testing.T) {
	tests := []struct {
		source   string
		position int
	}{
		{"1 + 2)", 5},
		{"1 +", 3},
		{`max(1 2)`, 6},
	}

	for _, test := range tests {
		t.Run(test.source, func(t *testing.T) {
			_, err := parser.Parse(test.source)
			if err == nil {
				t.Fatal("expected error")
			}
			perr := err.(*types.Error)
			if perr.Position != test.position {
				t.Errorf("position = %d, want %d", perr.Position, test.position)
			}
		})
	}
}

func TestParseDepthLimit(t *testing.T) {
	deep := strings.Repeat("(", 200) + "1" + strings.Repeat(")", 200)

	if _, err := parser.Compile(deep); err == nil {
		t.Error("default depth limit did not reject deep nesting")
	}

	if _, err := parser.Compile(deep, parser.WithMaxDepth(500)); err != nil {
		t.Errorf("raised depth limit rejected valid input: %v", err)
	}
}

func TestParsePreservesSource(t *testing.T) {
	source := `if(size > 10 * MB, "@big", "me")`
	expr, err := parser.Parse(source)
	if err != nil {
		t.Fatal(err)
	}
	if expr.Source() != source {
		t.Errorf("Source() = %q, want %q", expr.Source(), source)
	}
}
