package evaluator

import (
	"strings"
	"unicode/utf8"

	"github.com/tgup-cli/tgup/pkg/types"
)

func fnStrLen(e *Evaluator, node *types.ASTNode, args []types.Value) (types.Value, error) {
	s, err := stringArg("str::len", node, args, 0)
	if err != nil {
		return types.Value{}, err
	}
	// Length in codepoints, not bytes.
	return types.NumberValue(float64(utf8.RuneCountInString(s))), nil
}

func fnStrContains(e *Evaluator, node *types.ASTNode, args []types.Value) (types.Value, error) {
	s, err := stringArg("str::contains", node, args, 0)
	if err != nil {
		return types.Value{}, err
	}
	sub, err := stringArg("str::contains", node, args, 1)
	if err != nil {
		return types.Value{}, err
	}
	return types.BoolValue(strings.Contains(s, sub)), nil
}

func fnStrStartsWith(e *Evaluator, node *types.ASTNode, args []types.Value) (types.Value, error) {
	s, err := stringArg("str::starts_with", node, args, 0)
	if err != nil {
		return types.Value{}, err
	}
	prefix, err := stringArg("str::starts_with", node, args, 1)
	if err != nil {
		return types.Value{}, err
	}
	return types.BoolValue(strings.HasPrefix(s, prefix)), nil
}

func fnStrEndsWith(e *Evaluator, node *types.ASTNode, args []types.Value) (types.Value, error) {
	s, err := stringArg("str::ends_with", node, args, 0)
	if err != nil {
		return types.Value{}, err
	}
	suffix, err := stringArg("str::ends_with", node, args, 1)
	if err != nil {
		return types.Value{}, err
	}
	return types.BoolValue(strings.HasSuffix(s, suffix)), nil
}

func fnStrToLowercase(e *Evaluator, node *types.ASTNode, args []types.Value) (types.Value, error) {
	s, err := stringArg("str::to_lowercase", node, args, 0)
	if err != nil {
		return types.Value{}, err
	}
	return types.StringValue(strings.ToLower(s)), nil
}

func fnStrToUppercase(e *Evaluator, node *types.ASTNode, args []types.Value) (types.Value, error) {
	s, err := stringArg("str::to_uppercase", node, args, 0)
	if err != nil {
		return types.Value{}, err
	}
	return types.StringValue(strings.ToUpper(s)), nil
}

func fnStrTrim(e *Evaluator, node *types.ASTNode, args []types.Value) (types.Value, error) {
	s, err := stringArg("str::trim", node, args, 0)
	if err != nil {
		return types.Value{}, err
	}
	return types.StringValue(strings.TrimSpace(s)), nil
}

// fnStrFrom converts any value to its canonical string form. This is the
// only built-in that accepts every kind; callers needing a computed
// string from a Number or Bool at the routing boundary must go through it
// explicitly.
func fnStrFrom(e *Evaluator, node *types.ASTNode, args []types.Value) (types.Value, error) {
	return types.StringValue(args[0].Format()), nil
}

// fnStrSubstring returns the 0-based substring (s, start, len) in
// codepoints. Out-of-range bounds clamp to the string's actual bounds
// rather than failing.
func fnStrSubstring(e *Evaluator, node *types.ASTNode, args []types.Value) (types.Value, error) {
	s, err := stringArg("str::substring", node, args, 0)
	if err != nil {
		return types.Value{}, err
	}
	start, err := numberArg("str::substring", node, args, 1)
	if err != nil {
		return types.Value{}, err
	}
	length, err := numberArg("str::substring", node, args, 2)
	if err != nil {
		return types.Value{}, err
	}

	runes := []rune(s)

	from := int(start)
	if from < 0 {
		from = 0
	}
	if from > len(runes) {
		from = len(runes)
	}

	to := from + int(length)
	if to > len(runes) {
		to = len(runes)
	}
	if to < from {
		to = from
	}

	return types.StringValue(string(runes[from:to])), nil
}

// fnStrReplace replaces all non-overlapping occurrences of find in s.
func fnStrReplace(e *Evaluator, node *types.ASTNode, args []types.Value) (types.Value, error) {
	s, err := stringArg("str::replace", node, args, 0)
	if err != nil {
		return types.Value{}, err
	}
	find, err := stringArg("str::replace", node, args, 1)
	if err != nil {
		return types.Value{}, err
	}
	repl, err := stringArg("str::replace", node, args, 2)
	if err != nil {
		return types.Value{}, err
	}
	return types.StringValue(strings.ReplaceAll(s, find, repl)), nil
}

func fnStrRegexMatches(e *Evaluator, node *types.ASTNode, args []types.Value) (types.Value, error) {
	s, err := stringArg("str::regex_matches", node, args, 0)
	if err != nil {
		return types.Value{}, err
	}
	pattern, err := stringArg("str::regex_matches", node, args, 1)
	if err != nil {
		return types.Value{}, err
	}

	m, err := e.regexes.Compile(pattern)
	if err != nil {
		return types.Value{}, types.NewError(types.ErrRegexCompile,
			"invalid regex pattern: "+err.Error(), node.Position).WithCause(err)
	}

	return types.BoolValue(m.MatchString(s)), nil
}
