package types_test

import (
	"testing"

	"github.com/tgup-cli/tgup/pkg/types"
)

func TestValueKinds(t *testing.T) {
	if got := types.NumberValue(1.5).Kind(); got != types.KindNumber {
		t.Errorf("NumberValue kind = %s", got)
	}
	if got := types.StringValue("x").Kind(); got != types.KindString {
		t.Errorf("StringValue kind = %s", got)
	}
	if got := types.BoolValue(true).Kind(); got != types.KindBool {
		t.Errorf("BoolValue kind = %s", got)
	}

	// The zero Value is the number 0.
	var zero types.Value
	if zero.Kind() != types.KindNumber || zero.Num() != 0 {
		t.Errorf("zero value = %v (%s), want number 0", zero, zero.Kind())
	}
}

func TestValueEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b types.Value
		want bool
	}{
		{"equal numbers", types.NumberValue(2), types.NumberValue(2), true},
		{"unequal numbers", types.NumberValue(2), types.NumberValue(3), false},
		{"equal strings", types.StringValue("a"), types.StringValue("a"), true},
		{"unequal strings", types.StringValue("a"), types.StringValue("b"), false},
		{"equal bools", types.BoolValue(true), types.BoolValue(true), true},
		{"unequal bools", types.BoolValue(true), types.BoolValue(false), false},
		{"number vs numeric string", types.NumberValue(1), types.StringValue("1"), false},
		{"bool vs string", types.BoolValue(true), types.StringValue("true"), false},
		{"number vs bool", types.NumberValue(0), types.BoolValue(false), false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.a.Equal(test.b); got != test.want {
				t.Errorf("Equal = %v, want %v", got, test.want)
			}
			// Equality is symmetric.
			if got := test.b.Equal(test.a); got != test.want {
				t.Errorf("reversed Equal = %v, want %v", got, test.want)
			}
		})
	}
}

func TestValueFormat(t *testing.T) {
	tests := []struct {
		name string
		v    types.Value
		want string
	}{
		{"integer-valued number", types.NumberValue(200), "200"},
		{"zero", types.NumberValue(0), "0"},
		{"fractional number", types.NumberValue(2.5), "2.5"},
		{"negative number", types.NumberValue(-0.5), "-0.5"},
		{"no trailing zeros", types.NumberValue(1.10), "1.1"},
		{"large number", types.NumberValue(209715200), "209715200"},
		{"true", types.BoolValue(true), "true"},
		{"false", types.BoolValue(false), "false"},
		{"string unchanged", types.StringValue("@large_files"), "@large_files"},
		{"empty string", types.StringValue(""), ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.v.Format(); got != test.want {
				t.Errorf("Format = %q, want %q", got, test.want)
			}
			if got := test.v.String(); got != test.want {
				t.Errorf("String = %q, want %q", got, test.want)
			}
		})
	}
}

func TestValueKindString(t *testing.T) {
	tests := []struct {
		kind types.ValueKind
		want string
	}{
		{types.KindNumber, "number"},
		{types.KindString, "string"},
		{types.KindBool, "bool"},
	}
	for _, test := range tests {
		if got := test.kind.String(); got != test.want {
			t.Errorf("%v.String() = %q, want %q", test.kind, got, test.want)
		}
	}
}
