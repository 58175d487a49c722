package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"integer", "100", "100"},
		{"decimal", "12.50", "12.5"},
		{"whitespace", "  7.25 ", "7.25"},
		{"negative", "-3", "-3"},
		{"exponent", "1e3", "1000"},
		{"empty", "", "0"},
		{"null literal", "null", "0"},
		{"undefined literal", "undefined", "0"},
		{"nan", "NaN", "0"},
		{"infinity", "Inf", "0"},
		{"garbage", "12abc", "0"},
		{"currency symbol", "$10", "0"},
		{"largest magnitude", "999999999999999999999999999999", "999999999999999999999999999999"},
		{"finest scale", "0.000000000000000000000000000001", "0.000000000000000000000000000001"},
		{"zero with huge exponent", "0e50000000", "0"},
		{"magnitude overflow", "1e30", "0"},
		{"huge exponent", "1e50000000", "0"},
		{"huge negative exponent", "1e-50000000", "0"},
		{"scale overflow", "1e-31", "0"},
		{"beyond float range", "1e400", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAmount(tt.input)
			want := decimal.RequireFromString(tt.want)
			if !got.Equal(want) {
				t.Fatalf("ParseAmount(%q) = %s, want %s", tt.input, got, want)
			}
		})
	}
}

func TestParseNullAmount(t *testing.T) {
	if _, ok := ParseNullAmount("abc"); ok {
		t.Fatalf("expected malformed input to be reported as unusable")
	}

	if _, ok := ParseNullAmount("1e50000000"); ok {
		t.Fatalf("expected out-of-range exponent to be reported as unusable")
	}

	d, ok := ParseNullAmount("42.1")
	if !ok || !d.Equal(decimal.RequireFromString("42.1")) {
		t.Fatalf("expected 42.1, got %s ok=%v", d, ok)
	}
}
