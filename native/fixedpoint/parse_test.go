package fixedpoint

import (
	"errors"
	"strings"
	"testing"
)

func TestParseDecimalExact(t *testing.T) {
	cases := []struct {
		input    string
		decimals uint
		want     string
	}{
		{"1", 8, "100000000"},
		{"1.5", 8, "150000000"},
		{"0.00000001", 8, "1"},
		{"21000000", 8, "2100000000000000"},
		{"60000.00", 8, "6000000000000"},
		{"0", 6, "0"},
		{"  42.5  ", 6, "42500000"},
		{"30000", 8, "3000000000000"},
	}
	for _, tc := range cases {
		got, err := ParseDecimal(tc.input, tc.decimals)
		if err != nil {
			t.Fatalf("ParseDecimal(%q, %d): unexpected error %v", tc.input, tc.decimals, err)
		}
		if got.String() != tc.want {
			t.Fatalf("ParseDecimal(%q, %d) = %s, want %s", tc.input, tc.decimals, got, tc.want)
		}
	}
}

func TestParseDecimalErrors(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		decimals uint
		want     error
		code     string
	}{
		{"empty", "", 8, ErrEmptyAmount, CodeEmptyAmount},
		{"whitespace", "   ", 8, ErrEmptyAmount, CodeEmptyAmount},
		{"signed", "-1.5", 8, ErrInvalidFormat, CodeInvalidFormat},
		{"plus", "+1", 8, ErrInvalidFormat, CodeInvalidFormat},
		{"exponent", "1e8", 8, ErrInvalidFormat, CodeInvalidFormat},
		{"separators", "1,000", 8, ErrInvalidFormat, CodeInvalidFormat},
		{"bare dot", "1.", 8, ErrInvalidFormat, CodeInvalidFormat},
		{"leading dot", ".5", 8, ErrInvalidFormat, CodeInvalidFormat},
		{"too precise", "1.123456789", 8, ErrPrecisionExceeded, CodePrecisionExceeded},
		{"huge", strings.Repeat("9", 120), 8, ErrNumberTooLarge, CodeNumberTooLarge},
	}
	for _, tc := range cases {
		_, err := ParseDecimal(tc.input, tc.decimals)
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: ParseDecimal(%q) error = %v, want %v", tc.name, tc.input, err, tc.want)
		}
		if Code(err) != tc.code {
			t.Fatalf("%s: Code = %q, want %q", tc.name, Code(err), tc.code)
		}
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	// Formatting a parsed value reproduces the input up to canonical
	// trailing-zero trimming.
	cases := []struct {
		input string
		want  string
	}{
		{"1.5", "1.5"},
		{"1.50000000", "1.5"},
		{"0.00000001", "0.00000001"},
		{"42", "42"},
		{"42.000", "42"},
		{"60000.12345678", "60000.12345678"},
		{"0", "0"},
		{"0.0", "0"},
	}
	for _, tc := range cases {
		parsed, err := ParseDecimal(tc.input, 8)
		if err != nil {
			t.Fatalf("ParseDecimal(%q): %v", tc.input, err)
		}
		if got := Format(parsed, 8); got != tc.want {
			t.Fatalf("Format(ParseDecimal(%q)) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestFormatFixedTruncates(t *testing.T) {
	value, err := ParseDecimal("1.98765432", 8)
	if err != nil {
		t.Fatalf("ParseDecimal: %v", err)
	}
	if got := FormatFixed(value, 8, 2); got != "1.98" {
		t.Fatalf("FormatFixed truncation = %q, want 1.98", got)
	}
	if got := FormatFixed(value, 8, 10); got != "1.9876543200" {
		t.Fatalf("FormatFixed padding = %q, want 1.9876543200", got)
	}
	if got := FormatFixed(value, 8, 0); got != "1" {
		t.Fatalf("FormatFixed zero places = %q, want 1", got)
	}
}
