package fixedpoint

import (
	"errors"
	"math/big"
	"testing"
)

func TestToDisplayExact(t *testing.T) {
	cases := []struct {
		input    string
		decimals uint
		want     float64
	}{
		{"1.5", 8, 1.5},
		{"60000", 8, 60000},
		{"0.25", 8, 0.25},
		{"0", 8, 0},
	}
	for _, tc := range cases {
		a := mustParse(t, tc.input, tc.decimals)
		got, err := ToDisplay(a, tc.decimals)
		if err != nil {
			t.Fatalf("ToDisplay(%q): %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("ToDisplay(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestToDisplayUnsafeConversion(t *testing.T) {
	// Integer part above 2^53-1 cannot be held exactly in a float64.
	huge := New(new(big.Int).Mul(big.NewInt(1<<53), big.NewInt(100000000)))
	if _, err := ToDisplay(huge, 8); !errors.Is(err, ErrUnsafeConversion) {
		t.Fatalf("expected ErrUnsafeConversion, got %v", err)
	}
}

func TestToDisplayPrecisionLoss(t *testing.T) {
	// 2^53+1 sats: fits the integer-part check at 8 decimals, but the full
	// value cannot round-trip through a float64 mantissa.
	value := New(new(big.Int).Add(big.NewInt(1<<53), big.NewInt(1)))
	if _, err := ToDisplay(value, 8); !errors.Is(err, ErrPrecisionLoss) {
		t.Fatalf("expected ErrPrecisionLoss, got %v", err)
	}
}
