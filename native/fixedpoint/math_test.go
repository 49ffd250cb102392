package fixedpoint

import (
	"errors"
	"math/big"
	"testing"
)

func mustParse(t *testing.T, input string, decimals uint) Amount {
	t.Helper()
	a, err := ParseDecimal(input, decimals)
	if err != nil {
		t.Fatalf("ParseDecimal(%q, %d): %v", input, decimals, err)
	}
	return a
}

func TestMulScalesProduct(t *testing.T) {
	// 1.5 BTC in sats times a 60000 USD E8 price, re-scaled back to E8:
	// exactly 90000 USD.
	collateral := mustParse(t, "1.5", 8)
	price := mustParse(t, "60000", 8)
	value := Mul(collateral, price, 8)
	if got := Format(value, 8); got != "90000" {
		t.Fatalf("collateral value = %s, want 90000", got)
	}
}

func TestMulTruncatesTowardZero(t *testing.T) {
	a := New(big.NewInt(7))
	b := New(big.NewInt(3))
	// 21 / 10^2 = 0.21 -> truncates to 0.
	if got := Mul(a, b, 2); got.String() != "0" {
		t.Fatalf("Mul truncation = %s, want 0", got)
	}
}

func TestDivScalesQuotient(t *testing.T) {
	// 30000 / 0.7 at 8 result decimals truncates, never rounds:
	// 42857.14285714285... -> 4285714285714 scaled.
	num := mustParse(t, "30000", 8)
	den := mustParse(t, "0.7", 8)
	got, err := Div(num, den, 8)
	if err != nil {
		t.Fatalf("Div: %v", err)
	}
	if Format(got, 8) != "42857.14285714" {
		t.Fatalf("Div = %s, want 42857.14285714", Format(got, 8))
	}
}

func TestDivByZero(t *testing.T) {
	_, err := Div(FromUint64(1), Zero(), 8)
	if !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("expected ErrDivisionByZero, got %v", err)
	}
	if Code(err) != CodeDivisionByZero {
		t.Fatalf("Code = %q, want %q", Code(err), CodeDivisionByZero)
	}
}

func TestAddAndSubFloor(t *testing.T) {
	a := FromUint64(100)
	b := FromUint64(250)
	if got := Add(a, b); got.String() != "350" {
		t.Fatalf("Add = %s, want 350", got)
	}
	if got := SubFloor(a, b); got.String() != "0" {
		t.Fatalf("SubFloor floor = %s, want 0", got)
	}
	if got := SubFloor(b, a); got.String() != "150" {
		t.Fatalf("SubFloor = %s, want 150", got)
	}
}

func TestRescale(t *testing.T) {
	debt := mustParse(t, "30000", 6)
	up := Rescale(debt, 6, 8)
	if up.String() != "3000000000000" {
		t.Fatalf("Rescale up = %s, want 3000000000000", up)
	}
	down := Rescale(up, 8, 6)
	if down.Cmp(debt) != 0 {
		t.Fatalf("Rescale down = %s, want %s", down, debt)
	}
	// Scaling down truncates sub-unit dust.
	dust := New(big.NewInt(199))
	if got := Rescale(dust, 8, 6); got.String() != "1" {
		t.Fatalf("Rescale truncation = %s, want 1", got)
	}
}

func TestAmountZeroValueIsUnset(t *testing.T) {
	var unset Amount
	if unset.Set() {
		t.Fatal("zero-value Amount must report unset")
	}
	if !Zero().Set() {
		t.Fatal("Zero() must report set")
	}
	if unset.Cmp(Zero()) != 0 {
		t.Fatal("unset compares equal to zero")
	}
}
