package display

import (
	"errors"
	"testing"

	"caucion/native/fixedpoint"
)

func TestCurrency(t *testing.T) {
	collateral, err := fixedpoint.ParseDecimal("1.5", AssetBTC.Decimals)
	if err != nil {
		t.Fatalf("ParseDecimal: %v", err)
	}
	if got := Currency(collateral, AssetBTC); got != "1.5 BTC" {
		t.Fatalf("Currency = %q, want %q", got, "1.5 BTC")
	}
	if got := CurrencyFixed(collateral, AssetBTC, 8); got != "1.50000000 BTC" {
		t.Fatalf("CurrencyFixed = %q, want %q", got, "1.50000000 BTC")
	}

	price, err := fixedpoint.ParseDecimal("60000.129", AssetUSD.Decimals)
	if err != nil {
		t.Fatalf("ParseDecimal: %v", err)
	}
	// Truncated, never rounded.
	if got := CurrencyFixed(price, AssetUSD, 2); got != "60000.12 USD" {
		t.Fatalf("CurrencyFixed = %q, want %q", got, "60000.12 USD")
	}
}

func TestCurrencyFloatRescales(t *testing.T) {
	got, err := CurrencyFloat(42857.14, AssetUSD)
	if err != nil {
		t.Fatalf("CurrencyFloat: %v", err)
	}
	if got != "42857.14 USD" {
		t.Fatalf("CurrencyFloat = %q, want %q", got, "42857.14 USD")
	}
}

func TestCurrencyFloatRejectsNegative(t *testing.T) {
	if _, err := CurrencyFloat(-1.5, AssetBTC); err == nil {
		t.Fatal("expected error for negative amount")
	}
}

func TestCurrencyFloatRejectsExcessPrecision(t *testing.T) {
	// A float carrying more fractional digits than the stable asset's six
	// must not be silently truncated into the display string.
	_, err := CurrencyFloat(0.1234567891, AssetStable)
	if !errors.Is(err, fixedpoint.ErrPrecisionExceeded) {
		t.Fatalf("expected ErrPrecisionExceeded, got %v", err)
	}
}
