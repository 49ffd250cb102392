// Package display renders scaled amounts as currency-labelled strings for the
// dashboard. It is a thin consumer of the fixed-point core and reproduces the
// same precision and truncation policy: nothing here rounds, and floating
// inputs are re-scaled through exact parsing before formatting.
package display

import (
	"fmt"
	"strconv"
	"strings"

	"caucion/native/fixedpoint"
)

// Asset names a displayable currency together with its minor-unit scale.
type Asset struct {
	Symbol   string
	Decimals uint
}

var (
	// AssetBTC is the collateral asset, denominated in sats.
	AssetBTC = Asset{Symbol: "BTC", Decimals: 8}
	// AssetStable is the debt asset in its minor unit.
	AssetStable = Asset{Symbol: "USDT", Decimals: 6}
	// AssetUSD is the oracle price quote at E8 precision.
	AssetUSD = Asset{Symbol: "USD", Decimals: 8}
)

// Currency renders a scaled amount with its currency symbol, trimming
// trailing fractional zeros.
func Currency(a fixedpoint.Amount, asset Asset) string {
	return fixedpoint.Format(a, asset.Decimals) + " " + asset.Symbol
}

// CurrencyFixed renders a scaled amount with exactly displayDecimals
// fractional digits, truncated rather than rounded.
func CurrencyFixed(a fixedpoint.Amount, asset Asset, displayDecimals uint) string {
	return fixedpoint.FormatFixed(a, asset.Decimals, displayDecimals) + " " + asset.Symbol
}

// CurrencyFloat formats a floating display value that a legacy caller still
// holds. The float is first rendered to its shortest exact decimal form and
// re-parsed into a scaled integer, so the displayed figure goes through the
// same canonical decimal mapping as every other amount instead of float
// string interpolation. Values that cannot be represented at the asset's
// scale (negative, exponent-range, or more fractional digits than the asset
// carries) are rejected.
func CurrencyFloat(v float64, asset Asset) (string, error) {
	text := strconv.FormatFloat(v, 'f', -1, 64)
	if strings.HasPrefix(text, "-") {
		return "", fmt.Errorf("display: negative amount %q", text)
	}
	parsed, err := fixedpoint.ParseDecimal(text, asset.Decimals)
	if err != nil {
		return "", fmt.Errorf("display: rescale %q: %w", text, err)
	}
	return Currency(parsed, asset), nil
}
