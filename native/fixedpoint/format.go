package fixedpoint

import (
	"math/big"
	"strings"
)

// Format renders a scaled integer as a decimal string at the given scale,
// trimming trailing zeros from the fractional part. It never rounds and never
// fails; "1500000000" at 8 decimals renders as "15".
func Format(a Amount, decimals uint) string {
	return format(a, decimals, -1)
}

// FormatFixed renders a scaled integer with exactly displayDecimals fractional
// digits. Extra precision is truncated, never rounded; missing precision is
// right-padded with zeros.
func FormatFixed(a Amount, decimals, displayDecimals uint) string {
	return format(a, decimals, int(displayDecimals))
}

func format(a Amount, decimals uint, display int) string {
	value := a.bigInt()
	neg := value.Sign() < 0
	abs := new(big.Int).Abs(value)

	quo, rem := new(big.Int).QuoRem(abs, pow10(decimals), new(big.Int))
	intPart := quo.String()

	frac := rem.String()
	if pad := int(decimals) - len(frac); pad > 0 {
		frac = strings.Repeat("0", pad) + frac
	}
	if display >= 0 {
		if len(frac) > display {
			frac = frac[:display]
		} else {
			frac += strings.Repeat("0", display-len(frac))
		}
	} else {
		frac = strings.TrimRight(frac, "0")
	}

	out := intPart
	if len(frac) > 0 {
		out += "." + frac
	}
	if neg && (quo.Sign() != 0 || rem.Sign() != 0) {
		out = "-" + out
	}
	return out
}
