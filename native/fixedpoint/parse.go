package fixedpoint

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

// maxScaledDigits caps the magnitude of parsed values. Nothing monetary comes
// close; the cap exists so pathological input cannot allocate unbounded
// integers.
const maxScaledDigits = 96

var decimalPattern = regexp.MustCompile(`^\d+(\.\d+)?$`)

// ParseDecimal converts a human decimal string into a scaled integer without
// losing a single digit of precision. The input must be unsigned digits with
// an optional fractional part: no exponent, no thousands separators, no sign.
// The fractional part may not exceed decimals digits.
func ParseDecimal(input string, decimals uint) (Amount, error) {
	clean := strings.TrimSpace(input)
	if clean == "" {
		return Amount{}, ErrEmptyAmount
	}
	if !decimalPattern.MatchString(clean) {
		return Amount{}, ErrInvalidFormat
	}

	intPart := clean
	fracPart := ""
	if dot := strings.IndexByte(clean, '.'); dot >= 0 {
		intPart = clean[:dot]
		fracPart = clean[dot+1:]
	}

	if uint(len(fracPart)) > decimals {
		return Amount{}, fmt.Errorf("fixedpoint: maximum %d decimal places allowed, got %d: %w",
			decimals, len(fracPart), ErrPrecisionExceeded)
	}

	digits := intPart + fracPart + strings.Repeat("0", int(decimals)-len(fracPart))
	if trimmed := strings.TrimLeft(digits, "0"); len(trimmed) > maxScaledDigits {
		return Amount{}, ErrNumberTooLarge
	}

	value, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return Amount{}, ErrInvalidFormat
	}
	return Amount{value: value}, nil
}
