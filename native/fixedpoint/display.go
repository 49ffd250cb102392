package fixedpoint

import "math/big"

var maxSafeInteger = big.NewInt(1<<53 - 1)

// valuePrec is enough mantissa for a 53-bit float multiplied by any divisor
// the parser can produce, so the round-trip product below is computed exactly.
const valuePrec = 512

// ToDisplay converts a scaled integer to a float64 for presentation only. The
// result must never feed back into a monetary computation: use Mul and Div for
// that. ErrUnsafeConversion is returned when the integer part exceeds the
// exact float64 integer range, and ErrPrecisionLoss when re-scaling the float
// does not reproduce the original value exactly.
func ToDisplay(a Amount, decimals uint) (float64, error) {
	value := a.bigInt()
	divisor := pow10(decimals)

	intPart := new(big.Int).Quo(value, divisor)
	if new(big.Int).Abs(intPart).Cmp(maxSafeInteger) > 0 {
		return 0, ErrUnsafeConversion
	}

	quotient := new(big.Float).SetPrec(valuePrec).Quo(new(big.Float).SetInt(value), new(big.Float).SetInt(divisor))
	result, _ := quotient.Float64()

	// Round-trip check: re-scaling the float to the nearest integer must land
	// on the original value exactly.
	rescaled := new(big.Float).SetPrec(valuePrec).SetFloat64(result)
	rescaled.Mul(rescaled, new(big.Float).SetInt(divisor))
	if rescaled.Sign() >= 0 {
		rescaled.Add(rescaled, big.NewFloat(0.5))
	} else {
		rescaled.Sub(rescaled, big.NewFloat(0.5))
	}
	back, _ := rescaled.Int(nil)
	if back.Cmp(value) != 0 {
		return 0, ErrPrecisionLoss
	}
	return result, nil
}
