package fixedpoint

import "math/big"

// Mul computes (a*b)/10^resultDecimals entirely in integer arithmetic,
// truncating any remainder toward zero. Combining a quantity with a price or
// ratio that are each already scaled is the intended use; with
// resultDecimals=0 it degenerates to a plain exact product.
func Mul(a, b Amount, resultDecimals uint) Amount {
	product := new(big.Int).Mul(a.bigInt(), b.bigInt())
	if resultDecimals > 0 {
		product.Quo(product, pow10(resultDecimals))
	}
	return Amount{value: product}
}

// Div computes (numerator*10^resultDecimals)/denominator, truncating toward
// zero. A zero denominator returns ErrDivisionByZero; callers are expected to
// special-case zero debt before reaching for this.
func Div(numerator, denominator Amount, resultDecimals uint) (Amount, error) {
	den := denominator.bigInt()
	if den.Sign() == 0 {
		return Amount{}, ErrDivisionByZero
	}
	num := new(big.Int).Mul(numerator.bigInt(), pow10(resultDecimals))
	return Amount{value: num.Quo(num, den)}, nil
}
