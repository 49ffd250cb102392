package fixedpoint

import "math/big"

// Amount is a quantity expressed in its smallest indivisible unit, backed by
// an arbitrary-precision integer. The scale (number of implied decimal places)
// is tracked by the caller and passed explicitly to the operations that need
// it; the value itself is scale-agnostic.
//
// The underlying integer is deliberately unexported so two scaled amounts can
// only be combined through Mul and Div, which account for the scale. The zero
// value is "unset" and reports false from Set; use Zero for an explicit zero
// quantity.
type Amount struct {
	value *big.Int
}

// New copies v into an Amount. A nil input yields the unset zero value.
func New(v *big.Int) Amount {
	if v == nil {
		return Amount{}
	}
	return Amount{value: new(big.Int).Set(v)}
}

// FromUint64 builds an Amount from a native unsigned integer.
func FromUint64(v uint64) Amount {
	return Amount{value: new(big.Int).SetUint64(v)}
}

// Zero returns an explicit zero quantity, distinct from the unset zero value.
func Zero() Amount {
	return Amount{value: new(big.Int)}
}

// Set reports whether the amount carries a value.
func (a Amount) Set() bool { return a.value != nil }

// Sign returns -1, 0 or +1. Unset amounts report 0.
func (a Amount) Sign() int {
	if a.value == nil {
		return 0
	}
	return a.value.Sign()
}

// IsZero reports whether the amount is unset or exactly zero.
func (a Amount) IsZero() bool { return a.Sign() == 0 }

// Cmp compares a against b, treating unset amounts as zero.
func (a Amount) Cmp(b Amount) int {
	return a.bigInt().Cmp(b.bigInt())
}

// BigInt returns a copy of the underlying integer. Unset amounts yield zero.
func (a Amount) BigInt() *big.Int {
	return new(big.Int).Set(a.bigInt())
}

// String renders the raw scaled integer in base 10.
func (a Amount) String() string {
	return a.bigInt().String()
}

// Add returns a+b. Both operands must share the same scale; addition is exact
// and needs no scale adjustment.
func Add(a, b Amount) Amount {
	return Amount{value: new(big.Int).Add(a.bigInt(), b.bigInt())}
}

// SubFloor returns a-b floored at zero. Used for hypothetical balances where a
// negative quantity has no meaning (collateral after a withdrawal).
func SubFloor(a, b Amount) Amount {
	diff := new(big.Int).Sub(a.bigInt(), b.bigInt())
	if diff.Sign() < 0 {
		diff.SetInt64(0)
	}
	return Amount{value: diff}
}

// Rescale converts a value between scales. Scaling up is exact; scaling down
// truncates toward zero.
func Rescale(a Amount, fromDecimals, toDecimals uint) Amount {
	v := a.bigInt()
	switch {
	case toDecimals > fromDecimals:
		return Amount{value: new(big.Int).Mul(v, pow10(toDecimals-fromDecimals))}
	case toDecimals < fromDecimals:
		return Amount{value: new(big.Int).Quo(v, pow10(fromDecimals-toDecimals))}
	default:
		return Amount{value: new(big.Int).Set(v)}
	}
}

// bigInt exposes the backing integer for package-internal arithmetic. Callers
// outside the package only see copies.
func (a Amount) bigInt() *big.Int {
	if a.value == nil {
		return new(big.Int)
	}
	return a.value
}

var pow10Cache = func() []*big.Int {
	ten := big.NewInt(10)
	cache := make([]*big.Int, 40)
	cache[0] = big.NewInt(1)
	for i := 1; i < len(cache); i++ {
		cache[i] = new(big.Int).Mul(cache[i-1], ten)
	}
	return cache
}()

func pow10(n uint) *big.Int {
	if n < uint(len(pow10Cache)) {
		return pow10Cache[n]
	}
	return new(big.Int).Exp(big.NewInt(10), new(big.Int).SetUint64(uint64(n)), nil)
}
