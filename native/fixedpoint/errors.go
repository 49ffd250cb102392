package fixedpoint

import "errors"

// Stable machine-readable codes surfaced alongside the sentinel errors so API
// handlers and form components can switch on an identifier instead of matching
// message text.
const (
	CodeEmptyAmount       = "EMPTY_AMOUNT"
	CodeInvalidFormat     = "INVALID_FORMAT"
	CodePrecisionExceeded = "PRECISION_EXCEEDED"
	CodeNumberTooLarge    = "NUMBER_TOO_LARGE"
	CodeDivisionByZero    = "DIVISION_BY_ZERO"
	CodePrecisionLoss     = "PRECISION_LOSS"
	CodeUnsafeConversion  = "UNSAFE_CONVERSION"
)

// Error is a conversion or arithmetic failure carrying a stable code. All
// errors returned by this package wrap one of the sentinel values below, so
// callers may use errors.Is against the sentinels or Code to recover the
// identifier.
type Error struct {
	code string
	msg  string
}

func (e *Error) Error() string { return "fixedpoint: " + e.msg }

var (
	// ErrEmptyAmount reports empty or whitespace-only input.
	ErrEmptyAmount = &Error{code: CodeEmptyAmount, msg: "amount cannot be empty"}
	// ErrInvalidFormat reports input that is not plain "digits" or
	// "digits.digits".
	ErrInvalidFormat = &Error{code: CodeInvalidFormat, msg: "invalid number format"}
	// ErrPrecisionExceeded reports a fractional part with more digits than the
	// requested scale allows.
	ErrPrecisionExceeded = &Error{code: CodePrecisionExceeded, msg: "too many decimal places"}
	// ErrNumberTooLarge reports input whose scaled representation exceeds the
	// supported magnitude.
	ErrNumberTooLarge = &Error{code: CodeNumberTooLarge, msg: "number too large to process"}
	// ErrDivisionByZero reports a zero denominator. Callers must special-case
	// zero debt before dividing; hitting this is a caller bug.
	ErrDivisionByZero = &Error{code: CodeDivisionByZero, msg: "division by zero"}
	// ErrPrecisionLoss reports that a float conversion could not reproduce the
	// original scaled integer.
	ErrPrecisionLoss = &Error{code: CodePrecisionLoss, msg: "precision loss detected in conversion"}
	// ErrUnsafeConversion reports an integer part outside the exact float64
	// integer range.
	ErrUnsafeConversion = &Error{code: CodeUnsafeConversion, msg: "number too large for safe conversion"}
)

// Code returns the machine-readable code for errors produced by this package,
// or the empty string for foreign errors.
func Code(err error) string {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.code
	}
	return ""
}
