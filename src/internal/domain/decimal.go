package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RoundSignificant rounds d to digits significant digits, half away from zero.
func RoundSignificant(d decimal.Decimal, digits int32) (decimal.Decimal, error) {
	if digits < 1 {
		return decimal.Decimal{}, fmt.Errorf("%w: %d", ErrInvalidPrecision, digits)
	}
	if d.IsZero() {
		return decimal.Zero, nil
	}

	return d.Round(digits - 1 - magnitude(d)), nil
}

// DivSignificant returns a / b correctly rounded to digits significant digits.
// The quotient is first truncated with at least one guard digit, which keeps
// the final half-away-from-zero rounding exact.
func DivSignificant(a, b decimal.Decimal, digits int32) (decimal.Decimal, error) {
	if digits < 1 {
		return decimal.Decimal{}, fmt.Errorf("%w: %d", ErrInvalidPrecision, digits)
	}
	if b.IsZero() {
		return decimal.Decimal{}, ErrDivisionByZero
	}
	if a.IsZero() {
		return decimal.Zero, nil
	}

	scale := digits - (magnitude(a) - magnitude(b)) + 1
	truncated, _ := a.QuoRem(b, scale)

	return RoundSignificant(truncated, digits)
}

// magnitude is the power of ten of the most significant digit of a non-zero d.
func magnitude(d decimal.Decimal) int32 {
	coefficient := d.Coefficient()
	digits := int32(len(coefficient.Abs(coefficient).String()))
	return digits + d.Exponent() - 1
}
