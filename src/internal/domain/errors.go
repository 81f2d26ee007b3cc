package domain

import "errors"

var (
	ErrUnknownCurrency  = errors.New("currency not found")
	ErrDivisionByZero   = errors.New("division by zero")
	ErrInvalidPrecision = errors.New("invalid precision")
)
