// Package transfer executes a single cross-currency transfer between two
// account snapshots.
package transfer

import (
	"fmt"

	"github.com/api-sage/fx-transfer/src/internal/domain"
	"github.com/api-sage/fx-transfer/src/internal/usecase/rates"
	"github.com/shopspring/decimal"
)

const (
	// RatePrecision is the significant digits kept by the mid rate.
	RatePrecision int32 = 10
	// DefaultConversionPrecision is the significant digits kept by the
	// converted target amount.
	DefaultConversionPrecision int32 = 4
)

type Option func(*Context)

// WithConversionPrecision overrides DefaultConversionPrecision.
func WithConversionPrecision(digits int32) Option {
	return func(c *Context) {
		c.conversionPrecision = digits
	}
}

// Context binds a quote lookup, two accounts and a source amount for one
// transfer. It holds no state beyond its inputs and may be enacted any number
// of times with the same result.
type Context struct {
	lookup              domain.QuoteLookup
	source              domain.Account
	target              domain.Account
	amount              decimal.Decimal
	conversionPrecision int32
}

func New(lookup domain.QuoteLookup, source, target domain.Account, amount decimal.Decimal, opts ...Option) *Context {
	c := &Context{
		lookup:              lookup,
		source:              source,
		target:              target,
		amount:              amount,
		conversionPrecision: DefaultConversionPrecision,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Quote computes the mid rate and the converted amount without deriving any
// account values.
func (c *Context) Quote() (rate decimal.Decimal, converted decimal.Decimal, err error) {
	rate, err = rates.MidRate(RatePrecision, c.lookup, c.source.Currency, c.target.Currency)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, fmt.Errorf("transfer %s -> %s: %w", c.source.ID, c.target.ID, err)
	}

	converted, err = domain.RoundSignificant(c.amount.Mul(rate), c.conversionPrecision)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, fmt.Errorf("transfer %s -> %s: convert: %w", c.source.ID, c.target.ID, err)
	}

	return rate, converted, nil
}

// Enact debits the source by the source amount and credits the target by the
// converted amount. Either both snapshots are returned or neither is.
func (c *Context) Enact() (domain.TransferResult, error) {
	receipt, err := c.EnactWithReceipt()
	if err != nil {
		return domain.TransferResult{}, err
	}
	return receipt.Result, nil
}

// EnactWithReceipt is Enact plus the rate and amounts that produced the result.
func (c *Context) EnactWithReceipt() (domain.TransferReceipt, error) {
	rate, converted, err := c.Quote()
	if err != nil {
		return domain.TransferReceipt{}, err
	}

	return domain.TransferReceipt{
		Result: domain.TransferResult{
			Source: c.source.Debit(c.amount),
			Target: c.target.Credit(converted),
		},
		SourceAmount:    c.amount,
		ConvertedAmount: converted,
		Rate:            rate,
	}, nil
}
