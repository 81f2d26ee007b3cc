package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Quote is the ask/bid pair for one currency. Both sides are expected to be
// strictly positive; bid <= ask is conventional but not enforced.
type Quote struct {
	Currency  Currency
	Ask       decimal.Decimal
	Bid       decimal.Decimal
	UpdatedAt time.Time
}

// QuoteField selects the scalar a rate is derived from.
type QuoteField func(Quote) decimal.Decimal

// AskField selects the ask side.
func AskField(q Quote) decimal.Decimal { return q.Ask }

// BidField selects the bid side.
func BidField(q Quote) decimal.Decimal { return q.Bid }

// SumField selects ask + bid. Ratios of sums equal ratios of mid prices
// because the factor of two cancels.
func SumField(q Quote) decimal.Decimal { return q.Ask.Add(q.Bid) }

// QuoteLookup returns the current quote for a currency, or an error wrapping
// ErrUnknownCurrency when there is none.
type QuoteLookup func(ccy Currency) (Quote, error)

// RateTable is a static set of quotes keyed by currency.
type RateTable map[Currency]Quote

// Lookup satisfies QuoteLookup as a method value (table.Lookup).
func (t RateTable) Lookup(ccy Currency) (Quote, error) {
	q, ok := t[ccy]
	if !ok {
		return Quote{}, fmt.Errorf("%w: %s", ErrUnknownCurrency, ccy)
	}
	if q.Currency == "" {
		q.Currency = ccy
	}

	return q, nil
}

// Currencies returns the codes present in the table in no particular order.
func (t RateTable) Currencies() []Currency {
	out := make([]Currency, 0, len(t))
	for ccy := range t {
		out = append(out, ccy)
	}
	return out
}
