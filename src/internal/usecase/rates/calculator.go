// Package rates derives cross exchange rates from per-currency quotes.
package rates

import (
	"fmt"

	"github.com/api-sage/fx-transfer/src/internal/domain"
	"github.com/shopspring/decimal"
)

// Kind names one of the rate variants.
type Kind string

const (
	KindAsk Kind = "ask"
	KindBid Kind = "bid"
	KindMid Kind = "mid"
)

// ParseKind accepts "ask", "bid" or "mid"; an empty string means mid.
func ParseKind(raw string) (Kind, error) {
	switch Kind(raw) {
	case "", KindMid:
		return KindMid, nil
	case KindAsk, KindBid:
		return Kind(raw), nil
	default:
		return "", fmt.Errorf("unsupported rate kind %q", raw)
	}
}

// Field returns the quote field this kind divides.
func (k Kind) Field() domain.QuoteField {
	switch k {
	case KindAsk:
		return domain.AskField
	case KindBid:
		return domain.BidField
	default:
		return domain.SumField
	}
}

// Rate computes field(lookup(target)) / field(lookup(source)) to precision
// significant digits. Both quotes are fetched before any arithmetic.
func Rate(precision int32, field domain.QuoteField, lookup domain.QuoteLookup, source, target domain.Currency) (decimal.Decimal, error) {
	if precision < 1 {
		return decimal.Decimal{}, fmt.Errorf("rate %s/%s: %w: %d", source, target, domain.ErrInvalidPrecision, precision)
	}

	targetQuote, err := lookup(target)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("rate %s/%s: %w", source, target, err)
	}
	sourceQuote, err := lookup(source)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("rate %s/%s: %w", source, target, err)
	}

	rate, err := domain.DivSignificant(field(targetQuote), field(sourceQuote), precision)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("rate %s/%s: %w", source, target, err)
	}

	return rate, nil
}

func AskRate(precision int32, lookup domain.QuoteLookup, source, target domain.Currency) (decimal.Decimal, error) {
	return Rate(precision, domain.AskField, lookup, source, target)
}

func BidRate(precision int32, lookup domain.QuoteLookup, source, target domain.Currency) (decimal.Decimal, error) {
	return Rate(precision, domain.BidField, lookup, source, target)
}

// MidRate divides ask+bid sums rather than averages. There is no
// same-currency shortcut: both sides are still looked up, so a lookup that
// answers differently between the two calls moves a same-currency rate off 1.
func MidRate(precision int32, lookup domain.QuoteLookup, source, target domain.Currency) (decimal.Decimal, error) {
	return Rate(precision, domain.SumField, lookup, source, target)
}

// ByKind dispatches to the variant named by kind.
func ByKind(kind Kind, precision int32, lookup domain.QuoteLookup, source, target domain.Currency) (decimal.Decimal, error) {
	return Rate(precision, kind.Field(), lookup, source, target)
}
