package models

import (
	"errors"
	"strconv"
	"strings"

	"github.com/api-sage/fx-transfer/src/internal/domain"
	"github.com/api-sage/fx-transfer/src/internal/usecase/rates"
	"github.com/shopspring/decimal"
)

const maxRatePrecision = 64

type QuoteResponse struct {
	Currency  string          `json:"currency"`
	Ask       decimal.Decimal `json:"ask"`
	Bid       decimal.Decimal `json:"bid"`
	UpdatedAt string          `json:"updatedAt"`
}

type UpsertQuoteRequest struct {
	Currency string          `json:"currency"`
	Ask      decimal.Decimal `json:"ask"`
	Bid      decimal.Decimal `json:"bid"`
}

func (r UpsertQuoteRequest) Validate() error {
	var errs []string

	if _, err := domain.ParseCurrency(r.Currency); err != nil {
		errs = append(errs, "currency must be 3 letters")
	}
	if !r.Ask.IsPositive() {
		errs = append(errs, "ask must be greater than zero")
	}
	if !r.Bid.IsPositive() {
		errs = append(errs, "bid must be greater than zero")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type GetCrossRateRequest struct {
	FromCurrency string `json:"fromCurrency"`
	ToCurrency   string `json:"toCurrency"`
	Kind         string `json:"kind"`
	Precision    string `json:"precision"`
}

func (r GetCrossRateRequest) Validate() error {
	var errs []string

	if _, err := domain.ParseCurrency(r.FromCurrency); err != nil {
		errs = append(errs, "fromCurrency must be 3 letters")
	}
	if _, err := domain.ParseCurrency(r.ToCurrency); err != nil {
		errs = append(errs, "toCurrency must be 3 letters")
	}
	if _, err := rates.ParseKind(strings.ToLower(strings.TrimSpace(r.Kind))); err != nil {
		errs = append(errs, "kind must be one of ask, bid, mid")
	}
	if _, err := r.ParsedPrecision(); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

// ParsedPrecision defaults to 10 significant digits when unset.
func (r GetCrossRateRequest) ParsedPrecision() (int32, error) {
	raw := strings.TrimSpace(r.Precision)
	if raw == "" {
		return 10, nil
	}

	p, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || p < 1 || p > maxRatePrecision {
		return 0, errors.New("precision must be an integer between 1 and 64")
	}
	return int32(p), nil
}

type CrossRateResponse struct {
	FromCurrency string          `json:"fromCurrency"`
	ToCurrency   string          `json:"toCurrency"`
	Kind         string          `json:"kind"`
	Precision    int32           `json:"precision"`
	Rate         decimal.Decimal `json:"rate"`
}

type ConvertRequest struct {
	Amount       string `json:"amount"`
	FromCurrency string `json:"fromCurrency"`
	ToCurrency   string `json:"toCurrency"`
}

func (r ConvertRequest) Validate() error {
	var errs []string

	amount := strings.TrimSpace(r.Amount)
	if amount == "" {
		errs = append(errs, "amount is required")
	} else if _, err := decimal.NewFromString(amount); err != nil {
		errs = append(errs, "amount must be numeric")
	}
	if _, err := domain.ParseCurrency(r.FromCurrency); err != nil {
		errs = append(errs, "fromCurrency must be 3 letters")
	}
	if _, err := domain.ParseCurrency(r.ToCurrency); err != nil {
		errs = append(errs, "toCurrency must be 3 letters")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type ConvertResponse struct {
	Amount          decimal.Decimal `json:"amount"`
	FromCurrency    string          `json:"fromCurrency"`
	ToCurrency      string          `json:"toCurrency"`
	Rate            decimal.Decimal `json:"rate"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
}
