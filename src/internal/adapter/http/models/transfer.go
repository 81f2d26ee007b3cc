package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type TransferRequest struct {
	SourceAccountID string          `json:"sourceAccountId"`
	TargetAccountID string          `json:"targetAccountId"`
	Amount          decimal.Decimal `json:"amount"`
}

func (r TransferRequest) Validate() error {
	var errs []string

	source := strings.TrimSpace(r.SourceAccountID)
	target := strings.TrimSpace(r.TargetAccountID)
	if source == "" {
		errs = append(errs, "sourceAccountId is required")
	}
	if target == "" {
		errs = append(errs, "targetAccountId is required")
	}
	if source != "" && source == target {
		errs = append(errs, "sourceAccountId and targetAccountId cannot be the same")
	}
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "amount must be greater than zero")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type TransferResponse struct {
	Source          AccountResponse `json:"source"`
	Target          AccountResponse `json:"target"`
	SourceAmount    decimal.Decimal `json:"sourceAmount"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
	Rate            decimal.Decimal `json:"rate"`
	Committed       bool            `json:"committed"`
}
