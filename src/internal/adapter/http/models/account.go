package models

import (
	"errors"
	"strings"

	"github.com/api-sage/fx-transfer/src/internal/domain"
	"github.com/shopspring/decimal"
)

type CreateAccountRequest struct {
	ID             string          `json:"id,omitempty"`
	Currency       string          `json:"currency"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
}

func (r CreateAccountRequest) Validate() error {
	var errs []string

	if id := strings.TrimSpace(r.ID); id != "" && len(id) > 64 {
		errs = append(errs, "id must be at most 64 characters")
	}
	if _, err := domain.ParseCurrency(r.Currency); err != nil {
		errs = append(errs, "currency must be 3 letters")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type AccountResponse struct {
	ID        string          `json:"id"`
	Currency  string          `json:"currency"`
	Balance   decimal.Decimal `json:"balance"`
	Display   string          `json:"display"`
	UpdatedAt string          `json:"updatedAt,omitempty"`
}
