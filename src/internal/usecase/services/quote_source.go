package services

import (
	"context"
	"errors"

	"github.com/api-sage/fx-transfer/src/internal/adapter/http/models"
	"github.com/api-sage/fx-transfer/src/internal/commons"
	"github.com/api-sage/fx-transfer/src/internal/domain"
	"github.com/api-sage/fx-transfer/src/internal/usecase/quotes"
)

var _ QuoteSource = (*quotes.CachingSource)(nil)

// QuoteSource is the part of quotes.CachingSource the services depend on.
type QuoteSource interface {
	Lookup(ctx context.Context) domain.QuoteLookup
	Snapshot(ctx context.Context, currencies ...domain.Currency) (domain.RateTable, error)
	Invalidate(currency domain.Currency)
}

// rateErrorResponse maps rate and transfer computation errors to responses.
func rateErrorResponse[T any](err error, fallback string) commons.Response[T] {
	switch {
	case errors.Is(err, domain.ErrUnknownCurrency):
		return commons.ErrorResponse[T]("Currency not found", err.Error())
	case errors.Is(err, domain.ErrInvalidPrecision):
		return commons.ValidationErrorResponse[T](err)
	case errors.Is(err, domain.ErrDivisionByZero):
		return commons.ErrorResponse[T]("Rate unavailable", "quote for source currency is zero")
	default:
		return commons.ErrorResponse[T](fallback, "Unable to process request right now")
	}
}

func mapAccountToResponse(account domain.Account) models.AccountResponse {
	resp := models.AccountResponse{
		ID:       account.ID,
		Currency: string(account.Currency),
		Balance:  account.Balance,
		Display:  account.String(),
	}
	if !account.UpdatedAt.IsZero() {
		resp.UpdatedAt = account.UpdatedAt.UTC().Format(timeLayout)
	}
	return resp
}
