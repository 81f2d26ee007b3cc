package repo_interfaces

import (
	"context"

	"github.com/api-sage/fx-transfer/src/internal/domain"
)

type QuoteRepository interface {
	GetQuotes(ctx context.Context) ([]domain.Quote, error)
	GetQuote(ctx context.Context, currency domain.Currency) (domain.Quote, error)
	UpsertQuote(ctx context.Context, quote domain.Quote) (domain.Quote, error)
}
