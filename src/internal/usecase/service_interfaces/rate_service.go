package service_interfaces

import (
	"context"

	"github.com/api-sage/fx-transfer/src/internal/adapter/http/models"
	"github.com/api-sage/fx-transfer/src/internal/commons"
)

type RateService interface {
	GetQuotes(ctx context.Context) (commons.Response[[]models.QuoteResponse], error)
	UpsertQuote(ctx context.Context, req models.UpsertQuoteRequest) (commons.Response[models.QuoteResponse], error)
	GetCrossRate(ctx context.Context, req models.GetCrossRateRequest) (commons.Response[models.CrossRateResponse], error)
	Convert(ctx context.Context, req models.ConvertRequest) (commons.Response[models.ConvertResponse], error)
}
