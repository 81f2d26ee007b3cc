package services

import (
	"context"
	"strings"
	"time"

	"github.com/api-sage/fx-transfer/src/internal/adapter/http/models"
	"github.com/api-sage/fx-transfer/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/fx-transfer/src/internal/commons"
	"github.com/api-sage/fx-transfer/src/internal/domain"
	"github.com/api-sage/fx-transfer/src/internal/logger"
	"github.com/api-sage/fx-transfer/src/internal/metrics"
	"github.com/api-sage/fx-transfer/src/internal/usecase/rates"
	"github.com/api-sage/fx-transfer/src/internal/usecase/service_interfaces"
	"github.com/api-sage/fx-transfer/src/internal/usecase/transfer"
	"github.com/shopspring/decimal"
)

const timeLayout = time.RFC3339

// Verify that RateService implements the service_interfaces.RateService interface
var _ service_interfaces.RateService = (*RateService)(nil)

type RateService struct {
	quoteRepo           repo_interfaces.QuoteRepository
	quoteSource         QuoteSource
	metrics             metrics.Collector
	conversionPrecision int32
}

func NewRateService(quoteRepo repo_interfaces.QuoteRepository, quoteSource QuoteSource, collector metrics.Collector, conversionPrecision int32) *RateService {
	if collector == nil {
		collector = metrics.Noop{}
	}
	return &RateService{
		quoteRepo:           quoteRepo,
		quoteSource:         quoteSource,
		metrics:             collector,
		conversionPrecision: conversionPrecision,
	}
}

func (s *RateService) GetQuotes(ctx context.Context) (commons.Response[[]models.QuoteResponse], error) {
	logger.Info("rate service get quotes request", nil)

	quotes, err := s.quoteRepo.GetQuotes(ctx)
	if err != nil {
		logger.Error("rate service get quotes failed", err, nil)
		return commons.ErrorResponse[[]models.QuoteResponse]("failed to get quotes", "Unable to fetch quotes right now"), err
	}

	resp := make([]models.QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		resp = append(resp, mapQuoteToResponse(q))
	}

	logger.Info("rate service get quotes success", logger.Fields{
		"count": len(resp),
	})

	return commons.SuccessResponse("quotes fetched successfully", resp), nil
}

// UpsertQuote stores a quote and drops any cached copy so the next rate or
// transfer reads the new value.
func (s *RateService) UpsertQuote(ctx context.Context, req models.UpsertQuoteRequest) (commons.Response[models.QuoteResponse], error) {
	logger.Info("rate service upsert quote request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("rate service upsert quote validation failed", err, nil)
		return commons.ValidationErrorResponse[models.QuoteResponse](err), err
	}

	currency, _ := domain.ParseCurrency(req.Currency)
	saved, err := s.quoteRepo.UpsertQuote(ctx, domain.Quote{
		Currency: currency,
		Ask:      req.Ask,
		Bid:      req.Bid,
	})
	if err != nil {
		logger.Error("rate service upsert quote failed", err, logger.Fields{
			"currency": currency,
		})
		return commons.ErrorResponse[models.QuoteResponse]("failed to save quote", "Unable to save quote right now"), err
	}
	s.quoteSource.Invalidate(currency)

	logger.Info("rate service upsert quote success", logger.Fields{
		"currency": currency,
		"ask":      saved.Ask,
		"bid":      saved.Bid,
	})

	return commons.SuccessResponse("quote saved successfully", mapQuoteToResponse(saved)), nil
}

func (s *RateService) GetCrossRate(ctx context.Context, req models.GetCrossRateRequest) (commons.Response[models.CrossRateResponse], error) {
	logger.Info("rate service get cross rate request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("rate service get cross rate validation failed", err, nil)
		return commons.ValidationErrorResponse[models.CrossRateResponse](err), err
	}

	from, _ := domain.ParseCurrency(req.FromCurrency)
	to, _ := domain.ParseCurrency(req.ToCurrency)
	kind, _ := rates.ParseKind(strings.ToLower(strings.TrimSpace(req.Kind)))
	precision, _ := req.ParsedPrecision()

	start := time.Now()
	rate, err := rates.ByKind(kind, precision, s.quoteSource.Lookup(ctx), from, to)
	s.metrics.RecordRate(string(kind), err == nil, time.Since(start))
	if err != nil {
		logger.Error("rate service get cross rate failed", err, logger.Fields{
			"fromCurrency": from,
			"toCurrency":   to,
			"kind":         kind,
		})
		return rateErrorResponse[models.CrossRateResponse](err, "failed to get rate"), err
	}

	response := models.CrossRateResponse{
		FromCurrency: string(from),
		ToCurrency:   string(to),
		Kind:         string(kind),
		Precision:    precision,
		Rate:         rate,
	}

	logger.Info("rate service get cross rate success", logger.Fields{
		"fromCurrency": from,
		"toCurrency":   to,
		"kind":         kind,
		"rate":         rate,
	})

	return commons.SuccessResponse("rate fetched successfully", response), nil
}

// Convert applies the transfer arithmetic to an amount without touching any
// account.
func (s *RateService) Convert(ctx context.Context, req models.ConvertRequest) (commons.Response[models.ConvertResponse], error) {
	logger.Info("rate service convert request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("rate service convert validation failed", err, nil)
		return commons.ValidationErrorResponse[models.ConvertResponse](err), err
	}

	from, _ := domain.ParseCurrency(req.FromCurrency)
	to, _ := domain.ParseCurrency(req.ToCurrency)
	amount, _ := decimal.NewFromString(strings.TrimSpace(req.Amount))

	table, err := s.quoteSource.Snapshot(ctx, from, to)
	if err != nil {
		logger.Error("rate service convert quote snapshot failed", err, logger.Fields{
			"fromCurrency": from,
			"toCurrency":   to,
		})
		return rateErrorResponse[models.ConvertResponse](err, "failed to convert amount"), err
	}

	start := time.Now()
	conversion := transfer.New(table.Lookup,
		domain.Account{Currency: from},
		domain.Account{Currency: to},
		amount,
		transfer.WithConversionPrecision(s.conversionPrecision),
	)
	rate, converted, err := conversion.Quote()
	s.metrics.RecordRate(string(rates.KindMid), err == nil, time.Since(start))
	if err != nil {
		logger.Error("rate service convert failed", err, logger.Fields{
			"fromCurrency": from,
			"toCurrency":   to,
		})
		return rateErrorResponse[models.ConvertResponse](err, "failed to convert amount"), err
	}

	response := models.ConvertResponse{
		Amount:          amount,
		FromCurrency:    string(from),
		ToCurrency:      string(to),
		Rate:            rate,
		ConvertedAmount: converted,
	}

	logger.Info("rate service convert success", logger.Fields{
		"fromCurrency":    from,
		"toCurrency":      to,
		"convertedAmount": converted,
	})

	return commons.SuccessResponse("amount converted successfully", response), nil
}

func mapQuoteToResponse(q domain.Quote) models.QuoteResponse {
	return models.QuoteResponse{
		Currency:  string(q.Currency),
		Ask:       q.Ask,
		Bid:       q.Bid,
		UpdatedAt: q.UpdatedAt.UTC().Format(timeLayout),
	}
}
