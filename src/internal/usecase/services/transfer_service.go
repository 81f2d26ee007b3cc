package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/api-sage/fx-transfer/src/internal/adapter/http/models"
	"github.com/api-sage/fx-transfer/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/fx-transfer/src/internal/commons"
	"github.com/api-sage/fx-transfer/src/internal/domain"
	"github.com/api-sage/fx-transfer/src/internal/logger"
	"github.com/api-sage/fx-transfer/src/internal/metrics"
	"github.com/api-sage/fx-transfer/src/internal/usecase/service_interfaces"
	"github.com/api-sage/fx-transfer/src/internal/usecase/transfer"
)

var _ service_interfaces.TransferService = (*TransferService)(nil)

type TransferService struct {
	accountRepo         repo_interfaces.AccountRepository
	quoteSource         QuoteSource
	metrics             metrics.Collector
	conversionPrecision int32
}

func NewTransferService(
	accountRepo repo_interfaces.AccountRepository,
	quoteSource QuoteSource,
	collector metrics.Collector,
	conversionPrecision int32,
) *TransferService {
	if collector == nil {
		collector = metrics.Noop{}
	}
	return &TransferService{
		accountRepo:         accountRepo,
		quoteSource:         quoteSource,
		metrics:             collector,
		conversionPrecision: conversionPrecision,
	}
}

// Transfer enacts the transfer and stores both account snapshots.
func (s *TransferService) Transfer(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransferResponse], error) {
	return s.execute(ctx, req, true)
}

// Preview enacts the transfer without storing anything.
func (s *TransferService) Preview(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransferResponse], error) {
	return s.execute(ctx, req, false)
}

func (s *TransferService) execute(ctx context.Context, req models.TransferRequest, commit bool) (commons.Response[models.TransferResponse], error) {
	logger.Info("transfer service transfer request", logger.Fields{
		"payload": logger.SanitizePayload(req),
		"commit":  commit,
	})

	outcome := metrics.OutcomeFailed
	defer func(begin time.Time) {
		s.metrics.RecordTransfer(outcome, time.Since(begin))
	}(time.Now())

	if err := req.Validate(); err != nil {
		outcome = metrics.OutcomeRejected
		logger.Error("transfer service validation failed", err, nil)
		return commons.ValidationErrorResponse[models.TransferResponse](err), err
	}

	sourceID := strings.TrimSpace(req.SourceAccountID)
	targetID := strings.TrimSpace(req.TargetAccountID)

	source, err := s.accountRepo.GetByID(ctx, sourceID)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			outcome = metrics.OutcomeRejected
		}
		return accountLookupFailure("Source account not found", sourceID, err)
	}
	target, err := s.accountRepo.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			outcome = metrics.OutcomeRejected
		}
		return accountLookupFailure("Target account not found", targetID, err)
	}

	table, err := s.quoteSource.Snapshot(ctx, source.Currency, target.Currency)
	if err != nil {
		outcome = rejectedOnInputError(err)
		logger.Error("transfer service quote snapshot failed", err, logger.Fields{
			"sourceCurrency": source.Currency,
			"targetCurrency": target.Currency,
		})
		return rateErrorResponse[models.TransferResponse](err, "failed to process transfer"), err
	}

	receipt, err := transfer.New(table.Lookup, source, target, req.Amount,
		transfer.WithConversionPrecision(s.conversionPrecision),
	).EnactWithReceipt()
	if err != nil {
		outcome = rejectedOnInputError(err)
		logger.Error("transfer service enact failed", err, logger.Fields{
			"sourceAccountId": sourceID,
			"targetAccountId": targetID,
		})
		return rateErrorResponse[models.TransferResponse](err, "failed to process transfer"), err
	}

	message := "transfer previewed"
	outcome = metrics.OutcomePreviewed
	if commit {
		before := domain.TransferResult{Source: source, Target: target}
		if err := s.accountRepo.SaveTransfer(ctx, before, receipt.Result); err != nil {
			logger.Error("transfer service save failed", err, logger.Fields{
				"sourceAccountId": sourceID,
				"targetAccountId": targetID,
			})
			if errors.Is(err, commons.ErrStaleRecord) {
				outcome = metrics.OutcomeConflict
				return commons.ErrorResponse[models.TransferResponse]("Account changed, retry transfer", err.Error()), err
			}
			outcome = metrics.OutcomeFailed
			return commons.ErrorResponse[models.TransferResponse]("transfer failed", "Unable to save transfer right now"), err
		}
		message = "Transaction successful"
		outcome = metrics.OutcomeCompleted
	}

	logger.Info("transfer service transfer success", logger.Fields{
		"sourceAccountId": sourceID,
		"targetAccountId": targetID,
		"sourceAmount":    receipt.SourceAmount,
		"convertedAmount": receipt.ConvertedAmount,
		"rate":            receipt.Rate,
		"commit":          commit,
	})

	return commons.SuccessResponse(message, mapReceiptToResponse(receipt, commit)), nil
}

func accountLookupFailure(message string, id string, err error) (commons.Response[models.TransferResponse], error) {
	logger.Error("transfer service account lookup failed", err, logger.Fields{
		"accountId": id,
	})
	if errors.Is(err, commons.ErrRecordNotFound) {
		return commons.ErrorResponse[models.TransferResponse](message), err
	}
	return commons.ErrorResponse[models.TransferResponse]("failed to process transfer", "Unable to process transfer right now"), err
}

func rejectedOnInputError(err error) string {
	if errors.Is(err, domain.ErrUnknownCurrency) ||
		errors.Is(err, domain.ErrDivisionByZero) ||
		errors.Is(err, domain.ErrInvalidPrecision) {
		return metrics.OutcomeRejected
	}
	return metrics.OutcomeFailed
}

func mapReceiptToResponse(receipt domain.TransferReceipt, committed bool) models.TransferResponse {
	return models.TransferResponse{
		Source:          mapAccountToResponse(receipt.Result.Source),
		Target:          mapAccountToResponse(receipt.Result.Target),
		SourceAmount:    receipt.SourceAmount,
		ConvertedAmount: receipt.ConvertedAmount,
		Rate:            receipt.Rate,
		Committed:       committed,
	}
}
