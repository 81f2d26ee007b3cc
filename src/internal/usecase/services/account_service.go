package services

import (
	"context"
	"errors"
	"strings"

	"github.com/api-sage/fx-transfer/src/internal/adapter/http/models"
	"github.com/api-sage/fx-transfer/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/fx-transfer/src/internal/commons"
	"github.com/api-sage/fx-transfer/src/internal/domain"
	"github.com/api-sage/fx-transfer/src/internal/logger"
	"github.com/api-sage/fx-transfer/src/internal/usecase/service_interfaces"
	"github.com/google/uuid"
)

var _ service_interfaces.AccountService = (*AccountService)(nil)

type AccountService struct {
	accountRepo repo_interfaces.AccountRepository
	newID       func() string
}

func NewAccountService(accountRepo repo_interfaces.AccountRepository) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		newID:       uuid.NewString,
	}
}

func (s *AccountService) CreateAccount(ctx context.Context, req models.CreateAccountRequest) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service create account request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("account service create account validation failed", err, nil)
		return commons.ValidationErrorResponse[models.AccountResponse](err), err
	}

	currency, _ := domain.ParseCurrency(req.Currency)
	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = s.newID()
	}

	created, err := s.accountRepo.Create(ctx, domain.NewAccount(id, req.InitialBalance, currency))
	if err != nil {
		logger.Error("account service create account failed", err, logger.Fields{
			"accountId": id,
		})
		if errors.Is(err, commons.ErrDuplicateRecord) {
			return commons.ErrorResponse[models.AccountResponse]("Account already exists"), err
		}
		return commons.ErrorResponse[models.AccountResponse]("failed to create account", "Unable to create account right now"), err
	}

	logger.Info("account service create account success", logger.Fields{
		"accountId": created.ID,
		"currency":  created.Currency,
	})

	return commons.SuccessResponse("account created successfully", mapAccountToResponse(created)), nil
}

func (s *AccountService) GetAccount(ctx context.Context, id string) (commons.Response[models.AccountResponse], error) {
	id = strings.TrimSpace(id)
	if id == "" {
		err := errors.New("id is required")
		return commons.ValidationErrorResponse[models.AccountResponse](err), err
	}

	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("account service get account failed", err, logger.Fields{
			"accountId": id,
		})
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.AccountResponse]("Account not found"), err
		}
		return commons.ErrorResponse[models.AccountResponse]("failed to get account", "Unable to fetch account right now"), err
	}

	return commons.SuccessResponse("account fetched successfully", mapAccountToResponse(account)), nil
}
