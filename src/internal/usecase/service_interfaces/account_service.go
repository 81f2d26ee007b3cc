package service_interfaces

import (
	"context"

	"github.com/api-sage/fx-transfer/src/internal/adapter/http/models"
	"github.com/api-sage/fx-transfer/src/internal/commons"
)

type AccountService interface {
	CreateAccount(ctx context.Context, req models.CreateAccountRequest) (commons.Response[models.AccountResponse], error)
	GetAccount(ctx context.Context, id string) (commons.Response[models.AccountResponse], error)
}
