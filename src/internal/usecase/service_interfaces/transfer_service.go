package service_interfaces

import (
	"context"

	"github.com/api-sage/fx-transfer/src/internal/adapter/http/models"
	"github.com/api-sage/fx-transfer/src/internal/commons"
)

type TransferService interface {
	Transfer(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransferResponse], error)
	Preview(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransferResponse], error)
}
