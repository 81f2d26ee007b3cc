package repo_interfaces

import (
	"context"

	"github.com/api-sage/fx-transfer/src/internal/domain"
)

type AccountRepository interface {
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	GetByID(ctx context.Context, id string) (domain.Account, error)
	// SaveTransfer stores both snapshots of after, provided each account still
	// holds the balance recorded in before. Otherwise nothing is written and
	// commons.ErrStaleRecord is returned.
	SaveTransfer(ctx context.Context, before domain.TransferResult, after domain.TransferResult) error
}
