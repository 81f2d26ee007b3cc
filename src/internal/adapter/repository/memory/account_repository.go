package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/api-sage/fx-transfer/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/fx-transfer/src/internal/commons"
	"github.com/api-sage/fx-transfer/src/internal/domain"
)

var _ repo_interfaces.AccountRepository = (*AccountRepository)(nil)

// AccountRepository keeps account snapshots in process memory.
type AccountRepository struct {
	mu       sync.Mutex
	accounts map[string]domain.Account
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{accounts: make(map[string]domain.Account)}
}

func (r *AccountRepository) Create(_ context.Context, account domain.Account) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[account.ID]; exists {
		return domain.Account{}, commons.ErrDuplicateRecord
	}
	account.UpdatedAt = time.Now().UTC()
	r.accounts[account.ID] = account
	return account, nil
}

func (r *AccountRepository) GetByID(_ context.Context, id string) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return domain.Account{}, commons.ErrRecordNotFound
	}
	return account, nil
}

func (r *AccountRepository) SaveTransfer(_ context.Context, before domain.TransferResult, after domain.TransferResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, prior := range []domain.Account{before.Source, before.Target} {
		stored, ok := r.accounts[prior.ID]
		if !ok {
			return fmt.Errorf("update balance of %s: %w", prior.ID, commons.ErrRecordNotFound)
		}
		if !stored.Balance.Equal(prior.Balance) {
			return fmt.Errorf("update balance of %s: %w", prior.ID, commons.ErrStaleRecord)
		}
	}

	now := time.Now().UTC()
	for _, next := range []domain.Account{after.Source, after.Target} {
		next.UpdatedAt = now
		r.accounts[next.ID] = next
	}
	return nil
}
