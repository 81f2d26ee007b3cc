package implementations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/fx-transfer/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/fx-transfer/src/internal/commons"
	"github.com/api-sage/fx-transfer/src/internal/domain"
	"github.com/api-sage/fx-transfer/src/internal/logger"
	"github.com/shopspring/decimal"
)

var _ repo_interfaces.AccountRepository = (*AccountRepository)(nil)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	logger.Info("account repository create", logger.Fields{
		"accountId": account.ID,
		"currency":  account.Currency,
	})

	const query = `
INSERT INTO accounts (id, currency, balance)
VALUES ($1, $2, $3)
RETURNING updated_at`

	if err := r.db.QueryRowContext(ctx, query, account.ID, string(account.Currency), account.Balance).Scan(&account.UpdatedAt); err != nil {
		logger.Error("account repository create failed", err, logger.Fields{
			"accountId": account.ID,
		})
		if isUniqueViolation(err) {
			return domain.Account{}, commons.ErrDuplicateRecord
		}
		return domain.Account{}, fmt.Errorf("create account: %w", err)
	}

	logger.Info("account repository create success", logger.Fields{
		"accountId": account.ID,
	})

	return account, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (domain.Account, error) {
	const query = `
SELECT id, currency, balance, updated_at
FROM accounts
WHERE id = $1`

	var account domain.Account
	var balance decimal.NullDecimal
	if err := r.db.QueryRowContext(ctx, query, id).Scan(
		&account.ID,
		&account.Currency,
		&balance,
		&account.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("account repository record not found", logger.Fields{
				"accountId": id,
			})
			return domain.Account{}, commons.ErrRecordNotFound
		}
		logger.Error("account repository get failed", err, logger.Fields{
			"accountId": id,
		})
		return domain.Account{}, fmt.Errorf("get account by id: %w", err)
	}

	// A NULL balance has never been written and counts as zero.
	if balance.Valid {
		account.Balance = balance.Decimal
	}

	return account, nil
}

func (r *AccountRepository) SaveTransfer(ctx context.Context, before domain.TransferResult, after domain.TransferResult) error {
	logger.Info("account repository save transfer", logger.Fields{
		"sourceAccountId": after.Source.ID,
		"targetAccountId": after.Target.ID,
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save transfer: %w", err)
	}

	legs := []struct {
		prior domain.Account
		next  domain.Account
	}{
		{before.Source, after.Source},
		{before.Target, after.Target},
	}

	for _, leg := range legs {
		if err := compareAndSetBalance(ctx, tx, leg.prior, leg.next); err != nil {
			_ = tx.Rollback()
			logger.Error("account repository save transfer failed", err, logger.Fields{
				"accountId": leg.next.ID,
			})
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save transfer: %w", err)
	}

	logger.Info("account repository save transfer success", logger.Fields{
		"sourceAccountId": after.Source.ID,
		"targetAccountId": after.Target.ID,
	})

	return nil
}

func compareAndSetBalance(ctx context.Context, tx *sql.Tx, prior domain.Account, next domain.Account) error {
	const query = `
UPDATE accounts
SET balance = $2,
    updated_at = NOW()
WHERE id = $1
  AND COALESCE(balance, 0) = $3`

	res, err := tx.ExecContext(ctx, query, next.ID, next.Balance, prior.Balance)
	if err != nil {
		return fmt.Errorf("update balance of %s: %w", next.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update balance of %s: %w", next.ID, err)
	}
	if affected != 1 {
		return fmt.Errorf("update balance of %s: %w", next.ID, commons.ErrStaleRecord)
	}

	return nil
}
