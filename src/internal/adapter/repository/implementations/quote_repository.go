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
)

var _ repo_interfaces.QuoteRepository = (*QuoteRepository)(nil)

type QuoteRepository struct {
	db *sql.DB
}

func NewQuoteRepository(db *sql.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

func (r *QuoteRepository) GetQuotes(ctx context.Context) ([]domain.Quote, error) {
	logger.Info("quote repository get quotes", nil)

	const query = `
SELECT currency, ask, bid, updated_at
FROM quotes
ORDER BY currency ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("quote repository get quotes failed", err, nil)
		return nil, fmt.Errorf("get quotes: %w", err)
	}
	defer rows.Close()

	quotes := make([]domain.Quote, 0)
	for rows.Next() {
		var quote domain.Quote
		if err := rows.Scan(
			&quote.Currency,
			&quote.Ask,
			&quote.Bid,
			&quote.UpdatedAt,
		); err != nil {
			logger.Error("quote repository scan quote failed", err, nil)
			return nil, fmt.Errorf("scan quote: %w", err)
		}

		quotes = append(quotes, quote)
	}

	if err := rows.Err(); err != nil {
		logger.Error("quote repository iterate quotes failed", err, nil)
		return nil, fmt.Errorf("iterate quotes: %w", err)
	}

	logger.Info("quote repository get quotes success", logger.Fields{
		"count": len(quotes),
	})

	return quotes, nil
}

func (r *QuoteRepository) GetQuote(ctx context.Context, currency domain.Currency) (domain.Quote, error) {
	const query = `
SELECT currency, ask, bid, updated_at
FROM quotes
WHERE currency = $1`

	var quote domain.Quote
	if err := r.db.QueryRowContext(ctx, query, string(currency)).Scan(
		&quote.Currency,
		&quote.Ask,
		&quote.Bid,
		&quote.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("quote repository record not found", logger.Fields{
				"currency": currency,
			})
			return domain.Quote{}, commons.ErrRecordNotFound
		}
		logger.Error("quote repository get quote failed", err, logger.Fields{
			"currency": currency,
		})
		return domain.Quote{}, fmt.Errorf("get quote: %w", err)
	}

	return quote, nil
}

func (r *QuoteRepository) UpsertQuote(ctx context.Context, quote domain.Quote) (domain.Quote, error) {
	logger.Info("quote repository upsert quote", logger.Fields{
		"currency": quote.Currency,
		"ask":      quote.Ask,
		"bid":      quote.Bid,
	})

	const query = `
INSERT INTO quotes (currency, ask, bid, updated_at)
VALUES ($1, $2, $3, NOW())
ON CONFLICT (currency) DO UPDATE
SET ask = EXCLUDED.ask,
    bid = EXCLUDED.bid,
    updated_at = EXCLUDED.updated_at
RETURNING updated_at`

	if err := r.db.QueryRowContext(ctx, query, string(quote.Currency), quote.Ask, quote.Bid).Scan(&quote.UpdatedAt); err != nil {
		logger.Error("quote repository upsert quote failed", err, logger.Fields{
			"currency": quote.Currency,
		})
		return domain.Quote{}, fmt.Errorf("upsert quote: %w", err)
	}

	return quote, nil
}
