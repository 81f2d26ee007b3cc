package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/api-sage/fx-transfer/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/fx-transfer/src/internal/commons"
	"github.com/api-sage/fx-transfer/src/internal/domain"
	"github.com/shopspring/decimal"
)

var _ repo_interfaces.QuoteRepository = (*QuoteRepository)(nil)

// QuoteRepository keeps quotes in process memory.
type QuoteRepository struct {
	mu     sync.RWMutex
	quotes map[domain.Currency]domain.Quote
}

func NewQuoteRepository(table domain.RateTable) *QuoteRepository {
	quotes := make(map[domain.Currency]domain.Quote, len(table))
	now := time.Now().UTC()
	for ccy, q := range table {
		q.Currency = ccy
		if q.UpdatedAt.IsZero() {
			q.UpdatedAt = now
		}
		quotes[ccy] = q
	}

	return &QuoteRepository{quotes: quotes}
}

// SampleTable is the quote set the server starts with when no database is
// configured.
func SampleTable() domain.RateTable {
	return domain.RateTable{
		"USD": {Ask: decimal.NewFromInt(1), Bid: decimal.NewFromInt(1)},
		"EUR": {Ask: decimal.RequireFromString("1.2003"), Bid: decimal.RequireFromString("1.2203")},
		"NOK": {Ask: decimal.RequireFromString("3.1232"), Bid: decimal.RequireFromString("3.3032")},
		"GBP": {Ask: decimal.RequireFromString("0.7365"), Bid: decimal.RequireFromString("0.7412")},
		"SEK": {Ask: decimal.RequireFromString("10.4120"), Bid: decimal.RequireFromString("10.5380")},
	}
}

func (r *QuoteRepository) GetQuotes(_ context.Context) ([]domain.Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Quote, 0, len(r.quotes))
	for _, q := range r.quotes {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Currency < out[j].Currency })

	return out, nil
}

func (r *QuoteRepository) GetQuote(_ context.Context, currency domain.Currency) (domain.Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q, ok := r.quotes[currency]
	if !ok {
		return domain.Quote{}, commons.ErrRecordNotFound
	}
	return q, nil
}

func (r *QuoteRepository) UpsertQuote(_ context.Context, quote domain.Quote) (domain.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	quote.UpdatedAt = time.Now().UTC()
	r.quotes[quote.Currency] = quote
	return quote, nil
}
