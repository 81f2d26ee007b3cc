// Package quotes serves per-currency quotes to the rate and transfer logic.
package quotes

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/api-sage/fx-transfer/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/fx-transfer/src/internal/commons"
	"github.com/api-sage/fx-transfer/src/internal/domain"
	"github.com/api-sage/fx-transfer/src/internal/logger"
	"github.com/api-sage/fx-transfer/src/internal/metrics"
	"golang.org/x/sync/singleflight"
)

// CachingSource caches repository quotes for a TTL. Concurrent misses for the
// same currency share one repository call.
type CachingSource struct {
	repo    repo_interfaces.QuoteRepository
	ttl     time.Duration
	metrics metrics.Collector
	now     func() time.Time

	mu      sync.RWMutex
	entries map[domain.Currency]entry
	sf      singleflight.Group
}

type entry struct {
	quote     domain.Quote
	expiresAt time.Time
}

// NewCachingSource returns a source over repo. A zero ttl disables caching.
func NewCachingSource(repo repo_interfaces.QuoteRepository, ttl time.Duration, collector metrics.Collector) *CachingSource {
	if collector == nil {
		collector = metrics.Noop{}
	}
	return &CachingSource{
		repo:    repo,
		ttl:     ttl,
		metrics: collector,
		now:     time.Now,
		entries: make(map[domain.Currency]entry),
	}
}

// Get returns the quote for currency, wrapping domain.ErrUnknownCurrency when
// the repository has none.
func (s *CachingSource) Get(ctx context.Context, currency domain.Currency) (domain.Quote, error) {
	if q, ok := s.cached(currency); ok {
		s.metrics.RecordQuoteLookup(true)
		return q, nil
	}

	// The shared load outlives any single caller; each caller still stops
	// waiting when its own ctx is done.
	loadCtx := context.WithoutCancel(ctx)
	ch := s.sf.DoChan(string(currency), func() (interface{}, error) {
		q, err := s.repo.GetQuote(loadCtx, currency)
		if err != nil {
			return domain.Quote{}, err
		}
		if q.Currency == "" {
			q.Currency = currency
		}
		s.store(q)
		return q, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return domain.Quote{}, fmt.Errorf("lookup quote %s: %w", currency, ctx.Err())
	case res = <-ch:
	}

	s.metrics.RecordQuoteLookup(false)
	if res.Err != nil {
		if errors.Is(res.Err, commons.ErrRecordNotFound) {
			return domain.Quote{}, fmt.Errorf("%w: %s", domain.ErrUnknownCurrency, currency)
		}
		logger.Error("quote source lookup failed", res.Err, logger.Fields{
			"currency": currency,
		})
		return domain.Quote{}, fmt.Errorf("lookup quote %s: %w", currency, res.Err)
	}

	return res.Val.(domain.Quote), nil
}

// Lookup binds ctx into a domain.QuoteLookup.
func (s *CachingSource) Lookup(ctx context.Context) domain.QuoteLookup {
	return func(ccy domain.Currency) (domain.Quote, error) {
		return s.Get(ctx, ccy)
	}
}

// Snapshot copies the quotes of currencies into a RateTable so that a single
// computation sees one consistent quote per currency.
func (s *CachingSource) Snapshot(ctx context.Context, currencies ...domain.Currency) (domain.RateTable, error) {
	table := make(domain.RateTable, len(currencies))
	for _, ccy := range currencies {
		if _, ok := table[ccy]; ok {
			continue
		}
		q, err := s.Get(ctx, ccy)
		if err != nil {
			return nil, err
		}
		table[ccy] = q
	}
	return table, nil
}

// Invalidate drops a cached quote, e.g. after it was updated.
func (s *CachingSource) Invalidate(currency domain.Currency) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, currency)
}

func (s *CachingSource) cached(currency domain.Currency) (domain.Quote, bool) {
	if s.ttl <= 0 {
		return domain.Quote{}, false
	}

	s.mu.RLock()
	e, ok := s.entries[currency]
	s.mu.RUnlock()
	if !ok || !s.now().Before(e.expiresAt) {
		return domain.Quote{}, false
	}
	return e.quote, true
}

func (s *CachingSource) store(q domain.Quote) {
	if s.ttl <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[q.Currency] = entry{quote: q, expiresAt: s.now().Add(s.ttl)}
}
