package quotes

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/api-sage/fx-transfer/src/internal/commons"
	"github.com/api-sage/fx-transfer/src/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quoteRepoStub struct {
	calls      atomic.Int32
	getQuoteFn func(ctx context.Context, currency domain.Currency) (domain.Quote, error)
}

func (s *quoteRepoStub) GetQuotes(context.Context) ([]domain.Quote, error) {
	return nil, nil
}

func (s *quoteRepoStub) GetQuote(ctx context.Context, currency domain.Currency) (domain.Quote, error) {
	s.calls.Add(1)
	return s.getQuoteFn(ctx, currency)
}

func (s *quoteRepoStub) UpsertQuote(_ context.Context, q domain.Quote) (domain.Quote, error) {
	return q, nil
}

func fixedQuote(_ context.Context, currency domain.Currency) (domain.Quote, error) {
	if currency == "XYZ" {
		return domain.Quote{}, commons.ErrRecordNotFound
	}
	return domain.Quote{Currency: currency, Ask: decimal.NewFromInt(2), Bid: decimal.NewFromInt(1)}, nil
}

type countingCollector struct {
	hits, misses atomic.Int32
}

func (c *countingCollector) RecordRate(string, bool, time.Duration) {}

func (c *countingCollector) RecordTransfer(string, time.Duration) {}

func (c *countingCollector) RecordQuoteLookup(hit bool) {
	if hit {
		c.hits.Add(1)
		return
	}
	c.misses.Add(1)
}

func TestCachingSourceCachesUntilExpiry(t *testing.T) {
	repo := &quoteRepoStub{getQuoteFn: fixedQuote}
	collector := &countingCollector{}
	src := NewCachingSource(repo, time.Minute, collector)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	src.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		_, err := src.Get(context.Background(), "EUR")
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), repo.calls.Load())
	assert.Equal(t, int32(2), collector.hits.Load())
	assert.Equal(t, int32(1), collector.misses.Load())

	now = now.Add(2 * time.Minute)
	_, err := src.Get(context.Background(), "EUR")
	require.NoError(t, err)
	assert.Equal(t, int32(2), repo.calls.Load())

	src.Invalidate("EUR")
	_, err = src.Get(context.Background(), "EUR")
	require.NoError(t, err)
	assert.Equal(t, int32(3), repo.calls.Load())
}

func TestCachingSourceZeroTTLAlwaysLoads(t *testing.T) {
	repo := &quoteRepoStub{getQuoteFn: fixedQuote}
	src := NewCachingSource(repo, 0, nil)

	_, _ = src.Get(context.Background(), "EUR")
	_, _ = src.Get(context.Background(), "EUR")
	assert.Equal(t, int32(2), repo.calls.Load())
}

func TestCachingSourceUnknownCurrency(t *testing.T) {
	src := NewCachingSource(&quoteRepoStub{getQuoteFn: fixedQuote}, time.Minute, nil)

	_, err := src.Lookup(context.Background())("XYZ")
	assert.ErrorIs(t, err, domain.ErrUnknownCurrency)
}

func TestCachingSourceRepositoryError(t *testing.T) {
	boom := errors.New("connection refused")
	src := NewCachingSource(&quoteRepoStub{getQuoteFn: func(context.Context, domain.Currency) (domain.Quote, error) {
		return domain.Quote{}, boom
	}}, time.Minute, nil)

	_, err := src.Get(context.Background(), "EUR")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrUnknownCurrency)
}

func TestCachingSourceCollapsesConcurrentMisses(t *testing.T) {
	release := make(chan struct{})
	repo := &quoteRepoStub{getQuoteFn: func(ctx context.Context, currency domain.Currency) (domain.Quote, error) {
		<-release
		return fixedQuote(ctx, currency)
	}}
	src := NewCachingSource(repo, time.Minute, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := src.Get(context.Background(), "NOK")
			assert.NoError(t, err)
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), repo.calls.Load())
}

func TestSnapshot(t *testing.T) {
	repo := &quoteRepoStub{getQuoteFn: fixedQuote}
	src := NewCachingSource(repo, 0, nil)

	table, err := src.Snapshot(context.Background(), "EUR", "EUR", "NOK")
	require.NoError(t, err)
	assert.Len(t, table, 2)
	assert.Equal(t, int32(2), repo.calls.Load())

	_, err = src.Snapshot(context.Background(), "EUR", "XYZ")
	assert.ErrorIs(t, err, domain.ErrUnknownCurrency)
}

func TestCachingSourceCancelledCallerDoesNotFailSharedLoad(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	repo := &quoteRepoStub{getQuoteFn: func(ctx context.Context, currency domain.Currency) (domain.Quote, error) {
		close(entered)
		<-release
		if err := ctx.Err(); err != nil {
			return domain.Quote{}, err
		}
		return fixedQuote(ctx, currency)
	}}
	src := NewCachingSource(repo, time.Minute, nil)

	firstCtx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := src.Get(firstCtx, "EUR")
		firstErr <- err
	}()
	<-entered

	type result struct {
		quote domain.Quote
		err   error
	}
	second := make(chan result, 1)
	go func() {
		q, err := src.Get(context.Background(), "EUR")
		second <- result{quote: q, err: err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(release)
	got := <-second
	require.NoError(t, got.err)
	assert.Equal(t, domain.Currency("EUR"), got.quote.Currency)
	assert.Equal(t, int32(1), repo.calls.Load())

	_, err := src.Get(context.Background(), "EUR")
	require.NoError(t, err)
	assert.Equal(t, int32(1), repo.calls.Load())
}
