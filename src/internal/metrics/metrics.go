// Package metrics records rate and transfer outcomes.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector is implemented by Prometheus and Noop.
type Collector interface {
	RecordRate(kind string, ok bool, duration time.Duration)
	RecordTransfer(outcome string, duration time.Duration)
	RecordQuoteLookup(cacheHit bool)
}

// Transfer outcomes.
const (
	OutcomeCompleted = "completed"
	OutcomePreviewed = "previewed"
	OutcomeRejected  = "rejected"
	OutcomeConflict  = "conflict"
	OutcomeFailed    = "failed"
)

type Noop struct{}

func (Noop) RecordRate(string, bool, time.Duration) {}

func (Noop) RecordTransfer(string, time.Duration) {}

func (Noop) RecordQuoteLookup(bool) {}

// Prometheus exports counters and latency histograms.
type Prometheus struct {
	rates           *prometheus.CounterVec
	rateLatency     *prometheus.HistogramVec
	transfers       *prometheus.CounterVec
	transferLatency *prometheus.HistogramVec
	quoteLookups    *prometheus.CounterVec
}

// NewPrometheus creates the collectors and registers them with reg.
func NewPrometheus(namespace string, reg prometheus.Registerer) (*Prometheus, error) {
	p := &Prometheus{
		rates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_computations_total",
				Help:      "Cross rate computations by kind and result",
			},
			[]string{"kind", "result"},
		),
		rateLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "rate_computation_duration_seconds",
				Help:      "Cross rate computation latency including quote lookups",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
		transfers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transfers_total",
				Help:      "Transfers by outcome",
			},
			[]string{"outcome"},
		),
		transferLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "transfer_duration_seconds",
				Help:      "Transfer latency by outcome",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		quoteLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "quote_lookups_total",
				Help:      "Quote lookups served from cache or source",
			},
			[]string{"source"},
		),
	}

	for _, c := range []prometheus.Collector{p.rates, p.rateLatency, p.transfers, p.transferLatency, p.quoteLookups} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return p, nil
}

func (p *Prometheus) RecordRate(kind string, ok bool, duration time.Duration) {
	result := "ok"
	if !ok {
		result = "error"
	}
	p.rates.WithLabelValues(kind, result).Inc()
	p.rateLatency.WithLabelValues(kind).Observe(duration.Seconds())
}

func (p *Prometheus) RecordTransfer(outcome string, duration time.Duration) {
	p.transfers.WithLabelValues(outcome).Inc()
	p.transferLatency.WithLabelValues(outcome).Observe(duration.Seconds())
}

func (p *Prometheus) RecordQuoteLookup(cacheHit bool) {
	source := "origin"
	if cacheHit {
		source = "cache"
	}
	p.quoteLookups.WithLabelValues(source).Inc()
}
