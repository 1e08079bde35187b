// Package metrics exposes Prometheus counters for swap outcomes and the availability cache.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "slotswapper"

// Recorder is what the use case and cache layers depend on.
type Recorder interface {
	RecordProposal(outcome string)
	RecordResponse(outcome string)
	RecordCacheHit(scope string)
	RecordCacheMiss(scope string)
	RecordCacheError(op string)
	RecordInvalidation(scope string)
}

type Collector struct {
	proposals     *prometheus.CounterVec
	responses     *prometheus.CounterVec
	cacheHits     *prometheus.CounterVec
	cacheMisses   *prometheus.CounterVec
	cacheErrors   *prometheus.CounterVec
	invalidations *prometheus.CounterVec
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		proposals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "swap_proposals_total",
			Help:      "Swap proposals by outcome.",
		}, []string{"outcome"}),
		responses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "swap_responses_total",
			Help:      "Swap responses by outcome.",
		}, []string{"outcome"}),
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Availability cache hits by scope.",
		}, []string{"scope"}),
		cacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Availability cache misses by scope.",
		}, []string{"scope"}),
		cacheErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_errors_total",
			Help:      "Swallowed cache backend errors by operation.",
		}, []string{"op"}),
		invalidations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_invalidations_total",
			Help:      "Cache invalidations issued after commit, by scope.",
		}, []string{"scope"}),
	}

	reg.MustRegister(
		c.proposals,
		c.responses,
		c.cacheHits,
		c.cacheMisses,
		c.cacheErrors,
		c.invalidations,
	)

	return c
}

func (c *Collector) RecordProposal(outcome string) {
	c.proposals.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordResponse(outcome string) {
	c.responses.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordCacheHit(scope string) {
	c.cacheHits.WithLabelValues(scope).Inc()
}

func (c *Collector) RecordCacheMiss(scope string) {
	c.cacheMisses.WithLabelValues(scope).Inc()
}

func (c *Collector) RecordCacheError(op string) {
	c.cacheErrors.WithLabelValues(op).Inc()
}

func (c *Collector) RecordInvalidation(scope string) {
	c.invalidations.WithLabelValues(scope).Inc()
}

// Handler returns the scrape handler for the given gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards everything. Used where metrics are not wired, mostly in tests.
type Nop struct{}

func (Nop) RecordProposal(string)     {}
func (Nop) RecordResponse(string)     {}
func (Nop) RecordCacheHit(string)     {}
func (Nop) RecordCacheMiss(string)    {}
func (Nop) RecordCacheError(string)   {}
func (Nop) RecordInvalidation(string) {}
