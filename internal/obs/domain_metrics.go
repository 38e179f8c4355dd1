package obs

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// QuoteRequestsTotal counts pricing requests by mode and outcome.
	QuoteRequestsTotal *prometheus.CounterVec
	// QuoteTotalPrice records the distribution of quoted totals.
	QuoteTotalPrice *prometheus.HistogramVec
	// CatalogLookupTotal counts paper slot resolutions by slot and outcome.
	CatalogLookupTotal *prometheus.CounterVec
	// CatalogSyncTotal counts processed catalog sync tasks.
	CatalogSyncTotal *prometheus.CounterVec
	// QuoteStatusTransitions counts quote lifecycle moves.
	QuoteStatusTransitions *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		QuoteRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quote_requests_total",
			Help:      "Count of pricing requests by mode and result.",
		}, []string{"mode", "result"})
		QuoteTotalPrice = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "quote_total_price",
			Help:      "Distribution of quoted total prices.",
			Buckets:   []float64{10, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 50000},
		}, []string{"mode"})
		CatalogLookupTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_lookup_total",
			Help:      "Paper catalog lookups by slot and result.",
		}, []string{"slot", "result"})
		CatalogSyncTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_sync_total",
			Help:      "Catalog sync tasks processed by type and result.",
		}, []string{"type", "result"})
		QuoteStatusTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quote_status_transitions_total",
			Help:      "Quote status transitions by target status and result.",
		}, []string{"status", "result"})

		mustRegisterCollector(reg, QuoteRequestsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				QuoteRequestsTotal = v
			}
		})
		mustRegisterCollector(reg, QuoteTotalPrice, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.HistogramVec); ok {
				QuoteTotalPrice = v
			}
		})
		mustRegisterCollector(reg, CatalogLookupTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				CatalogLookupTotal = v
			}
		})
		mustRegisterCollector(reg, CatalogSyncTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				CatalogSyncTotal = v
			}
		})
		mustRegisterCollector(reg, QuoteStatusTransitions, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				QuoteStatusTransitions = v
			}
		})
	})
}

// ObserveQuote records a pricing outcome. Safe before registration.
func ObserveQuote(mode, result string, total float64) {
	if QuoteRequestsTotal != nil {
		QuoteRequestsTotal.WithLabelValues(mode, result).Inc()
	}
	if result == "ok" && QuoteTotalPrice != nil {
		QuoteTotalPrice.WithLabelValues(mode).Observe(total)
	}
}

// ObserveCatalogLookup records the outcome of resolving one paper slot.
func ObserveCatalogLookup(slot, result string) {
	if CatalogLookupTotal != nil {
		CatalogLookupTotal.WithLabelValues(slot, result).Inc()
	}
}

// ObserveCatalogSync records a processed sync task.
func ObserveCatalogSync(taskType, result string) {
	if CatalogSyncTotal != nil {
		CatalogSyncTotal.WithLabelValues(taskType, result).Inc()
	}
}

// ObserveStatusTransition records a quote lifecycle move.
func ObserveStatusTransition(status, result string) {
	if QuoteStatusTransitions != nil {
		QuoteStatusTransitions.WithLabelValues(status, result).Inc()
	}
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register domain metric: %w", err))
	}
}
