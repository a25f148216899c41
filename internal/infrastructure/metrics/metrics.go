package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QuotesComputed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dealerfin_quotes_computed_total",
			Help: "Payment quotes computed, by finance type and rate table",
		},
		[]string{"finance_type", "rate_table"},
	)

	QuoteDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dealerfin_quote_duration_seconds",
			Help:    "Time to produce a payment quote",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
		[]string{"transport"},
	)

	QuoteCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dealerfin_quote_cache_total",
			Help: "Quote cache lookups by result",
		},
		[]string{"result"},
	)

	PackageMatches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dealerfin_package_matches_total",
			Help: "Quotes that did or did not match a finance package",
		},
		[]string{"result"},
	)

	FinanceRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dealerfin_finance_requests_total",
			Help: "Finance request transitions by resulting status",
		},
		[]string{"status"},
	)

	Offers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dealerfin_offers_total",
			Help: "Counter-offers by outcome",
		},
		[]string{"outcome"},
	)

	Notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dealerfin_notifications_projected_total",
			Help: "Events consumed by the notification projector",
		},
		[]string{"event_type", "result"},
	)

	RPCRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dealerfin_rpc_requests_total",
			Help: "gRPC and HTTP requests by method and status code",
		},
		[]string{"transport", "method", "code"},
	)
)

// Result labels.
const (
	ResultHit  = "hit"
	ResultMiss = "miss"
)

// RecordQuote updates the quote counters for one served quote.
func RecordQuote(transport, financeType, rateTable string, cached, matchedPackage bool, seconds float64) {
	QuotesComputed.WithLabelValues(financeType, rateTable).Inc()
	QuoteDuration.WithLabelValues(transport).Observe(seconds)
	QuoteCache.WithLabelValues(hitOrMiss(cached)).Inc()
	PackageMatches.WithLabelValues(hitOrMiss(matchedPackage)).Inc()
}

func hitOrMiss(ok bool) string {
	if ok {
		return ResultHit
	}
	return ResultMiss
}
