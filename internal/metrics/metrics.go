package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hangwa_orders_created_total",
		Help: "Total number of orders placed through the storefront.",
	})

	RemoteAreaOrdersTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hangwa_remote_area_orders_total",
		Help: "Orders whose address was flagged as a remote area.",
	})

	OrderStatusTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hangwa_order_status_transitions_total",
		Help: "Fulfillment status changes by target status.",
	},
		[]string{"to"},
	)

	PaymentReconciliationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hangwa_payment_reconciliations_total",
		Help: "Payment updates by reconciliation outcome.",
	},
		[]string{"outcome"},
	)

	BatchItemFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hangwa_batch_item_failures_total",
		Help: "Failed items inside bulk operations.",
	},
		[]string{"operation"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hangwa_http_requests_total",
		Help: "HTTP requests by method and status code.",
	},
		[]string{"method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hangwa_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	},
		[]string{"method"},
	)
)

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// ObserveHTTP records one finished request.
func ObserveHTTP(method string, status int, t *Timer) {
	HTTPRequestsTotal.WithLabelValues(method, statusLabel(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method).Observe(t.Duration().Seconds())
}

func statusLabel(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
