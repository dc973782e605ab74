package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "videepat"

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests by method, route and status",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path"})

	// level: l1 (in-process) или l2 (redis)
	RenderCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "render_cache",
		Name:      "hits_total",
		Help:      "Rendered page cache hits",
	}, []string{"level"})

	RenderCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "render_cache",
		Name:      "misses_total",
		Help:      "Rendered page cache misses (full render)",
	})

	// kind: page или story, result: created, updated, conflict, error
	ContentSaves = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "content",
		Name:      "saves_total",
		Help:      "Page and story saves by outcome",
	}, []string{"kind", "result"})

	OrdersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "checkout",
		Name:      "orders_total",
		Help:      "Checkout summaries produced, split by coupon use",
	}, []string{"coupon"})
)
