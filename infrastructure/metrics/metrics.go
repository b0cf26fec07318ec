package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Upstream search outcomes
const (
	OutcomeOK          = "ok"
	OutcomeUnreachable = "unreachable"
	OutcomeRejected    = "rejected"
	OutcomeError       = "error"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tiktok_planner",
		Name:      "http_requests_total",
		Help:      "HTTP requests served, by route and status code.",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tiktok_planner",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	upstreamSearches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tiktok_planner",
		Name:      "upstream_search_total",
		Help:      "Upstream feed searches, by outcome.",
	}, []string{"outcome"})

	upstreamDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "tiktok_planner",
		Name:      "upstream_search_duration_seconds",
		Help:      "Latency of upstream feed searches.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 15},
	})

	rateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tiktok_planner",
		Name:      "rate_limited_total",
		Help:      "Requests rejected by the per-client rate limiter.",
	})
)

// ObserveRequest records one served HTTP request.
func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveUpstream records one upstream search call.
func ObserveUpstream(outcome string, elapsed time.Duration) {
	upstreamSearches.WithLabelValues(outcome).Inc()
	upstreamDuration.Observe(elapsed.Seconds())
}

func IncRateLimited() {
	rateLimited.Inc()
}

// Handler exposes the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
