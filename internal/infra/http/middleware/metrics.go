package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	syncRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deal_sync_runs_total",
			Help: "Total number of deal sync runs by outcome",
		},
		[]string{"status"},
	)

	dealsUpsertedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "deals_upserted_total",
			Help: "Total number of deal rows upserted into the cache",
		},
	)

	webhooksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhooks_processed_total",
			Help: "Total number of inbound webhooks by source and outcome",
		},
		[]string{"source", "status"},
	)

	webhookRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "webhook_retries_total",
			Help: "Total number of manual webhook retry attempts",
		},
	)

	couponMirrorErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "coupon_mirror_errors_total",
			Help: "Total number of failed coupon mirrors to the store",
		},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

func RecordSyncRun(status string) {
	syncRunsTotal.WithLabelValues(status).Inc()
}

func RecordDealsUpserted(n int) {
	dealsUpsertedTotal.Add(float64(n))
}

func RecordWebhook(source, status string) {
	webhooksTotal.WithLabelValues(source, status).Inc()
}

func RecordWebhookRetry() {
	webhookRetriesTotal.Inc()
}

func RecordCouponMirrorError() {
	couponMirrorErrors.Inc()
}
