package api

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MetricRequestsTotal counts HTTP requests by route and status code
	MetricRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "palette_http_requests_total",
		Help: "HTTP requests by route and status code",
	}, []string{"route", "status"})

	MetricRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "palette_http_request_duration_seconds",
		Help:    "HTTP request latency by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	// MetricPalettesGenerated counts palettes served by harmony and style
	MetricPalettesGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "palettes_generated_total",
		Help: "Palettes generated by harmony and style",
	}, []string{"harmony", "style"})
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func instrument(route string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		timer := prometheus.NewTimer(MetricRequestDuration.WithLabelValues(route))
		defer timer.ObserveDuration()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h(rec, r)
		MetricRequestsTotal.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
	}
}
