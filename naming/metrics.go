package naming

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MetricNamesTotal counts palette names by strategy and where they came from
	MetricNamesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "palette_names_total",
		Help: "Palette names generated by strategy and source (remote, fallback, default)",
	}, []string{"strategy", "source"})

	// MetricChatAttemptsTotal counts naming service HTTP attempts by request and result
	MetricChatAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "palette_naming_attempts_total",
		Help: "Naming service request attempts by endpoint and result",
	}, []string{"method", "endpoint", "result"})
)

func observeAttempt(method, endpoint string, _ int, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	MetricChatAttemptsTotal.WithLabelValues(method, endpoint, result).Inc()
}
