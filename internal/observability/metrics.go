// Package observability records EPP transaction metrics on a private
// Prometheus registry.
package observability

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/danmuck/eppctl/internal/epp"
)

var (
	registerOnce sync.Once
	registry     = prometheus.NewRegistry()

	transactions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "eppctl",
			Subsystem: "epp",
			Name:      "transactions_total",
			Help:      "EPP transactions by command and result code.",
		},
		[]string{"command", "code"},
	)
	transactionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "eppctl",
			Subsystem: "epp",
			Name:      "transaction_duration_seconds",
			Help:      "Round trip time of EPP transactions in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"command"},
	)
	failures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "eppctl",
			Subsystem: "epp",
			Name:      "failures_total",
			Help:      "EPP transactions that returned no decodable response.",
		},
		[]string{"command"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		registry.MustRegister(transactions, transactionDuration, failures)
	})
}

// Registry returns the registry holding the eppctl collectors.
func Registry() *prometheus.Registry {
	RegisterMetrics()
	return registry
}

// RecordTransaction is an epp.Observer.
func RecordTransaction(t epp.Trace) {
	RegisterMetrics()
	if t.Code == 0 {
		failures.WithLabelValues(t.Command).Inc()
		return
	}
	transactions.WithLabelValues(t.Command, strconv.Itoa(int(t.Code))).Inc()
	transactionDuration.WithLabelValues(t.Command).Observe(t.Duration.Seconds())
}

// WriteTextfile dumps the registry in the text exposition format, for
// node_exporter's textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry())
}
