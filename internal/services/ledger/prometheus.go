package ledger

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"campuspay/internal/money"
)

// PrometheusCollector implements MetricsCollector on the default
// prometheus registry, exposed through the /metrics route.
type PrometheusCollector struct {
	operationDuration *prometheus.HistogramVec
	operationResults  *prometheus.CounterVec
	errorsTotal       *prometheus.CounterVec
	transactionVolume *prometheus.CounterVec
	transactionsTotal *prometheus.CounterVec
}

func NewPrometheusCollector() *PrometheusCollector {
	return &PrometheusCollector{
		operationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ledger_operation_duration_seconds",
				Help:    "Duration of ledger operations",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"operation"},
		),
		operationResults: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_operations_total",
				Help: "Total ledger operations by result",
			},
			[]string{"operation", "result"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_errors_total",
				Help: "Total ledger errors by code",
			},
			[]string{"operation", "code"},
		),
		transactionVolume: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_transaction_volume",
				Help: "Summed transaction amounts by type",
			},
			[]string{"type"},
		),
		transactionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_transactions_total",
				Help: "Total completed transactions by type",
			},
			[]string{"type"},
		),
	}
}

func (c *PrometheusCollector) RecordOperationDuration(operation string, d time.Duration) {
	c.operationDuration.WithLabelValues(operation).Observe(d.Seconds())
}

func (c *PrometheusCollector) RecordOperationResult(operation, result string) {
	c.operationResults.WithLabelValues(operation, result).Inc()
}

func (c *PrometheusCollector) RecordError(operation, code string) {
	c.errorsTotal.WithLabelValues(operation, code).Inc()
}

func (c *PrometheusCollector) RecordTransaction(txType string, amount money.Amount) {
	c.transactionsTotal.WithLabelValues(txType).Inc()
	f, _ := amount.Decimal().Float64()
	c.transactionVolume.WithLabelValues(txType).Add(f)
}
