package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OperationDuration mide cada operación de agregación.
	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "insights_operation_duration_seconds",
			Help:    "Duration of cross-store aggregation operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// OperationTotal cuenta resultados: ok, not_found, invalid, store_error.
	OperationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insights_operation_total",
			Help: "Total aggregation operations by outcome",
		},
		[]string{"operation", "outcome"},
	)

	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insights_store_errors_total",
			Help: "Total store adapter failures seen by the aggregation engine",
		},
		[]string{"store", "operation"},
	)

	// PartialWrites cuenta escrituras pareadas donde falló algún store secundario.
	PartialWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registry_partial_writes_total",
			Help: "Total paired writes where a secondary store write failed",
		},
		[]string{"entity"},
	)
)

// Outcomes
const (
	OutcomeOK         = "ok"
	OutcomeNotFound   = "not_found"
	OutcomeInvalid    = "invalid"
	OutcomeStoreError = "store_error"
)
