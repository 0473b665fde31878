package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Asset-API Metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "veecerts",
			Subsystem: "asset_api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "veecerts",
			Subsystem: "asset_api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	// Upload counters
	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "veecerts",
			Subsystem: "asset_api",
			Name:      "uploads_total",
			Help:      "Total asset uploads",
		},
		[]string{"content_type", "status"},
	)

	// Upload megabytes counter
	UploadMbTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "veecerts",
			Subsystem: "asset_api",
			Name:      "upload_mb_total",
			Help:      "Total megabytes uploaded",
		},
		[]string{"content_type"},
	)

	// Quota rejections
	QuotaRejectionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "veecerts",
			Subsystem: "asset_api",
			Name:      "quota_rejections_total",
			Help:      "Uploads rejected by the storage quota check",
		},
	)

	// Pinning operations counter
	PinOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "veecerts",
			Subsystem: "asset_api",
			Name:      "pin_operations_total",
			Help:      "Total pinning service operations",
		},
		[]string{"operation", "status"},
	)

	// Pinning operation duration
	PinDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "veecerts",
			Subsystem: "asset_api",
			Name:      "pin_duration_seconds",
			Help:      "Pinning operation duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 15, 60},
		},
		[]string{"operation"},
	)

	// Ledger calls counter
	LedgerCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "veecerts",
			Subsystem: "asset_api",
			Name:      "ledger_calls_total",
			Help:      "Total ledger canister calls",
		},
		[]string{"method", "status"},
	)

	// Ledger call duration
	LedgerDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "veecerts",
			Subsystem: "asset_api",
			Name:      "ledger_duration_seconds",
			Help:      "Ledger canister call duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 15, 60},
		},
		[]string{"method"},
	)
)

// RecordRequest records an HTTP request.
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(durationSec)
}

// RecordUpload records an asset upload.
func RecordUpload(contentType, status string, sizeMb float64) {
	UploadsTotal.WithLabelValues(contentType, status).Inc()
	if status == "success" {
		UploadMbTotal.WithLabelValues(contentType).Add(sizeMb)
	}
}

// RecordPinOperation records a pinning service operation.
func RecordPinOperation(operation, status string, durationSec float64) {
	PinOperationsTotal.WithLabelValues(operation, status).Inc()
	PinDuration.WithLabelValues(operation).Observe(durationSec)
}

// RecordLedgerCall records a ledger canister call.
func RecordLedgerCall(method, status string, durationSec float64) {
	LedgerCallsTotal.WithLabelValues(method, status).Inc()
	LedgerDuration.WithLabelValues(method).Observe(durationSec)
}
