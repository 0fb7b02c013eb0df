package scan

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds all Prometheus metrics for the scanner
type Metrics struct {
	// Chunk read metrics
	chunksReadTotal prometheus.Counter
	bytesReadTotal  prometheus.Counter

	// Record metrics
	recordsDecodedTotal prometheus.Counter

	// Scan lifecycle metrics
	scansTotal   *prometheus.CounterVec
	scanDuration prometheus.Histogram
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics() *Metrics {
	return &Metrics{
		chunksReadTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "rowscan_chunks_read_total",
				Help: "Total number of blob chunks read",
			},
		),

		bytesReadTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "rowscan_bytes_read_total",
				Help: "Total number of blob bytes read",
			},
		),

		recordsDecodedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "rowscan_records_decoded_total",
				Help: "Total number of records decoded",
			},
		),

		scansTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rowscan_scans_total",
				Help: "Total number of completed scans",
			},
			[]string{"status"},
		),

		scanDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "rowscan_scan_duration_seconds",
				Help:    "Scan duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

// RecordChunkRead records one chunk read of the given size
func (m *Metrics) RecordChunkRead(bytes int) {
	m.chunksReadTotal.Inc()
	m.bytesReadTotal.Add(float64(bytes))
}

// RecordEntry records one decoded record
func (m *Metrics) RecordEntry() {
	m.recordsDecodedTotal.Inc()
}

// RecordScan records a finished scan
func (m *Metrics) RecordScan(success bool, duration time.Duration) {
	status := statusSuccess
	if !success {
		status = statusError
	}

	m.scansTotal.WithLabelValues(status).Inc()
	m.scanDuration.Observe(duration.Seconds())
}
