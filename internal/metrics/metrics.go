// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EntriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exam_entries_total",
			Help: "Total number of recorded exam entries",
		},
		[]string{"exam_name", "branch", "examiner_type"},
	)

	BillAmountHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "exam_entry_bill_amount",
			Help:    "Distribution of per-entry bill amounts",
			Buckets: prometheus.LinearBuckets(0, 500, 10),
		},
		[]string{"examiner_type"},
	)

	ReportExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_exports_total",
			Help: "Total number of xlsx report downloads",
		},
		[]string{"report"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)
)
