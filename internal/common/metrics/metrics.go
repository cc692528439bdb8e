// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GenerationJobsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "xmlgen_jobs_total",
			Help: "Total number of generation jobs by message type and outcome",
		},
		[]string{"message_type", "outcome"},
	)

	CopiesFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "xmlgen_copies_failed_total",
			Help: "Total number of individual copies that failed during generation",
		},
		[]string{"message_type"},
	)

	CopyDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "xmlgen_copy_duration_seconds",
			Help: "Duration of a single copy's clone-replicate-serialize cycle",
		},
		[]string{"message_type"},
	)

	JobsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "xmlgen_jobs_active",
			Help: "Number of generation jobs currently in flight",
		},
	)

	ArchiveDownloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "xmlgen_archive_downloads_total",
			Help: "Total number of archive download attempts by result",
		},
		[]string{"result"},
	)
)
