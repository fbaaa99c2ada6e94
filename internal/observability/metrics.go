// Package observability exposes prometheus metrics for import runs.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/otohub/catalog-import/internal/importer"
)

var (
	// RowsTotal counts processed rows by domain and terminal state.
	RowsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "catalog_import",
			Name:      "rows_total",
			Help:      "Processed import rows by domain and outcome",
		},
		[]string{"domain", "status"},
	)

	// RunsTotal counts import runs by domain and result.
	RunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "catalog_import",
			Name:      "runs_total",
			Help:      "Import runs by domain and result",
		},
		[]string{"domain", "result"},
	)

	// RunDuration observes wall-clock run time per domain.
	RunDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "catalog_import",
			Name:      "run_duration_seconds",
			Help:      "Import run duration by domain",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"domain"},
	)
)

// Register registers all collectors with the default registry.
// Call once at startup.
func Register() {
	prometheus.MustRegister(RowsTotal, RunsTotal, RunDuration)
}

// Handler returns the /metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveRun records the outcome of one import run.
func ObserveRun(domain string, report *importer.Report, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	RunsTotal.WithLabelValues(domain, result).Inc()

	if report == nil {
		return
	}

	RunDuration.WithLabelValues(domain).Observe(report.Duration.Seconds())
	RowsTotal.WithLabelValues(domain, string(importer.StatusCreated)).Add(float64(report.Created))
	RowsTotal.WithLabelValues(domain, string(importer.StatusUpdated)).Add(float64(report.Updated))
	RowsTotal.WithLabelValues(domain, string(importer.StatusSkipped)).Add(float64(report.Skipped))
}
