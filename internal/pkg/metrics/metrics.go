// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	JobsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "carwash",
		Name:      "jobs_created_total",
		Help:      "Jobs recorded, by intake source and frozen mode tag.",
	}, []string{"source", "mode"})

	JobsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "carwash",
		Name:      "jobs_completed_total",
		Help:      "Jobs moved into the completed status, by mode tag.",
	}, []string{"mode"})

	ModeToggles = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "carwash",
		Name:      "mode_toggles_total",
		Help:      "Compensation mode switches.",
	})

	NotificationsPurged = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "carwash",
		Name:      "notifications_purged_total",
		Help:      "Read notifications removed by the retention job.",
	})

	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "carwash",
		Name:      "login_attempts_total",
		Help:      "Staff login attempts, by outcome.",
	}, []string{"result"})

	RevokedTokensPurged = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "carwash",
		Name:      "revoked_tokens_purged_total",
		Help:      "Expired logout entries removed by the retention job.",
	})

	HousekeepingRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "carwash",
		Name:      "housekeeping_runs_total",
		Help:      "Housekeeping task executions, by task and result.",
	}, []string{"task", "result"})
)

// RegisterOpenStreams exports the number of connected event streams as
// reported by count. Call it once per process.
func RegisterOpenStreams(count func() int) {
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "carwash",
		Name:      "sse_open_streams",
		Help:      "Staff event streams currently connected.",
	}, func() float64 { return float64(count()) })
}
