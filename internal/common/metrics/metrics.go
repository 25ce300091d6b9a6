// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WizardSessionsStarted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wizard_sessions_started_total",
			Help: "Total number of wizard sessions created",
		},
		[]string{"variant"},
	)

	WizardStepsAdvanced = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wizard_steps_advanced_total",
			Help: "Total number of successful forward transitions by step",
		},
		[]string{"step"},
	)

	WizardValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wizard_validation_failures_total",
			Help: "Total number of blocked forward transitions by step",
		},
		[]string{"step"},
	)

	PriceComputations = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "price_computation_duration_seconds",
			Help:    "Duration of price estimate computations in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	LeadsSaved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "leads_saved_total",
			Help: "Total number of leads persisted",
		},
	)

	LeadSubmissionsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_submissions_failed_total",
			Help: "Total number of failed lead submissions by error code",
		},
		[]string{"error_code"},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_notifications_sent_total",
			Help: "Total number of lead notification emails by type and outcome",
		},
		[]string{"type", "outcome"},
	)
)
