// Package metrics defines and registers all custom Prometheus metrics for the
// account service. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation via promauto; HTTP request metrics are added separately by the
// echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every metric of the service, including echoprometheus HTTP metrics.
const Namespace = "accounts"

// ── Session token metrics ─────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokensIssuedTotal counts minted session tokens.
// Label:
//   - kind: "login" or "refresh"
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of session tokens issued, by kind.",
	},
	[]string{"kind"},
)

// TokenValidationsTotal counts bearer token checks at the HTTP boundary.
// Label:
//   - result: "ok", "invalid", "expired" or "missing"
var TokenValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "token_validations_total",
		Help:      "Total number of session token validations, by result.",
	},
	[]string{"result"},
)

// ── Service signature metrics ─────────────────────────────────────────────────

// SignatureVerificationsTotal counts service-to-service signature checks.
// Label:
//   - result: "accepted", "missing", "malformed", "stale", "mismatch", "replayed" or "error"
var SignatureVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "signature_verifications_total",
		Help:      "Total number of service signature verifications, by result.",
	},
	[]string{"result"},
)

// ── Alert metrics ─────────────────────────────────────────────────────────────

// AlertsCreatedTotal counts alerts emitted by profile updates.
// Label:
//   - category: e.g. "email_changed", "username_changed"
var AlertsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "alerts_created_total",
		Help:      "Total number of alerts created, by category.",
	},
	[]string{"category"},
)

// ── Activity audit metrics ────────────────────────────────────────────────────

// ActivityProcessedTotal counts audit events persisted.
// Label:
//   - kind: the activity kind (e.g. "auth.login.success")
var ActivityProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "activity_processed_total",
		Help:      "Total number of activity events persisted, by kind.",
	},
	[]string{"kind"},
)

// ActivityErrorsTotal counts audit events that could not be persisted.
// Label:
//   - reason: "invalid_event", "insert_failed" or "queue_full"
var ActivityErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "activity_errors_total",
		Help:      "Total number of activity events that failed or were dropped.",
	},
	[]string{"reason"},
)

// ActivityQueueDepth tracks pending events per dispatcher worker.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of activity events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ActivityProcessingDuration measures how long persisting one event takes.
// Label:
//   - kind: the activity kind
var ActivityProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "activity_processing_duration_seconds",
		Help:      "Duration of activity event persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"kind"},
)
