// Package metrics defines and registers all custom Prometheus metrics for the
// kudos API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the /metrics endpoint is wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "kudos"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "success", "duplicate", or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure" (one bucket for unknown email and wrong
//     password; the split is deliberately not observable anywhere)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SessionsResolvedTotal counts session cookie resolutions.
// Label:
//   - result: "valid", "invalid" (tampered, malformed, or expired), or "absent"
var SessionsResolvedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_resolved_total",
		Help:      "Total number of session cookie resolutions, by result.",
	},
	[]string{"result"},
)

// ── Kudo metrics ──────────────────────────────────────────────────────────────

// KudosCreatedTotal counts created kudos.
// Label:
//   - emoji: the style emoji chosen by the author (e.g. "PARTY")
var KudosCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "kudos_created_total",
		Help:      "Total number of kudos created, by style emoji.",
	},
	[]string{"emoji"},
)

// NotificationQueueDepth tracks the current number of kudo notifications
// waiting in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of kudo notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
