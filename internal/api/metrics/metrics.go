// Package metrics defines and registers all custom Prometheus metrics for the
// credential gateway. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package init
// via promauto and exposed on /metrics alongside the echoprometheus request
// metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "credential_gateway"

// ── Authentication metrics ────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts provider self-registrations.
// Label:
//   - result: "success", "conflict", "invalid" or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of provider registrations, by result.",
	},
	[]string{"result"},
)

// GuardRejectionsTotal counts requests stopped by the authorization guard.
// Label:
//   - reason: "token_missing", "token_invalid", "user_not_found", "forbidden" or "not_approved"
var GuardRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_rejections_total",
		Help:      "Total number of requests rejected by the authorization guard.",
	},
	[]string{"reason"},
)

// ── Lifecycle metrics ─────────────────────────────────────────────────────────

// ProviderTransitionsTotal counts account lifecycle changes applied by admins.
// Label:
//   - transition: "approved" or "deleted"
var ProviderTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "provider_transitions_total",
		Help:      "Total number of provider lifecycle transitions.",
	},
	[]string{"transition"},
)

// AdminsSeededTotal counts administrator records created by bootstrap.
var AdminsSeededTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admins_seeded_total",
		Help:      "Total number of administrator accounts created at bootstrap.",
	},
)

// ── Hashing metrics ───────────────────────────────────────────────────────────

// HashQueueDepth tracks the number of hashing jobs waiting for a worker.
var HashQueueDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "hash_queue_depth",
		Help:      "Current number of password hashing jobs pending in the pool.",
	},
)

// HashOperationsTotal counts completed hashing jobs.
// Label:
//   - op: "hash" or "verify"
var HashOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "hash_operations_total",
		Help:      "Total number of password hash and verify operations.",
	},
	[]string{"op"},
)
