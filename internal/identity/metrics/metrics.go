// Package metrics defines the Prometheus metrics exposed by the identity
// service. It is the single source of truth for metric names, labels, and
// help strings; metrics register themselves with the default registry at
// package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "identity"

// LoginAttemptsTotal counts login attempts by terminal outcome.
// Label:
//   - outcome: "success" or the internal failure reason
//     (e.g. "user_not_found", "password_mismatch", "account_disabled")
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by terminal outcome.",
	},
	[]string{"outcome"},
)

// SessionsIssuedTotal counts sessions created by successful logins.
var SessionsIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_issued_total",
		Help:      "Total number of session handles issued.",
	},
)

// SessionsRevokedTotal counts revocations by trigger.
// Label:
//   - reason: "logout" or "password_change"
var SessionsRevokedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_revoked_total",
		Help:      "Total number of session revocations, by trigger.",
	},
	[]string{"reason"},
)

// ActiveSessions tracks the number of unrevoked, unexpired sessions.
// Updated by the housekeeping sweep.
var ActiveSessions = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_sessions",
		Help:      "Current number of active sessions, sampled by housekeeping.",
	},
)

// AccountOperationsTotal counts account lifecycle operations.
// Labels:
//   - op: "create", "update", "delete"
//   - result: "ok", "conflict", "not_found", "error"
var AccountOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "account_operations_total",
		Help:      "Total number of account lifecycle operations, by operation and result.",
	},
	[]string{"op", "result"},
)
