// Package metrics defines the domain Prometheus metrics of the attendance
// API. HTTP request metrics come from echoprometheus; the counters here track
// what the directory and the event log actually did.
//
// All metrics register with the default registry at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "atendimentos"

// ── User directory ────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts credential checks.
// Label:
//   - result: "ok", "unknown_user" or "wrong_password"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// UsersCreatedTotal counts users added to the directory.
// Label:
//   - source: "register" or "bootstrap"
var UsersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of users created, by source.",
	},
	[]string{"source"},
)

// UsersDeletedTotal counts removed users.
var UsersDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_deleted_total",
		Help:      "Total number of users deleted.",
	},
)

// PasswordChangesTotal counts successful credential rotations.
var PasswordChangesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_changes_total",
		Help:      "Total number of successful password changes.",
	},
)

// ── Event log ─────────────────────────────────────────────────────────────────

// ServiceEventsCreatedTotal counts events appended to the log.
var ServiceEventsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "service_events_created_total",
		Help:      "Total number of service events stored.",
	},
)

// IdempotencyLookupsTotal counts Idempotency-Key checks.
// Label:
//   - result: "hit" (replayed), "miss" (new event) or "error" (cache unavailable)
var IdempotencyLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "idempotency_lookups_total",
		Help:      "Total number of idempotency key lookups, labelled by result.",
	},
	[]string{"result"},
)
