// Package metrics defines the custom Prometheus metrics of the TalentHub API.
// It is the single source of truth for metric names, labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation and exposed at GET /metrics alongside the HTTP metrics
// collected by the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "talenthub"

// ── Account metrics ──────────────────────────────────────────────────────────

// AuthAttemptsTotal counts signup and login attempts.
// Labels:
//   - action: "register" or "login"
//   - result: "success" or "failure"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of signup and login attempts, by action and result.",
	},
	[]string{"action", "result"},
)

// LoginRateLimitedTotal counts requests rejected by the login rate limiter.
var LoginRateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_rate_limited_total",
		Help:      "Total number of login requests rejected by the rate limiter.",
	},
)

// ── Job metrics ──────────────────────────────────────────────────────────────

// JobsCreatedTotal counts newly posted jobs.
// Label:
//   - time: "full-time" or "part-time"
var JobsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jobs_created_total",
		Help:      "Total number of jobs created, by time type.",
	},
	[]string{"time"},
)

// JobApplicationsTotal counts application attempts.
// Label:
//   - result: "accepted", "duplicate", "closed", "own_job" or "error"
var JobApplicationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "job_applications_total",
		Help:      "Total number of job application attempts, by result.",
	},
	[]string{"result"},
)

// ── Messaging metrics ────────────────────────────────────────────────────────

// MessagesSentTotal counts persisted messages.
// Label:
//   - delivered: "true" when the receiver was online and the push was queued
var MessagesSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_sent_total",
		Help:      "Total number of direct messages sent, by realtime delivery outcome.",
	},
	[]string{"delivered"},
)

// OnlineUsers tracks the number of users with a live realtime connection.
var OnlineUsers = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "online_users",
		Help:      "Current number of users connected to the realtime relay.",
	},
)

// RealtimeDroppedTotal counts events discarded because a client's send queue
// was full.
var RealtimeDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "realtime_dropped_total",
		Help:      "Total number of realtime events dropped on full client queues.",
	},
)
