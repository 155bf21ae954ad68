// Package metrics defines all custom Prometheus metrics for the portal
// backend. It is the single source of truth for metric names, labels, and
// help strings; promauto registers everything with the default registry at
// package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_otp", "invalid_credentials", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// OTPDispatchTotal counts OTP email dispatch attempts.
// Label:
//   - result: "sent", "unknown_user", "error"
var OTPDispatchTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_dispatch_total",
		Help:      "Total number of OTP dispatch attempts, by result.",
	},
	[]string{"result"},
)

// RefreshTotal counts refresh attempts by outcome.
// Label:
//   - result: "success", "not_found", "expired", "invalid", "malformed", "error"
var RefreshTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refresh_total",
		Help:      "Total number of access-token refresh attempts, by result.",
	},
	[]string{"result"},
)

// ── Mirror metrics ────────────────────────────────────────────────────────────

// MirrorRunsTotal counts scheduled mirror/archive runs.
// Labels:
//   - job: "inventory", "transactions", "inventory_archive", "transaction_archive"
//   - result: "success" or "error"
var MirrorRunsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mirror_runs_total",
		Help:      "Total number of mirror and archive job runs, by job and result.",
	},
	[]string{"job", "result"},
)

// MirrorRows tracks the row count written by the most recent mirror run.
// Label:
//   - job: "inventory" or "transactions"
var MirrorRows = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "mirror_rows",
		Help:      "Rows written by the most recent mirror run, by job.",
	},
	[]string{"job"},
)
