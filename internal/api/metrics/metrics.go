// Package metrics defines and registers all custom Prometheus metrics for
// coinboard. It is the single source of truth for metric names, labels, and
// help strings. Metrics self-register with the default registry via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "coinboard"

// ── Directory metrics ─────────────────────────────────────────────────────────

// UsersRegisteredTotal counts accounts created, by origin.
// Label:
//   - origin: "register" (self-service) or "add_user" (CEO-created)
var UsersRegisteredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of accounts created, by origin.",
	},
	[]string{"origin"},
)

// ── Pool metrics ──────────────────────────────────────────────────────────────

// GrantsMintedTotal counts coin grants minted.
var GrantsMintedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "grants_minted_total",
		Help:      "Total number of coin grants minted.",
	},
)

// GrantsRedeemedTotal counts grants successfully redeemed.
var GrantsRedeemedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "grants_redeemed_total",
		Help:      "Total number of coin grants redeemed exactly once.",
	},
)

// RedeemErrorsTotal counts failed redemption attempts.
// Label:
//   - reason: "invalid_token" or "claimant_not_found"
var RedeemErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "redeem_errors_total",
		Help:      "Total number of redemption attempts that failed.",
	},
	[]string{"reason"},
)

// OutstandingGrants tracks the number of live, unredeemed grants in the pool.
var OutstandingGrants = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "outstanding_grants",
		Help:      "Current number of minted grants awaiting redemption.",
	},
)

// ── Render metrics ────────────────────────────────────────────────────────────

// RenderQueueDepth tracks the number of jobs waiting in each render worker
// channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var RenderQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "render_queue_depth",
		Help:      "Current number of QR render jobs pending per worker.",
	},
	[]string{"worker_id"},
)

// RenderDuration measures how long a single QR composition takes.
var RenderDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "render_duration_seconds",
		Help:      "Duration of QR code rendering from dequeue to attachment.",
		Buckets:   prometheus.DefBuckets,
	},
)

// RenderErrorsTotal counts render jobs that failed (unencodable payload).
var RenderErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "render_errors_total",
		Help:      "Total number of QR render jobs that failed.",
	},
)
