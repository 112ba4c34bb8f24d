// Package metrics defines and registers all custom Prometheus metrics for the
// tycoon API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation and exposed on /metrics by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tycoon"

// ── Action metrics ────────────────────────────────────────────────────────────

// ActionsTotal counts player actions by outcome.
// Labels:
//   - action: the action name (e.g. "work", "buyBusiness", "collectIncome")
//   - result: "ok" or the failure code (e.g. "cooldown_active", "insufficient_funds")
var ActionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "actions_total",
		Help:      "Total number of player actions handled, by action and result.",
	},
	[]string{"action", "result"},
)

// ActionDuration measures how long an action takes to handle.
// Label:
//   - action: the action name
var ActionDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "action_duration_seconds",
		Help:      "Duration of player actions from request decode to response.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"action"},
)

// ── Economy metrics ───────────────────────────────────────────────────────────

// CoinsMintedTotal counts currency created by the game.
// Label:
//   - source: "work" or "income"
var CoinsMintedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "coins_minted_total",
		Help:      "Total currency units credited to players, by source.",
	},
	[]string{"source"},
)

// BusinessesPurchasedTotal counts successful purchases.
// Label:
//   - business_id: the catalog id bought
var BusinessesPurchasedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "businesses_purchased_total",
		Help:      "Total number of businesses bought, by catalog id.",
	},
	[]string{"business_id"},
)

// CoinsSpentTotal counts currency debited by purchases.
var CoinsSpentTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "coins_spent_total",
		Help:      "Total currency units spent on businesses.",
	},
)

// ── Serialization metrics ─────────────────────────────────────────────────────

// WriterQueueDepth tracks the number of mutations waiting on each writer.
// Label:
//   - worker_id: numeric writer index (e.g. "0", "1", …)
var WriterQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "writer_queue_depth",
		Help:      "Current number of mutations pending in each writer channel.",
	},
	[]string{"worker_id"},
)
