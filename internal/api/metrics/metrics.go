// Package metrics defines and registers all custom Prometheus metrics for the
// TaskBid marketplace API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry via promauto at
// package load; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "taskbid"

// ── Marketplace metrics ───────────────────────────────────────────────────────

// TasksCreatedTotal counts newly posted tasks.
var TasksCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of tasks posted.",
	},
)

// BidsSubmittedTotal counts accepted bid submissions.
var BidsSubmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bids_submitted_total",
		Help:      "Total number of bids submitted.",
	},
)

// BidsAcceptedTotal counts bid acceptances (task moved open → assigned).
var BidsAcceptedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bids_accepted_total",
		Help:      "Total number of bids accepted by buyers.",
	},
)

// ── Settlement metrics ────────────────────────────────────────────────────────

// SettlementsTotal counts processed gateway callbacks.
// Label:
//   - result: "success", "cancel", or "error"
var SettlementsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "settlements_total",
		Help:      "Total number of settlement callbacks processed, by result.",
	},
	[]string{"result"},
)

// SettlementQueueDepth tracks callbacks waiting in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var SettlementQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "settlement_queue_depth",
		Help:      "Current number of callbacks pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// SettlementProcessingDuration measures how long a single callback takes to
// process from dequeue to persistence.
// Label:
//   - result: "success", "cancel", or "error"
var SettlementProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "settlement_processing_duration_seconds",
		Help:      "Duration of settlement callback processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"result"},
)
