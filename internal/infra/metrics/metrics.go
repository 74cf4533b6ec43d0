// Package metrics provides Prometheus metrics for Ahorify.
// Counters and gauges for engagement, streaks, and transactions.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Engagement ─────────────────────────────────────────────────────────────

// EngagementsRecorded tracks engagement calls by streak transition.
var EngagementsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ahorify",
	Name:      "engagements_recorded_total",
	Help:      "Total engagement events recorded, by streak transition.",
}, []string{"transition"})

// EngagementsRejected tracks engagement calls rejected before any write.
var EngagementsRejected = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "ahorify",
	Name:      "engagements_rejected_total",
	Help:      "Total engagement events rejected for an unrecognized action.",
})

// PointsAwarded tracks cumulative points granted.
var PointsAwarded = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "ahorify",
	Name:      "points_awarded_total",
	Help:      "Total points awarded across all engagement calls.",
})

// MilestonesReached tracks one-shot milestone awards.
var MilestonesReached = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "ahorify",
	Name:      "milestones_reached_total",
	Help:      "Total streak milestones awarded.",
})

// CurrentLevel tracks each user's level after their most recent engagement.
var CurrentLevel = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "ahorify",
	Name:      "current_level",
	Help:      "Current level per user, updated on each engagement.",
}, []string{"user"})

// ─── Transactions ───────────────────────────────────────────────────────────

// TransactionsSaved tracks saved transactions by type.
var TransactionsSaved = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ahorify",
	Name:      "transactions_saved_total",
	Help:      "Total transactions saved, by type.",
}, []string{"type"})
