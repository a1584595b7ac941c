// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package metrics defines the engine's Prometheus collectors. They are
// registered onto the metrics server's registry at startup.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// TicksAppliedTotal counts daily ticks actually applied, by kind.
	TicksAppliedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "progression_ticks_applied_total",
			Help: "Total number of daily ticks applied",
		},
		[]string{"kind"}, // daily, weekly
	)

	// TicksSkippedTotal counts replayed days that were already applied.
	TicksSkippedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "progression_ticks_skipped_total",
			Help: "Total number of tick replays skipped as already applied",
		},
	)

	// ActionsTotal counts accepted player actions by activity type.
	ActionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "progression_actions_total",
			Help: "Total number of accepted player actions",
		},
		[]string{"type"},
	)

	// ActionsRejectedTotal counts rejected actions by reason.
	ActionsRejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "progression_actions_rejected_total",
			Help: "Total number of rejected player actions",
		},
		[]string{"reason"}, // insufficient_energy, burnout_restricted
	)

	// BurnoutTransitionsTotal counts burnout state transitions.
	BurnoutTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "progression_burnout_transitions_total",
			Help: "Total number of burnout state transitions",
		},
		[]string{"direction"}, // enter, exit
	)

	// CatchupSweepDuration observes the duration of catch-up sweeps.
	CatchupSweepDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "progression_catchup_sweep_duration_seconds",
			Help:    "Duration of catch-up worker sweeps",
			Buckets: prometheus.DefBuckets,
		},
	)

	// CatchupUsersSwept counts users processed by catch-up sweeps.
	CatchupUsersSwept = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "progression_catchup_users_swept_total",
			Help: "Total number of users processed by catch-up sweeps",
		},
	)
)

// All returns every collector for registration.
func All() []prometheus.Collector {
	return []prometheus.Collector{
		TicksAppliedTotal,
		TicksSkippedTotal,
		ActionsTotal,
		ActionsRejectedTotal,
		BurnoutTransitionsTotal,
		CatchupSweepDuration,
		CatchupUsersSwept,
	}
}
