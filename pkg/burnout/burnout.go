// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package burnout implements the Normal/Burnout state machine as pure
// decision functions. The tick scheduler owns the persisted state and calls
// these with the post-weekly-adjustment capacity, never the raw morning
// value.
package burnout

import (
	"time"

	"github.com/lifeworldos/progression-engine/pkg/progression"
	"github.com/lifeworldos/progression-engine/pkg/tuning"
)

// TriggerDecision is the outcome of the Normal-side evaluation for a tick.
type TriggerDecision struct {
	// Streak is the updated consecutive-low-capacity-days counter.
	Streak int
	// Trigger is true when the streak reached the threshold this tick.
	Trigger bool
}

// EvaluateTrigger advances the low-capacity streak and decides whether
// burnout fires. Only meaningful while the user is Normal; the streak is
// frozen once in burnout.
func EvaluateTrigger(capacity, currentStreak int, cfg tuning.BurnoutConfig) TriggerDecision {
	if capacity >= cfg.LowCapacityThreshold {
		return TriggerDecision{Streak: 0}
	}

	streak := currentStreak + 1
	return TriggerDecision{
		Streak:  streak,
		Trigger: streak >= cfg.TriggerStreak,
	}
}

// ExitDecision is the outcome of the Burnout-side evaluation for a tick.
type ExitDecision struct {
	Recover bool
}

// EvaluateExit decides whether burnout clears. Three conjunctive
// conditions: capacity above the exit threshold, recovery evidence logged
// at or after the trigger, and at least one tick elapsed since the trigger.
// The elapsed-tick condition is implied whenever this runs on a tick later
// than the trigger day, which the scheduler guarantees.
func EvaluateExit(capacity int, triggeredAt *time.Time, tickDate time.Time, hasRecoveryEvidence bool, cfg tuning.BurnoutConfig) ExitDecision {
	if triggeredAt == nil {
		return ExitDecision{}
	}
	if capacity <= cfg.ExitCapacity {
		return ExitDecision{}
	}
	if !hasRecoveryEvidence {
		return ExitDecision{}
	}
	if progression.DaysBetween(*triggeredAt, tickDate) < 1 {
		return ExitDecision{}
	}
	return ExitDecision{Recover: true}
}

// XPMultiplier returns the XP penalty multiplier for the burnout flag.
// Rest actions are exempt upstream; this applies to everything else.
func XPMultiplier(inBurnout bool, cfg tuning.BurnoutConfig) float64 {
	if inBurnout {
		return cfg.XPMultiplier
	}
	return 1.0
}
