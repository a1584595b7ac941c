// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package engine

import (
	"context"
	"time"

	"github.com/lifeworldos/progression-engine/pkg/capacity"
	"github.com/lifeworldos/progression-engine/pkg/progression"
)

// applyWeekly runs the weekly capacity adjustments over the trailing 7-day
// window ending at day. The four steps run in a fixed order, each reading
// the capacity value left by the previous one and clamping to the floor
// after every step. Recovery runs last so the week's penalties cannot
// cancel it retroactively.
func (e *Engine) applyWeekly(ctx context.Context, userID string, st *progression.ProgressionState, ledger *progression.ResourceLedger, effortStreak int, day time.Time) error {
	windowStart := day.AddDate(0, 0, -7)
	events, err := e.store.EventsInRange(ctx, userID, progression.PlayerActivityTypes, windowStart, day)
	if err != nil {
		return err
	}

	// 1. Over-optimisation penalties from the action-type distribution.
	penalties := capacity.EvaluateOverOptimisation(capacity.Distribute(events), e.cfg.Balance)
	ledger.Scores.Capacity = progression.ApplyFloored(ledger.Scores.Capacity, penalties.Capacity)
	ledger.Scores.Alignment = progression.ApplyFloored(ledger.Scores.Alignment, penalties.Alignment)
	ledger.Scores.Optionality = progression.ApplyFloored(ledger.Scores.Optionality, penalties.Optionality)

	// 2. Effort decay consumes the streak as of start of day.
	ledger.Scores.Capacity = progression.ApplyFloored(ledger.Scores.Capacity, -capacity.EffortDecay(effortStreak, e.cfg.Effort))

	// 3. Chronic imbalance over the same window.
	ledger.Scores.Capacity = progression.ApplyFloored(ledger.Scores.Capacity, -capacity.ChronicImbalanceDecay(events, e.cfg.Balance))

	// 4. Recovery, the only upward adjustment in this phase.
	recoveryActions := 0
	for _, ev := range events {
		if ev.Type.IsRecovery() {
			recoveryActions++
		}
	}
	ledger.Scores.Capacity = progression.ApplyFloored(ledger.Scores.Capacity, capacity.RecoveryGain(recoveryActions, e.cfg.Balance))

	return nil
}
