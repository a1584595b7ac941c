// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package engine

import (
	"fmt"
	"time"

	"github.com/lifeworldos/progression-engine/pkg/burnout"
	"github.com/lifeworldos/progression-engine/pkg/capacity"
	"github.com/lifeworldos/progression-engine/pkg/common"
	"github.com/lifeworldos/progression-engine/pkg/decay"
	"github.com/lifeworldos/progression-engine/pkg/metrics"
	"github.com/lifeworldos/progression-engine/pkg/progression"
	"github.com/lifeworldos/progression-engine/pkg/state"
)

// CatchUpResult reports what a catch-up pass did.
type CatchUpResult struct {
	TicksApplied int
	LastTickDate time.Time
}

// EnsureCaughtUp replays one tick per missed calendar day, strictly
// chronologically, up to and including today. A user who was never ticked
// gets exactly one tick for today. Safe to call repeatedly: a day that is
// already applied is a silent no-op.
func (e *Engine) EnsureCaughtUp(scope *common.Scope, userID string) (*CatchUpResult, error) {
	scope = scope.NewChildScope("Engine.EnsureCaughtUp")
	defer scope.Finish()
	scope.AddBaggage("userID", userID)

	st, _, _, err := e.loadAggregates(scope.Ctx, userID)
	if err != nil {
		scope.TraceError(err)
		return nil, err
	}

	today := progression.StartOfDay(e.now())

	var firstDay time.Time
	switch {
	case st.LastTickAt == nil:
		firstDay = today
	case !progression.StartOfDay(*st.LastTickAt).Before(today):
		return &CatchUpResult{TicksApplied: 0, LastTickDate: progression.StartOfDay(*st.LastTickAt)}, nil
	default:
		firstDay = progression.StartOfDay(*st.LastTickAt).AddDate(0, 0, 1)
	}

	result := &CatchUpResult{LastTickDate: today}
	for day := firstDay; !day.After(today); day = day.AddDate(0, 0, 1) {
		applied, err := e.applyDay(scope, userID, day)
		if err != nil {
			scope.TraceError(err)
			return nil, fmt.Errorf("tick for %s failed on %s: %w", userID, day.Format("2006-01-02"), err)
		}
		if applied {
			result.TicksApplied++
		} else {
			metrics.TicksSkippedTotal.Inc()
		}
	}

	if result.TicksApplied > 0 {
		scope.Log.Infof("applied %d ticks for user %s through %s",
			result.TicksApplied, userID, today.Format("2006-01-02"))
	}
	return result, nil
}

// applyDay computes and persists one day's tick. Each day re-reads the
// aggregates so day N+1 observes day N's committed result, and the commit
// re-checks lastTickAt so concurrent callers cannot double-apply a day.
func (e *Engine) applyDay(scope *common.Scope, userID string, day time.Time) (bool, error) {
	ctx := scope.Ctx

	st, ledger, _, err := e.loadAggregates(ctx, userID)
	if err != nil {
		return false, err
	}
	if st.LastTickAt != nil && !progression.StartOfDay(*st.LastTickAt).Before(day) {
		return false, nil
	}

	// The effort ratio in step 3 grades the day against the capacity the
	// user woke up with, not the value left by this tick's decay.
	capacityAtStart := ledger.Scores.Capacity

	// 1. Runway decays daily; income sources offset the drain.
	ledger.Runway = decay.RunwayDecay(ledger.Runway, ledger.ActiveIncomeSources, e.cfg.Decay)

	// 2. Neglect decay, each score anchored to its own most recent
	// qualifying action. Capacity neglect follows capacity-building
	// actions; alignment neglect follows any activity at all.
	lastBuild, err := e.store.LastEventBefore(ctx, userID, progression.CapacityBuildingTypes, day)
	if err != nil {
		return false, err
	}
	lastAny, err := e.store.LastEventBefore(ctx, userID, nil, day)
	if err != nil {
		return false, err
	}
	ledger.Scores.Capacity = decay.NeglectDecay(ledger.Scores.Capacity, e.cfg.Decay.CapacityWeekly, eventTime(lastBuild), day)
	ledger.Scores.Alignment = decay.NeglectDecay(ledger.Scores.Alignment, e.cfg.Decay.AlignmentWeekly, eventTime(lastAny), day)

	// 3. Effort tracking for day D. The weekly effort decay below consumes
	// the streak as of start of day; capture before updating.
	streakAtStart := st.ConsecutiveHighEffortDays
	dayEvents, err := e.store.EventsInRange(ctx, userID, nil, day, day.AddDate(0, 0, 1))
	if err != nil {
		return false, err
	}
	usable := e.budget.Cap(capacityAtStart, st.InBurnout)
	ratio := capacity.ExpenditureRatio(dayEvents, usable, e.budget.Cost)
	st.ConsecutiveHighEffortDays = capacity.NextEffortStreak(st.ConsecutiveHighEffortDays, ratio, e.cfg.Effort)

	// 4. Weekly adjustments on exact week boundaries since the last weekly
	// evaluation (or since account creation for the first cycle).
	weeklyRan := false
	if e.weeklyDue(st, day) {
		if err := e.applyWeekly(ctx, userID, st, ledger, streakAtStart, day); err != nil {
			return false, err
		}
		st.LastWeeklyTickAt = &day
		weeklyRan = true
	}

	// 5. Burnout transition observes the post-adjustment capacity.
	if st.InBurnout {
		evidence, err := e.store.HasEventSince(ctx, userID, progression.RecoveryActivityTypes, *st.BurnoutTriggeredAt)
		if err != nil {
			return false, err
		}
		exit := burnout.EvaluateExit(ledger.Scores.Capacity, st.BurnoutTriggeredAt, day, evidence, e.cfg.Burnout)
		if exit.Recover {
			st.InBurnout = false
			st.BurnoutTriggeredAt = nil
			st.ConsecutiveLowCapacityDays = 0
			metrics.BurnoutTransitionsTotal.WithLabelValues("exit").Inc()
			scope.Log.Infof("user %s exited burnout on %s", userID, day.Format("2006-01-02"))
		}
	} else {
		decision := burnout.EvaluateTrigger(ledger.Scores.Capacity, st.ConsecutiveLowCapacityDays, e.cfg.Burnout)
		st.ConsecutiveLowCapacityDays = decision.Streak
		if decision.Trigger {
			st.InBurnout = true
			triggered := day
			st.BurnoutTriggeredAt = &triggered
			metrics.BurnoutTransitionsTotal.WithLabelValues("enter").Inc()
			scope.Log.Warnf("user %s entered burnout on %s (capacity %d)",
				userID, day.Format("2006-01-02"), ledger.Scores.Capacity)
		}
	}

	// 6. Persist the whole day atomically: energy hard-resets to the daily
	// base with the restoration timestamp at the day boundary.
	st.LastTickAt = &day
	write := state.TickWrite{
		State:  st,
		Ledger: ledger,
		Energy: &progression.EnergyState{
			Current:    e.budget.DailyBase(),
			RestoredAt: day,
		},
	}
	applied, err := e.store.CommitTick(ctx, userID, write)
	if err != nil {
		return false, err
	}
	if applied {
		kind := "daily"
		if weeklyRan {
			kind = "weekly"
		}
		metrics.TicksAppliedTotal.WithLabelValues(kind).Inc()
	}
	return applied, nil
}

// weeklyDue reports whether day sits on an exact week boundary since the
// last weekly evaluation, anchored to account creation before the first
// cycle.
func (e *Engine) weeklyDue(st *progression.ProgressionState, day time.Time) bool {
	anchor := st.CreatedAt
	if st.LastWeeklyTickAt != nil {
		anchor = *st.LastWeeklyTickAt
	}
	days := progression.DaysBetween(anchor, day)
	return days >= 7 && days%7 == 0
}

func eventTime(ev *progression.ActivityEvent) *time.Time {
	if ev == nil {
		return nil
	}
	return &ev.Timestamp
}
