// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/lifeworldos/progression-engine/pkg/capacity"
	"github.com/lifeworldos/progression-engine/pkg/common"
	"github.com/lifeworldos/progression-engine/pkg/metrics"
	"github.com/lifeworldos/progression-engine/pkg/progression"
	"github.com/lifeworldos/progression-engine/pkg/reward"
	"github.com/lifeworldos/progression-engine/pkg/state"
)

// RejectionReason classifies why an action was declined. Rejections are
// typed results for user-facing messaging, not errors; no state mutates.
type RejectionReason string

const (
	RejectInsufficientEnergy RejectionReason = "insufficient_energy"
	RejectBurnoutRestricted  RejectionReason = "burnout_restricted"
)

// ActionRequest describes one player or system action to apply.
type ActionRequest struct {
	Type progression.ActivityType

	// At is the action timestamp; zero means now.
	At time.Time

	// Override replaces the base award, used by custom actions.
	Override *reward.Override

	// Resources are resource deltas attached to the action, e.g. a savings
	// action extending runway.
	Resources progression.ResourceChanges
}

// EnergyOutcome is the energy movement of an accepted action.
type EnergyOutcome struct {
	Before int
	Cost   int
	After  int
	Cap    int
}

// ActionResult is the realized outcome of ApplyAction. When Accepted is
// false, Rejection says why and only the energy figures are populated.
type ActionResult struct {
	Accepted  bool
	Rejection RejectionReason

	Event *progression.ActivityEvent

	OverallXP         int
	CategoryXP        progression.CategoryXP
	SeasonMultiplier  float64
	Band              capacity.Modifiers
	BurnoutMultiplier float64

	Energy   EnergyOutcome
	Capacity int
	Rank     progression.Rank
	Level    int
}

// ApplyAction catches the user up, then applies one action: reward
// computation through the band and burnout modifiers, energy deduction, and
// a single atomic write of ledger, energy and the activity event.
func (e *Engine) ApplyAction(scope *common.Scope, userID string, req ActionRequest) (*ActionResult, error) {
	scope = scope.NewChildScope("Engine.ApplyAction")
	defer scope.Finish()
	scope.AddBaggage("userID", userID)
	scope.AddBaggage("activityType", string(req.Type))

	if _, err := e.EnsureCaughtUp(scope, userID); err != nil {
		return nil, err
	}

	st, ledger, energyState, err := e.loadAggregates(scope.Ctx, userID)
	if err != nil {
		scope.TraceError(err)
		return nil, err
	}

	at := req.At
	if at.IsZero() {
		at = e.now()
	}

	// Work is off the table during burnout; recovery is the way out.
	if st.InBurnout && req.Type == progression.ActivityWork {
		metrics.ActionsRejectedTotal.WithLabelValues(string(RejectBurnoutRestricted)).Inc()
		scope.Log.Infof("rejected work action for user %s: in burnout", userID)
		return &ActionResult{Rejection: RejectBurnoutRestricted}, nil
	}

	live := e.budget.LiveEnergy(*energyState, at)
	ceiling := e.budget.Cap(ledger.Scores.Capacity, st.InBurnout)
	usable := e.budget.Usable(live, ledger.Scores.Capacity, st.InBurnout)
	cost := e.budget.Cost(req.Type)

	if cost > usable {
		metrics.ActionsRejectedTotal.WithLabelValues(string(RejectInsufficientEnergy)).Inc()
		scope.Log.Infof("rejected %s action for user %s: need %d energy, usable %d",
			req.Type, userID, cost, usable)
		return &ActionResult{
			Rejection: RejectInsufficientEnergy,
			Energy:    EnergyOutcome{Before: live, Cost: cost, Cap: ceiling},
		}, nil
	}

	// Base award scaled by season, then the capacity band, then the burnout
	// penalty. Recovery actions are exempt from the burnout multiplier.
	calc := e.calc.Calculate(req.Type, ledger.Season, req.Override)
	band := capacity.BandModifiers(ledger.Scores.Capacity)

	overall := capacity.ApplyXPModifier(calc.OverallXP, ledger.Scores.Capacity)
	catXP := progression.CategoryXP{
		Capacity:    capacity.ApplyXPModifier(calc.CategoryXP.Capacity, ledger.Scores.Capacity),
		Momentum:    capacity.ApplyXPModifier(calc.CategoryXP.Momentum, ledger.Scores.Capacity),
		Stability:   capacity.ApplyXPModifier(calc.CategoryXP.Stability, ledger.Scores.Capacity),
		Alignment:   capacity.ApplyXPModifier(calc.CategoryXP.Alignment, ledger.Scores.Capacity),
		Optionality: capacity.ApplyXPModifier(calc.CategoryXP.Optionality, ledger.Scores.Capacity),
	}

	burnoutMult := 1.0
	if st.InBurnout && !req.Type.IsRecovery() {
		burnoutMult = e.cfg.Burnout.XPMultiplier
		overall = scaleRound(overall, burnoutMult)
		catXP = progression.CategoryXP{
			Capacity:    scaleRound(catXP.Capacity, burnoutMult),
			Momentum:    scaleRound(catXP.Momentum, burnoutMult),
			Stability:   scaleRound(catXP.Stability, burnoutMult),
			Alignment:   scaleRound(catXP.Alignment, burnoutMult),
			Optionality: scaleRound(catXP.Optionality, burnoutMult),
		}
	}

	// Resource gains pass through the band's reward efficiency; spends do
	// not (a withdrawal costs what it costs).
	resources := req.Resources
	if resources.Runway > 0 {
		resources.Runway = capacity.ApplyRewardModifier(resources.Runway, ledger.Scores.Capacity)
	}
	ledger.Runway += resources.Runway
	if ledger.Runway < 0 {
		ledger.Runway = 0
	}

	ledger.OverallXP += overall
	ledger.CategoryXP = ledger.CategoryXP.Add(catXP)
	ledger.Rank = reward.RankForXP(ledger.OverallXP)
	ledger.Level = reward.OverallLevel(ledger.OverallXP)

	event := progression.ActivityEvent{
		ID:         uuid.NewString(),
		UserID:     userID,
		Type:       req.Type,
		Timestamp:  at,
		OverallXP:  overall,
		CategoryXP: catXP,
		Resources:  resources,
		Season:     ledger.Season,
	}

	// The deduction rebases the burndown clock: live already accounts for
	// hours elapsed since the last restoration.
	newEnergy := &progression.EnergyState{
		Current:    live - cost,
		RestoredAt: at,
	}

	write := state.ActionWrite{Ledger: ledger, Energy: newEnergy, Event: event}
	if err := e.store.CommitAction(scope.Ctx, userID, write); err != nil {
		scope.TraceError(err)
		return nil, fmt.Errorf("failed to apply %s action for user %s: %w", req.Type, userID, err)
	}

	metrics.ActionsTotal.WithLabelValues(string(req.Type)).Inc()
	scope.Log.Infof("applied %s action for user %s: +%d XP, energy %d -> %d",
		req.Type, userID, overall, live, newEnergy.Current)

	return &ActionResult{
		Accepted:          true,
		Event:             &event,
		OverallXP:         overall,
		CategoryXP:        catXP,
		SeasonMultiplier:  calc.SeasonMultiplier,
		Band:              band,
		BurnoutMultiplier: burnoutMult,
		Energy:            EnergyOutcome{Before: live, Cost: cost, After: newEnergy.Current, Cap: ceiling},
		Capacity:          ledger.Scores.Capacity,
		Rank:              ledger.Rank,
		Level:             ledger.Level,
	}, nil
}

func scaleRound(v int, mult float64) int {
	return int(math.Round(float64(v) * mult))
}
