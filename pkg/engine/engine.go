// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package engine orchestrates the temporal progression core: daily tick
// replay, weekly adjustments, the burnout state machine, and action-driven
// rewards. It mutates per-user aggregates through a Store and assumes one
// logical writer per user; different users are fully independent.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lifeworldos/progression-engine/pkg/common"
	"github.com/lifeworldos/progression-engine/pkg/energy"
	"github.com/lifeworldos/progression-engine/pkg/progression"
	"github.com/lifeworldos/progression-engine/pkg/reward"
	"github.com/lifeworldos/progression-engine/pkg/state"
	"github.com/lifeworldos/progression-engine/pkg/tuning"
)

// ErrUserNotProvisioned is returned when an operation targets a user whose
// aggregates were never created. Provisioning is the caller's job; this is
// a hard precondition failure, never retried.
var ErrUserNotProvisioned = errors.New("user is not provisioned")

// Store is the persistence surface the engine consumes. *state.Store
// implements it; tests may substitute their own.
type Store interface {
	GetProgressionState(ctx context.Context, userID string) (*progression.ProgressionState, error)
	GetLedger(ctx context.Context, userID string) (*progression.ResourceLedger, error)
	GetEnergy(ctx context.Context, userID string) (*progression.EnergyState, error)
	Provision(ctx context.Context, userID string, st *progression.ProgressionState, ledger *progression.ResourceLedger, energyState *progression.EnergyState) error

	CommitTick(ctx context.Context, userID string, write state.TickWrite) (bool, error)
	CommitAction(ctx context.Context, userID string, write state.ActionWrite) error

	EventsInRange(ctx context.Context, userID string, types []progression.ActivityType, from, to time.Time) ([]progression.ActivityEvent, error)
	LastEventBefore(ctx context.Context, userID string, types []progression.ActivityType, before time.Time) (*progression.ActivityEvent, error)
	HasEventSince(ctx context.Context, userID string, types []progression.ActivityType, since time.Time) (bool, error)
}

// Engine is the progression core facade. All entry points catch the user up
// to the current day before acting.
type Engine struct {
	store  Store
	cfg    *tuning.Config
	budget *energy.Budget
	calc   *reward.Calculator

	// now is the clock; overridable in tests.
	now func() time.Time
}

// New creates an Engine.
func New(store Store, cfg *tuning.Config) *Engine {
	return &Engine{
		store:  store,
		cfg:    cfg,
		budget: energy.New(cfg.Energy, cfg.Burnout),
		calc:   reward.NewCalculator(cfg.Reward),
		now:    time.Now,
	}
}

// ProvisionRequest seeds a new user's aggregates. Scores come from the
// onboarding flow; season and runway from account setup.
type ProvisionRequest struct {
	Scores              progression.CategoryScores
	Runway              float64
	ActiveIncomeSources int
	Season              progression.Season
}

// Provision creates the three aggregates for a new user. LastTickAt starts
// nil so the first catch-up applies exactly one tick for the current day.
func (e *Engine) Provision(scope *common.Scope, userID string, req ProvisionRequest) error {
	scope = scope.NewChildScope("Engine.Provision")
	defer scope.Finish()
	scope.AddBaggage("userID", userID)

	now := e.now()
	st := &progression.ProgressionState{CreatedAt: now}
	ledger := &progression.ResourceLedger{
		Runway:              req.Runway,
		ActiveIncomeSources: req.ActiveIncomeSources,
		Scores:              req.Scores,
		Rank:                reward.RankForXP(0),
		Level:               reward.OverallLevel(0),
		Season:              req.Season,
	}
	energyState := &progression.EnergyState{
		Current:    e.budget.DailyBase(),
		RestoredAt: now,
	}

	if err := e.store.Provision(scope.Ctx, userID, st, ledger, energyState); err != nil {
		scope.TraceError(err)
		return fmt.Errorf("failed to provision user %s: %w", userID, err)
	}

	scope.Log.Infof("provisioned user %s in season %s", userID, req.Season)
	return nil
}

// Snapshot is the read-side view of a user after catch-up: aggregates plus
// derived live energy and ladder position.
type Snapshot struct {
	State  progression.ProgressionState
	Ledger progression.ResourceLedger

	Energy       energy.Burndown
	UsableEnergy int
	EnergyCap    int

	Rank         progression.Rank
	Level        int
	XPToNextRank int
	RankProgress float64
}

// GetSnapshot catches the user up and returns the current view. The live
// energy figure is derived, never written back.
func (e *Engine) GetSnapshot(scope *common.Scope, userID string) (*Snapshot, error) {
	scope = scope.NewChildScope("Engine.GetSnapshot")
	defer scope.Finish()
	scope.AddBaggage("userID", userID)

	if _, err := e.EnsureCaughtUp(scope, userID); err != nil {
		return nil, err
	}

	st, ledger, energyState, err := e.loadAggregates(scope.Ctx, userID)
	if err != nil {
		scope.TraceError(err)
		return nil, err
	}

	now := e.now()
	burndown := e.budget.LiveBurndown(*energyState, now)
	ceiling := e.budget.Cap(ledger.Scores.Capacity, st.InBurnout)

	return &Snapshot{
		State:        *st,
		Ledger:       *ledger,
		Energy:       burndown,
		UsableEnergy: e.budget.Usable(burndown.Current, ledger.Scores.Capacity, st.InBurnout),
		EnergyCap:    ceiling,
		Rank:         ledger.Rank,
		Level:        ledger.Level,
		XPToNextRank: reward.XPToNextRank(ledger.OverallXP),
		RankProgress: reward.RankProgress(ledger.OverallXP),
	}, nil
}

// loadAggregates reads all three aggregates, mapping absence to the
// provisioning precondition error.
func (e *Engine) loadAggregates(ctx context.Context, userID string) (*progression.ProgressionState, *progression.ResourceLedger, *progression.EnergyState, error) {
	st, err := e.store.GetProgressionState(ctx, userID)
	if err != nil {
		if errors.Is(err, state.ErrNotFound) {
			return nil, nil, nil, fmt.Errorf("user %s: %w", userID, ErrUserNotProvisioned)
		}
		return nil, nil, nil, err
	}
	ledger, err := e.store.GetLedger(ctx, userID)
	if err != nil {
		if errors.Is(err, state.ErrNotFound) {
			return nil, nil, nil, fmt.Errorf("user %s: %w", userID, ErrUserNotProvisioned)
		}
		return nil, nil, nil, err
	}
	energyState, err := e.store.GetEnergy(ctx, userID)
	if err != nil {
		if errors.Is(err, state.ErrNotFound) {
			return nil, nil, nil, fmt.Errorf("user %s: %w", userID, ErrUserNotProvisioned)
		}
		return nil, nil, nil, err
	}
	return st, ledger, energyState, nil
}
