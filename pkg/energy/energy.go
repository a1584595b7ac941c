// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package energy implements the daily energy budget: per-action costs, the
// capacity-derived usable cap, and the live between-tick burndown. Everything
// here is a pure function of its inputs; storage belongs to the caller.
package energy

import (
	"github.com/lifeworldos/progression-engine/pkg/progression"
	"github.com/lifeworldos/progression-engine/pkg/tuning"
)

// Budget answers energy questions from the tuning tables. The zero value is
// unusable; construct with New.
type Budget struct {
	cfg tuning.EnergyConfig
	bo  tuning.BurnoutConfig
}

// New creates a Budget from tuning.
func New(cfg tuning.EnergyConfig, bo tuning.BurnoutConfig) *Budget {
	return &Budget{cfg: cfg, bo: bo}
}

// Cost returns the energy cost of an action. System events are free;
// unknown player types fall back to the default cost.
func (b *Budget) Cost(t progression.ActivityType) int {
	if t.IsSystem() {
		return 0
	}
	if cost, ok := b.cfg.Costs[t]; ok {
		return cost
	}
	return b.cfg.DefaultCost
}

// Cap returns the usable-energy ceiling for a capacity value. Burnout
// overrides the capacity step function entirely.
func (b *Budget) Cap(capacity int, inBurnout bool) int {
	if inBurnout {
		return b.bo.EnergyCap
	}
	for _, step := range b.cfg.CapacityCaps {
		if capacity < step.Below {
			return step.Cap
		}
	}
	return b.cfg.CapDefault
}

// Usable clamps current energy to the applicable cap.
func (b *Budget) Usable(current, capacity int, inBurnout bool) int {
	ceiling := b.Cap(capacity, inBurnout)
	if current < ceiling {
		return current
	}
	return ceiling
}

// DailyBase is the amount energy resets to on every tick.
func (b *Budget) DailyBase() int {
	return b.cfg.DailyBase
}
