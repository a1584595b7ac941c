// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package reward computes XP awards: per-activity base values, season
// scaling, and the rank ladder derived from lifetime XP. Band and burnout
// modifiers are composed by the engine on top of these base amounts.
package reward

import (
	"math"

	"github.com/lifeworldos/progression-engine/pkg/progression"
	"github.com/lifeworldos/progression-engine/pkg/tuning"
)

// baseAward is the raw XP table entry for an activity type.
type baseAward struct {
	overall  int
	category progression.CategoryXP
}

// Base XP tables. Rest deliberately awards nothing: it is a recovery
// action, its payoff is capacity, not XP. Custom defaults to zero and is
// expected to carry an override.
var baseAwards = map[progression.ActivityType]baseAward{
	progression.ActivityWork: {
		overall:  500,
		category: progression.CategoryXP{Capacity: 100, Momentum: 300, Stability: 50},
	},
	progression.ActivityExercise: {
		overall:  200,
		category: progression.CategoryXP{Capacity: 250, Optionality: 50},
	},
	progression.ActivitySavings: {
		overall:  1000,
		category: progression.CategoryXP{Momentum: 200, Stability: 500, Optionality: 300},
	},
	progression.ActivityLearning: {
		overall:  400,
		category: progression.CategoryXP{Capacity: 150, Momentum: 100, Optionality: 200},
	},
	progression.ActivitySeasonClose: {
		overall:  1000,
		category: progression.CategoryXP{Capacity: 200, Momentum: 200, Stability: 200, Alignment: 200, Optionality: 200},
	},
	progression.ActivityMilestone: {
		overall:  2000,
		category: progression.CategoryXP{Capacity: 500, Momentum: 500, Stability: 500, Alignment: 500, Optionality: 500},
	},
	progression.ActivityRest:   {},
	progression.ActivityCustom: {},
}

// Override replaces parts of the base award for custom or ad-hoc actions.
// Nil fields keep the table value.
type Override struct {
	Overall  *int
	Category *progression.CategoryXP
}

// Calculation is a season-scaled base award, before band and burnout
// modifiers.
type Calculation struct {
	OverallXP        int
	CategoryXP       progression.CategoryXP
	SeasonMultiplier float64
}

// Calculator derives awards from the base tables and tuned season
// multipliers.
type Calculator struct {
	cfg tuning.RewardConfig
}

// NewCalculator creates a Calculator from tuning.
func NewCalculator(cfg tuning.RewardConfig) *Calculator {
	return &Calculator{cfg: cfg}
}

// Calculate returns the season-scaled award for an activity. Each component
// is rounded once after the multiplier is applied.
func (c *Calculator) Calculate(t progression.ActivityType, season progression.Season, override *Override) Calculation {
	base := baseAwards[t]

	overall := base.overall
	category := base.category
	if override != nil {
		if override.Overall != nil {
			overall = *override.Overall
		}
		if override.Category != nil {
			category = *override.Category
		}
	}

	mult := c.cfg.SeasonMultipliers[season]
	if mult == 0 {
		mult = 1.0
	}

	return Calculation{
		OverallXP: scale(overall, mult),
		CategoryXP: progression.CategoryXP{
			Capacity:    scale(category.Capacity, mult),
			Momentum:    scale(category.Momentum, mult),
			Stability:   scale(category.Stability, mult),
			Alignment:   scale(category.Alignment, mult),
			Optionality: scale(category.Optionality, mult),
		},
		SeasonMultiplier: mult,
	}
}

func scale(v int, mult float64) int {
	return int(math.Round(float64(v) * mult))
}
