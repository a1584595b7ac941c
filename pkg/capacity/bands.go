// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package capacity implements the capacity-derived outcome rules: the
// discrete efficiency bands, high-effort streak tracking, and the weekly
// balance evaluators (over-optimisation, chronic imbalance, recovery).
// All functions are pure; callers supply state and activity slices.
package capacity

import (
	"math"

	"github.com/lifeworldos/progression-engine/pkg/progression"
)

// Modifiers are the efficiency multipliers a capacity band yields.
type Modifiers struct {
	XPEfficiency     float64
	RewardEfficiency float64
}

// band is one discrete capacity range. Bands are deliberate steps, no
// smoothing or interpolation between them.
type band struct {
	max int // inclusive upper bound
	mod Modifiers
}

var bands = []band{
	{max: 20, mod: Modifiers{XPEfficiency: 0.6, RewardEfficiency: 0.6}},
	{max: 40, mod: Modifiers{XPEfficiency: 0.8, RewardEfficiency: 0.9}},
	{max: 70, mod: Modifiers{XPEfficiency: 1.0, RewardEfficiency: 1.0}},
	{max: 85, mod: Modifiers{XPEfficiency: 1.1, RewardEfficiency: 1.05}},
	{max: 100, mod: Modifiers{XPEfficiency: 1.15, RewardEfficiency: 1.1}},
}

// BandModifiers returns the modifiers for a capacity value, clamped to
// [0,100] at the edges.
func BandModifiers(capacity int) Modifiers {
	capacity = progression.ClampScore(capacity)
	for _, b := range bands {
		if capacity <= b.max {
			return b.mod
		}
	}
	return bands[len(bands)-1].mod
}

// ApplyXPModifier multiplies an XP amount by the band's XP efficiency,
// rounding once after multiplication.
func ApplyXPModifier(xp, capacity int) int {
	return int(math.Round(float64(xp) * BandModifiers(capacity).XPEfficiency))
}

// ApplyRewardModifier multiplies a reward amount by the band's reward
// efficiency. Rounding is left to the caller so fractional resources
// (runway months) keep their precision.
func ApplyRewardModifier(reward float64, capacity int) float64 {
	return reward * BandModifiers(capacity).RewardEfficiency
}
