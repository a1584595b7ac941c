// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package capacity

import (
	"github.com/lifeworldos/progression-engine/pkg/progression"
	"github.com/lifeworldos/progression-engine/pkg/tuning"
)

// ExpenditureRatio sums the energy cost of the day's events against the
// usable cap and returns the ratio clamped to [0,1]. costOf is supplied by
// the energy budget so the tables stay in one place.
func ExpenditureRatio(events []progression.ActivityEvent, usableCap int, costOf func(progression.ActivityType) int) float64 {
	if usableCap <= 0 {
		return 0
	}

	spent := 0
	for _, ev := range events {
		spent += costOf(ev.Type)
	}

	ratio := float64(spent) / float64(usableCap)
	if ratio > 1 {
		return 1
	}
	return ratio
}

// NextEffortStreak advances the consecutive high-effort-days counter for a
// tick: increment when the day's expenditure ratio exceeds the threshold,
// reset to zero otherwise.
func NextEffortStreak(current int, ratio float64, cfg tuning.EffortConfig) int {
	if ratio > cfg.HighEffortRatio {
		return current + 1
	}
	return 0
}

// EffortDecay returns the weekly capacity decay owed to a sustained
// high-effort streak: 21+ days is the worst tier, then 14, then 7.
func EffortDecay(consecutiveHighEffortDays int, cfg tuning.EffortConfig) int {
	switch {
	case consecutiveHighEffortDays >= 21:
		return cfg.Decay21Days
	case consecutiveHighEffortDays >= 14:
		return cfg.Decay14Days
	case consecutiveHighEffortDays >= 7:
		return cfg.Decay7Days
	}
	return 0
}
