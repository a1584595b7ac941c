// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package capacity

import (
	"math"

	"github.com/lifeworldos/progression-engine/pkg/progression"
	"github.com/lifeworldos/progression-engine/pkg/tuning"
)

// Distribution is a 7-day histogram of player-initiated actions. System
// events are excluded before this point.
type Distribution struct {
	Work     int
	Exercise int
	Learning int
	Savings  int
	Rest     int
	Custom   int
}

// Total is the number of player actions in the window.
func (d Distribution) Total() int {
	return d.Work + d.Exercise + d.Learning + d.Savings + d.Rest + d.Custom
}

// DominanceTotal is the denominator for the dominance ratios: only the four
// core action types count. Rest and custom actions carry no dominance
// signal, so a week of 5 work and 4 rest is still 100% work-dominated.
func (d Distribution) DominanceTotal() int {
	return d.Work + d.Exercise + d.Learning + d.Savings
}

// Distribute builds the histogram from an activity slice, dropping system
// events.
func Distribute(events []progression.ActivityEvent) Distribution {
	var d Distribution
	for _, ev := range events {
		switch ev.Type {
		case progression.ActivityWork:
			d.Work++
		case progression.ActivityExercise:
			d.Exercise++
		case progression.ActivityLearning:
			d.Learning++
		case progression.ActivitySavings:
			d.Savings++
		case progression.ActivityRest:
			d.Rest++
		case progression.ActivityCustom:
			d.Custom++
		}
	}
	return d
}

// Penalties are the score adjustments emitted by the weekly
// over-optimisation evaluation. Values are non-positive.
type Penalties struct {
	Capacity    int
	Alignment   int
	Optionality int
}

// None reports whether no penalty fired.
func (p Penalties) None() bool {
	return p.Capacity == 0 && p.Alignment == 0 && p.Optionality == 0
}

// EvaluateOverOptimisation inspects the 7-day distribution and emits
// penalties for dominated action mixes. The three checks are independent
// and additive, not mutually exclusive.
func EvaluateOverOptimisation(d Distribution, cfg tuning.BalanceConfig) Penalties {
	var p Penalties

	total := d.DominanceTotal()
	if total == 0 {
		return p
	}

	if float64(d.Work)/float64(total) > cfg.WorkDominanceRatio {
		p.Capacity -= cfg.WorkCapacityPenalty
		p.Alignment -= cfg.WorkAlignmentPenalty
	}

	if float64(d.Savings)/float64(total) > cfg.SavingsDominanceRatio {
		p.Alignment -= cfg.SavingsAlignmentPenalty
	}

	// Learning without execution: dominated by learning while neither work
	// nor exercise happened at all.
	if float64(d.Learning)/float64(total) > cfg.LearningDominanceRatio &&
		d.Work == 0 && d.Exercise == 0 {
		p.Optionality -= cfg.LearningOptionalityPenalty
	}

	return p
}

// ChronicImbalanceDecay returns the weekly capacity decay for a chronically
// unbalanced week: one point when a single action type exceeds the
// dominance ratio, one more when the window holds zero recovery actions.
// Both can fire together. An empty window decays nothing.
func ChronicImbalanceDecay(events []progression.ActivityEvent, cfg tuning.BalanceConfig) int {
	if len(events) == 0 {
		return 0
	}

	counts := make(map[progression.ActivityType]int)
	recovery := 0
	for _, ev := range events {
		counts[ev.Type]++
		if ev.Type.IsRecovery() {
			recovery++
		}
	}

	decay := 0
	for _, n := range counts {
		if float64(n)/float64(len(events)) > cfg.ImbalanceDominanceRatio {
			decay++
			break
		}
	}
	if recovery == 0 {
		decay++
	}
	return decay
}

// RecoveryGain maps the trailing week's recovery-action count to a capacity
// gain: below the minimum nothing, at or above the maximum the weekly cap,
// linear in between rounded to the nearest integer.
func RecoveryGain(recoveryActions int, cfg tuning.BalanceConfig) int {
	if recoveryActions < cfg.RecoveryMinActions {
		return 0
	}
	if recoveryActions >= cfg.RecoveryMaxActions {
		return cfg.RecoveryMaxGain
	}

	progress := float64(recoveryActions-cfg.RecoveryMinActions) /
		float64(cfg.RecoveryMaxActions-cfg.RecoveryMinActions)
	gain := float64(cfg.RecoveryMinGain) + progress*float64(cfg.RecoveryMaxGain-cfg.RecoveryMinGain)
	return int(math.Round(gain))
}
