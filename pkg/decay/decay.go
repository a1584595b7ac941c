// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package decay implements neglect decay: the daily runway drain and the
// weekly category decay that is anchored to the most recent qualifying
// action rather than the tick calendar. Functions here are pure; the
// scheduler feeds them current values and the relevant log lookups.
package decay

import (
	"time"

	"github.com/lifeworldos/progression-engine/pkg/progression"
	"github.com/lifeworldos/progression-engine/pkg/tuning"
)

// RunwayDecay returns the runway value after one day of decay. Active
// income sources offset the drain; the net drain never goes negative (the
// rule cannot grow runway) and runway never drops below zero.
func RunwayDecay(current float64, activeIncomeSources int, cfg tuning.DecayConfig) float64 {
	drain := cfg.RunwayDaily - float64(activeIncomeSources)*cfg.RunwaySourceOffset
	if drain < 0 {
		drain = 0
	}

	next := current - drain
	if next < 0 {
		return 0
	}
	return next
}

// OnWeekBoundary reports whether tickDate sits on an exact week boundary
// measured from the most recent qualifying action. Decay applies only on
// day 7, 14, 21... after the action, which prevents re-decaying every
// replayed day once the neglect period starts and prevents double-decay
// when several missed days fall inside the same week. A nil lastAction
// means the user never performed a qualifying action; new users are not
// penalized before they start.
func OnWeekBoundary(lastAction *time.Time, tickDate time.Time) bool {
	if lastAction == nil {
		return false
	}

	days := progression.DaysBetween(*lastAction, tickDate)
	return days >= 7 && days%7 == 0
}

// NeglectDecay applies one week's decay to a score when tickDate is a week
// boundary for the given anchor action. The score floor is honored; values
// at or below it are untouched.
func NeglectDecay(current int, weeklyAmount int, lastAction *time.Time, tickDate time.Time) int {
	if current <= progression.ScoreFloor {
		return current
	}
	if !OnWeekBoundary(lastAction, tickDate) {
		return current
	}
	return progression.ApplyFloored(current, -weeklyAmount)
}
