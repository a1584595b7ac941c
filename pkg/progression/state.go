// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package progression

import "time"

const (
	// ScoreMax is the upper clamp for every category score.
	ScoreMax = 100
	// ScoreFloor is the value below which decay and penalties may not push
	// a score. Scores seeded below the floor stay where they are; downward
	// rules simply stop applying.
	ScoreFloor = 20
)

// ProgressionState is the per-user temporal bookkeeping aggregate. It is
// owned exclusively by the tick scheduler.
type ProgressionState struct {
	LastTickAt                 *time.Time `json:"last_tick_at"`
	LastWeeklyTickAt           *time.Time `json:"last_weekly_tick_at"`
	ConsecutiveLowCapacityDays int        `json:"consecutive_low_capacity_days"`
	ConsecutiveHighEffortDays  int        `json:"consecutive_high_effort_days"`
	InBurnout                  bool       `json:"in_burnout"`
	BurnoutTriggeredAt         *time.Time `json:"burnout_triggered_at"`
	CreatedAt                  time.Time  `json:"created_at"`
}

// CategoryScores holds the five capability scores, each in [0,100].
type CategoryScores struct {
	Capacity    int `json:"capacity"`
	Momentum    int `json:"momentum"`
	Stability   int `json:"stability"`
	Alignment   int `json:"alignment"`
	Optionality int `json:"optionality"`
}

// Get returns the score for a category.
func (s CategoryScores) Get(cat Category) int {
	switch cat {
	case CategoryCapacity:
		return s.Capacity
	case CategoryMomentum:
		return s.Momentum
	case CategoryStability:
		return s.Stability
	case CategoryAlignment:
		return s.Alignment
	case CategoryOptionality:
		return s.Optionality
	}
	return 0
}

// Set stores the score for a category, clamped to [0,100].
func (s *CategoryScores) Set(cat Category, value int) {
	value = ClampScore(value)
	switch cat {
	case CategoryCapacity:
		s.Capacity = value
	case CategoryMomentum:
		s.Momentum = value
	case CategoryStability:
		s.Stability = value
	case CategoryAlignment:
		s.Alignment = value
	case CategoryOptionality:
		s.Optionality = value
	}
}

// ClampScore clamps a raw score into [0,100].
func ClampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > ScoreMax {
		return ScoreMax
	}
	return v
}

// ApplyFloored applies a delta to a score honoring the decay/penalty floor.
// Upward deltas clamp at 100. Downward deltas clamp at the floor, and a
// score already at or below the floor is left untouched entirely: the floor
// must never pull a low-seeded score upward.
func ApplyFloored(current, delta int) int {
	if delta >= 0 {
		v := current + delta
		if v > ScoreMax {
			return ScoreMax
		}
		return v
	}
	if current <= ScoreFloor {
		return current
	}
	v := current + delta
	if v < ScoreFloor {
		return ScoreFloor
	}
	return v
}

// ResourceLedger is the per-user resource aggregate: the perishable runway
// reserve, the five category scores, lifetime XP, and derived rank.
type ResourceLedger struct {
	// Runway is the perishable reserve measured in months of coverage.
	// It decays daily and is floored at zero.
	Runway float64 `json:"runway"`

	// ActiveIncomeSources offsets runway decay (0.05 per source per day).
	ActiveIncomeSources int `json:"active_income_sources"`

	Scores CategoryScores `json:"scores"`

	OverallXP  int        `json:"overall_xp"`
	CategoryXP CategoryXP `json:"category_xp"`
	Rank       Rank       `json:"rank"`
	Level      int        `json:"level"`

	Season Season `json:"season"`
}

// EnergyState is the volatile daily energy budget. Current is the amount
// set at the last restoration; the live value is always derived from
// RestoredAt and never written back between ticks.
type EnergyState struct {
	Current    int       `json:"current"`
	RestoredAt time.Time `json:"restored_at"`
}

// ActivityEvent is an immutable, append-only log entry. The engine only
// ever reads time-bounded slices of these; it never mutates them.
type ActivityEvent struct {
	ID         string          `json:"id"`
	UserID     string          `json:"user_id"`
	Type       ActivityType    `json:"type"`
	Timestamp  time.Time       `json:"timestamp"`
	OverallXP  int             `json:"overall_xp"`
	CategoryXP CategoryXP      `json:"category_xp"`
	Resources  ResourceChanges `json:"resources,omitempty"`
	Season     Season          `json:"season"`
}

// StartOfDay truncates t to local midnight. All tick arithmetic is done on
// day boundaries produced by this function.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the whole number of calendar days from a to b,
// comparing day boundaries. Negative when b precedes a.
func DaysBetween(a, b time.Time) int {
	return int(StartOfDay(b).Sub(StartOfDay(a)).Hours() / 24)
}
