// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package progression

// ActivityType identifies a logged action. Player-initiated types consume
// energy and may award XP; system types are emitted by the backend itself
// and are free.
type ActivityType string

const (
	ActivityWork     ActivityType = "WORK"
	ActivityExercise ActivityType = "EXERCISE"
	ActivityLearning ActivityType = "LEARNING"
	ActivitySavings  ActivityType = "SAVINGS"
	ActivityRest     ActivityType = "REST"
	ActivityCustom   ActivityType = "CUSTOM"

	// System-triggered events, never initiated by the player.
	ActivitySeasonClose ActivityType = "SEASON_CLOSE"
	ActivityMilestone   ActivityType = "MILESTONE"
)

// PlayerActivityTypes are the types that count toward action-distribution
// analysis (over-optimisation, chronic imbalance). System events are excluded.
var PlayerActivityTypes = []ActivityType{
	ActivityWork,
	ActivityExercise,
	ActivityLearning,
	ActivitySavings,
	ActivityRest,
	ActivityCustom,
}

// RecoveryActivityTypes count toward weekly capacity recovery and serve as
// burnout exit evidence.
var RecoveryActivityTypes = []ActivityType{
	ActivityExercise,
	ActivityLearning,
	ActivitySavings,
	ActivityRest,
}

// CapacityBuildingTypes are the actions whose absence defines capacity
// neglect for weekly decay purposes.
var CapacityBuildingTypes = []ActivityType{
	ActivityWork,
	ActivityExercise,
	ActivityLearning,
}

// IsSystem reports whether the activity is emitted by the backend rather
// than the player.
func (t ActivityType) IsSystem() bool {
	return t == ActivitySeasonClose || t == ActivityMilestone
}

// IsRecovery reports whether the activity counts as a recovery action.
func (t ActivityType) IsRecovery() bool {
	for _, r := range RecoveryActivityTypes {
		if t == r {
			return true
		}
	}
	return false
}

// Season is the user's current progression season. Seasons scale base XP.
type Season string

const (
	SeasonSpring Season = "SPRING"
	SeasonSummer Season = "SUMMER"
	SeasonAutumn Season = "AUTUMN"
	SeasonWinter Season = "WINTER"
)

// Category is one of the five capability scores tracked per user.
type Category string

const (
	CategoryCapacity    Category = "CAPACITY"
	CategoryMomentum    Category = "MOMENTUM"
	CategoryStability   Category = "STABILITY"
	CategoryAlignment   Category = "ALIGNMENT"
	CategoryOptionality Category = "OPTIONALITY"
)

// Categories lists every capability score in a stable order.
var Categories = []Category{
	CategoryCapacity,
	CategoryMomentum,
	CategoryStability,
	CategoryAlignment,
	CategoryOptionality,
}

// CategoryXP holds per-category XP amounts, either as a base award table
// entry or as a realized award.
type CategoryXP struct {
	Capacity    int `json:"capacity"`
	Momentum    int `json:"momentum"`
	Stability   int `json:"stability"`
	Alignment   int `json:"alignment"`
	Optionality int `json:"optionality"`
}

// Get returns the amount for a single category.
func (c CategoryXP) Get(cat Category) int {
	switch cat {
	case CategoryCapacity:
		return c.Capacity
	case CategoryMomentum:
		return c.Momentum
	case CategoryStability:
		return c.Stability
	case CategoryAlignment:
		return c.Alignment
	case CategoryOptionality:
		return c.Optionality
	}
	return 0
}

// Add returns the element-wise sum of two CategoryXP values.
func (c CategoryXP) Add(other CategoryXP) CategoryXP {
	return CategoryXP{
		Capacity:    c.Capacity + other.Capacity,
		Momentum:    c.Momentum + other.Momentum,
		Stability:   c.Stability + other.Stability,
		Alignment:   c.Alignment + other.Alignment,
		Optionality: c.Optionality + other.Optionality,
	}
}

// ResourceChanges carries resource deltas attached to an action. Positive
// runway extends the perishable reserve, negative consumes it.
type ResourceChanges struct {
	Runway float64 `json:"runway,omitempty"`
}

// IsZero reports whether the change set carries no deltas.
func (r ResourceChanges) IsZero() bool {
	return r.Runway == 0
}
