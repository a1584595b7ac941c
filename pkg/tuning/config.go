// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package tuning

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lifeworldos/progression-engine/pkg/progression"
)

// Config holds every numeric knob of the progression engine. Defaults()
// returns the canonical values; an operator can override any subset from a
// YAML file without touching code.
type Config struct {
	Energy  EnergyConfig  `yaml:"energy"`
	Decay   DecayConfig   `yaml:"decay"`
	Effort  EffortConfig  `yaml:"effort"`
	Balance BalanceConfig `yaml:"balance"`
	Burnout BurnoutConfig `yaml:"burnout"`
	Reward  RewardConfig  `yaml:"reward"`
}

// EnergyConfig covers daily budget, per-action costs, capacity caps and
// live burndown.
type EnergyConfig struct {
	DailyBase int `yaml:"daily_base"`

	// Costs maps activity types to energy cost. Unknown player activity
	// types fall back to DefaultCost; system events always cost zero.
	Costs       map[progression.ActivityType]int `yaml:"costs"`
	DefaultCost int                              `yaml:"default_cost"`

	// CapacityCaps is the step function from capacity to usable-energy cap,
	// evaluated in ascending Below order. CapDefault applies above the last
	// step.
	CapacityCaps []CapacityCapStep `yaml:"capacity_caps"`
	CapDefault   int               `yaml:"cap_default"`

	// BurndownPerHour is the live energy decay rate between ticks.
	BurndownPerHour float64 `yaml:"burndown_per_hour"`
}

// CapacityCapStep maps "capacity strictly below X" to an energy cap.
type CapacityCapStep struct {
	Below int `yaml:"below"`
	Cap   int `yaml:"cap"`
}

// DecayConfig covers runway and neglect decay.
type DecayConfig struct {
	RunwayDaily        float64 `yaml:"runway_daily"`
	RunwaySourceOffset float64 `yaml:"runway_source_offset"`
	CapacityWeekly     int     `yaml:"capacity_weekly"`
	AlignmentWeekly    int     `yaml:"alignment_weekly"`
}

// EffortConfig covers high-effort streak tracking and its weekly decay.
type EffortConfig struct {
	HighEffortRatio float64 `yaml:"high_effort_ratio"`
	Decay7Days      int     `yaml:"decay_7_days"`
	Decay14Days     int     `yaml:"decay_14_days"`
	Decay21Days     int     `yaml:"decay_21_days"`
}

// BalanceConfig covers over-optimisation penalties, chronic imbalance and
// weekly recovery.
type BalanceConfig struct {
	WorkDominanceRatio     float64 `yaml:"work_dominance_ratio"`
	SavingsDominanceRatio  float64 `yaml:"savings_dominance_ratio"`
	LearningDominanceRatio float64 `yaml:"learning_dominance_ratio"`

	WorkCapacityPenalty        int `yaml:"work_capacity_penalty"`
	WorkAlignmentPenalty       int `yaml:"work_alignment_penalty"`
	SavingsAlignmentPenalty    int `yaml:"savings_alignment_penalty"`
	LearningOptionalityPenalty int `yaml:"learning_optionality_penalty"`

	ImbalanceDominanceRatio float64 `yaml:"imbalance_dominance_ratio"`

	RecoveryMinActions int `yaml:"recovery_min_actions"`
	RecoveryMaxActions int `yaml:"recovery_max_actions"`
	RecoveryMinGain    int `yaml:"recovery_min_gain"`
	RecoveryMaxGain    int `yaml:"recovery_max_gain"`
}

// BurnoutConfig covers the burnout state machine and its penalties.
type BurnoutConfig struct {
	LowCapacityThreshold int     `yaml:"low_capacity_threshold"`
	TriggerStreak        int     `yaml:"trigger_streak"`
	ExitCapacity         int     `yaml:"exit_capacity"`
	EnergyCap            int     `yaml:"energy_cap"`
	XPMultiplier         float64 `yaml:"xp_multiplier"`
}

// RewardConfig covers season multipliers. Base XP tables live in
// pkg/reward; seasons are the only reward knob operators tune.
type RewardConfig struct {
	SeasonMultipliers map[progression.Season]float64 `yaml:"season_multipliers"`
}

// Defaults returns the canonical tuning. All engine behavior documented in
// the mechanics baseline derives from these numbers.
func Defaults() *Config {
	return &Config{
		Energy: EnergyConfig{
			DailyBase: 100,
			Costs: map[progression.ActivityType]int{
				progression.ActivityWork:     30,
				progression.ActivityExercise: 25,
				progression.ActivityLearning: 20,
				progression.ActivityRest:     18,
				progression.ActivitySavings:  15,
				progression.ActivityCustom:   20,
			},
			DefaultCost: 20,
			CapacityCaps: []CapacityCapStep{
				{Below: 30, Cap: 70},
				{Below: 60, Cap: 85},
				{Below: 80, Cap: 100},
			},
			CapDefault:      110,
			BurndownPerHour: 2.0,
		},
		Decay: DecayConfig{
			RunwayDaily:        0.1,
			RunwaySourceOffset: 0.05,
			CapacityWeekly:     2,
			AlignmentWeekly:    1,
		},
		Effort: EffortConfig{
			HighEffortRatio: 0.8,
			Decay7Days:      1,
			Decay14Days:     2,
			Decay21Days:     3,
		},
		Balance: BalanceConfig{
			WorkDominanceRatio:         0.6,
			SavingsDominanceRatio:      0.4,
			LearningDominanceRatio:     0.5,
			WorkCapacityPenalty:        5,
			WorkAlignmentPenalty:       3,
			SavingsAlignmentPenalty:    4,
			LearningOptionalityPenalty: 4,
			ImbalanceDominanceRatio:    0.7,
			RecoveryMinActions:         2,
			RecoveryMaxActions:         4,
			RecoveryMinGain:            1,
			RecoveryMaxGain:            2,
		},
		Burnout: BurnoutConfig{
			LowCapacityThreshold: 20,
			TriggerStreak:        3,
			ExitCapacity:         25,
			EnergyCap:            40,
			XPMultiplier:         0.3,
		},
		Reward: RewardConfig{
			SeasonMultipliers: map[progression.Season]float64{
				progression.SeasonSpring: 1.2,
				progression.SeasonSummer: 1.3,
				progression.SeasonAutumn: 1.2,
				progression.SeasonWinter: 1.1,
			},
		},
	}
}

// Load reads a tuning file and overlays it on Defaults(). A missing path
// returns the defaults unchanged. Supports environment variable expansion
// in the form ${VAR} or ${VAR:default}.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read tuning file %s: %w", path, err)
	}

	expanded := expandEnvVars(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse tuning YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tuning: %w", err)
	}

	return cfg, nil
}

// Validate checks the tuning for values the engine cannot operate with.
func (c *Config) Validate() error {
	if c.Energy.DailyBase <= 0 {
		return fmt.Errorf("energy.daily_base must be positive, got %d", c.Energy.DailyBase)
	}
	if c.Energy.BurndownPerHour < 0 {
		return fmt.Errorf("energy.burndown_per_hour must be non-negative, got %v", c.Energy.BurndownPerHour)
	}
	prev := -1
	for _, step := range c.Energy.CapacityCaps {
		if step.Below <= prev {
			return fmt.Errorf("energy.capacity_caps must have strictly increasing 'below' bounds")
		}
		if step.Cap <= 0 {
			return fmt.Errorf("energy.capacity_caps cap must be positive, got %d", step.Cap)
		}
		prev = step.Below
	}
	if c.Effort.HighEffortRatio <= 0 || c.Effort.HighEffortRatio > 1 {
		return fmt.Errorf("effort.high_effort_ratio must be in (0,1], got %v", c.Effort.HighEffortRatio)
	}
	for _, ratio := range []float64{
		c.Balance.WorkDominanceRatio,
		c.Balance.SavingsDominanceRatio,
		c.Balance.LearningDominanceRatio,
		c.Balance.ImbalanceDominanceRatio,
	} {
		if ratio <= 0 || ratio > 1 {
			return fmt.Errorf("balance dominance ratios must be in (0,1], got %v", ratio)
		}
	}
	if c.Balance.RecoveryMinActions >= c.Balance.RecoveryMaxActions {
		return fmt.Errorf("balance.recovery_min_actions must be below recovery_max_actions")
	}
	if c.Burnout.TriggerStreak < 1 {
		return fmt.Errorf("burnout.trigger_streak must be at least 1, got %d", c.Burnout.TriggerStreak)
	}
	if c.Burnout.ExitCapacity <= c.Burnout.LowCapacityThreshold {
		return fmt.Errorf("burnout.exit_capacity must exceed low_capacity_threshold")
	}
	if c.Burnout.XPMultiplier < 0 || c.Burnout.XPMultiplier > 1 {
		return fmt.Errorf("burnout.xp_multiplier must be in [0,1], got %v", c.Burnout.XPMultiplier)
	}
	for season, mult := range c.Reward.SeasonMultipliers {
		if mult <= 0 {
			return fmt.Errorf("reward.season_multipliers[%s] must be positive, got %v", season, mult)
		}
	}
	return nil
}

// expandEnvVars expands environment variables in the format ${VAR} or
// ${VAR:default}.
func expandEnvVars(s string) string {
	return os.Expand(s, func(key string) string {
		parts := strings.SplitN(key, ":", 2)
		varName := parts[0]
		defaultValue := ""
		if len(parts) == 2 {
			defaultValue = parts[1]
		}

		value := os.Getenv(varName)
		if value == "" {
			return defaultValue
		}
		return value
	})
}
