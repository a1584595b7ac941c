// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package decay

import (
	"math"
	"testing"
	"time"

	"github.com/lifeworldos/progression-engine/pkg/tuning"
)

func TestRunwayDecay(t *testing.T) {
	cfg := tuning.Defaults().Decay

	tests := []struct {
		name     string
		current  float64
		sources  int
		expected float64
	}{
		{"no income sources", 6.0, 0, 5.9},
		{"one source halves drain", 6.0, 1, 5.95},
		{"two sources cancel drain", 6.0, 2, 6.0},
		{"many sources cannot grow runway", 6.0, 5, 6.0},
		{"floors at zero", 0.05, 0, 0},
		{"already zero", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RunwayDecay(tt.current, tt.sources, cfg)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("RunwayDecay(%v, %d) = %v, expected %v",
					tt.current, tt.sources, result, tt.expected)
			}
		})
	}
}

func TestOnWeekBoundary(t *testing.T) {
	day := func(n int) time.Time {
		return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
	}
	action := day(0).Add(14 * time.Hour)

	tests := []struct {
		name     string
		last     *time.Time
		tick     time.Time
		expected bool
	}{
		{"never acted", nil, day(7), false},
		{"under a week", &action, day(6), false},
		{"exactly seven days", &action, day(7), true},
		{"eighth day is not a boundary", &action, day(8), false},
		{"fourteen days", &action, day(14), true},
		{"mid second week", &action, day(10), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := OnWeekBoundary(tt.last, tt.tick); result != tt.expected {
				t.Errorf("OnWeekBoundary() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestNeglectDecay(t *testing.T) {
	day := func(n int) time.Time {
		return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
	}
	action := day(0)

	tests := []struct {
		name     string
		current  int
		amount   int
		last     *time.Time
		tick     time.Time
		expected int
	}{
		{"boundary decays", 50, 2, &action, day(7), 48},
		{"off boundary untouched", 50, 2, &action, day(8), 50},
		{"never acted untouched", 50, 2, nil, day(7), 50},
		{"clamps at floor", 21, 2, &action, day(7), 20},
		{"below floor untouched", 15, 2, &action, day(7), 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NeglectDecay(tt.current, tt.amount, tt.last, tt.tick)
			if result != tt.expected {
				t.Errorf("NeglectDecay(%d) = %d, expected %d", tt.current, result, tt.expected)
			}
		})
	}
}
