// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package energy

import (
	"math"
	"time"

	"github.com/lifeworldos/progression-engine/pkg/progression"
)

// Burndown describes the live, continuously decaying view of stored energy.
// It is derived on demand and never persisted; the daily tick's hard reset
// and this read path must not double-subtract.
type Burndown struct {
	Current        int
	Restored       int
	Decayed        int
	HoursElapsed   float64
	RatePerHour    float64
	HoursToDeplete float64 // zero when already depleted
}

// LiveEnergy computes the current energy given the stored restoration state
// and the wall clock. Floored at zero, rounded down.
func (b *Budget) LiveEnergy(state progression.EnergyState, now time.Time) int {
	return b.LiveBurndown(state, now).Current
}

// LiveBurndown computes the full burndown view.
func (b *Budget) LiveBurndown(state progression.EnergyState, now time.Time) Burndown {
	hours := now.Sub(state.RestoredAt).Hours()
	if hours < 0 {
		hours = 0
	}

	decayed := hours * b.cfg.BurndownPerHour
	remaining := float64(state.Current) - decayed
	if remaining < 0 {
		remaining = 0
	}

	hoursToDeplete := 0.0
	if remaining > 0 && b.cfg.BurndownPerHour > 0 {
		hoursToDeplete = remaining / b.cfg.BurndownPerHour
	}

	return Burndown{
		Current:        int(math.Floor(remaining)),
		Restored:       state.Current,
		Decayed:        int(math.Floor(decayed)),
		HoursElapsed:   hours,
		RatePerHour:    b.cfg.BurndownPerHour,
		HoursToDeplete: hoursToDeplete,
	}
}
