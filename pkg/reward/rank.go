// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package reward

import "github.com/lifeworldos/progression-engine/pkg/progression"

// Threshold is one step of the rank ladder. MaxXP is zero for the final,
// open-ended rank.
type Threshold struct {
	Rank  progression.Rank
	MinXP int
	MaxXP int
}

// Thresholds is the overall-XP rank ladder, ascending.
var Thresholds = []Threshold{
	{Rank: progression.RankNovice, MinXP: 0, MaxXP: 1000},
	{Rank: progression.RankInitiate, MinXP: 1000, MaxXP: 5000},
	{Rank: progression.RankApprentice, MinXP: 5000, MaxXP: 10000},
	{Rank: progression.RankJourneyman, MinXP: 10000, MaxXP: 20000},
	{Rank: progression.RankAdept, MinXP: 20000, MaxXP: 35000},
	{Rank: progression.RankSpecialist, MinXP: 35000, MaxXP: 55000},
	{Rank: progression.RankExpert, MinXP: 55000, MaxXP: 80000},
	{Rank: progression.RankVeteran, MinXP: 80000, MaxXP: 110000},
	{Rank: progression.RankMaster, MinXP: 110000, MaxXP: 150000},
	{Rank: progression.RankGrandmaster, MinXP: 150000},
}

const (
	overallLevelStep  = 5000
	categoryLevelStep = 1000
)

// RankForXP returns the rank a lifetime overall XP total earns.
func RankForXP(overallXP int) progression.Rank {
	for i := len(Thresholds) - 1; i >= 0; i-- {
		if overallXP >= Thresholds[i].MinXP {
			return Thresholds[i].Rank
		}
	}
	return progression.RankNovice
}

// OverallLevel maps overall XP to a level, starting at 1.
func OverallLevel(overallXP int) int {
	return overallXP/overallLevelStep + 1
}

// CategoryLevel maps a single category's XP to a level, starting at 1.
func CategoryLevel(categoryXP int) int {
	return categoryXP/categoryLevelStep + 1
}

// XPToNextRank returns how much XP remains until the next rank, or zero at
// the top of the ladder.
func XPToNextRank(overallXP int) int {
	for _, t := range Thresholds {
		if overallXP < t.MinXP {
			return t.MinXP - overallXP
		}
	}
	return 0
}

// RankProgress returns the fraction [0,1] of the way through the current
// rank's XP range; 1 at the final rank.
func RankProgress(overallXP int) float64 {
	for _, t := range Thresholds {
		if overallXP >= t.MinXP && (t.MaxXP == 0 || overallXP < t.MaxXP) {
			if t.MaxXP == 0 {
				return 1
			}
			span := float64(t.MaxXP - t.MinXP)
			frac := float64(overallXP-t.MinXP) / span
			if frac < 0 {
				return 0
			}
			if frac > 1 {
				return 1
			}
			return frac
		}
	}
	return 0
}
