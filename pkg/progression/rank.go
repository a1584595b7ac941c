// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package progression

// Rank is a named tier on the overall XP ladder.
type Rank string

const (
	RankNovice      Rank = "NOVICE"
	RankInitiate    Rank = "INITIATE"
	RankApprentice  Rank = "APPRENTICE"
	RankJourneyman  Rank = "JOURNEYMAN"
	RankAdept       Rank = "ADEPT"
	RankSpecialist  Rank = "SPECIALIST"
	RankExpert      Rank = "EXPERT"
	RankVeteran     Rank = "VETERAN"
	RankMaster      Rank = "MASTER"
	RankGrandmaster Rank = "GRANDMASTER"
)
