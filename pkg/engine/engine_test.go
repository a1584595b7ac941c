// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package engine

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"

	"github.com/lifeworldos/progression-engine/pkg/common"
	"github.com/lifeworldos/progression-engine/pkg/progression"
	"github.com/lifeworldos/progression-engine/pkg/reward"
	"github.com/lifeworldos/progression-engine/pkg/state"
	"github.com/lifeworldos/progression-engine/pkg/tuning"
)

// testClock is a settable clock injected into the engine.
type testClock struct {
	now time.Time
}

func (c *testClock) advanceDays(n int) {
	c.now = c.now.AddDate(0, 0, n)
}

func newTestEngine(t *testing.T, start time.Time) (*Engine, *state.Store, *redis.Client, *testClock) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := state.NewStore(client)

	eng := New(store, tuning.Defaults())
	clk := &testClock{now: start}
	eng.now = func() time.Time { return clk.now }

	return eng, store, client, clk
}

func testScope(t *testing.T) *common.Scope {
	scope := common.NewScope(context.Background(), t.Name())
	t.Cleanup(scope.Finish)
	return scope
}

func provisionUser(t *testing.T, eng *Engine, userID string, capacityScore int) {
	t.Helper()
	req := ProvisionRequest{
		Scores: progression.CategoryScores{
			Capacity:    capacityScore,
			Momentum:    50,
			Stability:   50,
			Alignment:   50,
			Optionality: 50,
		},
		Runway: 6.0,
		Season: progression.SeasonSpring,
	}
	if err := eng.Provision(testScope(t), userID, req); err != nil {
		t.Fatalf("Provision() error = %v", err)
	}
}

// setCapacity rewrites the persisted capacity score directly, bypassing the
// engine, to set up scenarios the weekly adjustments would take weeks to
// produce.
func setCapacity(t *testing.T, store *state.Store, client *redis.Client, userID string, value int) {
	t.Helper()
	ctx := context.Background()
	ledger, err := store.GetLedger(ctx, userID)
	if err != nil {
		t.Fatalf("GetLedger() error = %v", err)
	}
	ledger.Scores.Capacity = value
	data, err := json.Marshal(ledger)
	if err != nil {
		t.Fatalf("marshal ledger: %v", err)
	}
	if err := client.Set(ctx, "progression:ledger:"+userID, data, 0).Err(); err != nil {
		t.Fatalf("set ledger: %v", err)
	}
}

var day0 = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func TestEnsureCaughtUp_FirstTickAndIdempotence(t *testing.T) {
	eng, store, _, _ := newTestEngine(t, day0)
	provisionUser(t, eng, "u1", 65)

	// A never-ticked user gets exactly one tick, for today.
	result, err := eng.EnsureCaughtUp(testScope(t), "u1")
	if err != nil {
		t.Fatalf("EnsureCaughtUp() error = %v", err)
	}
	if result.TicksApplied != 1 {
		t.Errorf("TicksApplied = %d, expected 1", result.TicksApplied)
	}

	before, _ := store.GetLedger(context.Background(), "u1")

	// Calling again with no elapsed time is a no-op.
	result, err = eng.EnsureCaughtUp(testScope(t), "u1")
	if err != nil {
		t.Fatalf("EnsureCaughtUp() error = %v", err)
	}
	if result.TicksApplied != 0 {
		t.Errorf("second call TicksApplied = %d, expected 0", result.TicksApplied)
	}

	after, _ := store.GetLedger(context.Background(), "u1")
	if *before != *after {
		t.Errorf("second call mutated ledger: %+v != %+v", before, after)
	}
}

func TestEnsureCaughtUp_Unprovisioned(t *testing.T) {
	eng, _, _, _ := newTestEngine(t, day0)

	_, err := eng.EnsureCaughtUp(testScope(t), "ghost")
	if err == nil {
		t.Fatal("EnsureCaughtUp() expected error for unprovisioned user")
	}
	if !errors.Is(err, ErrUserNotProvisioned) {
		t.Errorf("error = %v, expected ErrUserNotProvisioned", err)
	}
}

func TestEnsureCaughtUp_ReplayDeterminism(t *testing.T) {
	eng, store, _, clk := newTestEngine(t, day0)
	provisionUser(t, eng, "batch", 65)
	provisionUser(t, eng, "daily", 65)

	// Establish a first tick for both on day 0.
	for _, u := range []string{"batch", "daily"} {
		if _, err := eng.EnsureCaughtUp(testScope(t), u); err != nil {
			t.Fatalf("EnsureCaughtUp(%s) error = %v", u, err)
		}
	}

	// "daily" advances one day at a time; "batch" catches up in one shot.
	for i := 0; i < 10; i++ {
		clk.advanceDays(1)
		if _, err := eng.EnsureCaughtUp(testScope(t), "daily"); err != nil {
			t.Fatalf("EnsureCaughtUp(daily) error = %v", err)
		}
	}
	result, err := eng.EnsureCaughtUp(testScope(t), "batch")
	if err != nil {
		t.Fatalf("EnsureCaughtUp(batch) error = %v", err)
	}
	if result.TicksApplied != 10 {
		t.Errorf("batch TicksApplied = %d, expected 10", result.TicksApplied)
	}

	ctx := context.Background()
	batchLedger, _ := store.GetLedger(ctx, "batch")
	dailyLedger, _ := store.GetLedger(ctx, "daily")
	if batchLedger.Scores != dailyLedger.Scores {
		t.Errorf("scores diverged: batch %+v, daily %+v", batchLedger.Scores, dailyLedger.Scores)
	}
	if math.Abs(batchLedger.Runway-dailyLedger.Runway) > 1e-9 {
		t.Errorf("runway diverged: batch %v, daily %v", batchLedger.Runway, dailyLedger.Runway)
	}

	batchState, _ := store.GetProgressionState(ctx, "batch")
	dailyState, _ := store.GetProgressionState(ctx, "daily")
	if !batchState.LastTickAt.Equal(*dailyState.LastTickAt) {
		t.Errorf("lastTickAt diverged: %v vs %v", batchState.LastTickAt, dailyState.LastTickAt)
	}
	if batchState.InBurnout != dailyState.InBurnout {
		t.Errorf("burnout flag diverged")
	}
}

func TestTick_RunwayDecay(t *testing.T) {
	eng, store, _, clk := newTestEngine(t, day0)
	provisionUser(t, eng, "u1", 65)

	if _, err := eng.EnsureCaughtUp(testScope(t), "u1"); err != nil {
		t.Fatalf("EnsureCaughtUp() error = %v", err)
	}
	clk.advanceDays(4)
	if _, err := eng.EnsureCaughtUp(testScope(t), "u1"); err != nil {
		t.Fatalf("EnsureCaughtUp() error = %v", err)
	}

	ledger, _ := store.GetLedger(context.Background(), "u1")
	// 5 ticks at 0.1 per day.
	if math.Abs(ledger.Runway-5.5) > 1e-9 {
		t.Errorf("Runway = %v, expected 5.5", ledger.Runway)
	}
}

func TestTick_NeglectAndWeeklyDecay(t *testing.T) {
	eng, store, _, clk := newTestEngine(t, day0)
	provisionUser(t, eng, "u1", 50)
	if _, err := eng.EnsureCaughtUp(testScope(t), "u1"); err != nil {
		t.Fatalf("EnsureCaughtUp() error = %v", err)
	}

	// One work action on day 3 is the only activity.
	ev := progression.ActivityEvent{
		ID:        "ev-work",
		UserID:    "u1",
		Type:      progression.ActivityWork,
		Timestamp: day0.AddDate(0, 0, 3).Add(14 * time.Hour),
		Season:    progression.SeasonSpring,
	}
	if err := store.AppendEvent(context.Background(), ev); err != nil {
		t.Fatalf("AppendEvent() error = %v", err)
	}

	clk.advanceDays(10)
	if _, err := eng.EnsureCaughtUp(testScope(t), "u1"); err != nil {
		t.Fatalf("EnsureCaughtUp() error = %v", err)
	}

	ledger, _ := store.GetLedger(context.Background(), "u1")
	// Day 7 weekly: 100% work distribution costs 5 capacity and 3 alignment
	// over-optimisation plus 2 capacity chronic imbalance. Day 10 sits
	// exactly one week after the day-3 action, so capacity neglect takes 2
	// more and alignment neglect 1.
	if ledger.Scores.Capacity != 41 {
		t.Errorf("Capacity = %d, expected 41", ledger.Scores.Capacity)
	}
	if ledger.Scores.Alignment != 46 {
		t.Errorf("Alignment = %d, expected 46", ledger.Scores.Alignment)
	}
	// Untouched categories hold.
	if ledger.Scores.Momentum != 50 || ledger.Scores.Optionality != 50 {
		t.Errorf("unrelated scores moved: %+v", ledger.Scores)
	}
}

func TestTick_FloorInvariant(t *testing.T) {
	eng, store, _, clk := newTestEngine(t, day0)
	provisionUser(t, eng, "u1", 22)
	if _, err := eng.EnsureCaughtUp(testScope(t), "u1"); err != nil {
		t.Fatalf("EnsureCaughtUp() error = %v", err)
	}

	// One work action anchors the neglect clocks, then months of silence.
	ev := progression.ActivityEvent{
		ID:        "ev-anchor",
		UserID:    "u1",
		Type:      progression.ActivityWork,
		Timestamp: day0.Add(14 * time.Hour),
		Season:    progression.SeasonSpring,
	}
	if err := store.AppendEvent(context.Background(), ev); err != nil {
		t.Fatalf("AppendEvent() error = %v", err)
	}

	clk.advanceDays(60)
	if _, err := eng.EnsureCaughtUp(testScope(t), "u1"); err != nil {
		t.Fatalf("EnsureCaughtUp() error = %v", err)
	}

	ledger, _ := store.GetLedger(context.Background(), "u1")
	for _, cat := range progression.Categories {
		score := ledger.Scores.Get(cat)
		if score < progression.ScoreFloor {
			t.Errorf("%s = %d, below floor %d", cat, score, progression.ScoreFloor)
		}
		if score > progression.ScoreMax {
			t.Errorf("%s = %d, above max", cat, score)
		}
	}
	// Weekly neglect plus the first week's penalties drove capacity to the
	// floor exactly, never through it.
	if ledger.Scores.Capacity != progression.ScoreFloor {
		t.Errorf("Capacity = %d, expected to rest at floor %d", ledger.Scores.Capacity, progression.ScoreFloor)
	}
}

func TestTick_EffortRatioUsesStartOfDayCapacity(t *testing.T) {
	eng, store, _, clk := newTestEngine(t, day0)
	provisionUser(t, eng, "u1", 30)
	if _, err := eng.EnsureCaughtUp(testScope(t), "u1"); err != nil {
		t.Fatalf("EnsureCaughtUp() error = %v", err)
	}

	// Anchor the capacity neglect clock on day 0, then spend 60 energy on
	// day 7, the day neglect drops capacity from 30 to 28. At 30 the cap is
	// 85 and 60/85 is below the high-effort threshold; at the post-decay 28
	// the cap would be 70 and the same day would wrongly grade as high
	// effort.
	events := []progression.ActivityEvent{
		{ID: "ev-anchor", UserID: "u1", Type: progression.ActivityWork,
			Timestamp: day0.Add(14 * time.Hour), Season: progression.SeasonSpring},
		{ID: "ev-w1", UserID: "u1", Type: progression.ActivityWork,
			Timestamp: day0.AddDate(0, 0, 7).Add(10 * time.Hour), Season: progression.SeasonSpring},
		{ID: "ev-w2", UserID: "u1", Type: progression.ActivityWork,
			Timestamp: day0.AddDate(0, 0, 7).Add(11 * time.Hour), Season: progression.SeasonSpring},
	}
	for _, ev := range events {
		if err := store.AppendEvent(context.Background(), ev); err != nil {
			t.Fatalf("AppendEvent(%s) error = %v", ev.ID, err)
		}
	}

	clk.advanceDays(7)
	if _, err := eng.EnsureCaughtUp(testScope(t), "u1"); err != nil {
		t.Fatalf("EnsureCaughtUp() error = %v", err)
	}

	st, err := store.GetProgressionState(context.Background(), "u1")
	if err != nil {
		t.Fatalf("GetProgressionState() error = %v", err)
	}
	if st.ConsecutiveHighEffortDays != 0 {
		t.Errorf("ConsecutiveHighEffortDays = %d, expected 0 (ratio graded against start-of-day capacity)",
			st.ConsecutiveHighEffortDays)
	}
}

func TestBurnout_EntryOnThirdTick(t *testing.T) {
	eng, store, _, clk := newTestEngine(t, day0)
	provisionUser(t, eng, "u1", 15)

	ctx := context.Background()
	for dayN := 0; dayN < 3; dayN++ {
		if dayN > 0 {
			clk.advanceDays(1)
		}
		if _, err := eng.EnsureCaughtUp(testScope(t), "u1"); err != nil {
			t.Fatalf("EnsureCaughtUp() day %d error = %v", dayN, err)
		}
		st, _ := store.GetProgressionState(ctx, "u1")
		expectBurnout := dayN == 2
		if st.InBurnout != expectBurnout {
			t.Fatalf("day %d: InBurnout = %v, expected %v", dayN, st.InBurnout, expectBurnout)
		}
		if st.ConsecutiveLowCapacityDays != dayN+1 {
			t.Errorf("day %d: streak = %d, expected %d", dayN, st.ConsecutiveLowCapacityDays, dayN+1)
		}
	}

	st, _ := store.GetProgressionState(ctx, "u1")
	if st.BurnoutTriggeredAt == nil || !st.BurnoutTriggeredAt.Equal(day0.AddDate(0, 0, 2)) {
		t.Errorf("BurnoutTriggeredAt = %v, expected day 2", st.BurnoutTriggeredAt)
	}
}

func TestBurnout_ExitRequiresAllConditions(t *testing.T) {
	eng, store, client, clk := newTestEngine(t, day0)
	provisionUser(t, eng, "u1", 15)

	// Three low-capacity ticks put the user in burnout on day 2.
	for dayN := 0; dayN < 3; dayN++ {
		if dayN > 0 {
			clk.advanceDays(1)
		}
		if _, err := eng.EnsureCaughtUp(testScope(t), "u1"); err != nil {
			t.Fatalf("EnsureCaughtUp() error = %v", err)
		}
	}

	ctx := context.Background()

	// Capacity recovers but no recovery action is logged: still in burnout.
	setCapacity(t, store, client, "u1", 30)
	clk.advanceDays(1)
	if _, err := eng.EnsureCaughtUp(testScope(t), "u1"); err != nil {
		t.Fatalf("EnsureCaughtUp() error = %v", err)
	}
	st, _ := store.GetProgressionState(ctx, "u1")
	if !st.InBurnout {
		t.Fatal("exited burnout without recovery evidence")
	}

	// One rest action provides evidence; the next tick clears the state.
	result, err := eng.ApplyAction(testScope(t), "u1", ActionRequest{Type: progression.ActivityRest})
	if err != nil {
		t.Fatalf("ApplyAction(rest) error = %v", err)
	}
	if !result.Accepted {
		t.Fatalf("rest rejected: %s", result.Rejection)
	}
	if result.OverallXP != 0 {
		t.Errorf("rest OverallXP = %d, expected 0", result.OverallXP)
	}

	clk.advanceDays(1)
	if _, err := eng.EnsureCaughtUp(testScope(t), "u1"); err != nil {
		t.Fatalf("EnsureCaughtUp() error = %v", err)
	}
	st, _ = store.GetProgressionState(ctx, "u1")
	if st.InBurnout {
		t.Fatal("still in burnout after capacity, evidence and an elapsed tick")
	}
	if st.BurnoutTriggeredAt != nil {
		t.Errorf("BurnoutTriggeredAt = %v, expected nil", st.BurnoutTriggeredAt)
	}
	if st.ConsecutiveLowCapacityDays != 0 {
		t.Errorf("streak = %d, expected 0 after recovery", st.ConsecutiveLowCapacityDays)
	}
}

func TestApplyAction_ExampleScenario(t *testing.T) {
	eng, _, _, _ := newTestEngine(t, day0)
	provisionUser(t, eng, "u1", 65)

	result, err := eng.ApplyAction(testScope(t), "u1", ActionRequest{Type: progression.ActivityWork})
	if err != nil {
		t.Fatalf("ApplyAction() error = %v", err)
	}
	if !result.Accepted {
		t.Fatalf("work rejected: %s", result.Rejection)
	}

	// Base 500 scaled by spring 1.2 = 600; capacity 65 is the neutral band.
	if result.OverallXP != 600 {
		t.Errorf("OverallXP = %d, expected 600", result.OverallXP)
	}
	if result.SeasonMultiplier != 1.2 {
		t.Errorf("SeasonMultiplier = %v, expected 1.2", result.SeasonMultiplier)
	}
	if result.Band.XPEfficiency != 1.0 {
		t.Errorf("Band.XPEfficiency = %v, expected 1.0", result.Band.XPEfficiency)
	}
	if result.Energy.Before != 100 || result.Energy.After != 70 {
		t.Errorf("energy %d -> %d, expected 100 -> 70", result.Energy.Before, result.Energy.After)
	}
	expectedCat := progression.CategoryXP{Capacity: 120, Momentum: 360, Stability: 60}
	if result.CategoryXP != expectedCat {
		t.Errorf("CategoryXP = %+v, expected %+v", result.CategoryXP, expectedCat)
	}
	if result.Rank != progression.RankNovice || result.Level != 1 {
		t.Errorf("rank/level = %s/%d, expected NOVICE/1", result.Rank, result.Level)
	}
}

func TestApplyAction_InsufficientEnergy(t *testing.T) {
	eng, store, _, _ := newTestEngine(t, day0)
	provisionUser(t, eng, "u1", 65)

	// Three work actions drain 90 of the 100 daily energy.
	for i := 0; i < 3; i++ {
		result, err := eng.ApplyAction(testScope(t), "u1", ActionRequest{Type: progression.ActivityWork})
		if err != nil {
			t.Fatalf("ApplyAction() #%d error = %v", i, err)
		}
		if !result.Accepted {
			t.Fatalf("ApplyAction() #%d rejected: %s", i, result.Rejection)
		}
	}

	ctx := context.Background()
	before, _ := store.GetLedger(ctx, "u1")

	result, err := eng.ApplyAction(testScope(t), "u1", ActionRequest{Type: progression.ActivityWork})
	if err != nil {
		t.Fatalf("ApplyAction() error = %v", err)
	}
	if result.Accepted {
		t.Fatal("fourth work action accepted with 10 energy left")
	}
	if result.Rejection != RejectInsufficientEnergy {
		t.Errorf("Rejection = %s, expected %s", result.Rejection, RejectInsufficientEnergy)
	}
	if result.Energy.Before != 10 || result.Energy.Cost != 30 {
		t.Errorf("energy figures = %+v, expected before 10 cost 30", result.Energy)
	}

	// Rejection mutates nothing.
	after, _ := store.GetLedger(ctx, "u1")
	if *before != *after {
		t.Errorf("rejected action mutated ledger")
	}
	events, _ := store.EventsInRange(ctx, "u1", nil, day0, day0.AddDate(0, 0, 1))
	if len(events) != 3 {
		t.Errorf("event count = %d, expected 3", len(events))
	}
}

func TestApplyAction_BurnoutRestrictsWork(t *testing.T) {
	eng, _, _, clk := newTestEngine(t, day0)
	provisionUser(t, eng, "u1", 15)

	for dayN := 0; dayN < 3; dayN++ {
		if dayN > 0 {
			clk.advanceDays(1)
		}
		if _, err := eng.EnsureCaughtUp(testScope(t), "u1"); err != nil {
			t.Fatalf("EnsureCaughtUp() error = %v", err)
		}
	}

	result, err := eng.ApplyAction(testScope(t), "u1", ActionRequest{Type: progression.ActivityWork})
	if err != nil {
		t.Fatalf("ApplyAction(work) error = %v", err)
	}
	if result.Accepted || result.Rejection != RejectBurnoutRestricted {
		t.Fatalf("work in burnout: accepted=%v rejection=%s", result.Accepted, result.Rejection)
	}

	// Recovery actions stay available, exempt from the XP penalty but still
	// squeezed by the low-capacity band.
	result, err = eng.ApplyAction(testScope(t), "u1", ActionRequest{Type: progression.ActivityExercise})
	if err != nil {
		t.Fatalf("ApplyAction(exercise) error = %v", err)
	}
	if !result.Accepted {
		t.Fatalf("exercise rejected in burnout: %s", result.Rejection)
	}
	if result.BurnoutMultiplier != 1.0 {
		t.Errorf("BurnoutMultiplier = %v, expected 1.0 for recovery", result.BurnoutMultiplier)
	}
	// 200 base, spring 1.2 = 240, band 0-20 = x0.6.
	if result.OverallXP != 144 {
		t.Errorf("OverallXP = %d, expected 144", result.OverallXP)
	}
	if result.Energy.Cap != 40 {
		t.Errorf("Energy.Cap = %d, expected burnout cap 40", result.Energy.Cap)
	}
}

func TestApplyAction_BurnoutPenalisesNonRecovery(t *testing.T) {
	eng, store, client, clk := newTestEngine(t, day0)
	provisionUser(t, eng, "u1", 15)

	for dayN := 0; dayN < 3; dayN++ {
		if dayN > 0 {
			clk.advanceDays(1)
		}
		if _, err := eng.EnsureCaughtUp(testScope(t), "u1"); err != nil {
			t.Fatalf("EnsureCaughtUp() error = %v", err)
		}
	}
	// Lift capacity into the neutral band so only the burnout multiplier
	// moves the number.
	setCapacity(t, store, client, "u1", 65)

	result, err := eng.ApplyAction(testScope(t), "u1", ActionRequest{Type: progression.ActivityCustom, Override: overrideOverall(1000)})
	if err != nil {
		t.Fatalf("ApplyAction(custom) error = %v", err)
	}
	if !result.Accepted {
		t.Fatalf("custom rejected: %s", result.Rejection)
	}
	// 1000 base, spring 1.2 = 1200, band x1.0, burnout x0.3.
	if result.OverallXP != 360 {
		t.Errorf("OverallXP = %d, expected 360", result.OverallXP)
	}
	if result.BurnoutMultiplier != 0.3 {
		t.Errorf("BurnoutMultiplier = %v, expected 0.3", result.BurnoutMultiplier)
	}
}

func TestApplyAction_RunwayGainScaledByBand(t *testing.T) {
	eng, store, _, _ := newTestEngine(t, day0)
	provisionUser(t, eng, "u1", 30) // reward efficiency x0.9

	result, err := eng.ApplyAction(testScope(t), "u1", ActionRequest{
		Type:      progression.ActivitySavings,
		Resources: progression.ResourceChanges{Runway: 1.0},
	})
	if err != nil {
		t.Fatalf("ApplyAction(savings) error = %v", err)
	}
	if !result.Accepted {
		t.Fatalf("savings rejected: %s", result.Rejection)
	}
	if math.Abs(result.Event.Resources.Runway-0.9) > 1e-9 {
		t.Errorf("event runway gain = %v, expected 0.9", result.Event.Resources.Runway)
	}

	// The first tick already drained 0.1 before the gain landed.
	ledger, _ := store.GetLedger(context.Background(), "u1")
	if math.Abs(ledger.Runway-6.8) > 1e-9 {
		t.Errorf("Runway = %v, expected 6.8", ledger.Runway)
	}
}

func TestGetSnapshot_LiveEnergy(t *testing.T) {
	eng, _, _, clk := newTestEngine(t, day0)
	provisionUser(t, eng, "u1", 80)

	// Ten hours into the day, 20 energy has burned down.
	clk.now = day0.Add(10 * time.Hour)
	snap, err := eng.GetSnapshot(testScope(t), "u1")
	if err != nil {
		t.Fatalf("GetSnapshot() error = %v", err)
	}

	if snap.Energy.Current != 80 {
		t.Errorf("Energy.Current = %d, expected 80", snap.Energy.Current)
	}
	if snap.EnergyCap != 110 {
		t.Errorf("EnergyCap = %d, expected 110", snap.EnergyCap)
	}
	if snap.UsableEnergy != 80 {
		t.Errorf("UsableEnergy = %d, expected 80", snap.UsableEnergy)
	}
	if snap.Energy.HoursToDeplete != 40 {
		t.Errorf("HoursToDeplete = %v, expected 40", snap.Energy.HoursToDeplete)
	}
	if snap.Rank != progression.RankNovice || snap.XPToNextRank != 1000 {
		t.Errorf("rank = %s, XPToNextRank = %d", snap.Rank, snap.XPToNextRank)
	}
}

func overrideOverall(v int) *reward.Override {
	return &reward.Override{Overall: &v}
}
