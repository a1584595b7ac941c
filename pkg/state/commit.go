// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package state

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/lifeworldos/progression-engine/pkg/progression"
)

// TickWrite is the complete result of one day's tick, persisted as a unit.
type TickWrite struct {
	State  *progression.ProgressionState
	Ledger *progression.ResourceLedger
	Energy *progression.EnergyState
}

// CommitTick persists a single day's tick atomically. The persisted
// LastTickAt is re-checked under WATCH against the day being applied: if
// another caller already ticked this day (or a later one), the commit is a
// silent no-op and applied is false. A failed attempt leaves nothing
// partially written; the whole day can be recomputed from persisted inputs.
func (s *Store) CommitTick(ctx context.Context, userID string, write TickWrite) (applied bool, err error) {
	day := progression.StartOfDay(*write.State.LastTickAt)

	txErr := s.client.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, stateKey(userID)).Result()
		if err == redis.Nil {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get state for user %s: %w", userID, err)
		}

		var persisted progression.ProgressionState
		if err := json.Unmarshal([]byte(data), &persisted); err != nil {
			return fmt.Errorf("failed to unmarshal state for user %s: %w", userID, err)
		}

		// Idempotency guard: this day (or a later one) is already applied.
		if persisted.LastTickAt != nil && !progression.StartOfDay(*persisted.LastTickAt).Before(day) {
			return nil
		}

		stData, err := json.Marshal(write.State)
		if err != nil {
			return fmt.Errorf("failed to marshal state for user %s: %w", userID, err)
		}
		ledgerData, err := json.Marshal(write.Ledger)
		if err != nil {
			return fmt.Errorf("failed to marshal ledger for user %s: %w", userID, err)
		}
		energyData, err := json.Marshal(write.Energy)
		if err != nil {
			return fmt.Errorf("failed to marshal energy for user %s: %w", userID, err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, stateKey(userID), stData, 0)
			pipe.Set(ctx, ledgerKey(userID), ledgerData, 0)
			pipe.Set(ctx, energyKey(userID), energyData, 0)
			return nil
		})
		if err != nil {
			return err
		}

		applied = true
		return nil
	}, stateKey(userID))

	if txErr == redis.TxFailedErr {
		// Lost the race with a concurrent writer; the caller re-derives the
		// day from persisted state and retries safely.
		logrus.Warnf("tick commit conflict for user %s on %s", userID, day.Format("2006-01-02"))
		return false, fmt.Errorf("tick commit conflict for user %s: %w", userID, txErr)
	}
	if txErr != nil {
		return false, txErr
	}
	return applied, nil
}

// ActionWrite is the complete effect of one player action: updated ledger
// and energy plus the event that evidences it, persisted as one unit.
type ActionWrite struct {
	Ledger *progression.ResourceLedger
	Energy *progression.EnergyState
	Event  progression.ActivityEvent
}

// CommitAction persists an action's effects atomically. The event append
// shares the transaction so the log can never disagree with the ledger.
func (s *Store) CommitAction(ctx context.Context, userID string, write ActionWrite) error {
	ledgerData, err := json.Marshal(write.Ledger)
	if err != nil {
		return fmt.Errorf("failed to marshal ledger for user %s: %w", userID, err)
	}
	energyData, err := json.Marshal(write.Energy)
	if err != nil {
		return fmt.Errorf("failed to marshal energy for user %s: %w", userID, err)
	}
	eventData, err := json.Marshal(write.Event)
	if err != nil {
		return fmt.Errorf("failed to marshal event for user %s: %w", userID, err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, ledgerKey(userID), ledgerData, 0)
		pipe.Set(ctx, energyKey(userID), energyData, 0)
		pipe.ZAdd(ctx, activityKey(userID), &redis.Z{
			Score:  float64(write.Event.Timestamp.UnixMilli()),
			Member: eventData,
		})
		pipe.ZAdd(ctx, activeUsersKey, &redis.Z{
			Score:  float64(write.Event.Timestamp.UnixMilli()),
			Member: userID,
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to commit action for user %s: %w", userID, err)
	}
	return nil
}
