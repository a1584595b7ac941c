// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package state persists the engine's aggregates in Redis: JSON documents
// per user for the progression, ledger and energy aggregates, and a sorted
// set per user for the append-only activity log. The engine never caches
// across tick boundaries; every decision re-reads persisted state, which is
// what makes retries safe.
package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/lifeworldos/progression-engine/pkg/progression"
)

const (
	stateKeyPrefix    = "progression:state:"
	ledgerKeyPrefix   = "progression:ledger:"
	energyKeyPrefix   = "progression:energy:"
	activityKeyPrefix = "progression:activity:"
	activeUsersKey    = "progression:active_users"
)

// ErrNotFound is returned when a user has no persisted aggregate. Account
// provisioning is the caller's responsibility; the engine treats this as a
// fatal precondition failure.
var ErrNotFound = errors.New("aggregate not found")

// Store is the Redis-backed implementation of the engine's persistence
// collaborator.
type Store struct {
	client *redis.Client
}

// NewStore creates a Store on an established client.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func stateKey(userID string) string    { return stateKeyPrefix + userID }
func ledgerKey(userID string) string   { return ledgerKeyPrefix + userID }
func energyKey(userID string) string   { return energyKeyPrefix + userID }
func activityKey(userID string) string { return activityKeyPrefix + userID }

// getJSON loads and unmarshals a single aggregate document.
func (s *Store) getJSON(ctx context.Context, key string, out interface{}) error {
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return nil
}

// GetProgressionState retrieves the per-user temporal aggregate.
func (s *Store) GetProgressionState(ctx context.Context, userID string) (*progression.ProgressionState, error) {
	var st progression.ProgressionState
	if err := s.getJSON(ctx, stateKey(userID), &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// GetLedger retrieves the per-user resource ledger.
func (s *Store) GetLedger(ctx context.Context, userID string) (*progression.ResourceLedger, error) {
	var l progression.ResourceLedger
	if err := s.getJSON(ctx, ledgerKey(userID), &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// GetEnergy retrieves the per-user energy aggregate.
func (s *Store) GetEnergy(ctx context.Context, userID string) (*progression.EnergyState, error) {
	var e progression.EnergyState
	if err := s.getJSON(ctx, energyKey(userID), &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Provision creates the three aggregates for a new account in one
// transaction. Category scores are seeded by onboarding; the engine only
// requires that they exist.
func (s *Store) Provision(ctx context.Context, userID string, st *progression.ProgressionState, ledger *progression.ResourceLedger, energy *progression.EnergyState) error {
	stData, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to marshal state for user %s: %w", userID, err)
	}
	ledgerData, err := json.Marshal(ledger)
	if err != nil {
		return fmt.Errorf("failed to marshal ledger for user %s: %w", userID, err)
	}
	energyData, err := json.Marshal(energy)
	if err != nil {
		return fmt.Errorf("failed to marshal energy for user %s: %w", userID, err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, stateKey(userID), stData, 0)
		pipe.Set(ctx, ledgerKey(userID), ledgerData, 0)
		pipe.Set(ctx, energyKey(userID), energyData, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to provision user %s: %w", userID, err)
	}

	logrus.Infof("provisioned progression aggregates for user %s", userID)
	return nil
}

// Delete removes every aggregate for a user, including the activity log.
// Only used when the account itself is deleted.
func (s *Store) Delete(ctx context.Context, userID string) error {
	keys := []string{stateKey(userID), ledgerKey(userID), energyKey(userID), activityKey(userID)}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete aggregates for user %s: %w", userID, err)
	}
	s.client.ZRem(ctx, activeUsersKey, userID)

	logrus.Infof("deleted progression aggregates for user %s", userID)
	return nil
}
