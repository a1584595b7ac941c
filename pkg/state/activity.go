// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package state

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/lifeworldos/progression-engine/pkg/progression"
)

// Activity log layout: one sorted set per user, scored by unix
// milliseconds, members are JSON-encoded events. Events carry a UUID so
// two events in the same millisecond stay distinct members.

// AppendEvent writes one immutable event to the user's log and refreshes
// the active-user index. Used for system events; player actions go through
// CommitAction so the append shares the action's transaction.
func (s *Store) AppendEvent(ctx context.Context, ev progression.ActivityEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event for user %s: %w", ev.UserID, err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAdd(ctx, activityKey(ev.UserID), &redis.Z{
			Score:  float64(ev.Timestamp.UnixMilli()),
			Member: data,
		})
		pipe.ZAdd(ctx, activeUsersKey, &redis.Z{
			Score:  float64(ev.Timestamp.UnixMilli()),
			Member: ev.UserID,
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to append event for user %s: %w", ev.UserID, err)
	}
	return nil
}

// typeSet builds a lookup from a type filter; nil means all types match.
func typeSet(types []progression.ActivityType) map[progression.ActivityType]bool {
	if types == nil {
		return nil
	}
	set := make(map[progression.ActivityType]bool, len(types))
	for _, t := range types {
		set[t] = true
	}
	return set
}

func matches(set map[progression.ActivityType]bool, t progression.ActivityType) bool {
	return set == nil || set[t]
}

// EventsInRange returns the user's events with from <= timestamp < to,
// optionally restricted to a type set, in chronological order.
func (s *Store) EventsInRange(ctx context.Context, userID string, types []progression.ActivityType, from, to time.Time) ([]progression.ActivityEvent, error) {
	members, err := s.client.ZRangeByScore(ctx, activityKey(userID), &redis.ZRangeBy{
		Min: strconv.FormatInt(from.UnixMilli(), 10),
		Max: "(" + strconv.FormatInt(to.UnixMilli(), 10),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to range activity log for user %s: %w", userID, err)
	}

	set := typeSet(types)
	events := make([]progression.ActivityEvent, 0, len(members))
	for _, m := range members {
		var ev progression.ActivityEvent
		if err := json.Unmarshal([]byte(m), &ev); err != nil {
			return nil, fmt.Errorf("failed to unmarshal event for user %s: %w", userID, err)
		}
		if matches(set, ev.Type) {
			events = append(events, ev)
		}
	}
	return events, nil
}

// LastEventBefore returns the most recent event strictly before the given
// time matching the type set, or nil when none exists. Pages backwards in
// small batches so a long log with a sparse type is not fully loaded.
func (s *Store) LastEventBefore(ctx context.Context, userID string, types []progression.ActivityType, before time.Time) (*progression.ActivityEvent, error) {
	const pageSize = 64

	set := typeSet(types)
	max := "(" + strconv.FormatInt(before.UnixMilli(), 10)
	offset := int64(0)

	for {
		members, err := s.client.ZRevRangeByScore(ctx, activityKey(userID), &redis.ZRangeBy{
			Min:    "-inf",
			Max:    max,
			Offset: offset,
			Count:  pageSize,
		}).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity log for user %s: %w", userID, err)
		}
		if len(members) == 0 {
			return nil, nil
		}

		for _, m := range members {
			var ev progression.ActivityEvent
			if err := json.Unmarshal([]byte(m), &ev); err != nil {
				return nil, fmt.Errorf("failed to unmarshal event for user %s: %w", userID, err)
			}
			if matches(set, ev.Type) {
				return &ev, nil
			}
		}

		offset += int64(len(members))
	}
}

// HasEventSince reports whether any event of the given types was logged at
// or after the given time.
func (s *Store) HasEventSince(ctx context.Context, userID string, types []progression.ActivityType, since time.Time) (bool, error) {
	members, err := s.client.ZRangeByScore(ctx, activityKey(userID), &redis.ZRangeBy{
		Min: strconv.FormatInt(since.UnixMilli(), 10),
		Max: "+inf",
	}).Result()
	if err != nil {
		return false, fmt.Errorf("failed to range activity log for user %s: %w", userID, err)
	}

	set := typeSet(types)
	for _, m := range members {
		var ev progression.ActivityEvent
		if err := json.Unmarshal([]byte(m), &ev); err != nil {
			return false, fmt.Errorf("failed to unmarshal event for user %s: %w", userID, err)
		}
		if matches(set, ev.Type) {
			return true, nil
		}
	}
	return false, nil
}

// ActiveUsers lists users whose last activity falls at or after the given
// time. The catch-up sweeper uses this to bound its scan.
func (s *Store) ActiveUsers(ctx context.Context, since time.Time) ([]string, error) {
	users, err := s.client.ZRangeByScore(ctx, activeUsersKey, &redis.ZRangeBy{
		Min: strconv.FormatInt(since.UnixMilli(), 10),
		Max: "+inf",
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list active users: %w", err)
	}
	return users, nil
}
