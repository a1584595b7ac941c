// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package worker runs the catch-up sweeper: a background loop that replays
// missing daily ticks for recently active users, so lapsed accounts are
// already up to date before their next request arrives.
package worker

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/lifeworldos/progression-engine/pkg/common"
	"github.com/lifeworldos/progression-engine/pkg/engine"
	"github.com/lifeworldos/progression-engine/pkg/metrics"
	"github.com/lifeworldos/progression-engine/pkg/state"
)

// CatchupWorker periodically sweeps the active-user index and replays
// missing ticks. Sweeps are safe to overlap with live requests because the
// tick commit is idempotent per day.
type CatchupWorker struct {
	store    *state.Store
	engine   *engine.Engine
	interval time.Duration
	lookback time.Duration

	stop chan struct{}
	done chan struct{}
}

// NewCatchupWorker creates a sweeper over users active within lookback,
// sweeping every interval.
func NewCatchupWorker(store *state.Store, eng *engine.Engine, interval, lookback time.Duration) *CatchupWorker {
	return &CatchupWorker{
		store:    store,
		engine:   eng,
		interval: interval,
		lookback: lookback,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the sweep loop. The first sweep runs immediately.
func (w *CatchupWorker) Start(ctx context.Context) {
	go func() {
		defer close(w.done)

		logrus.Infof("catch-up worker started (interval=%v, lookback=%v)", w.interval, w.lookback)
		w.sweep(ctx)

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				w.sweep(ctx)
			case <-w.stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Shutdown stops the loop and waits for an in-flight sweep to finish.
func (w *CatchupWorker) Shutdown(ctx context.Context) error {
	logrus.Info("shutting down catch-up worker...")
	close(w.stop)
	select {
	case <-w.done:
		logrus.Info("catch-up worker stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// sweep replays missing ticks for every recently active user. Transient
// failures retry with exponential backoff; a user that keeps failing is
// skipped until the next sweep.
func (w *CatchupWorker) sweep(ctx context.Context) {
	scope := common.NewScope(ctx, "CatchupWorker.Sweep")
	defer scope.Finish()

	timer := prometheus.NewTimer(metrics.CatchupSweepDuration)
	defer timer.ObserveDuration()

	since := time.Now().UTC().Add(-w.lookback)
	users, err := w.store.ActiveUsers(scope.Ctx, since)
	if err != nil {
		scope.TraceError(err)
		scope.Log.Errorf("catch-up sweep failed to list active users: %v", err)
		return
	}

	ticks := 0
	for _, userID := range users {
		res, err := w.catchUpUser(scope, userID)
		if err != nil {
			scope.Log.Errorf("catch-up failed for user %s: %v", userID, err)
			continue
		}
		ticks += res.TicksApplied
		metrics.CatchupUsersSwept.Inc()
	}

	if len(users) > 0 {
		scope.Log.Infof("catch-up sweep finished: %d users, %d ticks applied", len(users), ticks)
	}
}

// catchUpUser replays one user's missing ticks with retry. Unprovisioned
// users can linger in the index after deletion; they are not an error.
func (w *CatchupWorker) catchUpUser(scope *common.Scope, userID string) (*engine.CatchUpResult, error) {
	var res *engine.CatchUpResult

	b := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3)
	err := backoff.Retry(func() error {
		var err error
		res, err = w.engine.EnsureCaughtUp(scope, userID)
		if errors.Is(err, engine.ErrUserNotProvisioned) {
			res = &engine.CatchUpResult{}
			return nil
		}
		return err
	}, backoff.WithContext(b, scope.Ctx))
	if err != nil {
		return nil, err
	}
	return res, nil
}
