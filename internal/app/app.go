// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/lifeworldos/progression-engine/internal/config"
	"github.com/lifeworldos/progression-engine/internal/server"
	"github.com/lifeworldos/progression-engine/internal/worker"
	"github.com/lifeworldos/progression-engine/pkg/engine"
	"github.com/lifeworldos/progression-engine/pkg/state"
	"github.com/lifeworldos/progression-engine/pkg/tuning"
)

// App holds all application dependencies and manages the application lifecycle.
type App struct {
	cfg               *config.Config
	metricsServer     *server.MetricsServer
	redisClient       *redis.Client
	engine            *engine.Engine
	catchup           *worker.CatchupWorker
	shutdownTelemetry func(context.Context) error
}

// New creates and initializes a new application instance. Components come up
// in dependency order: Redis, tuning, store and engine, catch-up worker,
// metrics server, telemetry.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{cfg: cfg}

	if err := app.initRedis(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}

	tuningCfg, err := tuning.Load(cfg.TuningPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load tuning config: %w", err)
	}

	store := state.NewStore(app.redisClient)
	app.engine = engine.New(store, tuningCfg)

	if cfg.CatchupEnabled {
		app.catchup = worker.NewCatchupWorker(
			store,
			app.engine,
			time.Duration(cfg.CatchupIntervalMinutes)*time.Minute,
			time.Duration(cfg.CatchupLookbackDays)*24*time.Hour,
		)
	}

	app.metricsServer = server.NewMetricsServer(
		cfg.MetricsPort,
		cfg.MetricsEndpoint,
		state.NewHealthChecker(app.redisClient),
	)
	if err := app.metricsServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup metrics server: %w", err)
	}

	if cfg.OtelEnabled {
		shutdown, err := server.SetupTelemetry(ctx, cfg.OtelServiceName, cfg.Environment, cfg.ZipkinURL)
		if err != nil {
			return nil, fmt.Errorf("failed to setup telemetry: %w", err)
		}
		app.shutdownTelemetry = shutdown
	}

	logrus.Info("application initialized successfully")
	return app, nil
}

// Engine exposes the progression engine for embedding callers.
func (a *App) Engine() *engine.Engine {
	return a.engine
}

// initRedis connects to Redis with exponential backoff so the service
// survives Redis coming up after it does.
func (a *App) initRedis(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%s", a.cfg.RedisHost, a.cfg.RedisPort)

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     a.cfg.RedisPassword,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Duration(a.cfg.RedisRetryDelayMs) * time.Millisecond

	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		if _, err := client.Ping(ctx).Result(); err != nil {
			logrus.Warnf("Redis connection failed (attempt %d): %v", attempt, err)
			return err
		}
		return nil
	}, backoff.WithContext(backoff.WithMaxRetries(b, uint64(a.cfg.RedisMaxRetries)), ctx))
	if err != nil {
		return fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}

	logrus.Infof("connected to Redis at %s", addr)
	a.redisClient = client
	return nil
}
