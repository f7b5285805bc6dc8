package app

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"puzzletrack/internal/config"
	"puzzletrack/internal/scheduler"
	"puzzletrack/internal/server"
	"puzzletrack/pkg/achievement"
	"puzzletrack/pkg/catalog"
	"puzzletrack/pkg/parser"
	"puzzletrack/pkg/store"
	"puzzletrack/pkg/tracker"
)

// App holds all application dependencies and manages the application lifecycle.
type App struct {
	cfg               *config.Config
	httpServer        *server.HTTPServer
	metricsServer     *server.MetricsServer
	eventHub          *server.EventHub
	scheduler         *scheduler.Scheduler
	redisClient       *redis.Client
	shutdownTelemetry func(context.Context) error
}

// New creates and initializes a new application instance. Components are
// initialized in dependency order: redis, catalog, core pipeline, servers,
// scheduler, telemetry.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logrus.Info("initializing application...")

	app := &App{cfg: cfg}

	if err := app.initRedis(ctx); err != nil {
		return nil, fmt.Errorf("failed to init redis: %w", err)
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}
	logrus.Infof("loaded game catalog with %d games", cat.Count())

	app.metricsServer = server.NewMetricsServer(cfg.MetricsPort, "/metrics")
	if err := app.metricsServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup metrics server: %w", err)
	}

	engine := achievement.NewEngine(achievement.DefaultRegistry())
	trk := tracker.New(
		cat,
		parser.New(),
		engine,
		store.NewRedisStore(app.redisClient),
		tracker.NewMetrics(app.metricsServer.Registry()),
	)

	app.eventHub = server.NewEventHub()
	trk.OnUnlock(app.eventHub.BroadcastUnlock)

	app.httpServer = server.NewHTTPServer(cfg.HTTPPort, trk, app.eventHub)
	if err := app.httpServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup http server: %w", err)
	}

	app.scheduler = scheduler.New(trk)

	if cfg.OtelEnabled {
		shutdownTelemetry, err := server.SetupTelemetry(ctx, cfg.ServiceName, cfg.Environment, cfg.OtelZipkinEndpoint, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to setup telemetry: %w", err)
		}
		app.shutdownTelemetry = shutdownTelemetry
	}

	logrus.Info("application initialized successfully")
	return app, nil
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogPath == "" {
		return catalog.Default(), nil
	}

	cat, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog from %s: %w", cfg.CatalogPath, err)
	}
	return cat, nil
}

// initRedis initializes the redis client, retrying the initial connection
// with exponential backoff.
func (a *App) initRedis(ctx context.Context) error {
	client := redis.NewClient(&redis.Options{
		Addr:         a.cfg.RedisHost + ":" + a.cfg.RedisPort,
		Password:     a.cfg.RedisPassword,
		DB:           0, // use default DB
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Duration(a.cfg.RedisRetryDelayMs) * time.Millisecond
	retry := backoff.WithMaxRetries(b, uint64(a.cfg.RedisMaxRetries))

	err := backoff.Retry(
		func() error {
			if _, err := client.Ping(ctx).Result(); err != nil {
				logrus.Warnf("redis connection failed: %v, retrying...", err)
				return err
			}
			return nil
		},
		retry,
	)
	if err != nil {
		return err
	}

	a.redisClient = client
	logrus.Info("redis client initialized")
	return nil
}
