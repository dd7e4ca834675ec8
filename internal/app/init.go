package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	server "github.com/admin/games/daily-guess/internal/adapters/primary/http"
	adminController "github.com/admin/games/daily-guess/internal/adapters/primary/http/controllers/admin"
	dailyController "github.com/admin/games/daily-guess/internal/adapters/primary/http/controllers/daily"
	healthcheckController "github.com/admin/games/daily-guess/internal/adapters/primary/http/controllers/healthcheck"
	metricsController "github.com/admin/games/daily-guess/internal/adapters/primary/http/controllers/metrics"
	kafkaAdapter "github.com/admin/games/daily-guess/internal/adapters/secondary/kafka"
	"github.com/admin/games/daily-guess/internal/adapters/secondary/storage/inmemory"
	"github.com/admin/games/daily-guess/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/admin/games/daily-guess/internal/adapters/secondary/storage/redis"
	"github.com/admin/games/daily-guess/internal/pkg/metrics"
	"github.com/admin/games/daily-guess/internal/ports/events"
	"github.com/admin/games/daily-guess/internal/ports/store"
	dailyRepo "github.com/admin/games/daily-guess/internal/repository/daily"
	imageRepo "github.com/admin/games/daily-guess/internal/repository/image"
	imageUsageRepo "github.com/admin/games/daily-guess/internal/repository/image_usage"
	dailyService "github.com/admin/games/daily-guess/internal/usecases/daily"
)

type Dependencies struct {
	Store      store.Store
	Events     events.IEventPublisher
	HTTPServer *http.Server
}

// initDependencies инициализирует все зависимости приложения
func (a *App) initDependencies(ctx context.Context) (*Dependencies, error) {
	kvStore, err := a.initStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to init store: %w", err)
	}

	publisher, err := a.initEvents()
	if err != nil {
		_ = kvStore.Close()
		return nil, fmt.Errorf("failed to init events: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewMetrics(a.Cfg.Game.MetricsNamespace, registry)

	dailyUseCase := dailyService.New(
		imageRepo.New(kvStore, a.Log),
		imageUsageRepo.New(kvStore, a.Log),
		dailyRepo.New(kvStore, a.Log),
		publisher,
		m,
		a.Log,
	)

	controllers := []server.Controller{
		healthcheckController.New(kvStore, a.Cfg.Store.Driver, a.Log),
		metricsController.New(registry),
		dailyController.New(dailyUseCase, a.Log),
		adminController.New(dailyUseCase, adminController.Config{
			Token:       a.Cfg.Game.AdminToken,
			DebugRoutes: a.Cfg.Game.DebugRoutes,
		}, a.Log),
	}

	if a.Cfg.Game.AdminToken == "" {
		a.Log.Warn("admin token is not set, seed routes are open")
	}
	if a.Cfg.Game.DebugRoutes {
		a.Log.Warn("debug routes enabled")
	}

	return &Dependencies{
		Store:      kvStore,
		Events:     publisher,
		HTTPServer: server.NewHTTPServer(a.Cfg.Server, a.Log, m, controllers...),
	}, nil
}

// initStore поднимает KV-хранилище по STORE_DRIVER
func (a *App) initStore(ctx context.Context) (store.Store, error) {
	switch a.Cfg.Store.Driver {
	case StoreDriverRedis:
		rdb, err := a.Cfg.Redis.NewConnection()
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.Log.Info("redis connected successfully", "addr", a.Cfg.Redis.Addr(), "db", a.Cfg.Redis.Database)
		return redisAdapter.NewClient(rdb), nil

	case StoreDriverPostgres:
		return a.initPostgres(ctx)

	case StoreDriverMemory:
		a.Log.Warn("using in-memory store, state is lost on restart")
		return inmemory.NewStore(), nil
	}

	return nil, fmt.Errorf("unsupported store driver: %q", a.Cfg.Store.Driver)
}

func (a *App) initPostgres(ctx context.Context) (store.Store, error) {
	conn, err := a.Cfg.Postgres.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	a.Log.Info("postgres connected successfully")

	db := pg.NewDB(conn)
	if err := pg.RunMigrations(ctx, db, a.Log); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return pg.NewKVStore(db), nil
}

// initEvents создаёт Kafka producer, если заданы брокеры
func (a *App) initEvents() (events.IEventPublisher, error) {
	if a.Cfg.Kafka == nil || !a.Cfg.Kafka.IsEnabled() {
		a.Log.Info("kafka brokers not set, game events disabled")
		return nil, nil
	}

	producer, err := kafkaAdapter.NewProducer(a.Cfg.Kafka, a.Log)
	if err != nil {
		return nil, err
	}
	return producer, nil
}
