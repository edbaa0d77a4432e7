package app

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/kovalchuka569/taskflow/internal/data/cache"
	"github.com/kovalchuka569/taskflow/internal/data/db"
	"github.com/kovalchuka569/taskflow/internal/data/store"
	"github.com/kovalchuka569/taskflow/internal/data/uow"
	"github.com/kovalchuka569/taskflow/internal/http"
	httpH "github.com/kovalchuka569/taskflow/internal/http/handlers"
	"github.com/kovalchuka569/taskflow/internal/observability"
	"github.com/kovalchuka569/taskflow/internal/platform/envutil"
	"github.com/kovalchuka569/taskflow/internal/platform/logger"
	"github.com/kovalchuka569/taskflow/internal/services/todos"
)

type App struct {
	Log     *logger.Logger
	Cfg     Config
	DB      *gorm.DB
	Redis   *goredis.Client
	Metrics *observability.Metrics
	Todos   todos.Service
	Server  *http.Server

	shutdownOtel func(context.Context) error
}

// NewLogger builds the process logger from LOG_MODE.
func NewLogger() (*logger.Logger, error) {
	log, err := logger.New(envutil.String("LOG_MODE", "development"))
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return log, nil
}

// New wires the whole service. On error everything opened so far is closed.
func New(ctx context.Context, log *logger.Logger, cfg Config) (*App, error) {
	a := &App{Log: log, Cfg: cfg}
	if err := a.wire(ctx); err != nil {
		_ = a.Close(context.Background())
		return nil, err
	}
	return a, nil
}

func (a *App) wire(ctx context.Context) error {
	cfg, log := a.Cfg, a.Log
	var err error

	a.shutdownOtel = observability.InitOTel(ctx, log, cfg.Otel)

	a.DB, err = db.Open(cfg.DB, log)
	if err != nil {
		return fmt.Errorf("init db: %w", err)
	}
	if cfg.DB.AutoMigrate {
		if err = db.AutoMigrateAll(a.DB); err != nil {
			return fmt.Errorf("db automigrate: %w", err)
		}
	}

	a.Redis, err = cache.NewClient(ctx, cfg.Cache, log)
	if err != nil {
		return fmt.Errorf("init redis: %w", err)
	}

	if cfg.MetricsEnabled {
		a.Metrics = observability.NewMetrics(log)
	}

	sqlDB, err := a.DB.DB()
	if err != nil {
		return fmt.Errorf("db handle: %w", err)
	}

	a.Todos = wireTodos(a, log)
	a.Server = http.NewServer(cfg.HTTPAddr, http.RouterConfig{
		TodoHandler:   httpH.NewTodoHandler(a.Todos),
		HealthHandler: httpH.NewHealthHandler(sqlDB),
		Metrics:       a.Metrics,
		Log:           log,
		ServiceName:   otelServiceName(cfg),
		AllowOrigins:  cfg.AllowOrigins,
	})
	return nil
}

func wireTodos(a *App, log *logger.Logger) todos.Service {
	log.Info("Wiring todo service...")
	st := store.New(a.DB, log)
	sessions := func() todos.Session { return st.Open() }

	projections := todos.NoopProjectionCache()
	if a.Redis != nil {
		prefix := a.Cfg.Cache.KeyPrefix
		if prefix == "" {
			prefix = todos.CacheKeyPrefix
		}
		projections = todos.NewProjectionCache(
			cache.NewRedisStore[todos.TodoResponse](a.Redis, prefix, a.Cfg.Cache.TTL, log),
			a.Metrics,
			log,
		)
	}

	hooks := uow.NoopHooks()
	if a.Metrics != nil {
		hooks = uow.NewObservabilityHooks(a.Metrics, log)
	}
	return todos.NewService(log, sessions, projections, hooks)
}

func otelServiceName(cfg Config) string {
	if !cfg.Otel.Enabled {
		return ""
	}
	return cfg.Otel.ServiceName
}

// Close releases every resource New acquired, in reverse order.
func (a *App) Close(ctx context.Context) error {
	if a == nil {
		return nil
	}
	var errs []error
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	if a.DB != nil {
		errs = append(errs, db.Close(a.DB))
	}
	if a.shutdownOtel != nil {
		errs = append(errs, a.shutdownOtel(ctx))
	}
	if a.Log != nil {
		a.Log.Sync()
	}
	return errors.Join(errs...)
}

// Migrate opens the configured database, creates or upgrades the schema and
// closes the connection.
func Migrate(log *logger.Logger, cfg Config) error {
	gdb, err := db.Open(cfg.DB, log)
	if err != nil {
		return fmt.Errorf("init db: %w", err)
	}
	defer func() { _ = db.Close(gdb) }()
	if err := db.AutoMigrateAll(gdb); err != nil {
		return fmt.Errorf("db automigrate: %w", err)
	}
	log.Info("Schema is up to date", "driver", cfg.DB.Driver)
	return nil
}
