package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kovalchuka569/taskflow/internal/data/cache"
	"github.com/kovalchuka569/taskflow/internal/data/db"
	"github.com/kovalchuka569/taskflow/internal/observability"
	"github.com/kovalchuka569/taskflow/internal/platform/envutil"
	"github.com/kovalchuka569/taskflow/internal/platform/logger"
)

type Config struct {
	LogMode         string        `yaml:"log_mode"`
	HTTPAddr        string        `yaml:"http_addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	AllowOrigins    []string      `yaml:"cors_allow_origins"`
	MetricsEnabled  bool          `yaml:"metrics_enabled"`

	DB    db.Config                `yaml:"db"`
	Cache cache.Config             `yaml:"cache"`
	Otel  observability.OtelConfig `yaml:"otel"`
}

func defaultConfig() Config {
	return Config{
		LogMode:         "development",
		HTTPAddr:        ":8080",
		ShutdownTimeout: 15 * time.Second,
		MetricsEnabled:  true,
		DB: db.Config{
			Driver: db.DriverPostgres,
			Postgres: db.PostgresConfig{
				Host:    "localhost",
				Port:    5432,
				User:    "postgres",
				Name:    "taskflow",
				SSLMode: "disable",
			},
			SQLitePath:    "taskflow.db",
			AutoMigrate:   true,
			SlowThreshold: 200 * time.Millisecond,
		},
		Cache: cache.Config{
			TTL: 5 * time.Minute,
		},
		Otel: observability.OtelConfig{
			ServiceName: "taskflow",
			Environment: "development",
			SampleRatio: 1,
		},
	}
}

// LoadConfig layers defaults, the optional YAML file named by TASKFLOW_CONFIG
// and environment variables, in that order.
func LoadConfig(log *logger.Logger) (Config, error) {
	cfg := defaultConfig()
	if path := envutil.String("TASKFLOW_CONFIG", ""); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
		log.Info("Loaded config file", "path", path)
	}
	applyEnv(&cfg)
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.LogMode = envutil.String("LOG_MODE", cfg.LogMode)
	cfg.HTTPAddr = envutil.String("HTTP_ADDR", cfg.HTTPAddr)
	cfg.ShutdownTimeout = envutil.Duration("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	cfg.AllowOrigins = envutil.List("CORS_ALLOW_ORIGINS", cfg.AllowOrigins)
	cfg.MetricsEnabled = envutil.Bool("METRICS_ENABLED", cfg.MetricsEnabled)

	cfg.DB.Driver = strings.ToLower(envutil.String("DB_DRIVER", cfg.DB.Driver))
	cfg.DB.Postgres.Host = envutil.String("POSTGRES_HOST", cfg.DB.Postgres.Host)
	cfg.DB.Postgres.Port = envutil.Int("POSTGRES_PORT", cfg.DB.Postgres.Port)
	cfg.DB.Postgres.User = envutil.String("POSTGRES_USER", cfg.DB.Postgres.User)
	cfg.DB.Postgres.Password = envutil.String("POSTGRES_PASSWORD", cfg.DB.Postgres.Password)
	cfg.DB.Postgres.Name = envutil.String("POSTGRES_NAME", cfg.DB.Postgres.Name)
	cfg.DB.Postgres.SSLMode = envutil.String("POSTGRES_SSLMODE", cfg.DB.Postgres.SSLMode)
	cfg.DB.SQLitePath = envutil.String("SQLITE_PATH", cfg.DB.SQLitePath)
	cfg.DB.AutoMigrate = envutil.Bool("DB_AUTO_MIGRATE", cfg.DB.AutoMigrate)
	cfg.DB.SlowThreshold = envutil.Duration("DB_SLOW_THRESHOLD", cfg.DB.SlowThreshold)
	cfg.DB.MaxOpenConns = envutil.Int("DB_MAX_OPEN_CONNS", cfg.DB.MaxOpenConns)

	cfg.Cache.Addr = envutil.String("REDIS_ADDR", cfg.Cache.Addr)
	cfg.Cache.Password = envutil.String("REDIS_PASSWORD", cfg.Cache.Password)
	cfg.Cache.DB = envutil.Int("REDIS_DB", cfg.Cache.DB)
	cfg.Cache.TTL = envutil.Duration("CACHE_TTL", cfg.Cache.TTL)

	cfg.Otel.Enabled = envutil.Bool("OTEL_ENABLED", cfg.Otel.Enabled)
	cfg.Otel.ServiceName = envutil.String("OTEL_SERVICE_NAME", cfg.Otel.ServiceName)
	cfg.Otel.Environment = envutil.String("OTEL_ENVIRONMENT", cfg.Otel.Environment)
	cfg.Otel.Version = envutil.String("OTEL_SERVICE_VERSION", cfg.Otel.Version)
	cfg.Otel.Endpoint = envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Otel.Endpoint)
	cfg.Otel.Insecure = envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", cfg.Otel.Insecure)
	cfg.Otel.SampleRatio = envutil.Float("OTEL_SAMPLER_RATIO", cfg.Otel.SampleRatio)
	if raw := envutil.String("OTEL_EXPORTER_OTLP_HEADERS", ""); raw != "" {
		cfg.Otel.Headers = observability.ParseHeaders(raw)
	}
}

func (c Config) validate() error {
	switch c.DB.Driver {
	case db.DriverPostgres, db.DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	if strings.TrimSpace(c.HTTPAddr) == "" {
		return fmt.Errorf("HTTP_ADDR must not be empty")
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("CACHE_TTL must not be negative")
	}
	return nil
}
