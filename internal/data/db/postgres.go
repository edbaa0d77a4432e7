// Package db opens the GORM handle for the configured driver and owns the
// schema bootstrap.
package db

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/kovalchuka569/taskflow/internal/platform/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN renders the URL form understood by pgx.
func (c PostgresConfig) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.Name,
		RawQuery: "sslmode=" + url.QueryEscape(sslMode),
	}
	return u.String()
}

type Config struct {
	Driver        string         `yaml:"driver"`
	Postgres      PostgresConfig `yaml:"postgres"`
	SQLitePath    string         `yaml:"sqlite_path"`
	AutoMigrate   bool           `yaml:"auto_migrate"`
	SlowThreshold time.Duration  `yaml:"slow_threshold"`
	MaxOpenConns  int            `yaml:"max_open_conns"`
}

// Open connects with the configured driver.
func Open(cfg Config, log *logger.Logger) (*gorm.DB, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case DriverPostgres, "":
		return OpenPostgres(cfg, log)
	case DriverSQLite:
		return OpenSQLite(cfg.SQLitePath, log)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.Driver)
	}
}

func OpenPostgres(cfg Config, log *logger.Logger) (*gorm.DB, error) {
	dbLog := log.With("service", "PostgresService", "host", cfg.Postgres.Host, "database", cfg.Postgres.Name)
	db, err := gorm.Open(postgres.Open(cfg.Postgres.DSN()), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
		Logger:                                   newGormLogger(dbLog, cfg.SlowThreshold),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("postgres pool: %w", err)
		}
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	dbLog.Info("connected to Postgres")
	return db, nil
}

// OpenSQLite opens a file database, or a private in-memory one when path is
// empty or ":memory:". SQLite serializes writers, so the pool is capped at
// one connection.
func OpenSQLite(path string, log *logger.Logger) (*gorm.DB, error) {
	dsn := strings.TrimSpace(path)
	if dsn == "" || dsn == ":memory:" {
		dsn = "file::memory:"
	}
	dbLog := log.With("service", "SQLiteService", "path", dsn)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(dbLog, 0),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	dbLog.Info("opened SQLite")
	return db, nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type gormWriter struct {
	log *logger.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.SugaredLogger.Warnf(format, args...)
}

func newGormLogger(log *logger.Logger, slow time.Duration) gormLogger.Interface {
	if slow <= 0 {
		slow = time.Second
	}
	return gormLogger.New(gormWriter{log: log}, gormLogger.Config{
		SlowThreshold:             slow,
		LogLevel:                  gormLogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
