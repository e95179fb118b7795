// Package database opens the relational store shared by the pets and adoptions contexts.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"

	// MemoryPath selects a process-local SQLite database.
	MemoryPath = ":memory:"
)

// Options tunes the connection pool. Zero values fall back to defaults.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	PingTimeout     time.Duration
	LogLevel        gormlogger.LogLevel
}

func (o Options) withDefaults() Options {
	if o.MaxOpenConns <= 0 {
		o.MaxOpenConns = 10
	}
	if o.MaxIdleConns <= 0 {
		o.MaxIdleConns = 5
	}
	if o.ConnMaxLifetime <= 0 {
		o.ConnMaxLifetime = 30 * time.Minute
	}
	if o.PingTimeout <= 0 {
		o.PingTimeout = 5 * time.Second
	}
	if o.LogLevel == 0 {
		o.LogLevel = gormlogger.Silent
	}
	return o
}

// OpenPostgres opens a PostgreSQL pool through the lib/pq driver and verifies connectivity.
func OpenPostgres(ctx context.Context, dsn string, opts Options) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	opts = opts.withDefaults()
	dialector := postgres.New(postgres.Config{
		DriverName: "postgres",
		DSN:        dsn,
	})
	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Default.LogMode(opts.LogLevel)})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	if err := ping(ctx, db, opts.PingTimeout); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// OpenSQLite opens a SQLite database with foreign keys enforced.
// The pool is pinned to a single connection: SQLite serialises writers anyway
// and an in-memory database only lives as long as its connection.
func OpenSQLite(ctx context.Context, path string, opts Options) (*gorm.DB, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = MemoryPath
	}
	opts = opts.withDefaults()
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: gormlogger.Default.LogMode(opts.LogLevel)})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)
	if err := db.WithContext(ctx).Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("enable sqlite foreign keys: %w", err)
	}
	if err := ping(ctx, db, opts.PingTimeout); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// Config selects which store to open.
type Config struct {
	PostgresDSN string
	SQLitePath  string
}

// Open dials Postgres when a DSN is configured and SQLite otherwise. The returned
// cleanup closes the pool.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*gorm.DB, func(), error) {
	var (
		db  *gorm.DB
		err error
	)
	if strings.TrimSpace(cfg.PostgresDSN) != "" {
		db, err = OpenPostgres(ctx, cfg.PostgresDSN, Options{})
		if err != nil {
			return nil, func() {}, fmt.Errorf("connect postgres: %w", err)
		}
		logInfo(logger, "store configured with postgres")
	} else {
		db, err = OpenSQLite(ctx, cfg.SQLitePath, Options{})
		if err != nil {
			return nil, func() {}, fmt.Errorf("open sqlite: %w", err)
		}
		logInfo(logger, "store configured with sqlite", slog.String("path", displayPath(cfg.SQLitePath)))
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, func() {}, err
	}
	return db, func() { _ = sqlDB.Close() }, nil
}

// Ping verifies the store answers within the timeout.
func Ping(ctx context.Context, db *gorm.DB) error {
	return ping(ctx, db, 2*time.Second)
}

func ping(ctx context.Context, db *gorm.DB, timeout time.Duration) error {
	if db == nil {
		return fmt.Errorf("database not configured")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

// Dialect reports the dialect name of an open handle.
func Dialect(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return ""
	}
	return db.Dialector.Name()
}

func displayPath(path string) string {
	if strings.TrimSpace(path) == "" {
		return MemoryPath
	}
	return path
}

func logInfo(logger *slog.Logger, msg string, attrs ...any) {
	if logger == nil {
		return
	}
	logger.Info(msg, attrs...)
}
