package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/killallgit/podcast-catalog/pkg/logging"
	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Memory is the path of a private in-memory database
const Memory = ":memory:"

// slowQuery is the duration after which gorm reports a query as slow
const slowQuery = 200 * time.Millisecond

// DB is the SQLite database backing the "sqlite" dataset source
type DB struct {
	*gorm.DB
	path string
}

// Initialize opens the SQLite catalog database at dbPath, creating the
// parent directory of a file database. Verbose logs every statement at
// debug level; otherwise only slow queries and errors are logged.
func Initialize(dbPath string, verbose bool) (*DB, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("database path is empty")
	}

	if dbPath != Memory {
		if dir := filepath.Dir(dbPath); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: newGormLogger(verbose),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL database: %w", err)
	}

	// One connection: the catalog is read once at startup, and a second
	// connection to ":memory:" would see an empty database.
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	logging.Debug().Str("path", dbPath).Msg("database opened")
	return &DB{DB: db, path: dbPath}, nil
}

// Path returns the path the database was opened with
func (db *DB) Path() string {
	if db == nil {
		return ""
	}
	return db.path
}

// Close closes the database connection
func (db *DB) Close() error {
	if db == nil || db.DB == nil {
		return nil
	}
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL database: %w", err)
	}
	return sqlDB.Close()
}

// HealthCheck pings the database, giving up after one second
func (db *DB) HealthCheck(ctx context.Context) error {
	if db == nil || db.DB == nil {
		return fmt.Errorf("database not initialized")
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL database: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// gormWriter sends gorm's log lines to the process logger
type gormWriter struct {
	level zerolog.Level
}

func (w gormWriter) Printf(format string, args ...any) {
	logging.GlobalLogger().WithLevel(w.level).Str("component", "gorm").Msgf(format, args...)
}

func newGormLogger(verbose bool) logger.Interface {
	cfg := logger.Config{
		SlowThreshold:             slowQuery,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	}
	w := gormWriter{level: zerolog.WarnLevel}
	if verbose {
		cfg.LogLevel = logger.Info
		w.level = zerolog.DebugLevel
	}
	return logger.New(w, cfg)
}
