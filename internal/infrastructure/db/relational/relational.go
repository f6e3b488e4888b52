// Package relational stores the user directory and the service event log in
// a SQL database through GORM. SQLite is used by default; PostgreSQL when a
// connection URL is configured.
package relational

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	defaultTimeout      = 10 * time.Second
	defaultMaxOpenConns = 10
	sqliteParams        = "?_busy_timeout=5000&_journal_mode=WAL"
)

// Config selects and tunes the database. DatabaseURL wins over SQLitePath.
type Config struct {
	DatabaseURL  string
	SQLitePath   string
	MaxOpenConns int
	Timeout      time.Duration
	// Log receives query errors and slow queries. Zero value discards.
	Log          zerolog.Logger
}

// Connect opens the database, verifies connectivity with a ping and creates
// the schema when it is missing.
func Connect(ctx context.Context, cfg Config) (*gorm.DB, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         newQueryLogger(cfg.Log),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = defaultMaxOpenConns
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := Migrate(db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the usuarios and atendimentos tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&userRecord{}, &serviceEventRecord{}); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks the pool can still reach the database.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Dialect reports which backend cfg selects ("postgres" or "sqlite").
func Dialect(cfg Config) string {
	if cfg.DatabaseURL != "" {
		return "postgres"
	}
	return "sqlite"
}

func dialectorFor(cfg Config) (gorm.Dialector, error) {
	if cfg.DatabaseURL != "" {
		return postgres.Open(cfg.DatabaseURL), nil
	}

	path := cfg.SQLitePath
	if path == "" {
		return nil, fmt.Errorf("database: neither DATABASE_URL nor a SQLite path is configured")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite directory: %w", err)
		}
	}
	return sqlite.Open(path + sqliteParams), nil
}
