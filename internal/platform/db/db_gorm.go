// Package db はMySQLへのGORMコネクション確立を担当します。
package db

import (
	"fmt"
	"log/slog"
	"time"

	gmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	"bookstore_backend/internal/app/config"
	authentity "bookstore_backend/internal/feature/auth/domain/entity"
)

const retryInterval = 3 * time.Second

// Opener opens a GORM connection for the given DSN. Injected so the retry
// loop is testable without a real database.
type Opener func(dsn string) (*gorm.DB, error)

// MySQLOpener is the production Opener.
func MySQLOpener(dsn string) (*gorm.DB, error) {
	return gorm.Open(gmysql.Open(dsn), &gorm.Config{TranslateError: true})
}

// ConnectWithRetry keeps attempting to connect until the timeout elapses.
// Container orchestration often starts the app before MySQL accepts
// connections, so a cold start needs a few attempts.
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("db connect failed, retrying", "error", err)
		time.Sleep(retryInterval)
	}
}

// Open establishes the MySQL connection described by cfg and runs schema
// migration when enabled.
func Open(cfg *config.Config) (*gorm.DB, error) {
	db, err := ConnectWithRetry(cfg.DSN(), 60*time.Second, MySQLOpener)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		if err := db.AutoMigrate(&authentity.User{}); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
	}

	return db, nil
}
